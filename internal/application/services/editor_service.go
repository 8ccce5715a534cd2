package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hamatunited-sudo/Hamatunited/internal/domain/content"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/caching"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/media"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/messaging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/storage"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// Save statuses, surfaced to the admin UI. The status always leaves
// "saving" before Save returns.
const (
	SaveStatusIdle   = "idle"
	SaveStatusSaving = "saving"
	SaveStatusSaved  = "saved"
	SaveStatusError  = "error"
)

// The profile image always lands on the same object so repeated uploads
// overwrite instead of accumulating.
const profileImageTarget = "Profile_image.png"

// SaveStep records the outcome of one stage of the save pipeline.
type SaveStep struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// SaveResult is the full outcome of a save. Status is "saved" even when
// individual steps failed; the steps carry the detail.
type SaveResult struct {
	Status  string         `json:"status"`
	Steps   []SaveStep     `json:"steps"`
	Publish *PublishReport `json:"publish,omitempty"`
}

// EditorState is the admin UI view of the working copy.
type EditorState struct {
	Sections   []string         `json:"sections"`
	Document   content.Document `json:"document"`
	RawJSON    string           `json:"rawJson"`
	RawActive  bool             `json:"rawActive"`
	HasChanges bool             `json:"hasChanges"`
	SaveStatus string           `json:"saveStatus"`
}

// ProfileImageResult describes a profile image upload. When the storage
// push fails the image is applied to the working copy as an inline data
// URL preview instead and left unsaved.
type ProfileImageResult struct {
	Uploaded  bool        `json:"uploaded"`
	PublicURL string      `json:"publicUrl,omitempty"`
	Preview   bool        `json:"preview"`
	Save      *SaveResult `json:"save,omitempty"`
}

// EditorService holds the single admin working copy. Edits mutate the
// copy in memory; nothing reaches readers until Save runs the pipeline.
// The whole document is replaced on save, so two concurrent editors
// follow last-writer-wins.
type EditorService struct {
	content   *ContentService
	storage   *storage.Client
	snapshots *caching.SnapshotStore
	notifier  messaging.Notifier
	logger    *logging.ChanneledLogger

	mu          sync.Mutex
	working     content.Document
	rawJSON     string
	rawActive   bool
	hasChanges  bool
	saveStatus  string
	stagedImage string
}

func NewEditorService(contentSvc *ContentService, store *storage.Client, snapshots *caching.SnapshotStore, notifier messaging.Notifier, logger *logging.ChanneledLogger) *EditorService {
	return &EditorService{
		content:    contentSvc,
		storage:    store,
		snapshots:  snapshots,
		notifier:   notifier,
		logger:     logger,
		saveStatus: SaveStatusIdle,
	}
}

// Load initializes the working copy from the resolved document if the
// editor has none yet, and returns the current state.
func (e *EditorService) Load(ctx context.Context) EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.working == nil {
		doc, source := e.content.Resolve(ctx)
		e.working = doc.Clone()
		e.syncRawLocked()
		e.logger.Editor().Info("Editor working copy loaded", "source", source)
	}
	return e.stateLocked()
}

// State returns the current editor state without touching the working
// copy.
func (e *EditorService) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *EditorService) stateLocked() EditorState {
	sections := make([]string, 0, len(e.working))
	for name := range e.working {
		sections = append(sections, name)
	}
	sort.Strings(sections)
	return EditorState{
		Sections:   sections,
		Document:   e.working,
		RawJSON:    e.rawJSON,
		RawActive:  e.rawActive,
		HasChanges: e.hasChanges,
		SaveStatus: e.saveStatus,
	}
}

func (e *EditorService) syncRawLocked() {
	if raw, err := e.working.JSON(); err == nil {
		e.rawJSON = string(raw)
	}
}

// SetField writes value at path in the working copy and marks it dirty.
func (e *EditorService) SetField(value any, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("empty field path")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.working == nil {
		return fmt.Errorf("editor not loaded")
	}
	next := e.working.Clone()
	if err := next.SetField(value, path...); err != nil {
		return err
	}
	e.working = next
	e.hasChanges = true
	e.saveStatus = SaveStatusIdle
	e.syncRawLocked()
	return nil
}

// InsertItem appends a paired item to both language arrays of section.
func (e *EditorService) InsertItem(section string, arItem, enItem map[string]any) error {
	return e.arrayOp(section, func(doc content.Document) bool {
		return doc.InsertItem(section, arItem, enItem)
	})
}

// RemoveItem deletes index from both language arrays of section.
func (e *EditorService) RemoveItem(section string, index int) error {
	return e.arrayOp(section, func(doc content.Document) bool {
		return doc.RemoveItem(section, index)
	})
}

// MoveItem swaps index with its neighbor in both language arrays.
// Moving the first item up or the last item down is a no-op.
func (e *EditorService) MoveItem(section string, index int, up bool) error {
	return e.arrayOp(section, func(doc content.Document) bool {
		if up {
			return doc.MoveItemUp(section, index)
		}
		return doc.MoveItemDown(section, index)
	})
}

func (e *EditorService) arrayOp(section string, op func(content.Document) bool) error {
	if !content.IsPairedSection(section) {
		return fmt.Errorf("section %q has no paired arrays", section)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.working == nil {
		return fmt.Errorf("editor not loaded")
	}
	next := e.working.Clone()
	if op(next) {
		e.working = next
		e.hasChanges = true
		e.saveStatus = SaveStatusIdle
		e.syncRawLocked()
	}
	return nil
}

// SetRawJSON stores the raw editor buffer. Valid JSON replaces the
// working copy; invalid text is kept in the buffer only, so a typo
// never clobbers the structured document.
func (e *EditorService) SetRawJSON(text string) (valid bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rawJSON = text
	e.rawActive = true
	doc, err := content.Parse([]byte(text))
	if err != nil {
		return false
	}
	e.working = doc
	e.hasChanges = true
	e.saveStatus = SaveStatusIdle
	return true
}

// Export returns the working copy serialized for download.
func (e *EditorService) Export() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.working == nil {
		return nil, fmt.Errorf("editor not loaded")
	}
	return e.working.JSON()
}

// Import replaces the working copy with an uploaded document.
func (e *EditorService) Import(raw []byte) error {
	doc, err := content.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid import: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = doc
	e.hasChanges = true
	e.rawActive = false
	e.saveStatus = SaveStatusIdle
	e.syncRawLocked()
	e.logger.Editor().Info("Document imported", "sections", len(doc))
	return nil
}

// Reset discards the working copy and reloads from the bundled default.
func (e *EditorService) Reset() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = content.Default()
	e.hasChanges = true
	e.rawActive = false
	e.saveStatus = SaveStatusIdle
	e.syncRawLocked()
	e.logger.Editor().Info("Working copy reset to defaults")
	return e.stateLocked()
}

// Save runs the pipeline: snapshot the working copy, derive the legacy
// projection, fold in the raw buffer if it is active and valid, then
// publish. Each step is best effort; a remote failure still ends in
// "saved" so the admin keeps the local snapshot. Only a failure to
// serialize the document itself is an error.
func (e *EditorService) Save(ctx context.Context) SaveResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.working == nil {
		return SaveResult{Status: SaveStatusError, Steps: []SaveStep{{Name: "load", Detail: "editor not loaded"}}}
	}

	e.saveStatus = SaveStatusSaving
	e.notifier.NotifyContentUpdated(messaging.ContentEvent{
		Type:     messaging.EventSaveStatus,
		Revision: time.Now().UTC(),
		Detail:   SaveStatusSaving,
	})
	result := SaveResult{}

	// Fold the raw buffer in before anything is written so every step
	// sees the same document.
	if e.rawActive {
		step := SaveStep{Name: "raw_editor", OK: true}
		if doc, err := content.Parse([]byte(e.rawJSON)); err == nil {
			e.working = doc
		} else {
			step.OK = false
			step.Detail = "raw buffer is not valid JSON, skipped"
		}
		result.Steps = append(result.Steps, step)
	}

	raw, err := e.working.JSON()
	if err != nil {
		e.saveStatus = SaveStatusError
		result.Status = SaveStatusError
		result.Steps = append(result.Steps, SaveStep{Name: "serialize", Detail: err.Error()})
		return result
	}

	step := SaveStep{Name: "local_snapshot", OK: true}
	if err := e.snapshots.Set(caching.SlotOriginalContent, raw); err != nil {
		step.OK = false
		step.Detail = err.Error()
	}
	result.Steps = append(result.Steps, step)

	step = SaveStep{Name: "legacy_sections", OK: true}
	legacy := e.working.LegacySections()
	if len(legacy) > 0 {
		if data, err := json.Marshal(legacy); err == nil {
			if err := e.snapshots.Set(caching.SlotLegacyContent, data); err != nil {
				step.OK = false
				step.Detail = err.Error()
			} else {
				step.Detail = fmt.Sprintf("%d sections", len(legacy))
			}
		} else {
			step.OK = false
			step.Detail = err.Error()
		}
	} else {
		step.Detail = "no flat sections"
	}
	result.Steps = append(result.Steps, step)

	if e.stagedImage != "" {
		step = SaveStep{Name: "profile_image", OK: true}
		if err := e.snapshots.Set(caching.SlotProfileImage, []byte(e.stagedImage)); err != nil {
			step.OK = false
			step.Detail = err.Error()
		}
		result.Steps = append(result.Steps, step)
	}

	step = SaveStep{Name: "remote_publish", OK: true}
	report, err := e.content.Publish(ctx, raw)
	if err != nil {
		step.OK = false
		step.Detail = err.Error()
	} else {
		result.Publish = &report
		if !report.PushedToStorage {
			step.OK = false
			step.Detail = report.PushedMessage
		}
	}
	result.Steps = append(result.Steps, step)

	e.hasChanges = false
	e.saveStatus = SaveStatusSaved
	result.Status = SaveStatusSaved
	e.notifier.NotifyContentUpdated(messaging.ContentEvent{
		Type:     messaging.EventSaveStatus,
		Revision: time.Now().UTC(),
		Detail:   SaveStatusSaved,
	})
	e.logger.Editor().Info("Save completed", "steps", len(result.Steps), "pushed", report.PushedToStorage)
	return result
}

// UploadProfileImage uploads the admin profile image to its canonical
// object, points both language about sections at the public URL and
// publishes immediately. When the upload fails the image is applied as
// an inline data URL preview and the document stays dirty.
func (e *EditorService) UploadProfileImage(ctx context.Context, mimeType string, data []byte) (ProfileImageResult, error) {
	if err := media.CheckUpload(mimeType, int64(len(data)), config.MaxUploadBytes); err != nil {
		return ProfileImageResult{}, err
	}
	if _, err := media.ProbeImage(mimeType, data); err != nil {
		return ProfileImageResult{}, err
	}

	e.mu.Lock()
	if e.working == nil {
		doc, _ := e.content.Resolve(ctx)
		e.working = doc.Clone()
	}
	e.mu.Unlock()

	uploadErr := e.storage.Upload(ctx, config.ImagesBucket, profileImageTarget, mimeType, data)
	if uploadErr != nil {
		dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
		e.applyProfileImage(dataURL)
		e.mu.Lock()
		e.hasChanges = true
		e.mu.Unlock()
		e.logger.Editor().Warn("Profile image upload failed, keeping inline preview", "error", uploadErr.Error())
		return ProfileImageResult{Preview: true}, nil
	}

	publicURL := e.storage.PublicURL(config.ImagesBucket, profileImageTarget)
	e.applyProfileImage(publicURL)

	save := e.Save(ctx)

	e.notifier.NotifyContentUpdated(messaging.ContentEvent{
		Type:      messaging.EventContentUpdated,
		Revision:  time.Now().UTC(),
		Detail:    "profile_image",
		PublicURL: publicURL,
	})
	return ProfileImageResult{Uploaded: true, PublicURL: publicURL, Save: &save}, nil
}

func (e *EditorService) applyProfileImage(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = e.working.Clone()
	e.working.SetField(url, "about", "ar", "image")
	e.working.SetField(url, "about", "en", "image")
	e.stagedImage = url
	e.syncRawLocked()
}
