// Package services contains the application services that sit between the
// HTTP handlers and the infrastructure layer.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hamatunited-sudo/Hamatunited/internal/domain/content"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/caching"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/messaging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/storage"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// Document sources, in resolution order.
const (
	SourceRemote   = "remote"
	SourceSnapshot = "snapshot"
	SourceLocal    = "local"
	SourceDefault  = "default"
)

// PublishReport describes the outcome of a whole-document publish. A
// failed storage push is not an error; the report carries the partial
// result instead.
type PublishReport struct {
	OK                  bool   `json:"ok"`
	PushedToStorage     bool   `json:"pushedToStorage"`
	PushedMessage       string `json:"pushedMessage,omitempty"`
	PublicURL           string `json:"publicUrl,omitempty"`
	LocalWriteAttempted bool   `json:"localWriteAttempted"`
	LocalWriteOk        bool   `json:"localWriteOk"`
}

// ContentService resolves the current site document and publishes new
// revisions. Resolution tries the remote object first, then the local
// snapshot, then the file shipped next to the binary, and finally the
// bundled default. The whole document is replaced on every publish;
// concurrent editors follow last-writer-wins.
type ContentService struct {
	storage   *storage.Client
	snapshots *caching.SnapshotStore
	notifier  messaging.Notifier
	logger    *logging.ChanneledLogger

	mu          sync.RWMutex
	current     content.Document
	source      string
	lastRefresh time.Time
	ttl         time.Duration
}

func NewContentService(store *storage.Client, snapshots *caching.SnapshotStore, notifier messaging.Notifier, logger *logging.ChanneledLogger) *ContentService {
	return &ContentService{
		storage:   store,
		snapshots: snapshots,
		notifier:  notifier,
		logger:    logger,
		ttl:       config.ContentSnapshotTTL,
	}
}

// Resolve returns the current document and the source it came from,
// refreshing when the cached copy is older than the snapshot TTL.
func (s *ContentService) Resolve(ctx context.Context) (content.Document, string) {
	s.mu.RLock()
	if s.current != nil && time.Since(s.lastRefresh) < s.ttl {
		doc, source := s.current, s.source
		s.mu.RUnlock()
		return doc, source
	}
	s.mu.RUnlock()
	return s.Refresh(ctx)
}

// Refresh runs the full resolution chain regardless of TTL.
func (s *ContentService) Refresh(ctx context.Context) (content.Document, string) {
	doc, source := s.resolve(ctx)

	s.mu.Lock()
	s.current = doc
	s.source = source
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	s.logger.Content().Debug("Document refreshed", "source", source, "sections", len(doc))
	return doc, source
}

// Invalidate drops the cached document so the next Resolve re-runs the
// resolution chain. Wired to the event bus so one editor's save is
// picked up by every reader.
func (s *ContentService) Invalidate() {
	s.mu.Lock()
	s.lastRefresh = time.Time{}
	s.mu.Unlock()
}

func (s *ContentService) resolve(ctx context.Context) (content.Document, string) {
	if raw, ok := s.fetchRemote(ctx); ok {
		if doc, err := content.Parse(raw); err == nil {
			// Mirror the remote copy so the next outage still serves
			// the latest published revision.
			s.snapshots.Set(caching.SlotOriginalContent, raw)
			return doc, SourceRemote
		}
		s.logger.Content().Warn("Remote content object is not valid JSON, falling back")
	}

	if raw, ok := s.snapshots.Get(caching.SlotOriginalContent); ok {
		if doc, err := content.Parse(raw); err == nil {
			return doc, SourceSnapshot
		}
		s.logger.Content().Warn("Cached content snapshot is not valid JSON, discarding")
		s.snapshots.Delete(caching.SlotOriginalContent)
	}

	if raw, err := os.ReadFile(config.LocalContentPath); err == nil {
		if doc, err := content.Parse(raw); err == nil {
			return doc, SourceLocal
		}
		s.logger.Content().Warn("Local content file is not valid JSON, falling back", "path", config.LocalContentPath)
	}

	return content.Default(), SourceDefault
}

func (s *ContentService) fetchRemote(ctx context.Context) ([]byte, bool) {
	if !s.storage.HasBaseURL() {
		return nil, false
	}
	raw, _, err := s.storage.DownloadPublic(ctx, config.ContentBucket, config.ContentObjectPath)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Content().Warn("Remote content fetch failed", "error", err.Error())
		}
		return nil, false
	}
	return raw, true
}

// RawDocument returns the serialized current document. Used by the
// public GET handler so readers and editors see identical bytes.
func (s *ContentService) RawDocument(ctx context.Context) ([]byte, string, error) {
	doc, source := s.Resolve(ctx)
	raw, err := doc.JSON()
	if err != nil {
		return nil, source, fmt.Errorf("serialize document: %w", err)
	}
	return raw, source, nil
}

// Publish validates raw as a JSON document, mirrors it into the
// snapshot slot, optionally writes the local file, pushes it to remote
// storage and notifies subscribers. Only invalid input is an error;
// storage failures are reported in the PublishReport.
func (s *ContentService) Publish(ctx context.Context, raw []byte) (PublishReport, error) {
	doc, err := content.Parse(raw)
	if err != nil {
		return PublishReport{}, fmt.Errorf("invalid content document: %w", err)
	}

	report := PublishReport{OK: true}

	s.snapshots.Set(caching.SlotOriginalContent, raw)

	if config.AllowLocalContentWrite {
		report.LocalWriteAttempted = true
		if err := os.WriteFile(config.LocalContentPath, raw, 0644); err != nil {
			s.logger.Content().Warn("Local content write failed", "path", config.LocalContentPath, "error", err.Error())
		} else {
			report.LocalWriteOk = true
		}
	}

	if s.storage.Configured() {
		err := s.storage.Upload(ctx, config.ContentBucket, config.ContentObjectPath, "application/json", raw)
		if err != nil {
			report.PushedMessage = fmt.Sprintf("storage push failed: %v", err)
			s.logger.Content().Warn("Content push to storage failed", "error", err.Error())
		} else {
			report.PushedToStorage = true
			report.PublicURL = s.storage.PublicURL(config.ContentBucket, config.ContentObjectPath)
		}
	} else {
		report.PushedMessage = "storage not configured"
	}

	s.mu.Lock()
	s.current = doc
	s.source = SourceSnapshot
	if report.PushedToStorage {
		s.source = SourceRemote
	}
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	s.notifier.NotifyContentUpdated(messaging.ContentEvent{
		Type:      messaging.EventContentUpdated,
		Revision:  time.Now().UTC(),
		PublicURL: report.PublicURL,
	})

	s.logger.Content().Info("Document published",
		"pushedToStorage", report.PushedToStorage,
		"localWriteOk", report.LocalWriteOk,
		"bytes", len(raw))
	return report, nil
}
