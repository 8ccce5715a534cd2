// Package caching provides the local snapshot store: named slots mirroring
// the browser-side cache the original site kept in localStorage. Slots live
// in memory behind a RWMutex and are persisted best-effort under a state
// directory so they survive restarts.
package caching

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
)

// Well-known slot names. The hamat_* names match the keys the site's
// browser clients use, so exported state stays interchangeable.
const (
	SlotOriginalContent = "hamat_original_content"
	SlotLegacyContent   = "hamat_content"
	SlotProfileImage    = "hamat_profile_image"
	SlotLanguage        = "hamat_language"
)

// SnapshotStore holds named byte slots with disk persistence.
type SnapshotStore struct {
	dir    string
	slots  map[string][]byte
	mu     sync.RWMutex
	logger *logging.ChanneledLogger
}

// NewSnapshotStore creates a snapshot store rooted at dir. The directory is
// created lazily on first write.
func NewSnapshotStore(dir string, logger *logging.ChanneledLogger) *SnapshotStore {
	return &SnapshotStore{
		dir:    dir,
		slots:  make(map[string][]byte),
		logger: logger,
	}
}

func (s *SnapshotStore) slotPath(slot string) string {
	return filepath.Join(s.dir, slot)
}

// Get reads a slot, trying memory first and the state directory second.
// A disk hit is cached back into memory.
func (s *SnapshotStore) Get(slot string) ([]byte, bool) {
	s.mu.RLock()
	data, ok := s.slots[slot]
	s.mu.RUnlock()
	if ok {
		return data, true
	}

	data, err := os.ReadFile(s.slotPath(slot))
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	s.slots[slot] = data
	s.mu.Unlock()
	return data, true
}

// Set writes a slot. The in-memory copy always succeeds; the disk write is
// best-effort and its failure is reported but does not undo the update.
func (s *SnapshotStore) Set(slot string, data []byte) error {
	s.mu.Lock()
	s.slots[slot] = data
	s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	if err := os.WriteFile(s.slotPath(slot), data, 0644); err != nil {
		s.logger.Cache().Warn("Snapshot disk write failed", "slot", slot, "error", err.Error())
		return fmt.Errorf("snapshot write: %w", err)
	}

	s.logger.Cache().Debug("Snapshot slot updated", "slot", slot, "bytes", len(data))
	return nil
}

// Delete removes a slot from memory and disk.
func (s *SnapshotStore) Delete(slot string) {
	s.mu.Lock()
	delete(s.slots, slot)
	s.mu.Unlock()
	os.Remove(s.slotPath(slot))
}
