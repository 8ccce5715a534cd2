package caching_test

import (
	"bytes"
	"testing"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/caching"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store := caching.NewSnapshotStore(t.TempDir(), logging.NewTestLogger())

	if _, ok := store.Get(caching.SlotOriginalContent); ok {
		t.Fatal("empty store returned a snapshot")
	}

	payload := []byte(`{"hero":{}}`)
	if err := store.Set(caching.SlotOriginalContent, payload); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := store.Get(caching.SlotOriginalContent)
	if !ok || !bytes.Equal(got, payload) {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	store.Delete(caching.SlotOriginalContent)
	if _, ok := store.Get(caching.SlotOriginalContent); ok {
		t.Fatal("snapshot survived delete")
	}
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	logger := logging.NewTestLogger()

	first := caching.NewSnapshotStore(dir, logger)
	if err := first.Set(caching.SlotLanguage, []byte("ar")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh store over the same directory reads the persisted copy.
	second := caching.NewSnapshotStore(dir, logger)
	got, ok := second.Get(caching.SlotLanguage)
	if !ok || string(got) != "ar" {
		t.Fatalf("Get = %q, %v", got, ok)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	store := caching.NewSnapshotStore(t.TempDir(), logging.NewTestLogger())

	store.Set(caching.SlotOriginalContent, []byte("doc"))
	store.Set(caching.SlotProfileImage, []byte("url"))

	store.Delete(caching.SlotOriginalContent)
	if got, ok := store.Get(caching.SlotProfileImage); !ok || string(got) != "url" {
		t.Fatal("deleting one slot touched another")
	}
}
