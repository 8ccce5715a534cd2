package services_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/services"
	"github.com/hamatunited-sudo/Hamatunited/internal/domain/content"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/caching"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

func newEditorFixture(t *testing.T) (*contentFixture, *services.EditorService) {
	t.Helper()
	fx := newContentFixture(t)
	editor := services.NewEditorService(fx.svc, fx.client, fx.snapshots, fx.bus, logging.NewTestLogger())
	return fx, editor
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestEditorLoadInitializesWorkingCopy(t *testing.T) {
	_, editor := newEditorFixture(t)

	state := editor.Load(context.Background())
	if len(state.Sections) == 0 {
		t.Fatal("working copy has no sections")
	}
	if state.HasChanges {
		t.Fatal("fresh working copy reports pending changes")
	}
	if state.SaveStatus != services.SaveStatusIdle {
		t.Fatalf("SaveStatus = %q, want idle", state.SaveStatus)
	}
}

func TestSetFieldMarksDirty(t *testing.T) {
	_, editor := newEditorFixture(t)
	editor.Load(context.Background())

	if err := editor.SetField("New Title", "hero", "en", "title"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	state := editor.State()
	if !state.HasChanges {
		t.Fatal("edit did not mark the working copy dirty")
	}
	if state.Document.Hero(content.LangEn).Title != "New Title" {
		t.Fatal("edit did not land in the working copy")
	}
}

func TestSaveRunsPipelineAndPublishes(t *testing.T) {
	fx, editor := newEditorFixture(t)
	editor.Load(context.Background())
	if err := editor.SetField("محفوظ", "hero", "ar", "title"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	result := editor.Save(context.Background())
	if result.Status != services.SaveStatusSaved {
		t.Fatalf("Status = %q, want saved", result.Status)
	}
	if result.Publish == nil || !result.Publish.PushedToStorage {
		t.Fatalf("Publish = %+v, want pushed", result.Publish)
	}

	raw, ok := fx.store.get(config.ContentBucket, config.ContentObjectPath)
	if !ok || !strings.Contains(string(raw), "محفوظ") {
		t.Fatal("published object does not carry the edit")
	}
	if editor.State().HasChanges {
		t.Fatal("save did not clear the dirty flag")
	}
}

func TestSaveIsBestEffortOnStorageFailure(t *testing.T) {
	fx, editor := newEditorFixture(t)
	editor.Load(context.Background())
	if err := editor.SetField("بدون دفع", "hero", "ar", "title"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	fx.store.failUploads = true

	result := editor.Save(context.Background())
	if result.Status != services.SaveStatusSaved {
		t.Fatalf("Status = %q, want saved even when the push fails", result.Status)
	}

	var publishStep *services.SaveStep
	for i := range result.Steps {
		if result.Steps[i].Name == "remote_publish" {
			publishStep = &result.Steps[i]
		}
	}
	if publishStep == nil || publishStep.OK {
		t.Fatalf("remote_publish step = %+v, want failed", publishStep)
	}

	raw, ok := fx.snapshots.Get(caching.SlotOriginalContent)
	if !ok || !strings.Contains(string(raw), "بدون دفع") {
		t.Fatal("snapshot slot does not hold the unsent revision")
	}
	if editor.State().HasChanges {
		t.Fatal("best-effort save did not clear the dirty flag")
	}
}

func TestSaveReportsSnapshotWriteFailure(t *testing.T) {
	fx, _ := newEditorFixture(t)

	// A regular file in place of the state directory makes every disk
	// write fail while the in-memory slots still update.
	blocked := filepath.Join(t.TempDir(), "state")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	snaps := caching.NewSnapshotStore(blocked, logging.NewTestLogger())
	editor := services.NewEditorService(fx.svc, fx.client, snaps, fx.bus, logging.NewTestLogger())
	editor.Load(context.Background())

	result := editor.Save(context.Background())
	if result.Status != services.SaveStatusSaved {
		t.Fatalf("Status = %q, want saved despite the disk failure", result.Status)
	}

	var snapshotStep, legacyStep *services.SaveStep
	for i := range result.Steps {
		switch result.Steps[i].Name {
		case "local_snapshot":
			snapshotStep = &result.Steps[i]
		case "legacy_sections":
			legacyStep = &result.Steps[i]
		}
	}
	if snapshotStep == nil || snapshotStep.OK || snapshotStep.Detail == "" {
		t.Fatalf("local_snapshot step = %+v, want failed with detail", snapshotStep)
	}
	if legacyStep == nil || legacyStep.OK {
		t.Fatalf("legacy_sections step = %+v, want failed", legacyStep)
	}
}

func TestSaveDerivesLegacyProjection(t *testing.T) {
	fx, editor := newEditorFixture(t)
	editor.Load(context.Background())
	editor.Save(context.Background())

	raw, ok := fx.snapshots.Get(caching.SlotLegacyContent)
	if !ok {
		t.Fatal("legacy slot not written")
	}
	if !strings.Contains(string(raw), `"fields"`) {
		t.Fatalf("legacy projection malformed: %s", raw)
	}
}

func TestInvalidRawJSONDoesNotClobberDocument(t *testing.T) {
	fx, editor := newEditorFixture(t)
	editor.Load(context.Background())
	before := editor.State().Document.Hero(content.LangAr).Title

	if editor.SetRawJSON(`{definitely broken`) {
		t.Fatal("SetRawJSON reported broken text as valid")
	}
	if editor.State().Document.Hero(content.LangAr).Title != before {
		t.Fatal("broken raw buffer replaced the structured document")
	}

	result := editor.Save(context.Background())
	if result.Status != services.SaveStatusSaved {
		t.Fatalf("Status = %q", result.Status)
	}
	for _, step := range result.Steps {
		if step.Name == "raw_editor" && step.OK {
			t.Fatal("raw_editor step should report the skipped buffer")
		}
	}

	raw, _ := fx.store.get(config.ContentBucket, config.ContentObjectPath)
	if strings.Contains(string(raw), "definitely broken") {
		t.Fatal("broken raw buffer reached storage")
	}
}

func TestValidRawJSONReplacesDocument(t *testing.T) {
	_, editor := newEditorFixture(t)
	editor.Load(context.Background())

	if !editor.SetRawJSON(`{"hero":{"ar":{"title":"من المحرر الخام"}}}`) {
		t.Fatal("SetRawJSON rejected valid JSON")
	}
	if editor.State().Document.Hero(content.LangAr).Title != "من المحرر الخام" {
		t.Fatal("valid raw buffer did not replace the document")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	_, editor := newEditorFixture(t)
	editor.Load(context.Background())
	if err := editor.SetField("مصدر", "hero", "ar", "title"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	exported, err := editor.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	_, other := newEditorFixture(t)
	if err := other.Import(exported); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	reExported, err := other.Export()
	if err != nil {
		t.Fatalf("second Export failed: %v", err)
	}
	if !bytes.Equal(exported, reExported) {
		t.Fatal("export/import round trip changed the document")
	}
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	_, editor := newEditorFixture(t)
	if err := editor.Import([]byte(`nope`)); err == nil {
		t.Fatal("Import accepted invalid JSON")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	_, editor := newEditorFixture(t)
	editor.Load(context.Background())
	if err := editor.SetField("مؤقت", "hero", "ar", "title"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	state := editor.Reset()
	want := content.Default().Hero(content.LangAr).Title
	if state.Document.Hero(content.LangAr).Title != want {
		t.Fatal("reset did not restore the bundled default")
	}
	if !state.HasChanges {
		t.Fatal("reset should leave the working copy pending until saved")
	}
}

func TestMoveFirstItemUpKeepsStateClean(t *testing.T) {
	_, editor := newEditorFixture(t)
	editor.Load(context.Background())

	if err := editor.MoveItem("faq", 0, true); err != nil {
		t.Fatalf("MoveItem failed: %v", err)
	}
	if editor.State().HasChanges {
		t.Fatal("boundary move marked the working copy dirty")
	}
}

func TestArrayOpRejectsUnpairedSection(t *testing.T) {
	_, editor := newEditorFixture(t)
	editor.Load(context.Background())

	if err := editor.RemoveItem("hero", 0); err == nil {
		t.Fatal("array op accepted a non-paired section")
	}
}

func TestUploadProfileImagePublishesCanonicalTarget(t *testing.T) {
	fx, editor := newEditorFixture(t)
	editor.Load(context.Background())

	result, err := editor.UploadProfileImage(context.Background(), "image/png", pngBytes(t))
	if err != nil {
		t.Fatalf("UploadProfileImage failed: %v", err)
	}
	if !result.Uploaded || result.Preview {
		t.Fatalf("result = %+v, want uploaded", result)
	}
	if !strings.Contains(result.PublicURL, "Profile_image.png") {
		t.Fatalf("PublicURL = %q, want the canonical object", result.PublicURL)
	}

	if _, ok := fx.store.get(config.ImagesBucket, "Profile_image.png"); !ok {
		t.Fatal("canonical object missing from storage")
	}

	state := editor.State()
	if state.Document.About(content.LangAr).Image != result.PublicURL {
		t.Fatal("ar image field not pointed at the public URL")
	}
	if state.Document.About(content.LangEn).Image != result.PublicURL {
		t.Fatal("en image field not pointed at the public URL")
	}
	if state.HasChanges {
		t.Fatal("auto-publish should leave no pending changes")
	}

	// The publish ran, so readers see the new URL immediately.
	raw, _ := fx.store.get(config.ContentBucket, config.ContentObjectPath)
	if !strings.Contains(string(raw), "Profile_image.png") {
		t.Fatal("published document does not carry the image URL")
	}
}

func TestUploadProfileImageFailureKeepsPreview(t *testing.T) {
	fx, editor := newEditorFixture(t)
	editor.Load(context.Background())
	fx.store.failUploads = true

	result, err := editor.UploadProfileImage(context.Background(), "image/png", pngBytes(t))
	if err != nil {
		t.Fatalf("UploadProfileImage failed: %v", err)
	}
	if result.Uploaded || !result.Preview {
		t.Fatalf("result = %+v, want preview fallback", result)
	}

	state := editor.State()
	if !strings.HasPrefix(state.Document.About(content.LangAr).Image, "data:image/png;base64,") {
		t.Fatal("preview data URL not applied")
	}
	if !state.HasChanges {
		t.Fatal("preview fallback should stay pending")
	}
}

func TestUploadProfileImageRejectsUnsupportedType(t *testing.T) {
	_, editor := newEditorFixture(t)
	editor.Load(context.Background())

	if _, err := editor.UploadProfileImage(context.Background(), "text/plain", []byte("not an image")); err == nil {
		t.Fatal("unsupported type accepted")
	}
}
