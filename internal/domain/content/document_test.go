package content_test

import (
	"testing"

	"github.com/hamatunited-sudo/Hamatunited/internal/domain/content"
)

func mustParse(t *testing.T, raw string) content.Document {
	t.Helper()
	doc, err := content.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseRejectsNonObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, `42`, `null`, `{invalid`} {
		if _, err := content.Parse([]byte(raw)); err == nil {
			t.Fatalf("Parse accepted %q, want error", raw)
		}
	}
}

func TestLocalizedFallsBackToArabic(t *testing.T) {
	doc := mustParse(t, `{"hero":{"ar":{"title":"عنوان","subtitle":"وصف"}}}`)

	hero := doc.Hero(content.LangEn)
	if hero.Title != "عنوان" {
		t.Fatalf("Hero(en).Title = %q, want Arabic fallback", hero.Title)
	}

	hero = doc.Hero(content.LangAr)
	if hero.Subtitle != "وصف" {
		t.Fatalf("Hero(ar).Subtitle = %q", hero.Subtitle)
	}
}

func TestAboutPerFieldFallback(t *testing.T) {
	doc := mustParse(t, `{"about":{
		"ar":{"heading":"من نحن","image":"/img.png"},
		"en":{"description":"English only"}
	}}`)

	about := doc.About(content.LangEn)
	if about.Description != "English only" {
		t.Fatalf("About(en).Description = %q", about.Description)
	}
	if about.Heading != "من نحن" {
		t.Fatalf("About(en).Heading = %q, want Arabic fallback", about.Heading)
	}
	if about.Image != "/img.png" {
		t.Fatalf("About(en).Image = %q, want Arabic fallback", about.Image)
	}
}

func TestSetFieldCreatesIntermediateMaps(t *testing.T) {
	doc := content.Document{}
	if err := doc.SetField("https://cdn/img.png", "about", "en", "image"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if got := doc.Field("about", "en", "image"); got != "https://cdn/img.png" {
		t.Fatalf("Field = %v", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := mustParse(t, `{"hero":{"ar":{"title":"أصل"}}}`)
	clone := doc.Clone()
	if err := clone.SetField("معدل", "hero", "ar", "title"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if doc.Hero(content.LangAr).Title != "أصل" {
		t.Fatal("mutating the clone changed the original")
	}
}

func TestLegacySectionsProjection(t *testing.T) {
	doc := mustParse(t, `{
		"zeta":{"ar":{"b":"ب","a":"سطر\nثاني","n":5},"en":{"b":"B","a":"line\ntwo","n":6}},
		"alpha":{"ar":{"x":"س"},"en":{"x":"X"}},
		"services":{"ar":[],"en":[]},
		"empty":{"ar":{"only":7},"en":{"only":8}}
	}`)

	sections := doc.LegacySections()
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].ID != "alpha" || sections[1].ID != "zeta" {
		t.Fatalf("sections not sorted by id: %q, %q", sections[0].ID, sections[1].ID)
	}

	zeta := sections[1]
	if len(zeta.Fields) != 2 {
		t.Fatalf("zeta has %d fields, want 2 (non-string pair dropped)", len(zeta.Fields))
	}
	if zeta.Fields[0].Key != "a" || zeta.Fields[1].Key != "b" {
		t.Fatalf("fields not sorted by key: %q, %q", zeta.Fields[0].Key, zeta.Fields[1].Key)
	}
	if zeta.Fields[0].Type != "textarea" {
		t.Fatalf("multiline field type = %q, want textarea", zeta.Fields[0].Type)
	}
	if zeta.Fields[1].Type != "text" {
		t.Fatalf("plain field type = %q, want text", zeta.Fields[1].Type)
	}
}

func TestInsertItemPadsBothLanguages(t *testing.T) {
	doc := mustParse(t, `{"faq":{
		"ar":[{"question":"س1"},{"question":"س2"}],
		"en":[{"question":"Q1"}]
	}}`)

	if !doc.InsertItem("faq", map[string]any{"question": "س3"}, map[string]any{"question": "Q3"}) {
		t.Fatal("InsertItem reported no change")
	}

	ar := doc.LocalizedItems("faq", content.LangAr)
	en := doc.LocalizedItems("faq", content.LangEn)
	if len(ar) != 3 || len(en) != 3 {
		t.Fatalf("lengths ar=%d en=%d, want both 3", len(ar), len(en))
	}
	// The shorter side was padded with an empty object before the append.
	if pad, ok := en[1].(map[string]any); !ok || len(pad) != 0 {
		t.Fatalf("en[1] = %v, want empty padding object", en[1])
	}
}

func TestMoveItemBoundaryNoOps(t *testing.T) {
	raw := `{"testimonials":{
		"ar":[{"name":"أ"},{"name":"ب"}],
		"en":[{"name":"A"},{"name":"B"}]
	}}`

	doc := mustParse(t, raw)
	if doc.MoveItemUp("testimonials", 0) {
		t.Fatal("moving first item up should be a no-op")
	}
	if doc.MoveItemDown("testimonials", 1) {
		t.Fatal("moving last item down should be a no-op")
	}

	if !doc.MoveItemUp("testimonials", 1) {
		t.Fatal("MoveItemUp(1) reported no change")
	}
	ar := doc.LocalizedItems("testimonials", content.LangAr)
	en := doc.LocalizedItems("testimonials", content.LangEn)
	if ar[0].(map[string]any)["name"] != "ب" || en[0].(map[string]any)["name"] != "B" {
		t.Fatal("move did not swap both language arrays")
	}
}

func TestRemoveItemDropsFromBothLanguages(t *testing.T) {
	doc := mustParse(t, `{"whyChoose":{
		"ar":[{"text":"أول"},{"text":"ثاني"}],
		"en":[{"text":"first"},{"text":"second"}]
	}}`)

	if !doc.RemoveItem("whyChoose", 0) {
		t.Fatal("RemoveItem reported no change")
	}
	ar := doc.LocalizedItems("whyChoose", content.LangAr)
	en := doc.LocalizedItems("whyChoose", content.LangEn)
	if len(ar) != 1 || len(en) != 1 {
		t.Fatalf("lengths ar=%d en=%d, want both 1", len(ar), len(en))
	}
	if ar[0].(map[string]any)["text"] != "ثاني" {
		t.Fatal("wrong item removed")
	}

	if doc.RemoveItem("whyChoose", 5) {
		t.Fatal("out-of-range remove should be a no-op")
	}
}

func TestDefaultDocumentIsComplete(t *testing.T) {
	doc := content.Default()

	for _, lang := range []content.Lang{content.LangAr, content.LangEn} {
		if doc.Hero(lang).Title == "" {
			t.Fatalf("default hero title empty for %s", lang)
		}
		if doc.About(lang).Description == "" {
			t.Fatalf("default about description empty for %s", lang)
		}
		if len(doc.Services(lang)) == 0 {
			t.Fatalf("default services empty for %s", lang)
		}
		if len(doc.FAQ(lang)) == 0 {
			t.Fatalf("default faq empty for %s", lang)
		}
	}

	if len(doc.NavItems()) == 0 {
		t.Fatal("default nav items empty")
	}
	if doc.WhatsApp(content.LangEn).Message == "" {
		t.Fatal("default whatsapp message empty")
	}
}
