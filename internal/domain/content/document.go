// Package content defines the site content document and the operations the
// admin editor performs on it. The document is a deeply nested, duck-typed
// JSON value keyed by section name; sections carrying user-facing copy are
// keyed by language code underneath. Nothing here validates a schema: callers
// get zero values and fallbacks instead of errors when a branch is missing or
// mis-shaped.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Lang is a site language code.
type Lang string

const (
	LangAr Lang = "ar"
	LangEn Lang = "en"
)

// FallbackLang is the canonical language used when the requested language or
// a specific field is absent.
const FallbackLang = LangAr

// Document is the full site content document.
type Document map[string]any

// Parse decodes a JSON document, rejecting anything that is not a JSON object.
func Parse(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid content document: %w", err)
	}
	return doc, nil
}

// JSON serializes the document as pretty-printed JSON, the same shape the
// export/download flow produces.
func (d Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Clone returns a deep copy of the document via a JSON round-trip.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return Document{}
	}
	copy, err := Parse(raw)
	if err != nil {
		return Document{}
	}
	return copy
}

// Section returns a section as an object, or nil when absent or not an object.
func (d Document) Section(name string) map[string]any {
	if d == nil {
		return nil
	}
	if sec, ok := d[name].(map[string]any); ok {
		return sec
	}
	return nil
}

// Localized resolves the language branch of a section, falling back to the
// canonical language when the requested one is missing.
func (d Document) Localized(section string, lang Lang) map[string]any {
	sec := d.Section(section)
	if sec == nil {
		return nil
	}
	if branch, ok := sec[string(lang)].(map[string]any); ok {
		return branch
	}
	if branch, ok := sec[string(FallbackLang)].(map[string]any); ok {
		return branch
	}
	return nil
}

// LocalizedItems resolves the language branch of an array-shaped section.
func (d Document) LocalizedItems(section string, lang Lang) []any {
	sec := d.Section(section)
	if sec == nil {
		return nil
	}
	if items, ok := sec[string(lang)].([]any); ok {
		return items
	}
	if items, ok := sec[string(FallbackLang)].([]any); ok {
		return items
	}
	return nil
}

// SetField replaces a single leaf at the given path, creating intermediate
// objects as needed. The document is mutated in place; callers that need
// immutable updates clone first.
func (d Document) SetField(value any, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("empty field path")
	}
	node := map[string]any(d)
	for _, key := range path[:len(path)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[key] = child
		}
		node = child
	}
	node[path[len(path)-1]] = value
	return nil
}

// Field reads a leaf at the given path, returning nil when any segment is
// missing or not an object.
func (d Document) Field(path ...string) any {
	var node any = map[string]any(d)
	for _, key := range path {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = obj[key]
	}
	return node
}

// stringAt reads a string leaf with per-field language fallback: requested
// language first, then the canonical language, then empty.
func (d Document) stringAt(section string, lang Lang, field string) string {
	if branch, ok := d.Section(section)[string(lang)].(map[string]any); ok {
		if s, ok := branch[field].(string); ok && s != "" {
			return s
		}
	}
	if branch, ok := d.Section(section)[string(FallbackLang)].(map[string]any); ok {
		if s, ok := branch[field].(string); ok {
			return s
		}
	}
	return ""
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func strSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func num(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case json.Number:
		f, _ := v.Float64()
		return f
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func obj(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}
