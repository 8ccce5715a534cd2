package content

import (
	"sort"
	"strings"
)

// Legacy flattened projection. Older consumers read the document as a list
// of {id, fields:[{key, ar, en}]} sections. The projection is derived on
// every save from sections whose ar and en children are both plain objects,
// keeping only string-string field pairs.

// LegacyField is one flattened field pair.
type LegacyField struct {
	Key     string `json:"key"`
	LabelAr string `json:"labelAr"`
	LabelEn string `json:"labelEn"`
	Type    string `json:"type"` // "text" or "textarea"
	Ar      string `json:"ar"`
	En      string `json:"en"`
}

// LegacySection is one flattened section.
type LegacySection struct {
	ID     string        `json:"id"`
	NameAr string        `json:"nameAr"`
	NameEn string        `json:"nameEn"`
	Fields []LegacyField `json:"fields"`
}

// LegacySections derives the backward-compatible section list. Sections with
// no string-string field pairs are skipped. Output is sorted by section id
// for determinism; field order follows sorted keys for the same reason.
func (d Document) LegacySections() []LegacySection {
	if d == nil {
		return nil
	}

	sections := make([]LegacySection, 0)
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		sec, ok := d[id].(map[string]any)
		if !ok {
			continue
		}
		arBranch, arOK := sec[string(LangAr)].(map[string]any)
		enBranch, enOK := sec[string(LangEn)].(map[string]any)
		if !arOK || !enOK {
			continue
		}

		keys := make([]string, 0, len(arBranch))
		for key := range arBranch {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fields := make([]LegacyField, 0, len(keys))
		for _, key := range keys {
			arVal, arIsStr := arBranch[key].(string)
			enVal, enIsStr := enBranch[key].(string)
			if !arIsStr || !enIsStr {
				continue
			}
			fieldType := "text"
			if strings.Contains(arVal, "\n") || strings.Contains(enVal, "\n") {
				fieldType = "textarea"
			}
			fields = append(fields, LegacyField{
				Key:     key,
				LabelAr: key,
				LabelEn: key,
				Type:    fieldType,
				Ar:      arVal,
				En:      enVal,
			})
		}

		if len(fields) > 0 {
			sections = append(sections, LegacySection{
				ID:     id,
				NameAr: id,
				NameEn: id,
				Fields: fields,
			})
		}
	}

	return sections
}
