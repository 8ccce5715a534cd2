package content

// Paired-language array operations. Sections like services, faq,
// testimonials and whyChoose hold parallel ar/en arrays that the editor
// mutates in lockstep by index. The two arrays can drift out of sync (bad
// imports, hand edits), so every operation pads both to equal length with
// empty objects before touching indices.

// PairedSections lists the sections whose ar/en children are parallel arrays.
var PairedSections = []string{"services", "faq", "testimonials", "whyChoose"}

// IsPairedSection reports whether a section name carries paired arrays.
func IsPairedSection(name string) bool {
	for _, s := range PairedSections {
		if s == name {
			return true
		}
	}
	return false
}

// pairedArrays fetches both language arrays of a section, padded to equal
// length. Missing branches become empty arrays.
func (d Document) pairedArrays(section string) (ar, en []any, ok bool) {
	sec := d.Section(section)
	if sec == nil {
		return nil, nil, false
	}
	ar, _ = sec[string(LangAr)].([]any)
	en, _ = sec[string(LangEn)].([]any)
	for len(ar) < len(en) {
		ar = append(ar, map[string]any{})
	}
	for len(en) < len(ar) {
		en = append(en, map[string]any{})
	}
	return ar, en, true
}

func (d Document) storePaired(section string, ar, en []any) {
	sec := d.Section(section)
	if sec == nil {
		sec = make(map[string]any)
		d[section] = sec
	}
	sec[string(LangAr)] = ar
	sec[string(LangEn)] = en
}

// InsertItem appends one item to both language arrays of a section.
func (d Document) InsertItem(section string, arItem, enItem map[string]any) bool {
	if !IsPairedSection(section) {
		return false
	}
	ar, en, ok := d.pairedArrays(section)
	if !ok {
		d[section] = map[string]any{}
		ar, en = []any{}, []any{}
	}
	if arItem == nil {
		arItem = map[string]any{}
	}
	if enItem == nil {
		enItem = map[string]any{}
	}
	d.storePaired(section, append(ar, arItem), append(en, enItem))
	return true
}

// RemoveItem deletes the item at index from both language arrays.
// Out-of-range indices are a no-op.
func (d Document) RemoveItem(section string, index int) bool {
	ar, en, ok := d.pairedArrays(section)
	if !ok || index < 0 || index >= len(ar) {
		return false
	}
	ar = append(ar[:index], ar[index+1:]...)
	en = append(en[:index], en[index+1:]...)
	d.storePaired(section, ar, en)
	return true
}

// MoveItemUp swaps the item at index with its predecessor in both language
// arrays. Moving the first item up is a no-op.
func (d Document) MoveItemUp(section string, index int) bool {
	ar, en, ok := d.pairedArrays(section)
	if !ok || index <= 0 || index >= len(ar) {
		return false
	}
	ar[index-1], ar[index] = ar[index], ar[index-1]
	en[index-1], en[index] = en[index], en[index-1]
	d.storePaired(section, ar, en)
	return true
}

// MoveItemDown swaps the item at index with its successor in both language
// arrays. Moving the last item down is a no-op.
func (d Document) MoveItemDown(section string, index int) bool {
	ar, en, ok := d.pairedArrays(section)
	if !ok || index < 0 || index >= len(ar)-1 {
		return false
	}
	ar[index+1], ar[index] = ar[index], ar[index+1]
	en[index+1], en[index] = en[index], en[index+1]
	d.storePaired(section, ar, en)
	return true
}
