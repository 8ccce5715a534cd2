package content

import (
	_ "embed"
)

//go:embed default_content.json
var defaultContentJSON []byte

// Default returns a fresh copy of the bundled document. It is the last
// resort of the resolution chain and is always valid.
func Default() Document {
	doc, err := Parse(defaultContentJSON)
	if err != nil {
		// The bundled document is part of the build; a parse failure
		// here means the binary itself is broken.
		panic("content: bundled default document is invalid: " + err.Error())
	}
	return doc
}

// DefaultJSON returns the raw bytes of the bundled document.
func DefaultJSON() []byte {
	out := make([]byte, len(defaultContentJSON))
	copy(out, defaultContentJSON)
	return out
}
