// Package media provides upload validation for image assets: MIME
// allow-listing, size limits, filename sanitization and a decode probe that
// confirms the bytes really are the image they claim to be.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"
)

var (
	// ErrUnsupportedType is returned for MIME types outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrTooLarge is returned when an upload exceeds the configured limit.
	ErrTooLarge = errors.New("file too large")
)

// allowedMIMEs maps accepted upload types to canonical extensions.
var allowedMIMEs = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// AllowedMIME reports whether a MIME type is accepted for upload.
func AllowedMIME(mime string) bool {
	_, ok := allowedMIMEs[mime]
	return ok
}

// CheckSize validates size alone, for endpoints that accept any type.
func CheckSize(size, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return ErrTooLarge
	}
	return nil
}

// CheckUpload validates type and size together.
func CheckUpload(mime string, size, maxBytes int64) error {
	if !AllowedMIME(mime) {
		return ErrUnsupportedType
	}
	return CheckSize(size, maxBytes)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// SanitizeFilename reduces a filename to a safe character set. Empty input
// becomes "upload".
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// UniqueName prefixes a sanitized filename with a ULID so repeated uploads
// of the same file never collide. Canonical targets skip this and overwrite
// on purpose.
func UniqueName(sanitized string) string {
	return fmt.Sprintf("%s_%s", ulid.Make().String(), sanitized)
}

// Probe describes a decoded image.
type Probe struct {
	Width  int
	Height int
	Format string
}

// ProbeImage decodes the upload to confirm the payload matches its declared
// type. SVG is text and only gets a cheap structural check.
func ProbeImage(mime string, data []byte) (*Probe, error) {
	switch mime {
	case "image/svg+xml":
		head := strings.ToLower(string(data[:min(len(data), 512)]))
		if !strings.Contains(head, "<svg") && !strings.Contains(head, "<?xml") {
			return nil, fmt.Errorf("invalid svg payload")
		}
		return &Probe{Format: "svg"}, nil
	case "image/webp":
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid webp payload: %w", err)
		}
		bounds := img.Bounds()
		return &Probe{Width: bounds.Dx(), Height: bounds.Dy(), Format: "webp"}, nil
	default:
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid image payload: %w", err)
		}
		bounds := img.Bounds()
		return &Probe{Width: bounds.Dx(), Height: bounds.Dy(), Format: strings.TrimPrefix(mime, "image/")}, nil
	}
}
