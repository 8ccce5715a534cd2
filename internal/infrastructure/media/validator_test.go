package media_test

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/media"
)

func TestCheckUpload(t *testing.T) {
	if err := media.CheckUpload("image/png", 100, 1000); err != nil {
		t.Fatalf("valid upload rejected: %v", err)
	}
	if err := media.CheckUpload("application/pdf", 100, 1000); !errors.Is(err, media.ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
	if err := media.CheckUpload("image/png", 2000, 1000); !errors.Is(err, media.ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"logo.png":         "logo.png",
		"my logo (1).png":  "my_logo__1_.png",
		"../../../etc/pwd": ".._.._.._etc_pwd",
		"شعار.svg":         "____.svg",
		"":                 "upload",
		"  ":               "upload",
	}
	for in, want := range cases {
		if got := media.SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniqueNameAvoidsCollisions(t *testing.T) {
	a := media.UniqueName("logo.png")
	b := media.UniqueName("logo.png")
	if a == b {
		t.Fatal("two unique names collided")
	}
	if !strings.HasSuffix(a, "_logo.png") {
		t.Fatalf("UniqueName = %q, want original name as suffix", a)
	}
}

func TestProbeImageMatchesPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	probe, err := media.ProbeImage("image/png", buf.Bytes())
	if err != nil {
		t.Fatalf("ProbeImage failed: %v", err)
	}
	if probe.Width != 3 || probe.Height != 2 {
		t.Fatalf("probe = %+v", probe)
	}

	if _, err := media.ProbeImage("image/png", []byte("not a png")); err == nil {
		t.Fatal("garbage payload accepted as png")
	}
}

func TestProbeImageAcceptsSVGHead(t *testing.T) {
	if _, err := media.ProbeImage("image/svg+xml", []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)); err != nil {
		t.Fatalf("svg rejected: %v", err)
	}
	if _, err := media.ProbeImage("image/svg+xml", []byte("just text")); err == nil {
		t.Fatal("non-svg accepted")
	}
}
