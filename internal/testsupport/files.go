package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes contents at path, creating parent directories.
func WriteFile(t testing.TB, path string, contents []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// PNG returns a tiny encoded PNG whose bytes vary with seed, so two seeds
// produce two distinct content hashes.
func PNG(t testing.TB, seed uint8) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: seed, G: 0x20, B: 0x40, A: 0xff})
	img.Set(1, 1, color.NRGBA{R: 0x10, G: seed, B: 0x80, A: 0xff})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// WritePNG writes a tiny seed-varied PNG at path.
func WritePNG(t testing.TB, path string, seed uint8) {
	t.Helper()
	WriteFile(t, path, PNG(t, seed))
}
