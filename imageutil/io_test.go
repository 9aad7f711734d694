package imageutil

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadImagePNG tests decoding a freshly written PNG.
func TestLoadImagePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.png")

	src := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			src.Pix[(y*6+x)*4+0] = uint8(40 * x)
			src.Pix[(y*6+x)*4+3] = 255
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	f.Close()

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if img.Width() != 6 || img.Height() != 4 {
		t.Errorf("decoded image is %dx%d, want 6x4", img.Width(), img.Height())
	}
	if got := img.GetRGB(2, 0); got != (RGB{R: 80}) {
		t.Errorf("pixel (2,0) = %+v, want R:80", got)
	}
}

// TestLoadImageMalformed tests that undecodable data surfaces an error.
func TestLoadImageMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadImage(path); err == nil {
		t.Error("LoadImage accepted malformed data")
	}
}

// TestLoadImageMissing tests that a nonexistent path surfaces an error.
func TestLoadImageMissing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("LoadImage accepted a missing file")
	}
}
