package termrender

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadFontMissing tests that a nonexistent font path fails with
// ErrFontLoad.
func TestLoadFontMissing(t *testing.T) {
	_, err := LoadFont(filepath.Join(t.TempDir(), "no-such-font.ttf"))
	if !errors.Is(err, ErrFontLoad) {
		t.Errorf("LoadFont error = %v, want ErrFontLoad", err)
	}
}

// TestLoadFontUnparseable tests that a file that is not a TrueType font
// fails with ErrFontLoad.
func TestLoadFontUnparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.ttf")
	if err := os.WriteFile(path, []byte("definitely not a font"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, err := LoadFont(path)
	if !errors.Is(err, ErrFontLoad) {
		t.Errorf("LoadFont error = %v, want ErrFontLoad", err)
	}
}

// TestFontRasterizerDefaults tests the glyph box fallback dimensions.
func TestFontRasterizerDefaults(t *testing.T) {
	fr := NewFontRasterizer(nil, 0, 0)
	w, h := fr.Bounds()
	if w != DefaultGlyphWidth || h != DefaultGlyphHeight {
		t.Errorf("Bounds = %dx%d, want %dx%d",
			w, h, DefaultGlyphWidth, DefaultGlyphHeight)
	}

	fr = NewFontRasterizer(nil, 10, 20)
	w, h = fr.Bounds()
	if w != 10 || h != 20 {
		t.Errorf("Bounds = %dx%d, want 10x20", w, h)
	}
}
