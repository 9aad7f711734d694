package termrender

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	// DefaultGlyphWidth and DefaultGlyphHeight define the glyph box a
	// character is rasterized into. The 1:2 ratio matches the cell shape
	// of a typical terminal font.
	DefaultGlyphWidth  = 8
	DefaultGlyphHeight = 16
)

// LoadFont reads and parses a TrueType font from the given path.
func LoadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}

	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}

	return ttf, nil
}

// GlyphSource produces fixed-size grayscale bitmaps for single characters.
// The Profiler depends on this interface rather than on a concrete font so
// synthetic glyph sets can stand in during tests.
type GlyphSource interface {
	// Rasterize renders one character into an alpha bitmap of the size
	// reported by Bounds. It returns ErrGlyphMissing when the character
	// has no glyph.
	Rasterize(r rune) (*image.Alpha, error)

	// Bounds reports the glyph box dimensions in pixels.
	Bounds() (width, height int)
}

// FontRasterizer renders glyphs of a parsed TrueType font into a fixed glyph
// box. Each Rasterize call builds its own freetype context, so a single
// FontRasterizer may be shared across goroutines.
type FontRasterizer struct {
	font   *truetype.Font
	width  int
	height int
}

// NewFontRasterizer returns a rasterizer for the given font and glyph box.
// Non-positive dimensions fall back to the defaults.
func NewFontRasterizer(ttf *truetype.Font, width, height int) *FontRasterizer {
	if width <= 0 {
		width = DefaultGlyphWidth
	}
	if height <= 0 {
		height = DefaultGlyphHeight
	}
	return &FontRasterizer{font: ttf, width: width, height: height}
}

// Bounds reports the glyph box dimensions in pixels.
func (fr *FontRasterizer) Bounds() (int, int) {
	return fr.width, fr.height
}

// Rasterize renders a single character at full coverage into an alpha image.
// The alpha channel is used rather than a gray image because TrueType
// rendering is anti-aliased and alpha directly represents pixel coverage.
func (fr *FontRasterizer) Rasterize(r rune) (*image.Alpha, error) {
	if fr.font.Index(r) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrGlyphMissing, r)
	}

	face := truetype.NewFace(fr.font, &truetype.Options{
		Size:    float64(fr.height),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, fr.width, fr.height))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fr.font)
	ctx.SetFontSize(float64(fr.height))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	// Position the baseline from the face metrics so descenders stay
	// inside the glyph box. Metrics are 26.6 fixed point.
	metrics := face.Metrics()
	ascent := int(metrics.Ascent >> 6)
	descent := int(metrics.Descent >> 6)
	baselineY := (fr.height + ascent - descent) / 2

	if _, err := ctx.DrawString(string(r), freetype.Pt(0, baselineY)); err != nil {
		return nil, fmt.Errorf("%w: drawing %q: %v", ErrGlyphMissing, r, err)
	}

	return img, nil
}
