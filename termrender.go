// Package termrender converts raster images into textual approximations for
// display in a terminal. Characters are chosen by measured glyph brightness:
// the printable character set of a TrueType font is rasterized, each glyph's
// pixel coverage is reduced to a normalized brightness value, and the
// resulting brightness-ordered palette is matched against the mean luminance
// of rectangular image regions. Brightness profiles are cached on disk keyed
// by font identity so repeat runs skip rasterization entirely.
package termrender

import "errors"

var (
	// ErrImageDecode indicates the source image was unreadable or
	// malformed. Fatal; no output is produced.
	ErrImageDecode = errors.New("image decode failed")

	// ErrFontLoad indicates the font resource was missing or unparseable.
	// Fatal.
	ErrFontLoad = errors.New("font load failed")

	// ErrGlyphMissing indicates a single character has no glyph in the
	// font. Recovered locally: the character is assigned minimum
	// brightness and profiling continues.
	ErrGlyphMissing = errors.New("glyph missing from font")

	// ErrProfilingFailed indicates the entire character set failed to
	// rasterize, leaving no usable palette. Fatal.
	ErrProfilingFailed = errors.New("brightness profiling failed")
)
