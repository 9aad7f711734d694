package termrender

import (
	"fmt"
	"sort"
)

// CharBrightness pairs a character with its normalized brightness in
// [0.0, 1.0].
type CharBrightness struct {
	Char       rune
	Brightness float64
}

// Palette is a sequence of distinct characters ordered by ascending
// brightness. The darkest character sits at index 0 with brightness 0.0 and
// the brightest at the end with brightness 1.0.
type Palette []CharBrightness

// Validate checks the palette invariants: non-empty, no duplicate
// characters, and monotonically non-decreasing brightness.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("palette is empty")
	}
	seen := make(map[rune]bool, len(p))
	for i, cb := range p {
		if seen[cb.Char] {
			return fmt.Errorf("duplicate character %q in palette", cb.Char)
		}
		seen[cb.Char] = true
		if cb.Brightness < 0 || cb.Brightness > 1 {
			return fmt.Errorf("character %q brightness %f out of range",
				cb.Char, cb.Brightness)
		}
		if i > 0 && cb.Brightness < p[i-1].Brightness {
			return fmt.Errorf("palette brightness decreases at index %d", i)
		}
	}
	return nil
}

// Closest returns the character whose brightness is nearest to the given
// luminance. On an exact tie the character earlier in palette order wins.
// The luminance is clamped to [0, 1] before matching.
func (p Palette) Closest(luma float64) rune {
	if luma < 0 {
		luma = 0
	} else if luma > 1 {
		luma = 1
	}

	// First entry with brightness >= luma. Among equal brightness values
	// sort.Search lands on the earliest one, which settles ties in favor
	// of the earlier palette entry.
	i := sort.Search(len(p), func(i int) bool {
		return p[i].Brightness >= luma
	})

	if i == len(p) {
		return p[len(p)-1].Char
	}
	if i == 0 {
		return p[0].Char
	}

	below := luma - p[i-1].Brightness
	above := p[i].Brightness - luma
	if below <= above {
		return p[i-1].Char
	}
	return p[i].Char
}

// Equal reports whether two palettes contain the same characters with the
// same brightness values in the same order.
func (p Palette) Equal(other Palette) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// builtinRamp is the classic brightness-ordered character ramp used when no
// font is available for profiling.
const builtinRamp = " .,:;i1tfLCG08@"

// BuiltinPalette returns a fixed palette built from a classic ASCII ramp
// with evenly spaced brightness values. It is used when no font is supplied
// and is never cached.
func BuiltinPalette() Palette {
	runes := []rune(builtinRamp)
	p := make(Palette, len(runes))
	for i, r := range runes {
		p[i] = CharBrightness{
			Char:       r,
			Brightness: float64(i) / float64(len(runes)-1),
		}
	}
	return p
}
