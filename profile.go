package termrender

import (
	"fmt"
	"image"
	"log"
	"runtime"
	"sort"
	"sync"
)

const (
	charsetFirst = 0x20 // space
	charsetLast  = 0x7E // tilde
)

// Charset returns the fixed supported character set: the printable ASCII
// range, ordered by codepoint. The set is enumerated explicitly so palettes
// are reproducible across platforms regardless of locale or font table
// iteration order.
func Charset() []rune {
	set := make([]rune, 0, charsetLast-charsetFirst+1)
	for r := rune(charsetFirst); r <= charsetLast; r++ {
		set = append(set, r)
	}
	return set
}

// Profiler builds a brightness-ordered Palette for a glyph source by
// rasterizing the supported character set and min-max normalizing the
// measured coverage values.
type Profiler struct {
	// Workers bounds the rasterization pool. Zero or negative uses
	// GOMAXPROCS.
	Workers int

	// Log receives warnings for characters the font cannot represent.
	// Nil discards them.
	Log *log.Logger
}

// charResult carries the measured coverage for one character of the set.
type charResult struct {
	char     rune
	coverage float64
	missing  bool
}

// Profile rasterizes the supported character set and returns the resulting
// palette. Characters without a glyph are assigned minimum brightness and
// reported on the Log; if no character rasterizes at all the profiling fails
// with ErrProfilingFailed.
func (pr *Profiler) Profile(src GlyphSource) (Palette, error) {
	set := Charset()
	results := make([]charResult, len(set))

	workers := pr.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(set) {
		workers = len(set)
	}

	// Distinct characters rasterize independently, so the set is spread
	// over a bounded pool. The normalization pass below needs the full
	// min/max and runs only after the pool drains.
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = measureChar(src, set[i])
			}
		}()
	}
	for i := range set {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	minCov, maxCov := 0.0, 0.0
	rasterized := 0
	for _, res := range results {
		if res.missing {
			continue
		}
		if rasterized == 0 || res.coverage < minCov {
			minCov = res.coverage
		}
		if rasterized == 0 || res.coverage > maxCov {
			maxCov = res.coverage
		}
		rasterized++
	}
	if rasterized == 0 {
		return nil, fmt.Errorf("%w: no character in the set could be rasterized",
			ErrProfilingFailed)
	}

	palette := make(Palette, len(set))
	span := maxCov - minCov
	for i, res := range results {
		var brightness float64
		switch {
		case res.missing:
			// Unrepresentable characters count as darkest rather
			// than aborting the profile.
			brightness = 0
			pr.logf("warning: font has no glyph for %q, assigning minimum brightness", res.char)
		case span > 0:
			brightness = (res.coverage - minCov) / span
		default:
			brightness = 0
		}
		palette[i] = CharBrightness{Char: res.char, Brightness: brightness}
	}

	// Stable: characters with identical brightness keep codepoint order.
	sort.SliceStable(palette, func(i, j int) bool {
		return palette[i].Brightness < palette[j].Brightness
	})

	return palette, nil
}

// measureChar rasterizes one character and reduces the bitmap to its mean
// normalized coverage.
func measureChar(src GlyphSource, r rune) charResult {
	img, err := src.Rasterize(r)
	if err != nil {
		// Any single-character failure degrades to the missing-glyph
		// fallback; only a fully empty set is fatal.
		return charResult{char: r, missing: true}
	}
	return charResult{char: r, coverage: meanCoverage(img)}
}

// meanCoverage computes the mean normalized pixel intensity of an alpha
// bitmap, in [0, 1].
func meanCoverage(img *image.Alpha) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var sum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += uint64(img.AlphaAt(x, y).A)
		}
	}
	return float64(sum) / (float64(pixels) * 255)
}

func (pr *Profiler) logf(format string, args ...interface{}) {
	if pr.Log != nil {
		pr.Log.Printf(format, args...)
	}
}
