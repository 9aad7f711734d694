package termrender

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"termrender/imageutil"
)

// TestLoadImageDecodeFailure tests that unreadable image data surfaces as
// ErrImageDecode.
func TestLoadImageDecodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadImage(path); !errors.Is(err, ErrImageDecode) {
		t.Errorf("LoadImage error = %v, want ErrImageDecode", err)
	}

	missing := filepath.Join(t.TempDir(), "absent.png")
	if _, err := LoadImage(missing); !errors.Is(err, ErrImageDecode) {
		t.Errorf("LoadImage error = %v, want ErrImageDecode", err)
	}
}

// TestGridSizeAspectCompensation tests that grid rows compensate for the
// roughly 1:2 cell ratio: a 100x50 image at 80 columns must produce far
// fewer rows than the naive square-cell computation (40).
func TestGridSizeAspectCompensation(t *testing.T) {
	cols, rows := GridSize(100, 50, 80, 1000, DefaultCellAspect)
	if cols != 80 {
		t.Errorf("cols = %d, want 80", cols)
	}
	if rows != 20 {
		t.Errorf("rows = %d, want 20 (naive square cells would give 40)", rows)
	}
}

// TestGridSizeFitsTerminalHeight tests that a tall image is scaled down to
// the terminal's row budget with width following the aspect ratio.
func TestGridSizeFitsTerminalHeight(t *testing.T) {
	// A square 1000x1000 image at 80x24: unclamped rows would be 40.
	cols, rows := GridSize(1000, 1000, 80, 24, DefaultCellAspect)
	if rows != 24 {
		t.Errorf("rows = %d, want 24", rows)
	}
	want := int(math.Round(24 / DefaultCellAspect))
	if cols != want {
		t.Errorf("cols = %d, want %d", cols, want)
	}
}

// TestGridSizeClampedToImage tests that the grid never exceeds the image
// dimensions and never collapses below 1x1.
func TestGridSizeClampedToImage(t *testing.T) {
	cols, rows := GridSize(4, 3, 80, 25, DefaultCellAspect)
	if cols > 4 || rows > 3 {
		t.Errorf("grid %dx%d exceeds 4x3 image", cols, rows)
	}
	if cols < 1 || rows < 1 {
		t.Errorf("grid %dx%d collapsed below 1x1", cols, rows)
	}

	cols, rows = GridSize(0, 0, 80, 25, DefaultCellAspect)
	if cols != 1 || rows != 1 {
		t.Errorf("degenerate image gave %dx%d grid, want 1x1", cols, rows)
	}
}

// solidImage builds a uniformly colored test image.
func solidImage(w, h int, c imageutil.RGB) *imageutil.RGBAImage {
	img := imageutil.NewRGBAImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// TestSampleImageUniform tests that a uniform image yields identical cells
// with the expected luminance.
func TestSampleImageUniform(t *testing.T) {
	img := solidImage(64, 32, imageutil.RGB{R: 255, G: 255, B: 255})
	grid := SampleImage(img, 8, 4)

	if grid.Cols != 8 || grid.Rows != 4 {
		t.Fatalf("grid is %dx%d, want 8x4", grid.Cols, grid.Rows)
	}
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			cell := grid.At(x, y)
			if math.Abs(cell.Luma-1.0) > 1e-9 {
				t.Fatalf("cell (%d,%d) luma = %f, want 1.0", x, y, cell.Luma)
			}
			if cell.Color != (imageutil.RGB{R: 255, G: 255, B: 255}) {
				t.Fatalf("cell (%d,%d) color = %+v, want white", x, y, cell.Color)
			}
		}
	}
}

// TestSampleImageHalves tests block aggregation over a black/white split
// image.
func TestSampleImageHalves(t *testing.T) {
	img := imageutil.NewRGBAImage(40, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				img.SetRGB(x, y, imageutil.RGB{})
			} else {
				img.SetRGB(x, y, imageutil.RGB{R: 255, G: 255, B: 255})
			}
		}
	}

	grid := SampleImage(img, 2, 1)
	left, right := grid.At(0, 0), grid.At(1, 0)

	if left.Luma != 0.0 {
		t.Errorf("left cell luma = %f, want 0.0", left.Luma)
	}
	if math.Abs(right.Luma-1.0) > 1e-9 {
		t.Errorf("right cell luma = %f, want 1.0", right.Luma)
	}
	if left.Color != (imageutil.RGB{}) {
		t.Errorf("left cell color = %+v, want black", left.Color)
	}
}

// TestSampleImageUnevenPartition tests that dimensions not divisible by the
// grid are still covered: edge blocks absorb the remainder and every cell
// gets at least one pixel.
func TestSampleImageUnevenPartition(t *testing.T) {
	// 10x7 image over a 3x3 grid: neither axis divides evenly.
	img := solidImage(10, 7, imageutil.RGB{R: 100, G: 100, B: 100})
	grid := SampleImage(img, 3, 3)

	want := 100.0 / 255.0
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			cell := grid.At(x, y)
			if math.Abs(cell.Luma-want) > 1e-9 {
				t.Fatalf("cell (%d,%d) luma = %f, want %f", x, y, cell.Luma, want)
			}
			if cell.Color != (imageutil.RGB{R: 100, G: 100, B: 100}) {
				t.Fatalf("cell (%d,%d) color = %+v", x, y, cell.Color)
			}
		}
	}
}

// TestSampleImageMeanColor tests that a block's color is the mean of its
// pixels.
func TestSampleImageMeanColor(t *testing.T) {
	// Two pixels: pure red and pure blue, one block.
	img := imageutil.NewRGBAImage(2, 1)
	img.SetRGB(0, 0, imageutil.RGB{R: 255})
	img.SetRGB(1, 0, imageutil.RGB{B: 255})

	grid := SampleImage(img, 1, 1)
	cell := grid.At(0, 0)

	want := imageutil.RGB{R: 127, G: 0, B: 127}
	if cell.Color != want {
		t.Errorf("mean color = %+v, want %+v", cell.Color, want)
	}

	wantLuma := imageutil.Luminance(want)
	if math.Abs(cell.Luma-wantLuma) > 1e-9 {
		t.Errorf("mean luma = %f, want %f", cell.Luma, wantLuma)
	}
}

// TestSampleImageGridLargerThanImage tests that an oversized grid request
// is clamped to the pixel count.
func TestSampleImageGridLargerThanImage(t *testing.T) {
	img := solidImage(3, 2, imageutil.RGB{R: 10, G: 10, B: 10})
	grid := SampleImage(img, 10, 10)

	if grid.Cols != 3 || grid.Rows != 2 {
		t.Errorf("grid is %dx%d, want clamped 3x2", grid.Cols, grid.Rows)
	}
}
