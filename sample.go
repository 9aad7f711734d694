package termrender

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"termrender/imageutil"
)

// DefaultCellAspect is the width:height ratio of a typical monospace
// terminal cell. Cells are roughly twice as tall as they are wide, so
// vertical sampling density is halved relative to horizontal.
const DefaultCellAspect = 0.5

// Cell holds the aggregate of one terminal character position: the mean
// luminance and mean color of the pixel block it represents. Cells are
// produced fresh per run and consumed immediately by the renderer.
type Cell struct {
	Luma  float64
	Color imageutil.RGB
}

// Grid is a row-major 2D sequence of Cells.
type Grid struct {
	Cols, Rows int
	cells      []Cell
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows, cells: make([]Cell, cols*rows)}
}

// At returns the cell at column x, row y.
func (g *Grid) At(x, y int) Cell {
	return g.cells[y*g.Cols+x]
}

// Set replaces the cell at column x, row y.
func (g *Grid) Set(x, y int, c Cell) {
	g.cells[y*g.Cols+x] = c
}

// LoadImage decodes the source image, surfacing any failure as
// ErrImageDecode.
func LoadImage(path string) (*imageutil.RGBAImage, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return img, nil
}

// GridSize derives grid dimensions from the image and terminal dimensions
// so the rendered aspect ratio visually matches the source once the
// non-square glyph cell ratio is applied. cellAspect is the width:height
// ratio of a terminal cell; zero or negative selects DefaultCellAspect.
// The result fits within the terminal, never exceeds the image dimensions,
// and is always at least 1x1.
func GridSize(imgW, imgH, termCols, termRows int, cellAspect float64) (cols, rows int) {
	if imgW <= 0 || imgH <= 0 || termCols <= 0 {
		return 1, 1
	}
	if cellAspect <= 0 {
		cellAspect = DefaultCellAspect
	}

	cols = termCols
	rows = int(math.Round(float64(cols) * float64(imgH) / float64(imgW) * cellAspect))
	if termRows > 0 && rows > termRows {
		rows = termRows
		cols = int(math.Round(float64(rows) * float64(imgW) / float64(imgH) / cellAspect))
		if cols > termCols {
			cols = termCols
		}
	}

	// A grid denser than the image would leave blocks without pixels.
	if cols > imgW {
		cols = imgW
	}
	if rows > imgH {
		rows = imgH
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// SampleImage partitions the image into cols x rows rectangular blocks and
// computes each block's mean color; the cell luminance is the BT.601
// luminance of that mean.
// Block boundaries are proportional ([i*W/cols, (i+1)*W/cols)), so when the
// image does not divide evenly the edge blocks absorb the remainder and
// every pixel is counted exactly once. Rows aggregate in parallel; blocks
// share no state.
func SampleImage(img *imageutil.RGBAImage, cols, rows int) *Grid {
	if cols > img.Width() {
		cols = img.Width()
	}
	if rows > img.Height() {
		rows = img.Height()
	}
	grid := NewGrid(cols, rows)

	workers := runtime.GOMAXPROCS(0)
	if workers > rows {
		workers = rows
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range jobs {
				sampleRow(img, grid, y)
			}
		}()
	}
	for y := 0; y < rows; y++ {
		jobs <- y
	}
	close(jobs)
	wg.Wait()

	return grid
}

// sampleRow aggregates every block of one grid row.
func sampleRow(img *imageutil.RGBAImage, grid *Grid, y int) {
	w, h := img.Width(), img.Height()
	y0 := y * h / grid.Rows
	y1 := (y + 1) * h / grid.Rows

	for x := 0; x < grid.Cols; x++ {
		x0 := x * w / grid.Cols
		x1 := (x + 1) * w / grid.Cols

		var sumR, sumG, sumB uint64
		for py := y0; py < y1; py++ {
			for px := x0; px < x1; px++ {
				c := img.GetRGB(px, py)
				sumR += uint64(c.R)
				sumG += uint64(c.G)
				sumB += uint64(c.B)
			}
		}

		n := uint64((x1 - x0) * (y1 - y0))
		if n == 0 {
			grid.Set(x, y, Cell{})
			continue
		}

		mean := imageutil.RGB{
			R: uint8(sumR / n),
			G: uint8(sumG / n),
			B: uint8(sumB / n),
		}
		grid.Set(x, y, Cell{Luma: imageutil.Luminance(mean), Color: mean})
	}
}
