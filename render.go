package termrender

import (
	"io"
	"strings"

	"termrender/imageutil"
)

// Renderer maps a cell grid onto a brightness palette and assembles the
// final text block. A Renderer is cheap to build and safe for reuse across
// grids.
type Renderer struct {
	palette Palette
	plain   bool
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// WithPlain disables color escapes; cells are rendered as bare characters.
func WithPlain(plain bool) RendererOption {
	return func(r *Renderer) {
		r.plain = plain
	}
}

// NewRenderer creates a Renderer over the given palette. By default output
// is colored with 24-bit foreground escapes.
func NewRenderer(palette Palette, opts ...RendererOption) *Renderer {
	r := &Renderer{palette: palette}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render assembles the text block for a grid.
func (r *Renderer) Render(grid *Grid) string {
	var sb strings.Builder
	for y := 0; y < grid.Rows; y++ {
		r.renderRow(&sb, grid, y)
	}
	return sb.String()
}

// RenderTo streams the rendered grid row by row to a writer.
func (r *Renderer) RenderTo(w io.Writer, grid *Grid) error {
	var sb strings.Builder
	for y := 0; y < grid.Rows; y++ {
		sb.Reset()
		r.renderRow(&sb, grid, y)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// renderRow emits one grid row. In color mode adjacent cells sharing a
// color reuse the active escape, and color state is reset at the end of
// every row so escape growth stays bounded. Each row, the last included,
// ends with a line break.
func (r *Renderer) renderRow(sb *strings.Builder, grid *Grid, y int) {
	var current imageutil.RGB
	active := false

	for x := 0; x < grid.Cols; x++ {
		cell := grid.At(x, y)
		if !r.plain {
			if !active || cell.Color != current {
				sb.WriteString(foregroundEscape(cell.Color))
				current = cell.Color
				active = true
			}
		}
		sb.WriteRune(r.palette.Closest(cell.Luma))
	}

	if !r.plain {
		sb.WriteString(ansiReset)
	}
	sb.WriteByte('\n')
}
