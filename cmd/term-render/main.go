// Command term-render renders a raster image as a textual approximation on
// standard output, selecting characters by the measured brightness of glyphs
// from a chosen font.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/codegangsta/cli"
	"github.com/disintegration/imaging"
	"golang.org/x/term"

	"termrender"
	"termrender/imageutil"
)

// maxSourceDim bounds the source image before block sampling; anything
// larger carries no extra information at terminal resolutions.
const maxSourceDim = 4096

func main() {
	app := cli.NewApp()
	app.Name = "term-render"
	app.Usage = "render an image as character art in the terminal"
	app.ArgsUsage = "<path>"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "font,f",
			Usage: "path to a TTF font used for brightness profiling",
		},
		cli.BoolFlag{
			Name:  "clean,c",
			Usage: "clear all cached brightness profiles before running",
		},
		cli.BoolFlag{
			Name:  "plain,p",
			Usage: "render without color escape codes",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "override the detected terminal width in columns",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "override the detected terminal height in rows",
		},
		cli.StringFlag{
			Name:  "cache-dir",
			Usage: "override the profile cache location",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Usage: "gamma adjustment, 1.0 leaves the image unchanged",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness",
			Usage: "brightness adjustment between -100 and 100",
		},
		cli.Float64Flag{
			Name:  "contrast",
			Usage: "contrast adjustment between -100 and 100",
		},
		cli.BoolFlag{
			Name:  "invert",
			Usage: "invert the image",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log cache diagnostics to stderr",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "term-render: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := log.New(os.Stderr, "term-render: ", 0)

	cacheDir := c.String("cache-dir")
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("resolving cache location: %w", err)
		}
		cacheDir = filepath.Join(base, "term-render")
	}

	cache := termrender.NewCache(cacheDir)
	cache.Log = logger
	cache.Debug = c.Bool("verbose")

	if c.Bool("clean") {
		cache.Clear()
	}

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing required argument <path>")
	}

	img, err := termrender.LoadImage(path)
	if err != nil {
		return err
	}
	img = imageutil.Bound(img, maxSourceDim)
	img = preprocess(c, img)

	palette, err := resolvePalette(c, cache, logger)
	if err != nil {
		return err
	}

	cols, rows := terminalSize(c)
	gridCols, gridRows := termrender.GridSize(
		img.Width(), img.Height(), cols, rows, termrender.DefaultCellAspect)
	grid := termrender.SampleImage(img, gridCols, gridRows)

	renderer := termrender.NewRenderer(palette,
		termrender.WithPlain(c.Bool("plain")))
	return renderer.RenderTo(os.Stdout, grid)
}

// resolvePalette returns the cached palette for the requested font,
// profiling and caching it on a miss. Without a font the built-in ramp is
// used and nothing touches the cache.
func resolvePalette(c *cli.Context, cache *termrender.Cache, logger *log.Logger) (termrender.Palette, error) {
	fontPath := c.String("font")
	if fontPath == "" {
		return termrender.BuiltinPalette(), nil
	}

	fp, err := termrender.FingerprintFile(fontPath, termrender.DefaultGlyphHeight)
	if err != nil {
		return nil, err
	}

	if profile, ok := cache.Load(fp); ok {
		return profile.Palette, nil
	}

	ttf, err := termrender.LoadFont(fontPath)
	if err != nil {
		return nil, err
	}

	profiler := termrender.Profiler{Log: logger}
	src := termrender.NewFontRasterizer(ttf,
		termrender.DefaultGlyphWidth, termrender.DefaultGlyphHeight)
	palette, err := profiler.Profile(src)
	if err != nil {
		return nil, err
	}

	// The cache is an optimization; a failed write only costs a future
	// recomputation.
	if err := cache.Store(termrender.NewFontProfile(fp, palette)); err != nil {
		logger.Printf("warning: could not cache brightness profile: %v", err)
	}

	return palette, nil
}

// preprocess applies the optional image adjustments before sampling.
func preprocess(c *cli.Context, img *imageutil.RGBAImage) *imageutil.RGBAImage {
	adjusted := false
	result := img
	if c.IsSet("gamma") {
		result = imageutil.RGBAImageFromImage(
			imaging.AdjustGamma(result.RGBA, c.Float64("gamma")))
		adjusted = true
	}
	if c.IsSet("brightness") {
		result = imageutil.RGBAImageFromImage(
			imaging.AdjustBrightness(result.RGBA, c.Float64("brightness")))
		adjusted = true
	}
	if c.IsSet("contrast") {
		result = imageutil.RGBAImageFromImage(
			imaging.AdjustContrast(result.RGBA, c.Float64("contrast")))
		adjusted = true
	}
	if c.Bool("invert") {
		result = imageutil.RGBAImageFromImage(imaging.Invert(result.RGBA))
		adjusted = true
	}
	if !adjusted {
		return img
	}
	return result
}

// terminalSize reports the render bounds in cells. Explicit flags win; a
// TTY is measured with one row reserved for the prompt; anything else gets
// the classic 80x25.
func terminalSize(c *cli.Context) (cols, rows int) {
	cols, rows = 80, 25
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cols, rows = w, usableRows(h)
		}
	}
	if c.IsSet("width") && c.Int("width") > 0 {
		cols = c.Int("width")
	}
	if c.IsSet("height") && c.Int("height") > 0 {
		rows = c.Int("height")
	}
	return cols, rows
}

// usableRows reserves one row for the shell prompt. A terminal reporting
// fewer than two rows still renders one.
func usableRows(h int) int {
	if h < 2 {
		return 1
	}
	return h - 1
}
