package imageutil

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, suited to high-quality
	// downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation. Fastest
	// but lowest quality.
	InterpolationNearest
)

// Resize resizes an RGBA image to the specified dimensions using the given
// interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)

	var scaler draw.Scaler
	switch interp {
	case InterpolationArea:
		scaler = draw.CatmullRom
	case InterpolationLinear:
		scaler = draw.BiLinear
	case InterpolationNearest:
		scaler = draw.NearestNeighbor
	default:
		scaler = draw.CatmullRom
	}

	scaler.Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Over, nil)
	return dst
}

// Bound scales an image down to fit within maxDim on both axes, preserving
// aspect ratio. Images already within the bound are returned unchanged.
// Block sampling cost scales with source pixels, so very large inputs are
// bounded before sampling.
func Bound(img *RGBAImage, maxDim int) *RGBAImage {
	w, h := img.Width(), img.Height()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dstW := int(math.Round(float64(w) * scale))
	dstH := int(math.Round(float64(h) * scale))
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	return Resize(img, dstW, dstH, InterpolationArea)
}
