package imageutil

// Luminance returns the perceptual luminance of a color, normalized to
// [0, 1], using the standard BT.601 weighting:
// Y = 0.299*R + 0.587*G + 0.114*B.
func Luminance(c RGB) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}
