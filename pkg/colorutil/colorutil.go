// Package colorutil provides the shared palette and color ramps used for
// debug rendering.
package colorutil

import (
	"image/color"
	"math"
)

// Overlay colors.
var (
	Background = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	Sea        = color.RGBA{R: 70, G: 130, B: 200, A: 255}
	DeepSea    = color.RGBA{R: 10, G: 30, B: 90, A: 255}
	Lowland    = color.RGBA{R: 90, G: 160, B: 80, A: 255}
	Highland   = color.RGBA{R: 150, G: 110, B: 70, A: 255}
	Coast      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Profile    = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	CliffTop   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	CliffToe   = color.RGBA{R: 0, G: 255, B: 255, A: 255}
)

// Lerp mixes a and b; t = 0 gives a and t = 1 gives b. t is clamped.
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Ramp maps v in [lo, hi] onto the gradient from a to b. A degenerate
// range returns a.
func Ramp(v, lo, hi float64, a, b color.RGBA) color.RGBA {
	if hi <= lo || math.IsNaN(v) {
		return a
	}
	return Lerp(a, b, (v-lo)/(hi-lo))
}
