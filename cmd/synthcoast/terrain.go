package main

import (
	"fmt"
	"math"

	"cliffline/internal/raster"
)

// terrain builds a synthetic north-up elevation model. Sea occupies the
// northern third of every shape; elevations are in metres above datum.
func terrain(shape string, nx, ny int, cellSize float64) (*raster.DenseSource, error) {
	shore := ny / 3
	var fn func(x, y int) float64

	switch shape {
	case "ramp":
		fn = func(_, y int) float64 { return float64(y - shore) }
	case "bay":
		cx, cy, r := float64(nx)/2, float64(shore), float64(min(nx, ny))/4
		fn = func(x, y int) float64 {
			if y < shore || math.Hypot(float64(x)-cx, float64(y)-cy) < r {
				return -2
			}
			return 1 + 0.2*float64(y-shore)
		}
	case "cliff":
		fn = func(x, y int) float64 {
			d := y - shore
			switch {
			case d < 0:
				return -2
			case d < 3:
				return 0.5 + 0.1*float64(d)
			case d < 5:
				return 0.8 + 8*float64(d-2)
			default:
				return 20 + 0.05*float64(x%7)
			}
		}
	default:
		return nil, fmt.Errorf("unknown terrain shape %q", shape)
	}

	tr := raster.NorthUp(0, float64(ny)*cellSize, cellSize)
	return raster.NewDenseSource(nx, ny, cellSize, tr, fn), nil
}
