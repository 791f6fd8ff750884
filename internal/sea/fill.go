// Package sea labels the contiguous sea of a grid.
package sea

import (
	"log/slog"

	"cliffline/internal/raster"
	"cliffline/pkg/geometry"
)

// Fill marks as contiguous sea every cell below stillWater that can be reached
// through 4-connected below-water cells from a below-water cell on the grid
// edge. Cells below water that no such path reaches (inland lakes) are left
// unmarked. Every cell gets sea depth max(stillWater - elevation, 0).
//
// The fill is a scanline fill driven by an explicit stack, so grid size never
// grows the goroutine stack. Returns the number of sea cells.
//
// Time:   O(W·H). Memory: O(W·H) worst case for the seed stack.
func Fill(g *raster.Grid, stillWater float64, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	nx, ny := g.NX(), g.NY()

	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			c := g.Cell(x, y)
			if d := stillWater - c.Elevation(); d > 0 {
				c.SetSeaDepth(d)
			} else {
				c.SetSeaDepth(0)
			}
		}
	}

	f := filler{g: g, swl: stillWater}

	// One seed per edge cell whose status is still undetermined.
	for x := 0; x < nx; x++ {
		f.seed(x, 0)
		f.seed(x, ny-1)
	}
	for y := 1; y < ny-1; y++ {
		f.seed(0, y)
		f.seed(nx-1, y)
	}

	logger.Debug("Sea fill complete", "still_water", stillWater, "sea_cells", f.count)
	return f.count
}

type filler struct {
	g     *raster.Grid
	swl   float64
	stack []geometry.PointInt
	count int
}

// open reports whether (x,y) is inundated and not yet labelled.
func (f *filler) open(x, y int) bool {
	c := f.g.Cell(x, y)
	return !c.IsSea() && c.Elevation() < f.swl
}

func (f *filler) seed(x, y int) {
	if !f.open(x, y) {
		return
	}
	f.stack = append(f.stack[:0], geometry.PointInt{X: x, Y: y})
	f.drain()
}

func (f *filler) drain() {
	nx, ny := f.g.NX(), f.g.NY()

	for len(f.stack) > 0 {
		p := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]
		if !f.open(p.X, p.Y) {
			continue
		}

		// Run left to the start of the span.
		x := p.X
		for x > 0 && f.open(x-1, p.Y) {
			x--
		}

		spanAbove, spanBelow := false, false
		for ; x < nx && f.open(x, p.Y); x++ {
			c := f.g.Cell(x, p.Y)
			c.SetSea(f.swl - c.Elevation())
			f.count++

			// Push once at the start of each open span in the neighbouring rows.
			if p.Y > 0 {
				if f.open(x, p.Y-1) {
					if !spanAbove {
						f.stack = append(f.stack, geometry.PointInt{X: x, Y: p.Y - 1})
						spanAbove = true
					}
				} else {
					spanAbove = false
				}
			}
			if p.Y < ny-1 {
				if f.open(x, p.Y+1) {
					if !spanBelow {
						f.stack = append(f.stack, geometry.PointInt{X: x, Y: p.Y + 1})
						spanBelow = true
					}
				} else {
					spanBelow = false
				}
			}
		}
	}
}
