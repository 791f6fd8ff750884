package render

import (
	"image"
	"math"

	"cliffline/internal/profile"
	"cliffline/internal/raster"
	"cliffline/pkg/colorutil"
)

// Elevation tints land by height and sea by depth.
type Elevation struct {
	Grid *raster.Grid
}

// Draw implements Drawer.
func (e Elevation) Draw(img *image.RGBA) {
	g := e.Grid
	lo, hi := math.Inf(1), math.Inf(-1)
	deep := 0.0
	for y := 0; y < g.NY(); y++ {
		for x := 0; x < g.NX(); x++ {
			c := g.Cell(x, y)
			if c.IsSea() {
				deep = math.Max(deep, c.SeaDepth())
				continue
			}
			lo = math.Min(lo, c.Elevation())
			hi = math.Max(hi, c.Elevation())
		}
	}

	for y := 0; y < g.NY(); y++ {
		for x := 0; x < g.NX(); x++ {
			c := g.Cell(x, y)
			if c.IsSea() {
				img.SetRGBA(x, y, colorutil.Ramp(c.SeaDepth(), 0, deep, colorutil.Sea, colorutil.DeepSea))
				continue
			}
			img.SetRGBA(x, y, colorutil.Ramp(c.Elevation(), lo, hi, colorutil.Lowland, colorutil.Highland))
		}
	}
}

// Coastlines marks every coastline cell.
type Coastlines struct {
	Grid *raster.Grid
}

// Draw implements Drawer.
func (l Coastlines) Draw(img *image.RGBA) {
	for y := 0; y < l.Grid.NY(); y++ {
		for x := 0; x < l.Grid.NX(); x++ {
			if l.Grid.Cell(x, y).IsCoastline() {
				img.SetRGBA(x, y, colorutil.Coast)
			}
		}
	}
}

// Profiles draws the cells of every valid profile, with located cliff tops
// and toes highlighted.
type Profiles struct {
	Sets []*profile.Set
}

// Draw implements Drawer.
func (l Profiles) Draw(img *image.RGBA) {
	for _, set := range l.Sets {
		for _, p := range set.All() {
			if !p.Valid() {
				continue
			}
			cells := p.Cells()
			for _, c := range cells {
				img.SetRGBA(c.X, c.Y, colorutil.Profile)
			}
			if !p.Cliff.Located {
				continue
			}
			if p.Cliff.Toe >= 0 {
				c := cells[p.Cliff.Toe]
				img.SetRGBA(c.X, c.Y, colorutil.CliffToe)
			}
			c := cells[p.Cliff.Top]
			img.SetRGBA(c.X, c.Y, colorutil.CliffTop)
		}
	}
}
