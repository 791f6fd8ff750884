// Package render draws grids, coastlines and profiles into images for
// debugging.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"cliffline/internal/profile"
	"cliffline/internal/raster"
	"cliffline/pkg/colorutil"
)

// Drawer paints one layer onto an image with one pixel per grid cell.
type Drawer interface {
	Draw(img *image.RGBA)
}

// Composite stacks layers over a background.
type Composite struct {
	Width, Height int
	BackColor     color.Color
	Layers        []Drawer
}

// NewComposite creates a composite sized for g.
func NewComposite(g *raster.Grid) *Composite {
	return &Composite{
		Width:     g.NX(),
		Height:    g.NY(),
		BackColor: colorutil.Background,
	}
}

// Scene is the usual debug picture: elevation, then coastlines, then the
// profiles of every set.
func Scene(g *raster.Grid, sets ...*profile.Set) *Composite {
	return NewComposite(g).
		Add(Elevation{Grid: g}).
		Add(Coastlines{Grid: g}).
		Add(Profiles{Sets: sets})
}

// Add appends a layer; later layers paint over earlier ones.
func (c *Composite) Add(d Drawer) *Composite {
	c.Layers = append(c.Layers, d)
	return c
}

// Render draws every layer and scales the result up by an integer factor
// without smoothing, so each cell stays a solid block.
func (c *Composite) Render(scale int) *image.RGBA {
	base := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(base, base.Bounds(), &image.Uniform{C: c.BackColor}, image.Point{}, draw.Src)
	for _, l := range c.Layers {
		l.Draw(base)
	}
	if scale <= 1 {
		return base
	}

	out := image.NewRGBA(image.Rect(0, 0, c.Width*scale, c.Height*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), base, base.Bounds(), draw.Src, nil)
	return out
}
