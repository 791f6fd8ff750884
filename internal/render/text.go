package render

import (
	"strings"

	"cliffline/internal/raster"
)

// Text renders g as one character per cell, row 0 first: '~' sea, '#'
// coastline, '*' a cell crossed by a profile, '.' other land.
func Text(g *raster.Grid) string {
	var b strings.Builder
	b.Grow((g.NX() + 1) * g.NY())
	for y := 0; y < g.NY(); y++ {
		for x := 0; x < g.NX(); x++ {
			c := g.Cell(x, y)
			switch {
			case c.Profile() != raster.NoID:
				b.WriteByte('*')
			case c.IsCoastline():
				b.WriteByte('#')
			case c.IsSea():
				b.WriteByte('~')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
