package profile

import (
	"math"

	"cliffline/internal/raster"
	"cliffline/pkg/geometry"
)

// RasterOptions configures Rasterize.
type RasterOptions struct {
	// Seaward profiles stop at the first cell that is not sea.
	Seaward bool
	// Stamp records the profile id on the cells it crosses and flags
	// crossings of cells already owned by another profile.
	Stamp bool
}

// RasterState carries the last profile-ownership comparison from one cell
// to the next, and from one Rasterize call to the next.
type RasterState struct {
	profile    int
	other      int
	coincident bool
	cached     bool
}

// forget drops the cached comparison; sharing may have changed.
func (st *RasterState) forget() { st.cached = false }

func (st *RasterState) coincidentWith(p *Profile, other int) bool {
	if st.cached && st.profile == p.ID && st.other == other {
		return st.coincident
	}
	st.profile, st.other, st.cached = p.ID, other, true
	st.coincident = p.SharesWith(other)
	return st.coincident
}

// Rasterize walks p segment by segment with a DDA, recording the grid cells
// it covers. The profile is truncated at the last good cell when it leaves
// the grid, meets another coast's coastline on its first segment, or, for
// seaward profiles, meets land; truncation is mirrored onto coincident
// profiles. A cell already owned by a profile of another coast, or by a
// profile of this coast that shares no segment with p, flags p as having
// hit another profile. Returns the ids of every profile whose geometry
// changed.
func Rasterize(g *raster.Grid, set *Set, p *Profile, opts RasterOptions, st *RasterState) ([]int, error) {
	if st == nil {
		st = &RasterState{}
	}
	var (
		cells   []geometry.PointInt
		lastSeg int
		steps   int
		stop    bool
	)
	if opts.Stamp {
		p.HitAnotherProfile = false
	}

	for seg := 0; seg < p.NumSegments() && !stop; seg++ {
		a := g.ExternalToGrid(p.Point(seg))
		b := g.ExternalToGrid(p.Point(seg + 1))
		dx, dy := b.X-a.X, b.Y-a.Y
		n := int(math.Round(math.Max(math.Abs(dx), math.Abs(dy))))
		if n == 0 {
			continue
		}
		incX, incY := dx/float64(n), dy/float64(n)

		for k := 0; k <= n; k++ {
			if seg > 0 && k == 0 {
				continue
			}
			c := geometry.Point2D{X: a.X + float64(k)*incX, Y: a.Y + float64(k)*incY}.Round()
			if len(cells) > 0 && c == cells[len(cells)-1] {
				continue
			}
			if seg > 0 || k > 0 {
				steps++
			}

			if !g.InGrid(c.X, c.Y) {
				stop = true
				break
			}
			cell := g.CellAt(c)
			if seg == 0 && k >= 2 && (foreignCoast(g, set.Coast(), c.X, c.Y) || foreignCoast(g, set.Coast(), c.X, c.Y+1)) {
				p.HitCoast = true
				stop = true
				break
			}
			if opts.Seaward && steps >= 2 && !cell.IsSea() {
				p.HitLand = true
				stop = true
				break
			}

			if opts.Stamp {
				switch owner := cell.Profile(); {
				case owner == raster.NoID:
					cell.SetProfile(set.Coast(), p.ID)
				case cell.ProfileCoast() != set.Coast():
					p.HitAnotherProfile = true
				case owner != p.ID && !st.coincidentWith(p, owner):
					p.HitAnotherProfile = true
				}
			}
			cells = append(cells, c)
			lastSeg = seg
		}
	}

	p.cells = cells
	p.TooShort = len(cells) < 3
	if !stop || len(cells) < 2 {
		return nil, nil
	}

	changed := set.Truncate(p.ID, lastSeg, g.GridToExternal(cells[len(cells)-1]))
	st.forget()
	for _, id := range changed {
		if err := set.Check(id); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// foreignCoast reports whether (x,y) is in the grid and on the coastline of
// a coast other than coast.
func foreignCoast(g *raster.Grid, coast, x, y int) bool {
	if !g.InGrid(x, y) {
		return false
	}
	c := g.Cell(x, y)
	return c.IsCoastline() && c.Coast() != coast
}

// Unstamp releases the cells p claimed in its last stamping Rasterize.
func Unstamp(g *raster.Grid, set *Set, p *Profile) {
	for _, c := range p.cells {
		if !g.InGrid(c.X, c.Y) {
			continue
		}
		cell := g.CellAt(c)
		if cell.ProfileCoast() == set.Coast() && cell.Profile() == p.ID {
			cell.ClearProfile()
		}
	}
}
