// Package profile builds coastline-normal profiles, keeps the ledger of
// line segments they share, and rasterizes them onto the grid.
package profile

import (
	"cliffline/pkg/geometry"
)

// Direction selects which end of the coastline normal a profile runs to.
type Direction int

const (
	Seaward Direction = iota
	Landward
)

func (d Direction) String() string {
	if d == Landward {
		return "landward"
	}
	return "seaward"
}

// Flags records why a profile was cut short or set aside.
type Flags struct {
	TooShort          bool
	Truncated         bool
	HitLand           bool
	HitCoast          bool
	HitAnotherProfile bool
	StartOfCoast      bool
	EndOfCoast        bool
}

// CliffResult is filled in by the cliff locator. Indices point into Cells
// and are -1 when nothing was found.
type CliffResult struct {
	Located     bool
	Top         int
	Toe         int
	TopChainage float64
	ToeChainage float64
	Reliable    bool
}

// Profile is a polyline starting at a coastline point. Segment i runs from
// point i to point i+1; the ledger that owns the profile records which other
// profiles share each segment.
type Profile struct {
	ID         int
	CoastPoint int
	Flags
	Cliff CliffResult

	shape geometry.Shape
	segs  []*span
	cells []geometry.PointInt
}

// Valid reports whether the profile can be used for intersection and cliff work.
func (p *Profile) Valid() bool {
	return !p.TooShort && !p.HitCoast && !p.HitLand
}

// NumPoints returns the number of vertices.
func (p *Profile) NumPoints() int { return p.shape.Len() }

// NumSegments returns the number of line segments.
func (p *Profile) NumSegments() int { return len(p.segs) }

// Point returns vertex i.
func (p *Profile) Point(i int) geometry.Point2D { return p.shape.At(i) }

// Start returns the coastline end of the profile.
func (p *Profile) Start() geometry.Point2D { return p.shape.At(0) }

// End returns the far end of the profile.
func (p *Profile) End() geometry.Point2D { return p.shape.Last() }

// Points returns a copy of the vertices.
func (p *Profile) Points() []geometry.Point2D { return p.shape.Points() }

// Length returns the polyline length in external units.
func (p *Profile) Length() float64 { return p.shape.Length() }

// Bounds returns the bounding rectangle of the profile.
func (p *Profile) Bounds() geometry.Rect { return p.shape.Bounds() }

// Cells returns a copy of the rasterized grid cells, coastline end first.
func (p *Profile) Cells() []geometry.PointInt {
	out := make([]geometry.PointInt, len(p.cells))
	copy(out, p.cells)
	return out
}

// Coincident returns the profiles sharing segment seg, the profile itself included.
func (p *Profile) Coincident(seg int) []Coincidence {
	return p.segs[seg].snapshot()
}

// Segments returns the coincidence table, one entry per segment.
func (p *Profile) Segments() [][]Coincidence {
	out := make([][]Coincidence, len(p.segs))
	for i, s := range p.segs {
		out[i] = s.snapshot()
	}
	return out
}

// SharesWith reports whether other shares any segment with p.
func (p *Profile) SharesWith(other int) bool {
	for _, s := range p.segs {
		if s.has(other) {
			return true
		}
	}
	return false
}

// SegmentShared reports whether other runs along segment seg of p.
func (p *Profile) SegmentShared(seg, other int) bool {
	return p.segs[seg].has(other)
}
