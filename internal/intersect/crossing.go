// Package intersect finds crossings between the normal profiles of a coast
// and removes them by truncating and merging profiles.
package intersect

import (
	"cliffline/internal/profile"
	"cliffline/pkg/geometry"
)

// Crossing is where two profiles intersect.
type Crossing struct {
	SegA, SegB int
	Point      geometry.Point2D
	// End is the mean of the two profiles' seaward end points.
	End geometry.Point2D
}

// Find returns the crossing of a and b, ignoring segments the two already
// share. When the profiles cross more than once the crossing with the
// lowest segment index sum wins, then the lowest point by x and y, so
// Find(a, b) and Find(b, a) pick the same point.
func Find(a, b *profile.Profile) (Crossing, bool) {
	var (
		best  Crossing
		found bool
	)
	for i := 0; i < a.NumSegments(); i++ {
		if a.SegmentShared(i, b.ID) {
			continue
		}
		a1, a2 := a.Point(i), a.Point(i+1)
		for j := 0; j < b.NumSegments(); j++ {
			if b.SegmentShared(j, a.ID) {
				continue
			}
			x, ok := geometry.SegmentCrossing(a1, a2, b.Point(j), b.Point(j+1))
			if !ok {
				continue
			}
			c := Crossing{SegA: i, SegB: j, Point: x}
			if !found || before(c, best) {
				best, found = c, true
			}
		}
	}
	if found {
		best.End = a.End().Add(b.End()).Scale(0.5)
	}
	return best, found
}

func before(c, d Crossing) bool {
	if s, t := c.SegA+c.SegB, d.SegA+d.SegB; s != t {
		return s < t
	}
	if c.Point.X != d.Point.X {
		return c.Point.X < d.Point.X
	}
	return c.Point.Y < d.Point.Y
}
