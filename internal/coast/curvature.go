package coast

import (
	"math"

	"cliffline/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

// curvatureScale makes curvature values legible.
const curvatureScale = 1000

// CurvatureOptions configures curvature estimation.
type CurvatureOptions struct {
	// Interval is the number of points averaged on each side of a point.
	Interval int
	// EdgeMargin is the number of extra points at each end, beyond Interval,
	// that are not computed directly. It is also the size of the block whose
	// mean is copied onto those end points.
	EdgeMargin int
	// Orientation is raster.Grid.Orientation for the grid the coast came from.
	Orientation float64
}

// DefaultCurvatureOptions returns the usual interval and margin.
func DefaultCurvatureOptions() CurvatureOptions {
	return CurvatureOptions{Interval: 5, EdgeMargin: 9, Orientation: 1}
}

// EstimateCurvature fills in the signed curvature of every point of c.
// Positive values are concave as seen from the sea (bays), negative values
// convex (headlands).
//
// Points closer than Interval+EdgeMargin to either end all receive the mean
// of the nearest EdgeMargin computed values. A coastline too short to have any
// computed point is left at zero.
func EstimateCurvature(c *Coastline, opts CurvatureOptions) {
	n := c.Len()
	k := max(opts.Interval, 1)
	orient := opts.Orientation
	if orient == 0 {
		orient = 1
	}
	lo := k + opts.EdgeMargin
	hi := n - 1 - lo
	if lo > hi {
		for i := 0; i < n; i++ {
			c.SetCurvature(i, 0)
		}
		return
	}

	pts := c.Points()
	for i := lo; i <= hi; i++ {
		before := geometry.Centroid(pts[i-k : i])
		after := geometry.Centroid(pts[i+1 : i+k+1])
		kappa := hermannKlette(before, pts[i], after)
		c.SetCurvature(i, kappa*c.Handedness.Sign()*orient*curvatureScale)
	}

	block := max(opts.EdgeMargin, 1)
	computed := c.curvature[lo : hi+1]
	head := stat.Mean(computed[:min(block, len(computed))], nil)
	tail := stat.Mean(computed[max(len(computed)-block, 0):], nil)
	for i := 0; i < lo; i++ {
		c.SetCurvature(i, head)
	}
	for i := hi + 1; i < n; i++ {
		c.SetCurvature(i, tail)
	}
}

// hermannKlette estimates the curvature at p from its neighbours using the
// Hermann-Klette estimator: the two direction angles are averaged, and the
// deviation of each side from that mean is weighted by 1/(2·side length).
// The sign is that of (before-p) x (after-p).
func hermannKlette(before, p, after geometry.Point2D) float64 {
	l1 := p.Distance(before)
	l2 := after.Distance(p)
	if l1 == 0 || l2 == 0 {
		return 0
	}

	a1 := math.Atan2(p.Y-before.Y, p.X-before.X)
	a2 := math.Atan2(after.Y-p.Y, after.X-p.X)
	turn := wrapAngle(a2 - a1)
	mean := a1 + turn/2

	kappa := math.Abs(mean-a1)/(2*l1) + math.Abs(a1+turn-mean)/(2*l2)

	switch cross := geometry.Cross(p, before, after); {
	case cross < 0:
		return -kappa
	case cross == 0:
		return 0
	default:
		return kappa
	}
}

// wrapAngle maps an angle difference into (-pi, pi].
func wrapAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
