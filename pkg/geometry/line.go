package geometry

import "math"

// parallelEpsilon is the smallest determinant treated as non-parallel.
const parallelEpsilon = 1e-10

// Cross computes the cross product of vectors OA and OB.
func Cross(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// SegmentCrossing computes where segment p1-p2 crosses segment p3-p4.
//
// The 2x2 system p1 + t(p2-p1) = p3 + u(p4-p3) is solved by Cramer's rule and
// the segments cross only when both t and u lie in [0,1]. Parallel and
// collinear segments never cross. The returned point is the mean of the two
// parametric solutions, so swapping the segments yields the same point.
func SegmentCrossing(p1, p2, p3, p4 Point2D) (Point2D, bool) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y
	x3, y3 := p3.X, p3.Y
	x4, y4 := p4.X, p4.Y

	denom := (x2-x1)*(y4-y3) - (y2-y1)*(x4-x3)
	if math.Abs(denom) < parallelEpsilon {
		return Point2D{}, false
	}

	t := ((x3-x1)*(y4-y3) - (y3-y1)*(x4-x3)) / denom
	u := ((x3-x1)*(y2-y1) - (y3-y1)*(x2-x1)) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point2D{}, false
	}

	a := Point2D{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1)}
	b := Point2D{X: x3 + u*(x4-x3), Y: y3 + u*(y4-y3)}
	return Point2D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}, true
}

// PolylineLength returns the summed length of consecutive segments.
func PolylineLength(points []Point2D) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// distSq computes the squared distance between two points.
func distSq(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// NearestVertex returns the index of the vertex of points within tol of p,
// or -1 if there is none.
func NearestVertex(points []Point2D, p Point2D, tol float64) int {
	best := -1
	bestD := tol * tol
	for i, q := range points {
		if d := distSq(p, q); d <= bestD {
			best = i
			bestD = d
		}
	}
	return best
}
