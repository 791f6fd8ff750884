package profile

import (
	"errors"
	"math"

	"cliffline/pkg/geometry"
)

var (
	// ErrEndPoint means no coastline normal could be constructed.
	ErrEndPoint = errors.New("profile: cannot solve for profile end point")
	// ErrOutsideGrid means a candidate end point fell outside the grid.
	ErrOutsideGrid = errors.New("profile: end point outside grid")
)

// normalEnds returns the two points at distance length from start on the
// line through start perpendicular to before->after.
func normalEnds(start, before, after geometry.Point2D, length float64) (geometry.Point2D, geometry.Point2D, error) {
	dx := after.X - before.X
	dy := after.Y - before.Y
	if dx == 0 && dy == 0 {
		return geometry.Point2D{}, geometry.Point2D{}, ErrEndPoint
	}

	// A horizontal coastline has a vertical normal, which has no slope.
	if dy == 0 {
		return geometry.Point2D{X: start.X, Y: start.Y + length},
			geometry.Point2D{X: start.X, Y: start.Y - length}, nil
	}

	// Points on y - y0 = m(x - x0) at distance L from (x0, y0) solve
	// (1+m²)x² - 2(1+m²)x0·x + (1+m²)x0² - L² = 0.
	m := -dx / dy
	a := 1 + m*m
	b := -2 * a * start.X
	c := a*start.X*start.X - length*length
	disc := b*b - 4*a*c
	if disc < 0 {
		return geometry.Point2D{}, geometry.Point2D{}, ErrEndPoint
	}

	root := math.Sqrt(disc)
	x1 := (-b + root) / (2 * a)
	x2 := (-b - root) / (2 * a)
	return geometry.Point2D{X: x1, Y: start.Y + m*(x1-start.X)},
		geometry.Point2D{X: x2, Y: start.Y + m*(x2-start.X)}, nil
}

// isSeaward reports whether p lies on the sea side of the coastline
// direction before->after. side is the coast's handedness sign times the
// grid orientation, so that the test is made in map view.
func isSeaward(start, before, after, p geometry.Point2D, side float64) bool {
	vx, vy := after.X-before.X, after.Y-before.Y
	wx, wy := p.X-start.X, p.Y-start.Y
	return side*(vx*wy-vy*wx) < 0
}
