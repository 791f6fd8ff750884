package geometry

// Shape is an ordered sequence of points. Coastlines and profiles embed it.
type Shape struct {
	points []Point2D
}

// NewShape creates a shape holding a copy of points.
func NewShape(points ...Point2D) Shape {
	s := Shape{points: make([]Point2D, len(points))}
	copy(s.points, points)
	return s
}

// Len returns the number of points.
func (s *Shape) Len() int {
	return len(s.points)
}

// At returns the i-th point.
func (s *Shape) At(i int) Point2D {
	return s.points[i]
}

// Set replaces the i-th point.
func (s *Shape) Set(i int, p Point2D) {
	s.points[i] = p
}

// Last returns the final point. The shape must not be empty.
func (s *Shape) Last() Point2D {
	return s.points[len(s.points)-1]
}

// Append adds points to the end of the shape.
func (s *Shape) Append(p ...Point2D) {
	s.points = append(s.points, p...)
}

// Insert places p at index i, shifting later points up.
func (s *Shape) Insert(i int, p Point2D) {
	s.points = append(s.points, Point2D{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = p
}

// Resize truncates or zero-extends the shape to n points.
func (s *Shape) Resize(n int) {
	if n <= len(s.points) {
		s.points = s.points[:n]
		return
	}
	s.points = append(s.points, make([]Point2D, n-len(s.points))...)
}

// Points returns a copy of the points.
func (s *Shape) Points() []Point2D {
	out := make([]Point2D, len(s.points))
	copy(out, s.points)
	return out
}

// Length returns the polyline length.
func (s *Shape) Length() float64 {
	return PolylineLength(s.points)
}

// Bounds returns the bounding rectangle of the shape.
func (s *Shape) Bounds() Rect {
	return BoundingBox(s.points)
}
