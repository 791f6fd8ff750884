package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffineTransform_InverseRoundTrip(t *testing.T) {
	tr := AffineTransform{A: 5, TX: 1000.5, D: -5, TY: 2000}
	inv, ok := tr.Inverse()
	require.True(t, ok)

	for _, p := range []Point2D{{0, 0}, {3.25, 7}, {-2, 11.5}} {
		back := inv.Apply(tr.Apply(p))
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}
	assert.Less(t, tr.Det(), 0.0)
}

func TestAffineTransform_SingularHasNoInverse(t *testing.T) {
	_, ok := AffineTransform{A: 1, B: 2, C: 2, D: 4}.Inverse()
	assert.False(t, ok)
}

func TestSegmentCrossing(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Point2D
		want       Point2D
		ok         bool
	}{
		{"cross", Point2D{0, 0}, Point2D{2, 2}, Point2D{0, 2}, Point2D{2, 0}, Point2D{1, 1}, true},
		{"touch at end", Point2D{0, 0}, Point2D{1, 0}, Point2D{1, -1}, Point2D{1, 1}, Point2D{1, 0}, true},
		{"disjoint", Point2D{0, 0}, Point2D{1, 0}, Point2D{2, -1}, Point2D{2, 1}, Point2D{}, false},
		{"parallel", Point2D{0, 0}, Point2D{1, 0}, Point2D{0, 1}, Point2D{1, 1}, Point2D{}, false},
		{"collinear overlap", Point2D{0, 0}, Point2D{2, 0}, Point2D{1, 0}, Point2D{3, 0}, Point2D{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SegmentCrossing(tt.a, tt.b, tt.c, tt.d)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)

			swapped, ok := SegmentCrossing(tt.c, tt.d, tt.a, tt.b)
			require.True(t, ok)
			assert.True(t, got.Near(swapped, 1e-12))
		})
	}
}

func TestShape_AppendInsertResize(t *testing.T) {
	s := NewShape(Point2D{0, 0}, Point2D{2, 0})
	s.Insert(1, Point2D{1, 0})
	s.Append(Point2D{2, 2})
	require.Equal(t, 4, s.Len())
	assert.Equal(t, Point2D{1, 0}, s.At(1))
	assert.InDelta(t, 4.0, s.Length(), 1e-12)

	s.Resize(2)
	assert.Equal(t, []Point2D{{0, 0}, {1, 0}}, s.Points())
	assert.Equal(t, Point2D{1, 0}, s.Last())
}

func TestNearestVertex(t *testing.T) {
	pts := []Point2D{{0, 0}, {1, 0}, {2, 0}}
	assert.Equal(t, 1, NearestVertex(pts, Point2D{1.0000001, 0}, 1e-6))
	assert.Equal(t, -1, NearestVertex(pts, Point2D{1.5, 0}, 1e-6))
}

func TestCross_Sign(t *testing.T) {
	// Walking east then turning south (right turn in a y-up frame).
	assert.Greater(t, Cross(Point2D{0, 0}, Point2D{-1, 0}, Point2D{0, -1}), 0.0)
	assert.Less(t, Cross(Point2D{0, 0}, Point2D{-1, 0}, Point2D{0, 1}), 0.0)
}
