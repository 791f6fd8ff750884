package raster

import (
	"testing"

	"cliffline/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(nx, ny int, z float64) *DenseSource {
	return NewDenseSource(nx, ny, 2, NorthUp(100, 200, 2), func(int, int) float64 { return z })
}

func TestNewGrid_Rejects(t *testing.T) {
	_, err := NewGrid(flat(0, 3, 1))
	assert.ErrorIs(t, err, ErrEmptyGrid)

	src := flat(3, 3, 1)
	src.Side = 0
	_, err = NewGrid(src)
	assert.ErrorIs(t, err, ErrBadCellSize)

	src = flat(3, 3, 1)
	src.Affine = geometry.AffineTransform{}
	_, err = NewGrid(src)
	assert.ErrorIs(t, err, ErrSingularTransform)
}

func TestGrid_CellsStartUnset(t *testing.T) {
	g, err := NewGrid(NewDenseSource(4, 3, 1, geometry.Identity(), func(x, y int) float64 { return float64(10*y + x) }))
	require.NoError(t, err)

	c := g.Cell(2, 1)
	assert.Equal(t, 12.0, c.Elevation())
	assert.False(t, c.IsSea())
	assert.False(t, c.IsCoastline())
	assert.Equal(t, NoID, c.Coast())
	assert.Equal(t, NoID, c.Profile())
	assert.Equal(t, NoID, c.ProfileCoast())
}

func TestGrid_EdgesAndBounds(t *testing.T) {
	g, err := NewGrid(flat(5, 4, 0))
	require.NoError(t, err)

	assert.True(t, g.InGrid(4, 3))
	assert.False(t, g.InGrid(5, 0))
	assert.False(t, g.InGrid(0, -1))
	assert.True(t, g.IsEdge(0, 2))
	assert.True(t, g.IsEdge(2, 3))
	assert.False(t, g.IsEdge(2, 2))
}

func TestGrid_TransformRoundTrip(t *testing.T) {
	g, err := NewGrid(flat(20, 10, 0))
	require.NoError(t, err)

	// Cell (0,0) centroid sits half a cell in from the top-left corner.
	assert.Equal(t, geometry.Point2D{X: 101, Y: 199}, g.GridToExternal(geometry.PointInt{}))

	for _, c := range []geometry.PointInt{{X: 0, Y: 0}, {X: 12, Y: 9}, {X: 19, Y: 3}} {
		back := g.ExternalToGrid(g.GridToExternal(c))
		assert.InDelta(t, float64(c.X), back.X, 1e-9)
		assert.InDelta(t, float64(c.Y), back.Y, 1e-9)
	}
	for _, p := range []geometry.Point2D{{X: 101, Y: 199}, {X: 113.7, Y: 190.2}, {X: 139, Y: 181}} {
		require.True(t, g.ContainsExternal(p))
		centre := g.GridToExternal(g.ExternalToGrid(p).Round())
		assert.InDelta(t, p.X, centre.X, g.CellSize()/2)
		assert.InDelta(t, p.Y, centre.Y, g.CellSize()/2)
	}

	assert.False(t, g.ContainsExternal(geometry.Point2D{X: 99, Y: 199}))
	assert.Equal(t, 1.0, g.Orientation())
}

func TestGrid_CoastlineFlags(t *testing.T) {
	g, err := NewGrid(flat(3, 3, 0))
	require.NoError(t, err)

	c := g.Cell(1, 1)
	c.SetCoastline(4)
	assert.True(t, c.IsCoastline())
	assert.Equal(t, 4, c.Coast())
	c.ClearCoastline()
	assert.False(t, c.IsCoastline())
	assert.Equal(t, NoID, c.Coast())

	c.SetProfile(2, 7)
	assert.Equal(t, 2, c.ProfileCoast())
	assert.Equal(t, 7, c.Profile())
	g.ClearProfiles()
	assert.Equal(t, NoID, c.Profile())
	assert.Equal(t, NoID, c.ProfileCoast())

	c.SetProfile(0, 3)
	c.ClearProfile()
	assert.Equal(t, NoID, c.Profile())
}
