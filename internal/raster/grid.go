// Package raster holds the cell grid shared by every stage of coastline and
// profile extraction.
package raster

import (
	"errors"
	"fmt"
	"math"

	"cliffline/pkg/geometry"
)

var (
	// ErrEmptyGrid indicates the elevation source has no rows or no columns.
	ErrEmptyGrid = errors.New("raster: grid must have at least one row and one column")
	// ErrBadCellSize indicates a non-positive cell side length.
	ErrBadCellSize = errors.New("raster: cell size must be positive")
	// ErrSingularTransform indicates the grid transform cannot be inverted.
	ErrSingularTransform = errors.New("raster: grid transform is not invertible")
)

// NoID marks an unset coast or profile id on a cell.
const NoID = -1

// ElevationSource supplies the surface a Grid is built from.
// Transform maps grid coordinates (cell centroids at integer x, y; row 0 is
// the first row of the raster) to the external CRS.
type ElevationSource interface {
	Size() (nx, ny int)
	CellSize() float64
	Transform() geometry.AffineTransform
	Elevation(x, y int) float64
}

// Cell is one raster cell.
type Cell struct {
	elevation float64
	seaDepth  float64
	sea       bool
	coastline bool
	coast     int
	profile   int
	owner     int // coast of profile
}

// Elevation returns the cell's surface elevation.
func (c *Cell) Elevation() float64 { return c.elevation }

// SeaDepth returns max(still water level - elevation, 0) once the sea is filled.
func (c *Cell) SeaDepth() float64 { return c.seaDepth }

// IsSea reports whether the cell is in contiguous sea.
func (c *Cell) IsSea() bool { return c.sea }

// IsCoastline reports whether a coastline was traced through the cell.
func (c *Cell) IsCoastline() bool { return c.coastline }

// Coast returns the id of the coast the cell belongs to, or NoID.
func (c *Cell) Coast() int { return c.coast }

// Profile returns the id of the normal profile rasterized onto the cell, or
// NoID. Profile ids are only unique within one coast; see ProfileCoast.
func (c *Cell) Profile() int { return c.profile }

// ProfileCoast returns the coast whose profile was rasterized onto the cell,
// or NoID.
func (c *Cell) ProfileCoast() int { return c.owner }

// SetSea marks the cell as contiguous sea with the given depth.
func (c *Cell) SetSea(depth float64) {
	c.sea = true
	c.seaDepth = depth
}

// SetSeaDepth records the inundation depth without changing sea status.
func (c *Cell) SetSeaDepth(depth float64) { c.seaDepth = depth }

// SetCoastline marks the cell as lying on coast id.
func (c *Cell) SetCoastline(coast int) {
	c.coastline = true
	c.coast = coast
}

// ClearCoastline un-marks the cell.
func (c *Cell) ClearCoastline() {
	c.coastline = false
	c.coast = NoID
}

// SetProfile records that profile id of the given coast was rasterized onto
// the cell.
func (c *Cell) SetProfile(coast, id int) {
	c.owner = coast
	c.profile = id
}

// ClearProfile removes the profile recorded on the cell.
func (c *Cell) ClearProfile() {
	c.owner = NoID
	c.profile = NoID
}

// Grid is a rectangular array of cells stored row-major.
type Grid struct {
	nx, ny   int
	cellSize float64
	toExt    geometry.AffineTransform
	toGrid   geometry.AffineTransform
	cells    []Cell
}

// NewGrid allocates a grid and copies elevations from src.
func NewGrid(src ElevationSource) (*Grid, error) {
	nx, ny := src.Size()
	if nx <= 0 || ny <= 0 {
		return nil, ErrEmptyGrid
	}
	if src.CellSize() <= 0 {
		return nil, ErrBadCellSize
	}
	tr := src.Transform()
	inv, ok := tr.Inverse()
	if !ok {
		return nil, ErrSingularTransform
	}

	g := &Grid{
		nx:       nx,
		ny:       ny,
		cellSize: src.CellSize(),
		toExt:    tr,
		toGrid:   inv,
		cells:    make([]Cell, nx*ny),
	}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			g.cells[y*nx+x] = Cell{
				elevation: src.Elevation(x, y),
				coast:     NoID,
				profile:   NoID,
				owner:     NoID,
			}
		}
	}
	return g, nil
}

// NX returns the number of columns.
func (g *Grid) NX() int { return g.nx }

// NY returns the number of rows.
func (g *Grid) NY() int { return g.ny }

// CellSize returns the cell side length in external units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// InGrid reports whether (x,y) lies within the grid.
func (g *Grid) InGrid(x, y int) bool {
	return x >= 0 && x < g.nx && y >= 0 && y < g.ny
}

// IsEdge reports whether (x,y) is on the outermost ring of cells.
func (g *Grid) IsEdge(x, y int) bool {
	return x == 0 || y == 0 || x == g.nx-1 || y == g.ny-1
}

// Cell returns the cell at (x,y). The coordinates must be in the grid.
func (g *Grid) Cell(x, y int) *Cell {
	return &g.cells[y*g.nx+x]
}

// CellAt is Cell for a grid point.
func (g *Grid) CellAt(p geometry.PointInt) *Cell {
	return g.Cell(p.X, p.Y)
}

// GridToExternal converts a cell centroid to external coordinates.
func (g *Grid) GridToExternal(p geometry.PointInt) geometry.Point2D {
	return g.toExt.Apply(p.ToFloat())
}

// ExternalToGrid converts external coordinates to fractional grid coordinates.
func (g *Grid) ExternalToGrid(p geometry.Point2D) geometry.Point2D {
	return g.toGrid.Apply(p)
}

// ContainsExternal reports whether the external point falls inside a grid cell.
func (g *Grid) ContainsExternal(p geometry.Point2D) bool {
	q := g.ExternalToGrid(p)
	return q.X >= -0.5 && q.X < float64(g.nx)-0.5 && q.Y >= -0.5 && q.Y < float64(g.ny)-0.5
}

// Orientation is +1 when the transform mirrors the row axis (a north-up
// raster, row 0 at the top) and -1 otherwise. Multiplying an external-CRS
// cross product by it gives the turn direction as seen in map view.
func (g *Grid) Orientation() float64 {
	if g.toExt.Det() < 0 {
		return 1
	}
	return -1
}

// ClearProfiles resets the profile id of every cell.
func (g *Grid) ClearProfiles() {
	for i := range g.cells {
		g.cells[i].ClearProfile()
	}
}

func (g *Grid) String() string {
	return fmt.Sprintf("grid %dx%d @ %g", g.nx, g.ny, g.cellSize)
}

// NorthUp returns the transform of a north-up raster whose top-left corner is
// at (originX, originY): columns grow east and rows grow south.
func NorthUp(originX, originY, cellSize float64) geometry.AffineTransform {
	return geometry.AffineTransform{
		A: cellSize, TX: originX + cellSize/2,
		D: -cellSize, TY: originY - cellSize/2,
	}
}

// DenseSource is an in-memory ElevationSource.
type DenseSource struct {
	NX, NY int
	Side   float64
	Affine geometry.AffineTransform
	Z      []float64 // row-major, len NX*NY
}

// NewDenseSource builds a source by evaluating fn at every cell.
func NewDenseSource(nx, ny int, cellSize float64, tr geometry.AffineTransform, fn func(x, y int) float64) *DenseSource {
	s := &DenseSource{NX: nx, NY: ny, Side: cellSize, Affine: tr, Z: make([]float64, nx*ny)}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			s.Z[y*nx+x] = fn(x, y)
		}
	}
	return s
}

// Size implements ElevationSource.
func (s *DenseSource) Size() (int, int) { return s.NX, s.NY }

// CellSize implements ElevationSource.
func (s *DenseSource) CellSize() float64 { return s.Side }

// Transform implements ElevationSource.
func (s *DenseSource) Transform() geometry.AffineTransform { return s.Affine }

// Elevation implements ElevationSource. Missing samples read as NaN.
func (s *DenseSource) Elevation(x, y int) float64 {
	i := y*s.NX + x
	if i < 0 || i >= len(s.Z) {
		return math.NaN()
	}
	return s.Z[i]
}
