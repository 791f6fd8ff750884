// Package coast traces vector coastlines out of a sea-filled grid, smooths
// them and estimates their curvature.
package coast

import (
	"cliffline/internal/raster"
	"cliffline/pkg/geometry"
)

// Handedness says on which side of the direction of travel the sea lies,
// in map view with north up.
type Handedness int

const (
	// RightHanded coasts keep the sea on the right.
	RightHanded Handedness = iota
	// LeftHanded coasts keep the sea on the left.
	LeftHanded
)

func (h Handedness) String() string {
	switch h {
	case RightHanded:
		return "right"
	case LeftHanded:
		return "left"
	default:
		return "unknown"
	}
}

// Sign is +1 for right-handed coasts and -1 for left-handed ones.
func (h Handedness) Sign() float64 {
	if h == LeftHanded {
		return -1
	}
	return 1
}

// Coastline is one traced, smoothed shoreline in the external CRS.
//
// Curvature, profile ids, grid cells and landforms are parallel to the
// points: every slice always has Len() entries.
type Coastline struct {
	ID         int
	Handedness Handedness

	shape     geometry.Shape
	curvature []float64
	profileAt []int
	cells     []geometry.PointInt
	landforms []Landform
}

// NewCoastline creates an empty coastline.
func NewCoastline(id int, h Handedness) *Coastline {
	return &Coastline{ID: id, Handedness: h}
}

// Append adds a point together with the unsmoothed grid cell it came from.
func (c *Coastline) Append(p geometry.Point2D, cell geometry.PointInt) {
	c.shape.Append(p)
	c.curvature = append(c.curvature, 0)
	c.profileAt = append(c.profileAt, raster.NoID)
	c.cells = append(c.cells, cell)
	c.landforms = append(c.landforms, nil)
}

// Len returns the number of coastline points.
func (c *Coastline) Len() int { return c.shape.Len() }

// Point returns the i-th point.
func (c *Coastline) Point(i int) geometry.Point2D { return c.shape.At(i) }

// Points returns a copy of all points.
func (c *Coastline) Points() []geometry.Point2D { return c.shape.Points() }

// Cell returns the grid cell marked coastline at point i.
func (c *Coastline) Cell(i int) geometry.PointInt { return c.cells[i] }

// Curvature returns the curvature at point i.
func (c *Coastline) Curvature(i int) float64 { return c.curvature[i] }

// Curvatures returns a copy of the curvature series.
func (c *Coastline) Curvatures() []float64 {
	out := make([]float64, len(c.curvature))
	copy(out, c.curvature)
	return out
}

// SetCurvature stores the curvature at point i.
func (c *Coastline) SetCurvature(i int, k float64) { c.curvature[i] = k }

// ProfileAt returns the id of the profile starting at point i, or raster.NoID.
func (c *Coastline) ProfileAt(i int) int { return c.profileAt[i] }

// SetProfileAt records that a profile starts at point i.
func (c *Coastline) SetProfileAt(i, id int) { c.profileAt[i] = id }

// Landform returns the landform recorded at point i, or nil.
func (c *Coastline) Landform(i int) Landform { return c.landforms[i] }

// SetLandform records the landform at point i.
func (c *Coastline) SetLandform(i int, lf Landform) { c.landforms[i] = lf }

// Length returns the length of the smoothed coastline.
func (c *Coastline) Length() float64 { return c.shape.Length() }
