package coast

import "math"

// LandformCategory tags the concrete type behind a Landform.
type LandformCategory int

const (
	CategoryBeach LandformCategory = iota + 1
	CategoryCliff
)

func (c LandformCategory) String() string {
	switch c {
	case CategoryBeach:
		return "beach"
	case CategoryCliff:
		return "cliff"
	default:
		return "unknown"
	}
}

// Landform is what a coastline point was classified as. The implementations
// are Beach and Cliff; switch on the concrete type to read the payload.
type Landform interface {
	Category() LandformCategory
	landform()
}

// Beach is recorded where a profile found no cliff.
type Beach struct {
	Profile int
	Slope   float64 // mean rise per unit chainage along the profile
}

// Category implements Landform.
func (Beach) Category() LandformCategory { return CategoryBeach }
func (Beach) landform()                  {}

// Cliff is recorded where a profile located a cliff top.
type Cliff struct {
	Profile      int
	TopChainage  float64
	TopElevation float64
	ToeChainage  float64 // NaN when no toe was found
	ToeElevation float64 // NaN when no toe was found
	Reliable     bool
}

// Category implements Landform.
func (Cliff) Category() LandformCategory { return CategoryCliff }
func (Cliff) landform()                  {}

// Height returns the top-to-toe elevation difference, or 0 without a toe.
func (c Cliff) Height() float64 {
	if math.IsNaN(c.ToeElevation) {
		return 0
	}
	return c.TopElevation - c.ToeElevation
}
