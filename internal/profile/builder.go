package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"cliffline/internal/coast"
	"cliffline/internal/raster"
)

// BuildOptions configures profile construction along one coastline.
type BuildOptions struct {
	Length    float64 // external units
	Spacing   float64 // along-coast distance cleared around each profile; 0 disables
	Direction Direction
	Logger    *slog.Logger
}

// DefaultBuildOptions returns defaults for a grid with the given cell size.
func DefaultBuildOptions(cellSize float64) BuildOptions {
	return BuildOptions{
		Length:    20 * cellSize,
		Spacing:   3 * cellSize,
		Direction: Seaward,
	}
}

// Build creates the normal profiles of cl and adds them to set. The ends
// of the coastline are tried first, then the remaining points from the most
// concave down. Each new profile is rasterized once, without touching the
// grid, to truncate it and flag it. Returns the number of valid profiles.
func Build(g *raster.Grid, cl *coast.Coastline, set *Set, opts BuildOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	n := cl.Len()
	if n < 2 {
		return 0, nil
	}

	b := builder{
		g:      g,
		cl:     cl,
		set:    set,
		opts:   opts,
		side:   cl.Handedness.Sign() * g.Orientation(),
		raster: RasterOptions{Seaward: opts.Direction == Seaward},
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cl.Curvature(order[i]) > cl.Curvature(order[j])
	})
	order = append([]int{0, n - 1}, order...)

	searched := make([]bool, n)
	valid := 0
	for _, i := range order {
		if searched[i] {
			continue
		}
		searched[i] = true

		p, err := b.create(i)
		if err != nil {
			if errors.Is(err, ErrInconsistentMultiLine) {
				return valid, err
			}
			logger.Debug("Profile not created", "coast", cl.ID, "point", i, "error", err)
			continue
		}
		cl.SetProfileAt(i, p.ID)
		if !p.Valid() {
			logger.Debug("Profile rejected", "coast", cl.ID, "point", i, "profile", p.ID,
				"too_short", p.TooShort, "hit_coast", p.HitCoast, "hit_land", p.HitLand)
			continue
		}
		valid++
		b.clearAround(searched, i)
	}

	logger.Debug("Built profiles", "coast", cl.ID, "attempted", set.Len(), "valid", valid)
	return valid, nil
}

type builder struct {
	g      *raster.Grid
	cl     *coast.Coastline
	set    *Set
	opts   BuildOptions
	side   float64
	raster RasterOptions
}

func (b *builder) create(i int) (*Profile, error) {
	n := b.cl.Len()
	before, after := i-1, i+1
	if before < 0 {
		before = 0
	}
	if after > n-1 {
		after = n - 1
	}

	start := b.cl.Point(i)
	pb, pa := b.cl.Point(before), b.cl.Point(after)
	e1, e2, err := normalEnds(start, pb, pa, b.opts.Length)
	if err != nil {
		return nil, err
	}
	if !b.g.ContainsExternal(e1) || !b.g.ContainsExternal(e2) {
		return nil, ErrOutsideGrid
	}

	sea, land := e1, e2
	if !isSeaward(start, pb, pa, e1, b.side) {
		sea, land = e2, e1
	}
	end := sea
	if b.opts.Direction == Landward {
		end = land
	}

	p, err := b.set.Add(i, start, end)
	if err != nil {
		return nil, err
	}
	p.StartOfCoast = i == 0
	p.EndOfCoast = i == n-1

	if _, err := Rasterize(b.g, b.set, p, b.raster, nil); err != nil {
		return p, fmt.Errorf("rasterize profile %d: %w", p.ID, err)
	}
	return p, nil
}

// clearAround marks every coastline point within the spacing distance of
// point i, measured along the coast, as searched.
func (b *builder) clearAround(searched []bool, i int) {
	if b.opts.Spacing <= 0 {
		return
	}
	for _, step := range []int{-1, 1} {
		dist := 0.0
		for j := i + step; j >= 0 && j < len(searched); j += step {
			dist += b.cl.Point(j).Distance(b.cl.Point(j - step))
			if dist > b.opts.Spacing {
				break
			}
			searched[j] = true
		}
	}
}
