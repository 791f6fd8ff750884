package delineate

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"cliffline/internal/cliff"
	"cliffline/internal/coast"
	"cliffline/internal/config"
	"cliffline/internal/intersect"
	"cliffline/internal/profile"
	"cliffline/internal/raster"
	"cliffline/internal/sea"
)

// Coast is one coastline together with the profiles built along it.
type Coast struct {
	Line     *coast.Coastline
	Profiles *profile.Set
}

// Summary reports what Execute found.
type Summary struct {
	SeaCells      int
	Coasts        int
	Profiles      int
	ValidProfiles int
	Crossings     int
	Cliffs        int
	Beaches       int
}

func (s Summary) String() string {
	return fmt.Sprintf("sea cells %d, coasts %d, profiles %d (%d valid), crossings %d, cliffs %d, beaches %d",
		s.SeaCells, s.Coasts, s.Profiles, s.ValidProfiles, s.Crossings, s.Cliffs, s.Beaches)
}

// Run is a single extraction over one grid.
type Run struct {
	grid   *raster.Grid
	cfg    *config.Config
	logger *slog.Logger
	rng    *rand.Rand
	coasts []*Coast
}

// New validates cfg and builds the grid from src.
func New(src raster.ElevationSource, cfg *config.Config, logger *slog.Logger) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g, err := raster.NewGrid(src)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Run{
		grid:   g,
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Grid returns the grid the run works on.
func (r *Run) Grid() *raster.Grid { return r.grid }

// Coasts returns the coasts found by Execute.
func (r *Run) Coasts() []*Coast { return r.coasts }

// Execute runs every stage once. ctx is checked between coasts.
func (r *Run) Execute(ctx context.Context) (Summary, error) {
	var sum Summary
	g := r.grid
	r.logger.Info("Starting delineation", "grid", g.String(), "still_water", r.cfg.StillWaterLevel)

	sum.SeaCells = sea.Fill(g, r.cfg.StillWaterLevel, r.logger)

	lines, err := coast.TraceAll(g, r.cfg.TraceOptions(r.logger))
	if err != nil {
		return sum, fmt.Errorf("trace coastlines: %w", err)
	}
	sum.Coasts = len(lines)

	r.coasts = r.coasts[:0]
	for _, cl := range lines {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		c, crossings, err := r.buildCoast(cl)
		if err != nil {
			return sum, fmt.Errorf("coast %d: %w", cl.ID, err)
		}
		r.coasts = append(r.coasts, c)
		sum.Crossings += crossings
	}

	g.ClearProfiles()
	for _, c := range r.coasts {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := r.stamp(c); err != nil {
			return sum, fmt.Errorf("coast %d: %w", c.Line.ID, err)
		}
		if err := c.Profiles.CheckAll(); err != nil {
			return sum, fmt.Errorf("coast %d: %w", c.Line.ID, err)
		}
		cs := cliff.Classify(g, c.Line, c.Profiles, r.cfg.CliffOptions(r.logger))
		sum.Cliffs += cs.Cliffs
		sum.Beaches += cs.Beaches

		sum.Profiles += c.Profiles.Len()
		for _, p := range c.Profiles.All() {
			if p.Valid() {
				sum.ValidProfiles++
			}
		}
	}

	r.logger.Info("Finished delineation", "summary", sum.String())
	return sum, nil
}

func (r *Run) buildCoast(cl *coast.Coastline) (*Coast, int, error) {
	g := r.grid
	coast.EstimateCurvature(cl, r.cfg.CurvatureOptions(g.Orientation()))

	c := &Coast{Line: cl, Profiles: profile.NewSet(cl.ID, g.CellSize()*1e-6)}
	valid, err := profile.Build(g, cl, c.Profiles, r.cfg.BuildOptions(r.logger))
	if err != nil {
		return nil, 0, fmt.Errorf("build profiles: %w", err)
	}

	stats, err := intersect.Resolve(c.Profiles, r.cfg.ResolveOptions(r.rng, r.logger))
	if err != nil {
		return nil, 0, err
	}
	r.logger.Debug("Coast profiles ready", "coast", cl.ID, "points", cl.Len(),
		"valid", valid, "crossings", stats.Total())
	return c, stats.Total(), nil
}

// stamp rasterizes every valid profile of c onto the grid. A profile whose
// geometry changes because a coincident profile was cut gives up its cells
// and is rasterized again.
func (r *Run) stamp(c *Coast) error {
	var st profile.RasterState
	opts := profile.RasterOptions{
		Seaward: r.cfg.BuildOptions(nil).Direction == profile.Seaward,
		Stamp:   true,
	}

	pending := c.Profiles.AlongCoast()
	for pass := 0; len(pending) > 0 && pass <= c.Profiles.Len(); pass++ {
		again := make(map[int]bool)
		for _, p := range pending {
			if !p.Valid() {
				continue
			}
			if pass > 0 {
				profile.Unstamp(r.grid, c.Profiles, p)
			}
			changed, err := profile.Rasterize(r.grid, c.Profiles, p, opts, &st)
			if err != nil {
				return err
			}
			for _, id := range changed {
				if id != p.ID {
					again[id] = true
				}
			}
		}

		pending = pending[:0]
		for id := range again {
			pending = append(pending, c.Profiles.Get(id))
		}
		slices.SortFunc(pending, func(a, b *profile.Profile) int { return a.CoastPoint - b.CoastPoint })
	}
	return nil
}
