// Package cliff locates cliff tops and toes on rasterized profiles and
// classifies the coastline points the profiles start from.
package cliff

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"cliffline/internal/coast"
	"cliffline/internal/profile"
	"cliffline/internal/raster"
)

// Options configures the cliff locator.
type Options struct {
	// Tolerance is how far, in elevation units, a detrended sample must
	// rise above or fall below the first-to-last trend line to count.
	Tolerance float64
	Logger    *slog.Logger
}

// DefaultOptions returns the default locator settings.
func DefaultOptions() Options {
	return Options{Tolerance: 0.5}
}

// Locate samples the grid elevation at every cell of p and records the
// cliff top and toe on it. Index 0 is the coastline end of the profile.
func Locate(g *raster.Grid, p *profile.Profile, tol float64) profile.CliffResult {
	cells := p.Cells()
	res := profile.CliffResult{Top: -1, Toe: -1}
	if len(cells) < 3 {
		return res
	}

	z := make([]float64, len(cells))
	for i, c := range cells {
		z[i] = g.CellAt(c).Elevation()
	}
	step := p.Length() / float64(len(z)-1)

	top, toe := locate(detrend(z), tol)
	if top < 0 {
		return res
	}
	res.Located = true
	res.Top = top
	res.TopChainage = float64(top) * step
	res.Reliable = true
	if toe >= 0 {
		res.Toe = toe
		res.ToeChainage = float64(toe) * step
		res.Reliable = z[toe] < z[top]
	}
	return res
}

// detrend subtracts the straight line through the first and last samples.
func detrend(z []float64) []float64 {
	n := len(z)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	first, last := z[0], z[n-1]
	for i, v := range z {
		trend := first
		if n > 1 {
			trend += (last - first) * float64(i) / float64(n-1)
		}
		out[i] = v - trend
	}
	return out
}

// locate returns the index of the highest detrended sample above tol, and
// the index of the lowest sample below -tol before it. Either is -1 when
// no sample qualifies.
func locate(d []float64, tol float64) (top, toe int) {
	if len(d) == 0 {
		return -1, -1
	}
	top = floats.MaxIdx(d)
	if d[top] <= tol {
		return -1, -1
	}
	if top == 0 {
		return top, -1
	}
	toe = floats.MinIdx(d[:top])
	if d[toe] >= -tol {
		toe = -1
	}
	return top, toe
}

// Summary counts the outcome of Classify.
type Summary struct {
	Cliffs   int
	Beaches  int
	Skipped  int
	Doubtful int // cliffs whose toe is not below their top
}

// Classify runs Locate on every valid profile of set and records a Cliff or
// Beach landform on the coastline point each profile starts from.
func Classify(g *raster.Grid, cl *coast.Coastline, set *profile.Set, opts Options) Summary {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sum Summary
	for _, p := range set.All() {
		if !p.Valid() {
			sum.Skipped++
			continue
		}
		p.Cliff = Locate(g, p, opts.Tolerance)
		cells := p.Cells()
		if !p.Cliff.Located {
			first := g.CellAt(cells[0]).Elevation()
			last := g.CellAt(cells[len(cells)-1]).Elevation()
			slope := 0.0
			if l := p.Length(); l > 0 {
				slope = (last - first) / l
			}
			cl.SetLandform(p.CoastPoint, coast.Beach{Profile: p.ID, Slope: slope})
			sum.Beaches++
			continue
		}

		lf := coast.Cliff{
			Profile:      p.ID,
			TopChainage:  p.Cliff.TopChainage,
			TopElevation: g.CellAt(cells[p.Cliff.Top]).Elevation(),
			ToeChainage:  math.NaN(),
			ToeElevation: math.NaN(),
			Reliable:     p.Cliff.Reliable,
		}
		if p.Cliff.Toe >= 0 {
			lf.ToeChainage = p.Cliff.ToeChainage
			lf.ToeElevation = g.CellAt(cells[p.Cliff.Toe]).Elevation()
		}
		cl.SetLandform(p.CoastPoint, lf)
		sum.Cliffs++
		if !lf.Reliable {
			sum.Doubtful++
			logger.Debug("Cliff toe not below top", "coast", cl.ID, "profile", p.ID)
		}
	}
	return sum
}
