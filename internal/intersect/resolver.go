package intersect

import (
	"fmt"
	"log/slog"
	"math/rand"

	"cliffline/internal/profile"
	"cliffline/pkg/geometry"
)

// Coin breaks ties between equally long profiles. *rand.Rand satisfies it.
type Coin interface {
	Intn(n int) int
}

// Options configures Resolve.
type Options struct {
	Coin   Coin
	Logger *slog.Logger
}

// Stats counts the resolutions Resolve made, by kind.
type Stats struct {
	Joined    int // one profile cut at a vertex of the other and joined to it
	Merged    int // both cut on their final segments and given a shared end
	Truncated int // the shorter profile cut and joined to the longer
	Dropped   int // cut back to the coastline and marked too short
}

// Total returns the number of crossings resolved.
func (s Stats) Total() int {
	return s.Joined + s.Merged + s.Truncated + s.Dropped
}

// Resolve removes crossings between the valid profiles of set. Pairs are
// examined in order of increasing along-coast separation, looking both
// down- and up-coast from each profile. Pairs that already end on a shared
// segment, or at the same point, are resolved and skipped.
func Resolve(set *profile.Set, opts Options) (Stats, error) {
	r := resolver{set: set, coin: opts.Coin, logger: opts.Logger}
	if r.coin == nil {
		r.coin = rand.New(rand.NewSource(1))
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	order := set.AlongCoast()
	r.reindex()
	for dist := 1; dist < len(order); dist++ {
		for i, a := range order {
			for _, j := range []int{i - dist, i + dist} {
				if j < 0 || j >= len(order) {
					continue
				}
				b := order[j]
				if !a.Valid() || !b.Valid() || r.resolved(a, b) || !r.near(a, b) {
					continue
				}
				c, ok := Find(a, b)
				if !ok {
					continue
				}
				if err := r.resolve(a, b, c); err != nil {
					return r.stats, fmt.Errorf("resolve profiles %d and %d: %w", a.ID, b.ID, err)
				}
				r.reindex()
			}
		}
	}

	r.logger.Debug("Resolved profile crossings", "joined", r.stats.Joined, "merged", r.stats.Merged,
		"truncated", r.stats.Truncated, "dropped", r.stats.Dropped)
	return r.stats, nil
}

type resolver struct {
	set    *profile.Set
	coin   Coin
	logger *slog.Logger
	stats  Stats

	index *extentIndex
	hits  map[int]map[int]bool
}

func (r *resolver) reindex() {
	var valid []*profile.Profile
	for _, p := range r.set.All() {
		if p.Valid() {
			valid = append(valid, p)
		}
	}
	r.index = newExtentIndex(valid, r.set.Tolerance())
	r.hits = make(map[int]map[int]bool)
}

// resolved reports whether a and b already meet at their seaward ends,
// either along a shared final segment or at a common end point.
func (r *resolver) resolved(a, b *profile.Profile) bool {
	return r.set.SharesFinal(a.ID, b.ID) || a.End().Near(b.End(), r.set.Tolerance())
}

func (r *resolver) near(a, b *profile.Profile) bool {
	hits, ok := r.hits[a.ID]
	if !ok {
		hits = r.index.neighbours(a)
		r.hits[a.ID] = hits
	}
	return hits[b.ID]
}

func (r *resolver) resolve(a, b *profile.Profile, c Crossing) error {
	tol := r.set.Tolerance()
	va := geometry.NearestVertex(a.Points(), c.Point, tol)
	vb := geometry.NearestVertex(b.Points(), c.Point, tol)

	var changed []int
	switch {
	case va > 0:
		changed = r.join(b, c.SegB, c.Point, a, va)
		r.logger.Debug("Joined profile at vertex", "profile", b.ID, "onto", a.ID, "vertex", va)
	case vb > 0:
		changed = r.join(a, c.SegA, c.Point, b, vb)
		r.logger.Debug("Joined profile at vertex", "profile", a.ID, "onto", b.ID, "vertex", vb)
	case c.SegA == a.NumSegments()-1 && c.SegB == b.NumSegments()-1:
		if r.degenerate(a, c.SegA, c.Point) || r.degenerate(b, c.SegB, c.Point) {
			return nil
		}
		changed = append(changed, r.set.Truncate(a.ID, c.SegA, c.Point)...)
		changed = append(changed, r.set.Truncate(b.ID, c.SegB, c.Point)...)
		changed = append(changed, r.set.MergeFinal(a.ID, b.ID, c.End)...)
		r.stats.Merged++
		r.logger.Debug("Merged profile ends", "a", a.ID, "b", b.ID, "x", c.End.X, "y", c.End.Y)
	default:
		keep, cut := a, b
		keepSeg, cutSeg := c.SegA, c.SegB
		na, nb := a.NumSegments(), b.NumSegments()
		if na < nb || (na == nb && r.coin.Intn(2) == 0) {
			keep, cut = b, a
			keepSeg, cutSeg = c.SegB, c.SegA
		}
		if r.degenerate(cut, cutSeg, c.Point) {
			return nil
		}
		changed = append(changed, r.set.Split(keep.ID, keepSeg, c.Point)...)
		changed = append(changed, r.set.Truncate(cut.ID, cutSeg, c.Point)...)
		changed = append(changed, r.set.Adopt(cut.ID, keep.ID, keepSeg+1)...)
		r.stats.Truncated++
		r.logger.Debug("Truncated profile", "profile", cut.ID, "onto", keep.ID, "segment", keepSeg+1)
	}

	for _, id := range changed {
		if err := r.set.Check(id); err != nil {
			return err
		}
	}
	return nil
}

// join cuts p at pt on segment seg and has it continue along onto from
// vertex v onwards. When v is the last vertex of onto there is nothing to
// adopt and the two profiles end at the same point.
func (r *resolver) join(p *profile.Profile, seg int, pt geometry.Point2D, onto *profile.Profile, v int) []int {
	if r.degenerate(p, seg, pt) {
		return nil
	}
	changed := r.set.Truncate(p.ID, seg, pt)
	changed = append(changed, r.set.Adopt(p.ID, onto.ID, v)...)
	r.stats.Joined++
	return changed
}

// degenerate marks p too short when a cut at pt would leave nothing of it.
func (r *resolver) degenerate(p *profile.Profile, seg int, pt geometry.Point2D) bool {
	if seg > 0 || !p.Start().Near(pt, r.set.Tolerance()) {
		return false
	}
	p.TooShort = true
	r.stats.Dropped++
	r.logger.Debug("Profile cut back to the coastline", "profile", p.ID)
	return true
}
