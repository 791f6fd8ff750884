package profile

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"cliffline/pkg/geometry"
)

var (
	// ErrInconsistentMultiLine is fatal: a profile's segments are out of step
	// with its points or with the profiles it shares them with.
	ErrInconsistentMultiLine = errors.New("profile: inconsistent multi-line")
	// ErrTooFewPoints indicates a profile created with fewer than two points.
	ErrTooFewPoints = errors.New("profile: need at least two points")
)

// Coincidence names one profile's own segment within a shared stretch of
// geometry.
type Coincidence struct {
	Profile int
	Segment int
}

// span is one segment of geometry. Every profile running along it is a
// member, at that profile's own segment index, and every member's segment
// table points at the same span.
type span struct {
	members []Coincidence
}

func (s *span) find(id int) int {
	for i, m := range s.members {
		if m.Profile == id {
			return i
		}
	}
	return -1
}

func (s *span) has(id int) bool { return s.find(id) >= 0 }

func (s *span) remove(id int) {
	if i := s.find(id); i >= 0 {
		s.members = slices.Delete(s.members, i, i+1)
	}
}

func (s *span) renumber(id, seg int) {
	if i := s.find(id); i >= 0 {
		s.members[i].Segment = seg
	}
}

func (s *span) snapshot() []Coincidence {
	return slices.Clone(s.members)
}

// Set owns the profiles of one coast and every operation that changes their
// geometry. Each operation on a profile is mirrored onto the profiles sharing
// the affected segment, so shared stretches stay identical and each profile
// keeps its own segment numbering.
type Set struct {
	coast    int
	tol      float64
	profiles []*Profile
}

// NewSet creates an empty set for the given coast. Points closer than tol
// are the same vertex.
func NewSet(coast int, tol float64) *Set {
	return &Set{coast: coast, tol: tol}
}

// Coast returns the id of the coast the profiles belong to.
func (s *Set) Coast() int { return s.coast }

// Add creates a profile from a coastline point index and its vertices. Each
// segment starts out unshared.
func (s *Set) Add(coastPoint int, points ...geometry.Point2D) (*Profile, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	p := &Profile{ID: len(s.profiles), CoastPoint: coastPoint, shape: geometry.NewShape(points...)}
	for i := 0; i < len(points)-1; i++ {
		p.segs = append(p.segs, &span{members: []Coincidence{{Profile: p.ID, Segment: i}}})
	}
	s.profiles = append(s.profiles, p)
	return p, nil
}

// Len returns the number of profiles.
func (s *Set) Len() int { return len(s.profiles) }

// Get returns the profile with the given id.
func (s *Set) Get(id int) *Profile { return s.profiles[id] }

// All returns the profiles in id order.
func (s *Set) All() []*Profile { return slices.Clone(s.profiles) }

// AlongCoast returns the profiles ordered by the coastline point they start at.
func (s *Set) AlongCoast() []*Profile {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CoastPoint < out[j].CoastPoint })
	return out
}

// Tolerance returns the vertex-matching distance.
func (s *Set) Tolerance() float64 { return s.tol }

// Split inserts pt into segment seg of profile id, turning it into two
// segments, and does the same to every profile sharing that segment. Each
// of those profiles has its own segment numbers seaward of the split advanced
// by one. Returns the ids of the profiles changed.
func (s *Set) Split(id, seg int, pt geometry.Point2D) []int {
	old := s.profiles[id].segs[seg]
	fresh := &span{}
	var changed []int

	for _, m := range old.snapshot() {
		q := s.profiles[m.Profile]
		for j := len(q.segs) - 1; j > m.Segment; j-- {
			q.segs[j].renumber(q.ID, j+1)
		}
		q.shape.Insert(m.Segment+1, pt)
		q.segs = slices.Insert(q.segs, m.Segment+1, fresh)
		fresh.members = append(fresh.members, Coincidence{Profile: q.ID, Segment: m.Segment + 1})
		changed = append(changed, q.ID)
	}
	return changed
}

// Truncate cuts profile id at pt on segment seg, discarding everything
// seaward of it, and cuts every profile sharing that segment the same way.
// When pt is the segment's first vertex the cut is made at that vertex
// instead, so no zero-length segment is left behind. Returns the ids of the
// profiles changed.
func (s *Set) Truncate(id, seg int, pt geometry.Point2D) []int {
	var changed []int
	for _, m := range s.profiles[id].segs[seg].snapshot() {
		q := s.profiles[m.Profile]
		keep := m.Segment + 1
		atVertex := m.Segment > 0 && q.shape.At(m.Segment).Near(pt, s.tol)
		if atVertex {
			keep = m.Segment
		}
		for j := keep; j < len(q.segs); j++ {
			q.segs[j].remove(q.ID)
		}
		q.segs = q.segs[:keep]
		q.shape.Resize(keep + 1)
		if !atVertex {
			q.shape.Set(keep, pt)
		}
		q.Truncated = true
		changed = append(changed, q.ID)
	}
	return changed
}

// Adopt extends profile id, and every profile sharing its final segment, with
// the segments of donor from segment from onwards. Profile id must end at
// the donor's vertex from. The adopted segments become shared with the donor.
// Returns the ids of the profiles changed.
func (s *Set) Adopt(id, donor, from int) []int {
	d := s.profiles[donor]
	p := s.profiles[id]
	var changed []int

	for _, m := range p.segs[len(p.segs)-1].snapshot() {
		q := s.profiles[m.Profile]
		if q.ID == donor || m.Segment != len(q.segs)-1 {
			continue
		}
		for j := from; j < len(d.segs); j++ {
			sp := d.segs[j]
			q.shape.Append(d.shape.At(j + 1))
			q.segs = append(q.segs, sp)
			sp.members = append(sp.members, Coincidence{Profile: q.ID, Segment: len(q.segs) - 1})
		}
		changed = append(changed, q.ID)
	}
	return changed
}

// MergeFinal gives profiles a and b, and every profile sharing either one's
// final segment, one new shared segment ending at end. Returns the ids of the
// profiles changed.
func (s *Set) MergeFinal(a, b int, end geometry.Point2D) []int {
	pa, pb := s.profiles[a], s.profiles[b]
	members := append(pa.segs[len(pa.segs)-1].snapshot(), pb.segs[len(pb.segs)-1].snapshot()...)

	fresh := &span{}
	var changed []int
	for _, m := range members {
		q := s.profiles[m.Profile]
		if fresh.has(q.ID) || m.Segment != len(q.segs)-1 {
			continue
		}
		q.shape.Append(end)
		q.segs = append(q.segs, fresh)
		fresh.members = append(fresh.members, Coincidence{Profile: q.ID, Segment: len(q.segs) - 1})
		changed = append(changed, q.ID)
	}
	return changed
}

// Coincident reports whether profile other shares segment seg of profile id.
func (s *Set) Coincident(id, seg, other int) bool {
	return s.profiles[id].segs[seg].has(other)
}

// SharesFinal reports whether a and b end with the same shared segment.
func (s *Set) SharesFinal(a, b int) bool {
	pa, pb := s.profiles[a], s.profiles[b]
	return pa.segs[len(pa.segs)-1] == pb.segs[len(pb.segs)-1]
}

// Check verifies the ledger invariants for profile id: one more point than
// segments, the profile listed in each of its segments at its own index,
// and every other member of a segment pointing back at the same segment.
func (s *Set) Check(id int) error {
	p := s.profiles[id]
	if p.shape.Len() != len(p.segs)+1 {
		return fmt.Errorf("%w: profile %d has %d points and %d segments",
			ErrInconsistentMultiLine, id, p.shape.Len(), len(p.segs))
	}
	for j, sp := range p.segs {
		i := sp.find(id)
		if i < 0 || sp.members[i].Segment != j {
			return fmt.Errorf("%w: profile %d segment %d does not list itself", ErrInconsistentMultiLine, id, j)
		}
		for _, m := range sp.members {
			if m.Profile < 0 || m.Profile >= len(s.profiles) {
				return fmt.Errorf("%w: profile %d segment %d lists unknown profile %d", ErrInconsistentMultiLine, id, j, m.Profile)
			}
			q := s.profiles[m.Profile]
			if m.Segment < 0 || m.Segment >= len(q.segs) || q.segs[m.Segment] != sp {
				return fmt.Errorf("%w: profile %d segment %d lists profile %d segment %d, which is not shared",
					ErrInconsistentMultiLine, id, j, m.Profile, m.Segment)
			}
		}
	}
	return nil
}

// CheckAll runs Check on every profile.
func (s *Set) CheckAll() error {
	for _, p := range s.profiles {
		if err := s.Check(p.ID); err != nil {
			return err
		}
	}
	return nil
}
