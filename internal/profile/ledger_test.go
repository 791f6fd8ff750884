package profile

import (
	"testing"

	"cliffline/pkg/geometry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }

func mustAdd(t *testing.T, s *Set, coastPoint int, pts ...geometry.Point2D) *Profile {
	t.Helper()
	p, err := s.Add(coastPoint, pts...)
	require.NoError(t, err)
	require.NoError(t, s.Check(p.ID))
	return p
}

func co(profile, segment int) Coincidence {
	return Coincidence{Profile: profile, Segment: segment}
}

func TestSet_AddRejectsSinglePoint(t *testing.T) {
	_, err := NewSet(0, 1e-9).Add(0, pt(0, 0))
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestSet_AdoptSplitTruncate(t *testing.T) {
	s := NewSet(0, 1e-9)
	a := mustAdd(t, s, 0, pt(0, 0), pt(1, 0), pt(2, 0), pt(3, 0))
	b := mustAdd(t, s, 5, pt(0, 1), pt(1, 0))

	s.Adopt(b.ID, a.ID, 1)
	require.NoError(t, s.CheckAll())
	assert.Equal(t, []geometry.Point2D{pt(0, 1), pt(1, 0), pt(2, 0), pt(3, 0)}, b.Points())
	want := [][]Coincidence{{co(1, 0)}, {co(0, 1), co(1, 1)}, {co(0, 2), co(1, 2)}}
	if diff := cmp.Diff(want, b.Segments()); diff != "" {
		t.Errorf("segments after adopt (-want +got):\n%s", diff)
	}

	changed := s.Split(a.ID, 2, pt(2.5, 0))
	require.NoError(t, s.CheckAll())
	assert.ElementsMatch(t, []int{0, 1}, changed)
	assert.Equal(t, 5, a.NumPoints())
	assert.Equal(t, pt(2.5, 0), b.Point(3))
	want = [][]Coincidence{{co(0, 0)}, {co(0, 1), co(1, 1)}, {co(0, 2), co(1, 2)}, {co(0, 3), co(1, 3)}}
	if diff := cmp.Diff(want, a.Segments()); diff != "" {
		t.Errorf("segments after split (-want +got):\n%s", diff)
	}

	s.Truncate(b.ID, 1, pt(1.5, 0))
	require.NoError(t, s.CheckAll())
	assert.Equal(t, []geometry.Point2D{pt(0, 0), pt(1, 0), pt(1.5, 0)}, a.Points())
	assert.Equal(t, []geometry.Point2D{pt(0, 1), pt(1, 0), pt(1.5, 0)}, b.Points())
	assert.True(t, a.Truncated)
	assert.True(t, b.Truncated)
	assert.True(t, s.SharesFinal(a.ID, b.ID))
}

func TestSet_SplitRenumbersSeawardSegments(t *testing.T) {
	s := NewSet(0, 1e-9)
	a := mustAdd(t, s, 0, pt(0, 0), pt(1, 0), pt(2, 0))
	b := mustAdd(t, s, 3, pt(1, 1), pt(1, 0))
	s.Adopt(b.ID, a.ID, 1)

	// Splitting a's first segment touches a alone, but every later
	// segment of a moves up one while b keeps its own numbering.
	s.Split(a.ID, 0, pt(0.5, 0))
	require.NoError(t, s.CheckAll())
	assert.Equal(t, []Coincidence{co(0, 2), co(1, 1)}, a.Coincident(2))
	assert.Equal(t, 2, b.NumSegments())
}

func TestSet_TruncateAtVertexDropsSegment(t *testing.T) {
	s := NewSet(0, 1e-9)
	a := mustAdd(t, s, 0, pt(0, 0), pt(1, 0), pt(2, 0))

	s.Truncate(a.ID, 1, pt(1, 0))
	require.NoError(t, s.Check(a.ID))
	assert.Equal(t, []geometry.Point2D{pt(0, 0), pt(1, 0)}, a.Points())
	assert.Equal(t, 1, a.NumSegments())
}

func TestSet_MergeFinal(t *testing.T) {
	s := NewSet(0, 1e-9)
	a := mustAdd(t, s, 0, pt(0, 0), pt(2, 2))
	b := mustAdd(t, s, 4, pt(2, 0), pt(0, 2))

	s.Truncate(a.ID, 0, pt(1, 1))
	s.Truncate(b.ID, 0, pt(1, 1))
	s.MergeFinal(a.ID, b.ID, pt(1, 2))
	require.NoError(t, s.CheckAll())

	assert.Equal(t, []geometry.Point2D{pt(0, 0), pt(1, 1), pt(1, 2)}, a.Points())
	assert.Equal(t, []geometry.Point2D{pt(2, 0), pt(1, 1), pt(1, 2)}, b.Points())
	assert.True(t, s.SharesFinal(a.ID, b.ID))
	assert.True(t, s.Coincident(a.ID, 1, b.ID))
	assert.False(t, s.Coincident(a.ID, 0, b.ID))
	assert.True(t, a.SharesWith(b.ID))
}

func TestSet_CheckCatchesDrift(t *testing.T) {
	s := NewSet(0, 1e-9)
	a := mustAdd(t, s, 0, pt(0, 0), pt(1, 0))
	a.shape.Append(pt(2, 0))
	assert.ErrorIs(t, s.Check(a.ID), ErrInconsistentMultiLine)

	b := mustAdd(t, s, 1, pt(0, 1), pt(1, 1))
	b.segs[0].members = append(b.segs[0].members, co(0, 0))
	assert.ErrorIs(t, s.Check(b.ID), ErrInconsistentMultiLine)
}

func TestSet_AlongCoast(t *testing.T) {
	s := NewSet(0, 1e-9)
	mustAdd(t, s, 7, pt(0, 0), pt(1, 0))
	mustAdd(t, s, 2, pt(0, 0), pt(1, 0))
	mustAdd(t, s, 4, pt(0, 0), pt(1, 0))

	var got []int
	for _, p := range s.AlongCoast() {
		got = append(got, p.CoastPoint)
	}
	assert.Equal(t, []int{2, 4, 7}, got)
}
