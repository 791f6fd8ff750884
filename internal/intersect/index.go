package intersect

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"cliffline/internal/profile"
)

type entry struct {
	geom.Polygonal
	id int
}

// extentIndex answers which profiles have overlapping bounding boxes.
type extentIndex struct {
	tree *rtree.Rtree
	pad  float64
}

func newExtentIndex(profiles []*profile.Profile, pad float64) *extentIndex {
	ix := &extentIndex{tree: rtree.NewTree(25, 50), pad: pad}
	for _, p := range profiles {
		ix.tree.Insert(&entry{Polygonal: ix.bounds(p), id: p.ID})
	}
	return ix
}

func (ix *extentIndex) bounds(p *profile.Profile) *geom.Bounds {
	r := p.Bounds()
	return &geom.Bounds{
		Min: geom.Point{X: r.X - ix.pad, Y: r.Y - ix.pad},
		Max: geom.Point{X: r.X + r.Width + ix.pad, Y: r.Y + r.Height + ix.pad},
	}
}

// neighbours returns the ids of the indexed profiles whose extent overlaps p's.
func (ix *extentIndex) neighbours(p *profile.Profile) map[int]bool {
	out := make(map[int]bool)
	for _, g := range ix.tree.SearchIntersect(ix.bounds(p)) {
		if e, ok := g.(*entry); ok && e.id != p.ID {
			out[e.id] = true
		}
	}
	return out
}
