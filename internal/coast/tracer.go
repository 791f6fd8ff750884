package coast

import (
	"errors"
	"fmt"
	"log/slog"

	"cliffline/internal/raster"
	"cliffline/pkg/geometry"
)

var (
	// ErrTraceTooLong is fatal: a trace ran past its step bound.
	ErrTraceTooLong = errors.New("coast: coastline trace exceeded its maximum length")
	// ErrTooShort marks a coastline that was discarded for having too few points.
	ErrTooShort = errors.New("coast: coastline too short")
)

// TraceOptions configures coastline tracing.
type TraceOptions struct {
	Handedness Handedness
	MinPoints  int // coastlines with fewer points are discarded
	MaxSteps   int // 0 means 4 * nx * ny
	Smoothing  SmoothOptions
	Logger     *slog.Logger
}

// DefaultTraceOptions returns sensible defaults for tracing.
func DefaultTraceOptions() TraceOptions {
	return TraceOptions{
		Handedness: RightHanded,
		MinPoints:  5,
		Smoothing:  SmoothOptions{Method: SmoothRunningMean, Window: 5},
	}
}

// direction is a cardinal facing on the grid. Rows grow southwards.
type direction int

const (
	north direction = iota
	east
	south
	west
)

var stepOf = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (d direction) right() direction { return (d + 1) % 4 }
func (d direction) left() direction  { return (d + 3) % 4 }
func (d direction) back() direction  { return (d + 2) % 4 }

func (d direction) seaward(h Handedness) direction {
	if h == LeftHanded {
		return d.left()
	}
	return d.right()
}

func (d direction) from(p geometry.PointInt) geometry.PointInt {
	return p.Add(stepOf[d][0], stepOf[d][1])
}

// edge identifies one side of the grid; inward is the facing that leaves it.
type edge struct {
	inward direction
	on     func(g *raster.Grid, p geometry.PointInt) bool
}

var edges = []edge{
	{south, func(_ *raster.Grid, p geometry.PointInt) bool { return p.Y == 0 }},
	{west, func(g *raster.Grid, p geometry.PointInt) bool { return p.X == g.NX()-1 }},
	{north, func(g *raster.Grid, p geometry.PointInt) bool { return p.Y == g.NY()-1 }},
	{east, func(_ *raster.Grid, p geometry.PointInt) bool { return p.X == 0 }},
}

func edgeCells(g *raster.Grid, e edge) []geometry.PointInt {
	var cells []geometry.PointInt
	switch e.inward {
	case south, north:
		y := 0
		if e.inward == north {
			y = g.NY() - 1
		}
		for x := 0; x < g.NX(); x++ {
			cells = append(cells, geometry.PointInt{X: x, Y: y})
		}
	default:
		x := 0
		if e.inward == west {
			x = g.NX() - 1
		}
		for y := 0; y < g.NY(); y++ {
			cells = append(cells, geometry.PointInt{X: x, Y: y})
		}
	}
	return cells
}

// TraceAll traces one coastline from every grid-edge crossing between land
// and sea whose sea lies on the configured side. The grid must already hold
// the contiguous sea. Coastlines too short to keep are dropped and their cells
// un-marked; only ErrTraceTooLong is returned as an error.
func TraceAll(g *raster.Grid, opts TraceOptions) ([]*Coastline, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 4 * g.NX() * g.NY()
	}
	if err := opts.Smoothing.Validate(); err != nil {
		return nil, err
	}

	var coasts []*Coastline
	for _, e := range edges {
		for _, start := range edgeCells(g, e) {
			if !isStart(g, start, e.inward, opts.Handedness) {
				continue
			}
			cl, err := trace(g, start, e, len(coasts), opts)
			if errors.Is(err, ErrTraceTooLong) {
				return nil, err
			}
			if err != nil {
				opts.Logger.Warn("Discarding coastline", "start_x", start.X, "start_y", start.Y, "error", err)
				continue
			}
			opts.Logger.Debug("Traced coastline", "coast", cl.ID, "points", cl.Len())
			coasts = append(coasts, cl)
		}
	}
	return coasts, nil
}

// isStart reports whether p is a land edge cell whose along-edge neighbour
// on the seaward side is sea.
func isStart(g *raster.Grid, p geometry.PointInt, inward direction, h Handedness) bool {
	c := g.CellAt(p)
	if c.IsSea() || c.IsCoastline() {
		return false
	}
	n := inward.seaward(h).from(p)
	return g.InGrid(n.X, n.Y) && g.CellAt(n).IsSea()
}

// trace follows the land side of the land/sea boundary from start, keeping
// the sea on the configured hand.
func trace(g *raster.Grid, start geometry.PointInt, e edge, id int, opts TraceOptions) (*Coastline, error) {
	var cells []geometry.PointInt
	mark := func(p geometry.PointInt) {
		c := g.CellAt(p)
		if !c.IsCoastline() {
			c.SetCoastline(id)
			cells = append(cells, p)
		}
	}
	unmark := func() {
		for _, p := range cells {
			g.CellAt(p).ClearCoastline()
		}
	}

	cur, facing := start, e.inward
	leftStartEdge := false

	for steps := 0; ; steps++ {
		if steps > opts.MaxSteps {
			opts.Logger.Warn("Coastline trace exceeded maximum size", "coast", id, "steps", steps, "max_steps", opts.MaxSteps)
			unmark()
			return nil, fmt.Errorf("%w: %d steps from (%d,%d)", ErrTraceTooLong, steps, start.X, start.Y)
		}
		if !e.on(g, cur) {
			leftStartEdge = true
		}

		// Seaward, ahead, anti-seaward, back: move to the first that is not sea.
		sea := facing.seaward(opts.Handedness)
		moved := false
		var next geometry.PointInt
		var nextFacing direction
		for _, d := range [4]direction{sea, facing, sea.back(), facing.back()} {
			n := d.from(cur)
			if !g.InGrid(n.X, n.Y) {
				continue
			}
			if g.CellAt(n).IsSea() {
				mark(cur)
				continue
			}
			next, nextFacing, moved = n, d, true
			break
		}

		if leftStartEdge && g.IsEdge(cur.X, cur.Y) {
			break
		}
		if !moved {
			break
		}
		cur, facing = next, nextFacing
	}

	if len(cells) < opts.MinPoints {
		unmark()
		return nil, fmt.Errorf("%w: %d points, need %d", ErrTooShort, len(cells), opts.MinPoints)
	}

	raw := make([]geometry.Point2D, len(cells))
	for i, p := range cells {
		raw[i] = g.GridToExternal(p)
	}
	smoothed, err := Smooth(raw, opts.Smoothing)
	if err != nil {
		unmark()
		return nil, err
	}

	cl := NewCoastline(id, opts.Handedness)
	for i, p := range smoothed {
		cl.Append(p, cells[i])
	}
	return cl, nil
}
