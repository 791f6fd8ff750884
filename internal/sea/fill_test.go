package sea

import (
	"math/rand"
	"testing"

	"cliffline/internal/raster"
	"cliffline/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridFrom(t *testing.T, rows [][]float64) *raster.Grid {
	t.Helper()
	src := raster.NewDenseSource(len(rows[0]), len(rows), 1, geometry.Identity(), func(x, y int) float64 {
		return rows[y][x]
	})
	g, err := raster.NewGrid(src)
	require.NoError(t, err)
	return g
}

// TestFill_Ramp checks the 10x10 ramp: elevation equals the row number and the
// still water level is 5, so exactly rows 0-4 become sea.
func TestFill_Ramp(t *testing.T) {
	rows := make([][]float64, 10)
	for y := range rows {
		rows[y] = make([]float64, 10)
		for x := range rows[y] {
			rows[y][x] = float64(y)
		}
	}
	g := gridFrom(t, rows)

	n := Fill(g, 5, nil)
	assert.Equal(t, 50, n)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(t, y < 5, g.Cell(x, y).IsSea(), "cell (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 5.0, g.Cell(3, 0).SeaDepth())
	assert.Equal(t, 0.0, g.Cell(3, 7).SeaDepth())
}

// TestFill_InlandLakeStaysLand checks that water enclosed by land is not sea.
//
//	0 0 0 0 0
//	9 9 9 9 9
//	9 0 0 9 9
//	9 9 9 9 9
func TestFill_InlandLakeStaysLand(t *testing.T) {
	g := gridFrom(t, [][]float64{
		{0, 0, 0, 0, 0},
		{9, 9, 9, 9, 9},
		{9, 0, 0, 9, 9},
		{9, 9, 9, 9, 9},
	})

	n := Fill(g, 1, nil)
	assert.Equal(t, 5, n)
	assert.False(t, g.Cell(1, 2).IsSea())
	assert.False(t, g.Cell(2, 2).IsSea())
	// The lake is still inundated, so it records a depth.
	assert.Equal(t, 1.0, g.Cell(1, 2).SeaDepth())
}

// TestFill_SerpentineChannel exercises spans that must be re-entered from
// below and above.
func TestFill_SerpentineChannel(t *testing.T) {
	g := gridFrom(t, [][]float64{
		{0, 9, 9, 9, 9, 9},
		{0, 9, 0, 0, 0, 9},
		{0, 9, 0, 9, 0, 9},
		{0, 0, 0, 9, 0, 9},
		{9, 9, 9, 9, 0, 9},
		{9, 9, 9, 9, 9, 9},
	})

	n := Fill(g, 1, nil)
	assert.Equal(t, 13, n)
	assert.True(t, g.Cell(4, 4).IsSea())
}

// TestFill_MatchesReachability compares the fill with a plain BFS from the
// edges on random surfaces.
func TestFill_MatchesReachability(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 25; trial++ {
		nx, ny := 3+rng.Intn(20), 3+rng.Intn(20)
		rows := make([][]float64, ny)
		for y := range rows {
			rows[y] = make([]float64, nx)
			for x := range rows[y] {
				rows[y][x] = rng.Float64() * 10
			}
		}
		g := gridFrom(t, rows)
		Fill(g, 5, nil)

		want := reachable(rows, 5)
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				c := g.Cell(x, y)
				require.Equal(t, want[y][x], c.IsSea(), "trial %d cell (%d,%d)", trial, x, y)
				if c.IsSea() {
					require.Less(t, c.Elevation(), 5.0)
				}
			}
		}
	}
}

func reachable(rows [][]float64, swl float64) [][]bool {
	ny, nx := len(rows), len(rows[0])
	seen := make([][]bool, ny)
	for y := range seen {
		seen[y] = make([]bool, nx)
	}
	var queue [][2]int
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			edge := x == 0 || y == 0 || x == nx-1 || y == ny-1
			if edge && rows[y][x] < swl {
				seen[y][x] = true
				queue = append(queue, [2]int{x, y})
			}
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, d := range [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			vx, vy := u[0]+d[0], u[1]+d[1]
			if vx < 0 || vy < 0 || vx >= nx || vy >= ny || seen[vy][vx] || rows[vy][vx] >= swl {
				continue
			}
			seen[vy][vx] = true
			queue = append(queue, [2]int{vx, vy})
		}
	}
	return seen
}
