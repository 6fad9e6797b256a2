package pathfind

import (
	"math/rand"
	"testing"

	"github.com/1siamBot/rts-nav/engine/maplib"
)

func TestSegmentOpenRoom(t *testing.T) {
	g := maplib.NewBorderedGrid(10, 10)
	rm, count := Segment(g)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := 0
			if x == 0 || y == 0 || x == 9 || y == 9 {
				want = NoRegion
			}
			if got := rm.At(x, y); got != want {
				t.Fatalf("At(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
	if rm.At(-1, 3) != NoRegion || rm.At(3, 10) != NoRegion {
		t.Fatal("out of bounds should be NoRegion")
	}
}

func TestSegmentIgnoresOpenBorder(t *testing.T) {
	// border tiles left open never join a region nor connect two regions
	g := maplib.MustParseGrid(`
.....
.#.#.
.....
`)
	rm, count := Segment(g)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if rm.At(0, 0) != NoRegion || rm.At(2, 1) != 0 {
		t.Fatalf("unexpected ids: border %d, interior %d", rm.At(0, 0), rm.At(2, 1))
	}

	g = maplib.MustParseGrid(`
......
.#.#..
......
`)
	_, count = Segment(g)
	if count != 2 {
		t.Fatalf("count = %d, want 2 (regions only meet through the border)", count)
	}
}

func TestSegmentScanOrder(t *testing.T) {
	g := gapGrid()
	g.SetWall(4, 5, true)
	rm, count := Segment(g)
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if rm.At(1, 1) != 0 || rm.At(8, 4) != 0 {
		t.Fatal("top half should be region 0")
	}
	if rm.At(1, 6) != 1 || rm.At(8, 8) != 1 {
		t.Fatal("bottom half should be region 1")
	}
	if rm.At(4, 5) != NoRegion {
		t.Fatal("wall should be NoRegion")
	}
}

func TestSegmentConnectivity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 20; round++ {
		g := randomGrid(rng, 20, 16, 0.35)
		rm, count := Segment(g)

		seen := make([]bool, count)
		for x := 1; x < g.Width-1; x++ {
			for y := 1; y < g.Height-1; y++ {
				id := rm.At(x, y)
				if g.Wall(x, y) {
					if id != NoRegion {
						t.Fatalf("round %d: wall (%d,%d) has region %d", round, x, y, id)
					}
					continue
				}
				if id < 0 || id >= count {
					t.Fatalf("round %d: free tile (%d,%d) has region %d", round, x, y, id)
				}
				seen[id] = true
				for _, d := range orthogonal {
					nx, ny := x+d.X, y+d.Y
					if !rm.interior(nx, ny) || g.Wall(nx, ny) {
						continue
					}
					if rm.At(nx, ny) != id {
						t.Fatalf("round %d: neighbours (%d,%d) and (%d,%d) split", round, x, y, nx, ny)
					}
				}
			}
		}
		for id, ok := range seen {
			if !ok {
				t.Fatalf("round %d: region %d is empty", round, id)
			}
		}
	}
}

func randomGrid(rng *rand.Rand, w, h int, density float64) *maplib.WallGrid {
	g := maplib.NewBorderedGrid(w, h)
	for x := 1; x < w-1; x++ {
		for y := 1; y < h-1; y++ {
			if rng.Float64() < density {
				g.SetWall(x, y, true)
			}
		}
	}
	return g
}
