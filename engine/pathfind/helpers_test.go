package pathfind

import (
	"io"
	"log"
	"testing"

	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
)

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	return cfg
}

func newTestPathfinder(t *testing.T) *Pathfinder {
	t.Helper()
	pf, err := New(quietConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return pf
}

func build(t *testing.T, pf *Pathfinder, g *maplib.WallGrid) *Data {
	t.Helper()
	data, err := pf.Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return data
}

// gapGrid is a 10x10 room split by a wall row at y=5 with one opening at x=4
func gapGrid() *maplib.WallGrid {
	g := maplib.NewBorderedGrid(10, 10)
	for x := 1; x < 9; x++ {
		if x != 4 {
			g.SetWall(x, 5, true)
		}
	}
	return g
}

// notchMap has four corners on row 4 and a dead-end column at x=3
const notchMap = `
#######
#.#...#
#.#..##
#.#.#.#
#.....#
#....##
#######
`

func pt(x, y int) geom.Point { return geom.Point{X: x, Y: y} }

func samePath(a, b []geom.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
