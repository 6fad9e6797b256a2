package pathfind

import (
	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
)

// Corner is a mask of blocked diagonal neighbours
type Corner uint8

const (
	BlockedNW Corner = 1
	BlockedNE Corner = 2
	BlockedSW Corner = 4
	BlockedSE Corner = 8
)

// Node is a waypoint tile at an inside corner
type Node struct {
	Tile    geom.Point
	Blocked Corner
}

// ExtractNodes picks the corner tiles of every region. A free tile is a node
// when one of its diagonal neighbours is a wall while the two orthogonal
// neighbours framing that diagonal are open. Nodes are listed per region in
// scan order; a node's identity is its index in that list.
func ExtractNodes(grid *maplib.WallGrid, regions *RegionMap, count int) [][]Node {
	nodes := make([][]Node, count)
	for x := 1; x < grid.Width-1; x++ {
		for y := 1; y < grid.Height-1; y++ {
			rid := regions.At(x, y)
			if rid == NoRegion {
				continue
			}
			nw := grid.Wall(x-1, y-1)
			n := !grid.Wall(x, y-1)
			ne := grid.Wall(x+1, y-1)
			w := !grid.Wall(x-1, y)
			e := !grid.Wall(x+1, y)
			sw := grid.Wall(x-1, y+1)
			s := !grid.Wall(x, y+1)
			se := grid.Wall(x+1, y+1)

			if !(nw && n && w) && !(ne && n && e) && !(sw && w && s) && !(se && s && e) {
				continue
			}

			var mask Corner
			if nw {
				mask |= BlockedNW
			}
			if ne {
				mask |= BlockedNE
			}
			if sw {
				mask |= BlockedSW
			}
			if se {
				mask |= BlockedSE
			}
			nodes[rid] = append(nodes[rid], Node{Tile: geom.Point{X: x, Y: y}, Blocked: mask})
		}
	}
	return nodes
}
