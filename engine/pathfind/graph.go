package pathfind

import (
	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
)

// Edge connects two nodes of one region; Dist is in world pixels
type Edge struct {
	A, B int
	Dist float64
}

// Line returns the edge as a tile segment
func (e Edge) Line(nodes []Node) geom.Line {
	return geom.Line{Start: nodes[e.A].Tile, End: nodes[e.B].Tile}
}

// Neighbor is one adjacency entry
type Neighbor struct {
	Node int
	Dist float64
}

// RegionStats counts what the graph builder did with each node pair
type RegionStats struct {
	Pairs         int
	RejectedAngle int // both endpoints approach through a blocked corner
	RejectedTurn  int // edge heads straight into a wall corner
	RejectedSight int // agent would clip a wall along the edge
	Pruned        int // passed through another candidate
}

// Region is the precomputed visibility graph of one connected region
type Region struct {
	Nodes []Node
	Edges []Edge
	Adj   [][]Neighbor // indexed by node
	Stats RegionStats
}

// goodIncomingAngles rejects a diagonal edge when, at both ends, the corner
// the edge arrives through is blocked. Axis-aligned edges always pass.
func goodIncomingAngles(v1, v2 geom.Point, c1, c2 Corner) bool {
	if v1.X == v2.X || v1.Y == v2.Y {
		return true
	}
	d := v2.Sub(v1)

	// arriving at v1 from v2
	clear1 := !((d.X < 0 && d.Y < 0 && c1&BlockedSE != 0) ||
		(d.X < 0 && d.Y > 0 && c1&BlockedNE != 0) ||
		(d.X > 0 && d.Y > 0 && c1&BlockedNW != 0) ||
		(d.X > 0 && d.Y < 0 && c1&BlockedSW != 0))
	// arriving at v2 from v1
	clear2 := !((d.X > 0 && d.Y > 0 && c2&BlockedSE != 0) ||
		(d.X > 0 && d.Y < 0 && c2&BlockedNE != 0) ||
		(d.X < 0 && d.Y < 0 && c2&BlockedNW != 0) ||
		(d.X < 0 && d.Y > 0 && c2&BlockedSW != 0))
	return clear1 || clear2
}

// neverTurnsTowardsWall rejects mostly-horizontal edges whose left end has only
// NW blocked and right end only NE (or SW/SE), and the transposed case for
// mostly-vertical edges. Masks are compared exactly.
func neverTurnsTowardsWall(v1, v2 geom.Point, c1, c2 Corner) bool {
	d := v2.Sub(v1)
	first, second := c1, c2
	if abs(d.X) > abs(d.Y) {
		if v1.X > v2.X {
			first, second = c2, c1
		}
		if (first == BlockedNW && second == BlockedNE) || (first == BlockedSW && second == BlockedSE) {
			return false
		}
	} else {
		if v1.Y > v2.Y {
			first, second = c2, c1
		}
		if (first == BlockedNW && second == BlockedSW) || (first == BlockedNE && second == BlockedSE) {
			return false
		}
	}
	return true
}

type candidate struct {
	edge Edge
	line geom.Line
}

// buildRegion runs the three edge filters over every node pair, then drops
// candidates that pass straight through another candidate
func (pf *Pathfinder) buildRegion(nodes []Node, grid *maplib.WallGrid) Region {
	reg := Region{
		Nodes: nodes,
		Adj:   make([][]Neighbor, len(nodes)),
	}

	var cands []candidate
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			reg.Stats.Pairs++
			a, b := nodes[i], nodes[j]
			if !goodIncomingAngles(a.Tile, b.Tile, a.Blocked, b.Blocked) {
				reg.Stats.RejectedAngle++
				continue
			}
			if !neverTurnsTowardsWall(a.Tile, b.Tile, a.Blocked, b.Blocked) {
				reg.Stats.RejectedTurn++
				continue
			}
			if !pf.clearPath(tileCentre(a.Tile), tileCentre(b.Tile), grid) {
				reg.Stats.RejectedSight++
				continue
			}
			cands = append(cands, candidate{
				edge: Edge{A: i, B: j, Dist: a.Tile.Dist(b.Tile) * float64(pf.cfg.TileSize)},
				line: geom.Line{Start: a.Tile, End: b.Tile},
			})
		}
	}

	for i, c := range cands {
		containing := false
		for j, o := range cands {
			if i != j && geom.LineContains(c.line, o.line) {
				containing = true
				break
			}
		}
		if containing {
			reg.Stats.Pruned++
			continue
		}
		reg.Edges = append(reg.Edges, c.edge)
		reg.Adj[c.edge.A] = append(reg.Adj[c.edge.A], Neighbor{Node: c.edge.B, Dist: c.edge.Dist})
		reg.Adj[c.edge.B] = append(reg.Adj[c.edge.B], Neighbor{Node: c.edge.A, Dist: c.edge.Dist})
	}
	return reg
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
