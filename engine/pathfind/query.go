package pathfind

import (
	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
)

// FindPath returns the waypoints (world pixels) an agent at start follows to
// reach end. Every waypoint but the last is a tile centre; the last is end,
// nudged to the closest spot the agent fits if needed.
//
// A nil result means "do not move": start or end is off the map, start is
// not in a region, or end lies in another region with no reachable tile nearby.
// FindPath only reads data and grid.
func (pf *Pathfinder) FindPath(start, end geom.Point, data *Data, grid *maplib.WallGrid) []geom.Point {
	if data == nil || grid == nil || !pf.onMap(start, grid) || !pf.onMap(end, grid) {
		return nil
	}

	st, et := pf.TileOf(start), pf.TileOf(end)
	sr := data.Regions.At(st.X, st.Y)
	if sr == NoRegion {
		return nil
	}

	dest := et
	corrected := false
	if er := data.Regions.At(et.X, et.Y); er != sr {
		if er != NoRegion {
			return nil
		}
		var ok bool
		if dest, ok = pf.corridorTile(end, start, sr, data.Regions); !ok {
			if dest, ok = floodTile(et, sr, data.Regions); !ok {
				return nil
			}
		}
		corrected = true
	}

	goal := end
	if corrected || !pf.CanStand(end, grid) {
		goal = pf.nudge(pf.TileCentre(dest), end, grid)
	}

	if pf.clearPath(pf.toTiles(start), pf.toTiles(goal), grid) {
		return []geom.Point{goal}
	}
	return pf.search(start, goal, data.Region(sr), grid)
}

func (pf *Pathfinder) onMap(p geom.Point, grid *maplib.WallGrid) bool {
	ts := pf.cfg.TileSize
	return p.X >= 0 && p.Y >= 0 && p.X < grid.Width*ts && p.Y < grid.Height*ts
}

// corridorTile walks the straight line from end toward start across walls and
// unassigned tiles and returns the first free tile, provided it is in region rid
func (pf *Pathfinder) corridorTile(end, start geom.Point, rid int, regions *RegionMap) (geom.Point, bool) {
	from, to := pf.toTiles(end), pf.toTiles(start)
	var found geom.Point
	ok := false
	geom.Traverse(from.X, from.Y, to.X, to.Y, func(x, y int) bool {
		r := regions.At(x, y)
		if r == NoRegion {
			return true
		}
		if r == rid {
			found, ok = geom.Point{X: x, Y: y}, true
		}
		return false
	})
	return found, ok
}

// floodTile searches outward from tile t through walls and unassigned tiles
// for the nearest tile of region rid
func floodTile(t geom.Point, rid int, regions *RegionMap) (geom.Point, bool) {
	if t.X < 0 || t.Y < 0 || t.X >= regions.Width || t.Y >= regions.Height {
		return geom.Point{}, false
	}
	seen := make([]bool, regions.Width*regions.Height)
	seen[t.Y*regions.Width+t.X] = true
	queue := []geom.Point{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range orthogonal {
			n := cur.Add(d)
			if n.X < 0 || n.Y < 0 || n.X >= regions.Width || n.Y >= regions.Height {
				continue
			}
			i := n.Y*regions.Width + n.X
			if seen[i] {
				continue
			}
			seen[i] = true
			switch regions.At(n.X, n.Y) {
			case rid:
				return n, true
			case NoRegion:
				queue = append(queue, n)
			}
		}
	}
	return geom.Point{}, false
}

// nudge moves pixel by pixel from a standable point toward target, first
// along x then along y, and stops before the agent would overlap a wall
func (pf *Pathfinder) nudge(from, target geom.Point, grid *maplib.WallGrid) geom.Point {
	p := from
	for p.X != target.X {
		next := geom.Point{X: p.X + geom.Sign(target.X-p.X), Y: p.Y}
		if !pf.CanStand(next, grid) {
			break
		}
		p = next
	}
	for p.Y != target.Y {
		next := geom.Point{X: p.X, Y: p.Y + geom.Sign(target.Y-p.Y)}
		if !pf.CanStand(next, grid) {
			break
		}
		p = next
	}
	return p
}

// search links start and goal into the region graph and runs A* over it
func (pf *Pathfinder) search(start, goal geom.Point, reg *Region, grid *maplib.WallGrid) []geom.Point {
	if reg == nil {
		return nil
	}
	q := newQueryGraph(reg, pf.cfg.TileSize, start, goal)

	startT, goalT := pf.toTiles(start), pf.toTiles(goal)
	for i, n := range reg.Nodes {
		c := tileCentre(n.Tile)
		if pf.clearPath(startT, c, grid) {
			q.link(q.start, i)
		}
		if pf.clearPath(c, goalT, grid) {
			q.link(i, q.goal)
		}
	}
	if pf.clearPath(startT, goalT, grid) {
		q.link(q.start, q.goal)
	}

	route, ok := q.astar()
	if !ok {
		pf.log.Printf("pathfind: search exhausted from %v to %v (%d nodes)", start, goal, len(reg.Nodes))
		return nil
	}

	waypoints := make([]geom.Point, 0, len(route))
	for _, i := range route[1 : len(route)-1] {
		waypoints = append(waypoints, pf.TileCentre(reg.Nodes[i].Tile))
	}
	return append(waypoints, goal)
}
