package pathfind

import (
	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
)

// NoRegion marks walls, border tiles and tiles outside the map
const NoRegion = -1

var orthogonal = [4]geom.Point{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}

// RegionMap assigns every free interior tile the id of its connected component
type RegionMap struct {
	Width, Height int
	ids           []int
}

// At returns the region id of tile (x,y), or NoRegion
func (r *RegionMap) At(x, y int) int {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return NoRegion
	}
	return r.ids[y*r.Width+x]
}

func (r *RegionMap) interior(x, y int) bool {
	return x > 0 && y > 0 && x < r.Width-1 && y < r.Height-1
}

// Segment flood-fills the free interior tiles of grid into 4-connected regions.
// The border ring is never a seed nor a flood target, so node extraction can read
// the 8 neighbours of any region tile without bounds checks.
// Ids are assigned in scan order (x outer, y inner) and are stable for a given grid.
func Segment(grid *maplib.WallGrid) (*RegionMap, int) {
	rm := &RegionMap{
		Width:  grid.Width,
		Height: grid.Height,
		ids:    make([]int, grid.Width*grid.Height),
	}
	for i := range rm.ids {
		rm.ids[i] = NoRegion
	}

	count := 0
	var queue []geom.Point
	for x := 1; x < grid.Width-1; x++ {
		for y := 1; y < grid.Height-1; y++ {
			if grid.Wall(x, y) || rm.ids[y*rm.Width+x] != NoRegion {
				continue
			}
			rm.ids[y*rm.Width+x] = count
			queue = append(queue[:0], geom.Point{X: x, Y: y})
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				for _, d := range orthogonal {
					n := cur.Add(d)
					if !rm.interior(n.X, n.Y) || grid.Wall(n.X, n.Y) || rm.ids[n.Y*rm.Width+n.X] != NoRegion {
						continue
					}
					rm.ids[n.Y*rm.Width+n.X] = count
					queue = append(queue, n)
				}
			}
			count++
		}
	}
	return rm, count
}
