package pathfind

import (
	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
)

// Navigator owns a passability grid together with its navigation data.
// Wall edits only mark the data stale; Rebuild must be called explicitly so
// callers can batch several edits into one rebuild.
// A Navigator must not be edited while a query runs on it.
type Navigator struct {
	pf    *Pathfinder
	grid  *maplib.WallGrid
	dirty bool

	// walls and data as of the last build; queries only see these
	built *maplib.WallGrid
	data  *Data
}

// NewNavigator builds navigation data for grid
func NewNavigator(grid *maplib.WallGrid, cfg Config) (*Navigator, error) {
	pf, err := New(cfg)
	if err != nil {
		return nil, err
	}
	nav := &Navigator{pf: pf}
	if err := nav.Reload(grid); err != nil {
		return nil, err
	}
	return nav, nil
}

// Pathfinder returns the underlying pathfinder
func (nav *Navigator) Pathfinder() *Pathfinder { return nav.pf }

// Grid returns the current passability grid, including unbuilt edits.
// Edit it through SetWall so the navigator notices the change.
func (nav *Navigator) Grid() *maplib.WallGrid { return nav.grid }

// Data returns the navigation data of the last build
func (nav *Navigator) Data() *Data { return nav.data }

// Dirty reports whether walls changed since the last build
func (nav *Navigator) Dirty() bool { return nav.dirty }

// SetWall edits one tile and reports whether its wall flag flipped
func (nav *Navigator) SetWall(x, y int, wall bool) bool {
	if !nav.grid.SetWall(x, y, wall) {
		return false
	}
	nav.dirty = true
	return true
}

// Rebuild recomputes the navigation data if any wall flipped since the last
// build. It reports whether a rebuild happened.
func (nav *Navigator) Rebuild() (bool, error) {
	if !nav.dirty {
		return false, nil
	}
	data, err := nav.pf.Build(nav.grid)
	if err != nil {
		return false, err
	}
	nav.built = nav.grid.Clone()
	nav.data = data
	nav.dirty = false
	return true, nil
}

// Reload replaces the grid and rebuilds unconditionally
func (nav *Navigator) Reload(grid *maplib.WallGrid) error {
	data, err := nav.pf.Build(grid)
	if err != nil {
		return err
	}
	nav.grid = grid
	nav.built = grid.Clone()
	nav.data = data
	nav.dirty = false
	return nil
}

// FindPath queries the last build; pending wall edits are not visible until Rebuild
func (nav *Navigator) FindPath(start, end geom.Point) []geom.Point {
	return nav.pf.FindPath(start, end, nav.data, nav.built)
}

// RegionAt returns the region of the tile under world position p
func (nav *Navigator) RegionAt(p geom.Point) int {
	t := nav.pf.TileOf(p)
	return nav.data.Regions.At(t.X, t.Y)
}

// CanStand reports whether an agent fits at world position p as of the last
// build: inside a region and clear of the walls that build saw
func (nav *Navigator) CanStand(p geom.Point) bool {
	return nav.RegionAt(p) != NoRegion && nav.pf.CanStand(p, nav.built)
}
