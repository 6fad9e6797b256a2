package pathfind

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
)

// ErrGridTooSmall is returned when a grid has no interior to walk on
var ErrGridTooSmall = errors.New("pathfind: grid smaller than 3x3")

// Data is the precomputed navigation data of one grid. It is never modified
// after Build and may be shared by concurrent queries.
type Data struct {
	Regions     *RegionMap
	RegionCount int
	Graphs      []Region // indexed by region id
	BuildTime   time.Duration
}

// Region returns the graph of region rid, or nil
func (d *Data) Region(rid int) *Region {
	if rid < 0 || rid >= len(d.Graphs) {
		return nil
	}
	return &d.Graphs[rid]
}

// Pathfinder builds navigation data and answers path queries for one agent size
type Pathfinder struct {
	cfg Config
	log *log.Logger

	// offsets of the agent's four bounding-box corners from its centre, in tiles
	offsets [4]geom.Vec
}

// New creates a pathfinder for the configured tile size and agent radius
func New(cfg Config) (*Pathfinder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := cfg.AgentRadius/float64(cfg.TileSize) - cfg.Epsilon
	return &Pathfinder{
		cfg: cfg,
		log: cfg.logger(),
		offsets: [4]geom.Vec{
			{X: -r, Y: -r},
			{X: r, Y: -r},
			{X: -r, Y: r},
			{X: r, Y: r},
		},
	}, nil
}

// Config returns the configuration the pathfinder was created with
func (pf *Pathfinder) Config() Config { return pf.cfg }

// Build segments the grid into regions, extracts corner nodes and builds the
// visibility graph of every region. It must be called again whenever a tile's
// wall flag changes.
func (pf *Pathfinder) Build(grid *maplib.WallGrid) (*Data, error) {
	if grid == nil || grid.Width < 3 || grid.Height < 3 {
		return nil, ErrGridTooSmall
	}
	began := time.Now()

	regions, count := Segment(grid)
	nodes := ExtractNodes(grid, regions, count)

	data := &Data{
		Regions:     regions,
		RegionCount: count,
		Graphs:      make([]Region, count),
	}
	for rid := 0; rid < count; rid++ {
		data.Graphs[rid] = pf.buildRegion(nodes[rid], grid)
	}
	data.BuildTime = time.Since(began)

	pf.log.Printf("pathfind: %dx%d grid, %d regions in %v", grid.Width, grid.Height, count, data.BuildTime)
	for rid, reg := range data.Graphs {
		s := reg.Stats
		pf.log.Printf("pathfind: region %d: %d nodes, %d edges (%d+%d+%d+%d filtered)",
			rid, len(reg.Nodes), len(reg.Edges), s.RejectedAngle, s.RejectedTurn, s.RejectedSight, s.Pruned)
	}
	return data, nil
}

// clearPath reports whether the agent can slide from a to b (tile coordinates
// of its centre) with none of its four corners crossing a wall
func (pf *Pathfinder) clearPath(a, b geom.Vec, grid *maplib.WallGrid) bool {
	for _, o := range pf.offsets {
		if !geom.LineOfSight(a.X+o.X, a.Y+o.Y, b.X+o.X, b.Y+o.Y, grid.Wall) {
			return false
		}
	}
	return true
}

// standable reports whether the agent centred at p (tile coordinates) overlaps no wall
func (pf *Pathfinder) standable(p geom.Vec, grid *maplib.WallGrid) bool {
	for _, o := range pf.offsets {
		if grid.Wall(int(math.Floor(p.X+o.X)), int(math.Floor(p.Y+o.Y))) {
			return false
		}
	}
	return true
}

// CanStand reports whether an agent centred on the world position p fits
func (pf *Pathfinder) CanStand(p geom.Point, grid *maplib.WallGrid) bool {
	return pf.standable(pf.toTiles(p), grid)
}

// TileOf returns the tile containing world position p
func (pf *Pathfinder) TileOf(p geom.Point) geom.Point {
	ts := pf.cfg.TileSize
	return geom.Point{X: floorDiv(p.X, ts), Y: floorDiv(p.Y, ts)}
}

// TileCentre returns the world position of the centre of tile t
func (pf *Pathfinder) TileCentre(t geom.Point) geom.Point {
	ts := pf.cfg.TileSize
	return geom.Point{X: t.X*ts + ts/2, Y: t.Y*ts + ts/2}
}

func (pf *Pathfinder) toTiles(p geom.Point) geom.Vec {
	ts := float64(pf.cfg.TileSize)
	return geom.Vec{X: float64(p.X) / ts, Y: float64(p.Y) / ts}
}

func tileCentre(t geom.Point) geom.Vec {
	return geom.Vec{X: float64(t.X) + 0.5, Y: float64(t.Y) + 0.5}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
