package render

import (
	"image/color"

	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
	"github.com/1siamBot/rts-nav/engine/pathfind"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	wallColor  = color.RGBA{60, 60, 70, 255}
	floorColor = color.RGBA{150, 150, 140, 255}
	gridColor  = color.RGBA{0, 0, 0, 40}
	nodeColor  = color.RGBA{255, 140, 0, 255}
	edgeColor  = color.RGBA{255, 200, 0, 90}
	pathColor  = color.RGBA{0, 220, 255, 255}
	hoverColor = color.RGBA{255, 255, 0, 150}
)

// RegionColor returns a stable, well separated colour for region rid
func RegionColor(rid int) color.RGBA {
	if rid < 0 {
		return wallColor
	}
	// golden angle steps keep neighbouring ids apart
	h := float64(rid*137%360) + 0.5
	r, g, b := colorful.Hsv(h, 0.45, 0.85).RGB255()
	return color.RGBA{r, g, b, 255}
}

// NavRenderer draws a wall grid and its navigation data top-down
type NavRenderer struct {
	Camera   *Camera
	TileSize int

	ShowRegions bool
	ShowGraph   bool
	ShowGrid    bool
}

// NewNavRenderer creates a renderer with its own camera
func NewNavRenderer(screenW, screenH, tileSize int) *NavRenderer {
	return &NavRenderer{
		Camera:      NewCamera(screenW, screenH),
		TileSize:    tileSize,
		ShowRegions: true,
		ShowGrid:    true,
	}
}

func (r *NavRenderer) tileRect(x, y int) (float32, float32, float32) {
	ts := float64(r.TileSize)
	sx, sy := r.Camera.WorldToScreen(float64(x)*ts, float64(y)*ts)
	return float32(sx), float32(sy), float32(ts * r.Camera.Zoom)
}

func (r *NavRenderer) point(p geom.Point) (float32, float32) {
	sx, sy := r.Camera.WorldToScreen(float64(p.X), float64(p.Y))
	return float32(sx), float32(sy)
}

// DrawMap fills every visible tile, coloured by region when ShowRegions is set
func (r *NavRenderer) DrawMap(screen *ebiten.Image, grid *maplib.WallGrid, data *pathfind.Data) {
	minX, minY, maxX, maxY := r.Camera.VisibleTileRange(r.TileSize, grid.Width, grid.Height)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			clr := floorColor
			switch {
			case grid.Wall(x, y):
				clr = wallColor
			case r.ShowRegions && data != nil:
				clr = RegionColor(data.Regions.At(x, y))
			}
			sx, sy, size := r.tileRect(x, y)
			vector.DrawFilledRect(screen, sx, sy, size, size, clr, false)
			if r.ShowGrid && size >= 6 {
				vector.StrokeRect(screen, sx, sy, size, size, 1, gridColor, false)
			}
		}
	}
}

// DrawGraph draws every region's edges and corner nodes
func (r *NavRenderer) DrawGraph(screen *ebiten.Image, data *pathfind.Data, pf *pathfind.Pathfinder) {
	for rid := range data.Graphs {
		reg := data.Region(rid)
		for _, e := range reg.Edges {
			x1, y1 := r.point(pf.TileCentre(reg.Nodes[e.A].Tile))
			x2, y2 := r.point(pf.TileCentre(reg.Nodes[e.B].Tile))
			vector.StrokeLine(screen, x1, y1, x2, y2, 1, edgeColor, true)
		}
		for _, n := range reg.Nodes {
			x, y := r.point(pf.TileCentre(n.Tile))
			vector.DrawFilledCircle(screen, x, y, 3, nodeColor, true)
		}
	}
}

// DrawPath draws the route from the agent position through its waypoints
func (r *NavRenderer) DrawPath(screen *ebiten.Image, from geom.Point, path []geom.Point) {
	x0, y0 := r.point(from)
	for _, p := range path {
		x1, y1 := r.point(p)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, pathColor, true)
		vector.DrawFilledCircle(screen, x1, y1, 3, pathColor, true)
		x0, y0 = x1, y1
	}
}

// DrawAgent draws the agent's bounding square and centre
func (r *NavRenderer) DrawAgent(screen *ebiten.Image, p geom.Point, radius float64, clr color.Color) {
	x, y := r.point(p)
	half := float32(radius * r.Camera.Zoom)
	vector.StrokeRect(screen, x-half, y-half, 2*half, 2*half, 2, clr, true)
	vector.DrawFilledCircle(screen, x, y, 2, clr, true)
}

// DrawHover outlines one tile
func (r *NavRenderer) DrawHover(screen *ebiten.Image, tile geom.Point) {
	sx, sy, size := r.tileRect(tile.X, tile.Y)
	vector.StrokeRect(screen, sx, sy, size, size, 2, hoverColor, false)
}
