package main

import (
	"fmt"
	"log"

	"github.com/1siamBot/rts-nav/editor"
	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
	"github.com/1siamBot/rts-nav/engine/pathfind"
	"github.com/gdamore/tcell/v2"
)

var regionColors = []tcell.Color{
	tcell.ColorGreen, tcell.ColorBlue, tcell.ColorYellow, tcell.ColorPurple,
	tcell.ColorTeal, tcell.ColorOlive, tcell.ColorNavy, tcell.ColorMaroon,
}

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	nodeStyle   = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	pathStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	markerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// browser shows one map in the terminal, one cell per tile
type browser struct {
	ed  *editor.Editor
	log *log.Logger

	cursor      geom.Point
	offX, offY  int
	start, goal geom.Point
	hasStart    bool
	hasGoal     bool
	path        []geom.Point
	showNodes   bool
	status      string
}

func newBrowser(ed *editor.Editor, logger *log.Logger) *browser {
	b := &browser{
		ed:        ed,
		log:       logger,
		cursor:    geom.Point{X: 1, Y: 1},
		showNodes: true,
	}
	b.status = b.summary()
	return b
}

func (b *browser) summary() string {
	d := b.ed.Nav.Data()
	return fmt.Sprintf("%dx%d, %d regions, built in %v", b.ed.Nav.Grid().Width, b.ed.Nav.Grid().Height, d.RegionCount, d.BuildTime)
}

// run is the event loop; it returns when the user quits
func (b *browser) run(screen tcell.Screen, w *maplib.Watcher) {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	var changes chan string
	if w != nil {
		changes = w.Events
	}

	b.draw(screen)
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !b.handleEvent(ev, screen) {
				return
			}
		case path, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			b.reload(path)
		}
		b.draw(screen)
	}
}

func (b *browser) reload(path string) {
	if b.ed.Modified {
		b.status = path + " changed on disk, keeping unsaved edits"
		return
	}
	if changed, err := b.ed.DiskChanged(); err != nil || !changed {
		return
	}
	if err := b.ed.Reload(); err != nil {
		b.status = err.Error()
		return
	}
	b.path = nil
	b.hasStart, b.hasGoal = false, false
	b.status = "reloaded: " + b.summary()
}

// handleEvent applies one terminal event; false means quit
func (b *browser) handleEvent(ev tcell.Event, screen tcell.Screen) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return b.handleKey(ev)
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}

func (b *browser) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		b.move(0, -1)
	case tcell.KeyDown:
		b.move(0, 1)
	case tcell.KeyLeft:
		b.move(-1, 0)
	case tcell.KeyRight:
		b.move(1, 0)
	case tcell.KeyCtrlS:
		b.save()
	case tcell.KeyCtrlR:
		if b.ed.Redo() {
			b.status = "redo, press r to rebuild"
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			b.move(0, -1)
		case 'j':
			b.move(0, 1)
		case 'h':
			b.move(-1, 0)
		case 'l':
			b.move(1, 0)
		case 's':
			b.start, b.hasStart = b.cursor, true
			b.query()
		case 'g':
			b.goal, b.hasGoal = b.cursor, true
			b.query()
		case 'w', ' ':
			if b.ed.Toggle(b.cursor.X, b.cursor.Y) {
				b.status = "wall toggled, press r to rebuild"
			}
		case 'u':
			if b.ed.Undo() {
				b.status = "undo, press r to rebuild"
			}
		case 'r':
			b.rebuild()
		case 'n':
			b.showNodes = !b.showNodes
		}
	}
	return true
}

func (b *browser) move(dx, dy int) {
	g := b.ed.Nav.Grid()
	b.cursor.X = geom.Clamp(b.cursor.X+dx, 0, g.Width-1)
	b.cursor.Y = geom.Clamp(b.cursor.Y+dy, 0, g.Height-1)
}

func (b *browser) rebuild() {
	rebuilt, err := b.ed.Commit()
	switch {
	case err != nil:
		b.status = err.Error()
	case rebuilt:
		b.log.Printf("rebuilt in %v", b.ed.LastBuild)
		b.status = "rebuilt: " + b.summary()
		b.query()
	default:
		b.status = "nothing to rebuild"
	}
}

func (b *browser) save() {
	if err := b.ed.SaveMap(""); err != nil {
		b.status = err.Error()
		return
	}
	b.status = "saved " + b.ed.FilePath
}

// query runs a path search between the tile centres of start and goal
func (b *browser) query() {
	b.path = nil
	if !b.hasStart || !b.hasGoal {
		b.status = fmt.Sprintf("start %v goal %v", b.start, b.goal)
		return
	}
	pf := b.ed.Nav.Pathfinder()
	from, to := pf.TileCentre(b.start), pf.TileCentre(b.goal)
	b.path = b.ed.Nav.FindPath(from, to)
	if len(b.path) == 0 {
		b.status = fmt.Sprintf("no path from %v to %v", b.start, b.goal)
		return
	}
	b.status = fmt.Sprintf("%d waypoints from %v to %v", len(b.path), b.start, b.goal)
}

// pathTiles returns the tiles the route passes through
func (b *browser) pathTiles() map[geom.Point]bool {
	tiles := make(map[geom.Point]bool)
	if len(b.path) == 0 {
		return tiles
	}
	ts := float64(b.ed.Nav.Pathfinder().Config().TileSize)
	prev := b.ed.Nav.Pathfinder().TileCentre(b.start)
	for _, p := range b.path {
		geom.Traverse(float64(prev.X)/ts, float64(prev.Y)/ts, float64(p.X)/ts, float64(p.Y)/ts, func(x, y int) bool {
			tiles[geom.Point{X: x, Y: y}] = true
			return true
		})
		prev = p
	}
	return tiles
}

// scroll keeps the cursor inside a viewport of w×h cells
func (b *browser) scroll(w, h int) {
	if b.cursor.X < b.offX {
		b.offX = b.cursor.X
	}
	if b.cursor.X >= b.offX+w {
		b.offX = b.cursor.X - w + 1
	}
	if b.cursor.Y < b.offY {
		b.offY = b.cursor.Y
	}
	if b.cursor.Y >= b.offY+h {
		b.offY = b.cursor.Y - h + 1
	}
}

func (b *browser) draw(screen tcell.Screen) {
	screen.Clear()
	sw, sh := screen.Size()
	viewH := sh - 1
	if sw <= 0 || viewH <= 0 {
		return
	}
	b.scroll(sw, viewH)

	grid := b.ed.Nav.Grid()
	data := b.ed.Nav.Data()
	nodes := make(map[geom.Point]bool)
	if b.showNodes {
		for rid := range data.Graphs {
			for _, n := range data.Region(rid).Nodes {
				nodes[n.Tile] = true
			}
		}
	}
	onPath := b.pathTiles()

	for y := 0; y < viewH; y++ {
		for x := 0; x < sw; x++ {
			t := geom.Point{X: x + b.offX, Y: y + b.offY}
			if !grid.InBounds(t.X, t.Y) {
				continue
			}
			ch, style := b.cell(t, grid, data, nodes, onPath)
			if t == b.cursor {
				style = style.Reverse(true)
			}
			screen.SetContent(x, y, ch, nil, style)
		}
	}

	line := fmt.Sprintf(" (%d,%d) region %d | %s", b.cursor.X, b.cursor.Y, data.Regions.At(b.cursor.X, b.cursor.Y), b.status)
	if b.ed.Nav.Dirty() {
		line += " [dirty]"
	}
	for x := 0; x < sw; x++ {
		ch := ' '
		if x < len(line) {
			ch = rune(line[x])
		}
		screen.SetContent(x, sh-1, ch, nil, statusStyle)
	}
	screen.Show()
}

func (b *browser) cell(t geom.Point, grid *maplib.WallGrid, data *pathfind.Data, nodes, onPath map[geom.Point]bool) (rune, tcell.Style) {
	switch {
	case b.hasStart && t == b.start:
		return 'S', markerStyle
	case b.hasGoal && t == b.goal:
		return 'G', markerStyle
	case grid.Wall(t.X, t.Y):
		return '#', wallStyle
	case onPath[t]:
		return '*', pathStyle
	case nodes[t]:
		return '+', nodeStyle
	}
	rid := data.Regions.At(t.X, t.Y)
	if rid == pathfind.NoRegion {
		return '.', wallStyle
	}
	return '.', tcell.StyleDefault.Foreground(regionColors[rid%len(regionColors)])
}
