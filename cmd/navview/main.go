package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/1siamBot/rts-nav/editor"
	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/input"
	"github.com/1siamBot/rts-nav/engine/maplib"
	"github.com/1siamBot/rts-nav/engine/pathfind"
	"github.com/1siamBot/rts-nav/engine/render"
	"github.com/1siamBot/rts-nav/engine/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720

	unitSpeed = 120.0 // world pixels per second
	tickDT    = 1.0 / 60
)

var unitColor = color.RGBA{255, 60, 60, 255}

type ViewerApp struct {
	editor   *editor.Editor
	renderer *render.NavRenderer
	input    *input.InputState
	watcher  *maplib.Watcher

	hover   geom.Point
	editing bool
	status  string

	units *systems.MovementSystem
}

func NewViewerApp(ed *editor.Editor, w *maplib.Watcher) *ViewerApp {
	ts := ed.Nav.Pathfinder().Config().TileSize
	a := &ViewerApp{
		editor:   ed,
		renderer: render.NewNavRenderer(ScreenWidth, ScreenHeight, ts),
		input:    input.NewInputState(),
		watcher:  w,
		units:    systems.NewMovementSystem(ed.Nav),
	}
	grid := ed.Nav.Grid()
	a.renderer.Camera.SetMapBounds(grid.Width, grid.Height, ts)
	a.renderer.Camera.CenterOn(float64(grid.Width*ts)/2, float64(grid.Height*ts)/2)
	a.status = fmt.Sprintf("%d regions built in %v", ed.Nav.Data().RegionCount, ed.LastBuild)
	return a
}

func (a *ViewerApp) Update() error {
	a.input.Update()
	a.pollWatcher()

	cam := a.renderer.Camera
	if !a.input.Ctrl {
		dx, dy := a.input.PanDelta()
		speed := cam.Speed / 60.0
		cam.Pan(dx*speed, dy*speed)
	}
	if a.input.ScrollY != 0 {
		cam.ZoomAt(a.input.ScrollY*0.1, a.input.MouseX, a.input.MouseY)
	}
	// middle drag always pans, left drag pans outside edit mode
	if a.input.MiddlePressed || (!a.editing && a.input.LeftPressed && a.input.Dragging) {
		cam.Pan(float64(-a.input.MouseDX), float64(-a.input.MouseDY))
	}

	world := a.mouseWorld()
	a.hover = a.editor.Nav.Pathfinder().TileOf(world)

	a.handleKeys()

	if a.editing {
		if a.input.LeftPressed {
			a.editor.Tool = editor.ToolWall
			if a.input.Shift {
				a.editor.Tool = editor.ToolErase
			}
			a.editor.Paint(a.hover.X, a.hover.Y)
		}
		// one rebuild per stroke
		if a.input.LeftJustReleased {
			a.commit()
		}
	} else {
		if a.input.Clicked() {
			a.placeUnit(world)
		}
		if a.input.RightJustReleased && len(a.units.Units) > 0 {
			a.order(world)
		}
	}

	a.units.Update(tickDT)
	return nil
}

func (a *ViewerApp) handleKeys() {
	ctrl := a.input.Ctrl
	switch {
	case a.input.IsKeyJustPressed(ebiten.KeyE):
		a.editing = !a.editing
		if !a.editing {
			a.commit()
		}
	case a.input.IsKeyJustPressed(ebiten.KeyZ):
		if a.editor.Undo() {
			a.status = "undo"
		}
	case a.input.IsKeyJustPressed(ebiten.KeyY):
		if a.editor.Redo() {
			a.status = "redo"
		}
	case a.input.IsKeyJustPressed(ebiten.KeyR):
		a.commit()
	case a.input.IsKeyJustPressed(ebiten.KeyG):
		a.renderer.ShowGraph = !a.renderer.ShowGraph
	case a.input.IsKeyJustPressed(ebiten.KeyC):
		a.renderer.ShowRegions = !a.renderer.ShowRegions
	case a.input.IsKeyJustPressed(ebiten.KeyX):
		a.units = systems.NewMovementSystem(a.editor.Nav)
		a.status = "units cleared"
	case a.input.IsKeyJustPressed(ebiten.KeyTab):
		a.editor.BrushSize += 2
		if a.editor.BrushSize > 7 {
			a.editor.BrushSize = 1
		}
	case ctrl && a.input.IsKeyJustPressed(ebiten.KeyS):
		if err := a.editor.SaveMap(""); err != nil {
			log.Printf("Save failed: %v", err)
			a.status = "save failed"
		} else {
			log.Printf("Saved to %s", a.editor.FilePath)
			a.status = "saved " + a.editor.FilePath
		}
	}
}

func (a *ViewerApp) mouseWorld() geom.Point {
	wx, wy := a.renderer.Camera.ScreenToWorld(a.input.MouseX, a.input.MouseY)
	return geom.Point{X: int(math.Floor(wx)), Y: int(math.Floor(wy))}
}

func (a *ViewerApp) placeUnit(p geom.Point) {
	u, err := a.units.Spawn(p, unitSpeed)
	if err != nil {
		a.status = err.Error()
		return
	}
	a.status = fmt.Sprintf("unit %d at %v, region %d", u.ID, p, a.editor.Nav.RegionAt(p))
}

func (a *ViewerApp) order(target geom.Point) {
	n := a.units.OrderAll(target)
	if n == 0 {
		a.status = fmt.Sprintf("no path to %v", target)
		return
	}
	a.status = fmt.Sprintf("%d/%d units moving to %v", n, len(a.units.Units), target)
}

func (a *ViewerApp) commit() {
	rebuilt, err := a.editor.Commit()
	if err != nil {
		log.Printf("Rebuild failed: %v", err)
		a.status = "rebuild failed"
		return
	}
	if !rebuilt {
		return
	}
	log.Printf("Rebuilt navigation in %v", a.editor.LastBuild)
	a.status = fmt.Sprintf("%d regions rebuilt in %v", a.editor.Nav.Data().RegionCount, a.editor.LastBuild)
	a.revalidateUnits()
}

// revalidateUnits drops all orders after the map changed under the units
func (a *ViewerApp) revalidateUnits() {
	if n := a.units.Revalidate(); n > 0 {
		log.Printf("Removed %d units buried by walls", n)
	}
}

func (a *ViewerApp) pollWatcher() {
	if a.watcher == nil {
		return
	}
	select {
	case path := <-a.watcher.Events:
		if a.editor.Modified {
			log.Printf("%s changed on disk, keeping unsaved edits", path)
			return
		}
		if changed, err := a.editor.DiskChanged(); err != nil || !changed {
			return
		}
		if err := a.editor.Reload(); err != nil {
			log.Printf("Reload failed: %v", err)
			return
		}
		log.Printf("Reloaded %s in %v", path, a.editor.LastBuild)
		a.status = "reloaded " + path
		a.revalidateUnits()
	case err := <-a.watcher.Errors:
		log.Printf("Watch error: %v", err)
	default:
	}
}

func (a *ViewerApp) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 40, 255})

	nav := a.editor.Nav
	a.renderer.DrawMap(screen, nav.Grid(), nav.Data())
	if a.renderer.ShowGraph {
		a.renderer.DrawGraph(screen, nav.Data(), nav.Pathfinder())
	}
	if nav.Grid().InBounds(a.hover.X, a.hover.Y) {
		a.renderer.DrawHover(screen, a.hover)
	}
	for _, u := range a.units.Sorted() {
		a.renderer.DrawPath(screen, u.At(), u.Remaining())
		a.renderer.DrawAgent(screen, u.At(), nav.Pathfinder().Config().AgentRadius, unitColor)
	}

	mode := "order"
	if a.editing {
		mode = fmt.Sprintf("edit brush:%d", a.editor.BrushSize)
	}
	dirty := ""
	if nav.Dirty() {
		dirty = " [R to rebuild]"
	}
	modified := ""
	if a.editor.Modified {
		modified = " *"
	}
	info := fmt.Sprintf("%s%s | Tile(%d,%d) region %d | %s%s",
		mode, modified, a.hover.X, a.hover.Y, nav.Data().Regions.At(a.hover.X, a.hover.Y), a.status, dirty)
	ebitenutil.DebugPrintAt(screen, info, 5, ScreenHeight-36)
	ebitenutil.DebugPrintAt(screen,
		"[LMB]Unit/drag pan [RMB]Move [X]Clear [E]Edit [Shift]Erase [Tab]Brush [Z/Y]Undo/Redo [R]Rebuild [G]Graph [C]Regions [Ctrl+S]Save",
		5, ScreenHeight-20)
}

func (a *ViewerApp) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	mapPath := flag.String("map", "", "map file (.json, .txt or mask image)")
	cfgPath := flag.String("config", "", "pathfinder YAML config")
	class := flag.String("class", "ground", "movement class: infantry, vehicle, naval, air, ground")
	width := flag.Int("w", 64, "width of a new map when -map is empty")
	height := flag.Int("h", 48, "height of a new map when -map is empty")
	watch := flag.Bool("watch", true, "reload the map when it changes on disk")
	flag.Parse()

	cfg := pathfind.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = pathfind.LoadConfig(*cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	pass, err := maplib.ParsePassFlag(*class)
	if err != nil {
		log.Fatal(err)
	}

	var ed *editor.Editor
	if *mapPath != "" {
		ed, err = editor.Open(*mapPath, pass, cfg)
	} else {
		ed, err = editor.NewEditor(maplib.NewTileMap("Untitled", *width, *height), pass, cfg)
	}
	if err != nil {
		log.Fatal(err)
	}

	var w *maplib.Watcher
	if *watch && *mapPath != "" {
		if w, err = maplib.NewWatcher(*mapPath); err != nil {
			log.Printf("Watching disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("RTS Nav Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewViewerApp(ed, w)); err != nil {
		log.Fatal(err)
	}
}
