package editor

import (
	"fmt"
	"time"

	"github.com/1siamBot/rts-nav/engine/maplib"
	"github.com/1siamBot/rts-nav/engine/pathfind"
)

// Action represents one undoable wall flip
type Action struct {
	X, Y     int
	Old, New bool
}

// EditorTool represents the current editor tool
type EditorTool int

const (
	ToolWall EditorTool = iota
	ToolErase
)

func (t EditorTool) String() string {
	if t == ToolErase {
		return "erase"
	}
	return "wall"
}

// Editor paints walls onto a map and keeps its navigation data in step.
// Strokes only mark the navigator dirty; Commit runs the single rebuild.
type Editor struct {
	TileMap   *maplib.TileMap
	Nav       *pathfind.Navigator
	Flag      maplib.PassFlag // movement class the walls are derived for
	Tool      EditorTool
	BrushSize int
	UndoStack [][]Action
	RedoStack [][]Action
	FilePath  string
	Modified  bool

	// LastBuild is how long the last Commit rebuild took
	LastBuild time.Duration
}

// NewEditor creates an editor over tm for one movement class
func NewEditor(tm *maplib.TileMap, flag maplib.PassFlag, cfg pathfind.Config) (*Editor, error) {
	if tm.TileSize > 0 {
		cfg.TileSize = tm.TileSize
	}
	nav, err := pathfind.NewNavigator(tm.WallGrid(flag), cfg)
	if err != nil {
		return nil, fmt.Errorf("editor: %s: %w", tm.Name, err)
	}
	return &Editor{
		TileMap:   tm,
		Nav:       nav,
		Flag:      flag,
		BrushSize: 1,
		LastBuild: nav.Data().BuildTime,
	}, nil
}

// Open loads a map file into a new editor
func Open(path string, flag maplib.PassFlag, cfg pathfind.Config) (*Editor, error) {
	tm, err := maplib.Load(path)
	if err != nil {
		return nil, err
	}
	e, err := NewEditor(tm, flag, cfg)
	if err != nil {
		return nil, err
	}
	e.FilePath = path
	return e, nil
}

// Reload rereads the map from disk, dropping unsaved edits and history
func (e *Editor) Reload() error {
	if e.FilePath == "" {
		return fmt.Errorf("editor: no file to reload")
	}
	tm, err := maplib.Load(e.FilePath)
	if err != nil {
		return err
	}
	if err := e.Nav.Reload(tm.WallGrid(e.Flag)); err != nil {
		return fmt.Errorf("editor: reload %s: %w", e.FilePath, err)
	}
	e.TileMap = tm
	e.LastBuild = e.Nav.Data().BuildTime
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
	return nil
}

// DiskChanged reports whether the walls in FilePath differ from the grid
// being edited, so a watcher can ignore the editor's own saves
func (e *Editor) DiskChanged() (bool, error) {
	if e.FilePath == "" {
		return false, nil
	}
	tm, err := maplib.Load(e.FilePath)
	if err != nil {
		return false, err
	}
	return !tm.WallGrid(e.Flag).Equal(e.Nav.Grid()), nil
}

// SaveMap writes the map with the painted walls; an empty path reuses FilePath
func (e *Editor) SaveMap(path string) error {
	if path == "" {
		path = e.FilePath
	}
	if path == "" {
		path = "untitled.json"
	}
	e.TileMap.ApplyWalls(e.Nav.Grid(), e.Flag)
	if err := e.TileMap.Save(path); err != nil {
		return err
	}
	e.FilePath = path
	e.Modified = false
	return nil
}

// Paint applies the current tool at tile (cx, cy) with the brush size and
// returns the number of tiles that flipped. The outer ring is never painted.
func (e *Editor) Paint(cx, cy int) int {
	grid := e.Nav.Grid()
	wall := e.Tool == ToolWall
	var actions []Action
	r := e.BrushSize / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := cx+dx, cy+dy
			if x <= 0 || y <= 0 || x >= grid.Width-1 || y >= grid.Height-1 {
				continue
			}
			old := grid.Wall(x, y)
			if e.Nav.SetWall(x, y, wall) {
				actions = append(actions, Action{X: x, Y: y, Old: old, New: wall})
			}
		}
	}
	if len(actions) > 0 {
		e.UndoStack = append(e.UndoStack, actions)
		e.RedoStack = nil
		e.Modified = true
	}
	return len(actions)
}

// Toggle flips a single tile regardless of the current tool
func (e *Editor) Toggle(x, y int) bool {
	prev := e.Tool
	if e.Nav.Grid().Wall(x, y) {
		e.Tool = ToolErase
	} else {
		e.Tool = ToolWall
	}
	n := e.Paint(x, y)
	e.Tool = prev
	return n > 0
}

// Undo reverts the last stroke
func (e *Editor) Undo() bool {
	if len(e.UndoStack) == 0 {
		return false
	}
	actions := e.UndoStack[len(e.UndoStack)-1]
	e.UndoStack = e.UndoStack[:len(e.UndoStack)-1]
	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		e.Nav.SetWall(a.X, a.Y, a.Old)
	}
	e.RedoStack = append(e.RedoStack, actions)
	e.Modified = true
	return true
}

// Redo re-applies the last undone stroke
func (e *Editor) Redo() bool {
	if len(e.RedoStack) == 0 {
		return false
	}
	actions := e.RedoStack[len(e.RedoStack)-1]
	e.RedoStack = e.RedoStack[:len(e.RedoStack)-1]
	for _, a := range actions {
		e.Nav.SetWall(a.X, a.Y, a.New)
	}
	e.UndoStack = append(e.UndoStack, actions)
	e.Modified = true
	return true
}

// Commit rebuilds the navigation data if any stroke, undo or redo flipped a
// wall since the last build
func (e *Editor) Commit() (bool, error) {
	rebuilt, err := e.Nav.Rebuild()
	if err != nil {
		return false, fmt.Errorf("editor: rebuild: %w", err)
	}
	if rebuilt {
		e.LastBuild = e.Nav.Data().BuildTime
	}
	return rebuilt, nil
}

// NewMap replaces the map with an empty bordered one
func (e *Editor) NewMap(name string, w, h int) error {
	tm := maplib.NewTileMap(name, w, h)
	if err := e.Nav.Reload(tm.WallGrid(e.Flag)); err != nil {
		return fmt.Errorf("editor: new map: %w", err)
	}
	e.TileMap = tm
	e.LastBuild = e.Nav.Data().BuildTime
	e.FilePath = ""
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
	return nil
}
