package editor

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
	"github.com/1siamBot/rts-nav/engine/pathfind"
)

func newTestEditor(t *testing.T, w, h int) *Editor {
	t.Helper()
	cfg := pathfind.DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	e, err := NewEditor(maplib.NewTileMap("test", w, h), maplib.PassGround, cfg)
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	return e
}

func TestPaintSkipsBorder(t *testing.T) {
	e := newTestEditor(t, 8, 8)
	e.BrushSize = 3
	if n := e.Paint(1, 1); n != 4 {
		t.Fatalf("Paint flipped %d tiles, want 4", n)
	}
	if n := e.Paint(1, 1); n != 0 {
		t.Fatalf("repainting flipped %d tiles", n)
	}
	if len(e.UndoStack) != 1 {
		t.Fatalf("undo stack = %d, want 1", len(e.UndoStack))
	}
	if !e.Modified || !e.Nav.Dirty() {
		t.Fatal("paint should mark the map modified and the navigator dirty")
	}
}

func TestWallSplitsRegionAfterCommit(t *testing.T) {
	e := newTestEditor(t, 10, 10)
	for y := 1; y < 9; y++ {
		e.Paint(5, y)
	}
	if e.Nav.Data().RegionCount != 1 {
		t.Fatal("strokes should not rebuild before Commit")
	}
	rebuilt, err := e.Commit()
	if err != nil || !rebuilt {
		t.Fatalf("Commit = %v, %v", rebuilt, err)
	}
	if e.Nav.Data().RegionCount != 2 {
		t.Fatalf("RegionCount = %d, want 2", e.Nav.Data().RegionCount)
	}
	if path := e.Nav.FindPath(geom.Point{X: 40, Y: 40}, geom.Point{X: 120, Y: 40}); path != nil {
		t.Fatalf("path across the wall = %v", path)
	}
	if rebuilt, _ := e.Commit(); rebuilt {
		t.Fatal("second Commit should not rebuild")
	}
}

func TestUndoRedo(t *testing.T) {
	e := newTestEditor(t, 10, 10)
	e.Paint(3, 3)
	e.Tool = ToolErase
	e.Paint(3, 3)
	if e.Nav.Grid().Wall(3, 3) {
		t.Fatal("erase failed")
	}

	if !e.Undo() || !e.Nav.Grid().Wall(3, 3) {
		t.Fatal("undo of erase should restore the wall")
	}
	if !e.Undo() || e.Nav.Grid().Wall(3, 3) {
		t.Fatal("undo of paint should clear the wall")
	}
	if e.Undo() {
		t.Fatal("undo with empty history")
	}
	if !e.Redo() || !e.Nav.Grid().Wall(3, 3) {
		t.Fatal("redo should repaint the wall")
	}

	e.Tool = ToolWall
	e.Paint(6, 6)
	if len(e.RedoStack) != 0 {
		t.Fatal("a new stroke should clear the redo stack")
	}
}

func TestToggleKeepsTool(t *testing.T) {
	e := newTestEditor(t, 6, 6)
	e.Tool = ToolErase
	if !e.Toggle(2, 2) || !e.Nav.Grid().Wall(2, 2) {
		t.Fatal("toggle should add a wall")
	}
	if !e.Toggle(2, 2) || e.Nav.Grid().Wall(2, 2) {
		t.Fatal("toggle should remove the wall")
	}
	if e.Tool != ToolErase {
		t.Fatalf("tool = %v, want erase", e.Tool)
	}
}

func TestSaveAndReload(t *testing.T) {
	e := newTestEditor(t, 8, 6)
	e.Paint(3, 2)
	path := filepath.Join(t.TempDir(), "room.json")
	if err := e.SaveMap(path); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}
	if e.Modified || e.FilePath != path {
		t.Fatal("save should clear Modified and remember the path")
	}

	if changed, err := e.DiskChanged(); err != nil || changed {
		t.Fatalf("DiskChanged after save = %v, %v", changed, err)
	}
	e.Paint(4, 2)
	if changed, _ := e.DiskChanged(); !changed {
		t.Fatal("unsaved paint should differ from disk")
	}
	if err := e.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	g := e.Nav.Grid()
	if !g.Wall(3, 2) || g.Wall(4, 2) {
		t.Fatal("reload should restore the saved walls only")
	}
	if len(e.UndoStack) != 0 || e.Nav.Dirty() {
		t.Fatal("reload should reset history and rebuild")
	}

	cfg := e.Nav.Pathfinder().Config()
	opened, err := Open(path, maplib.PassGround, cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !opened.Nav.Grid().Equal(g) {
		t.Fatal("Open produced a different grid")
	}
}

func TestNewMap(t *testing.T) {
	e := newTestEditor(t, 8, 8)
	e.Paint(2, 2)
	if err := e.NewMap("fresh", 12, 9); err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	if e.Nav.Grid().Width != 12 || e.Nav.Data().RegionCount != 1 || e.FilePath != "" {
		t.Fatal("NewMap did not reset the editor")
	}
	if err := e.NewMap("tiny", 2, 2); err == nil {
		t.Fatal("expected error for a 2x2 map")
	}
}

func TestOpenSampleMaps(t *testing.T) {
	cfg := pathfind.DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	tests := []struct {
		path    string
		flag    maplib.PassFlag
		regions int
	}{
		{"gap.txt", maplib.PassGround, 1},
		// bridges carry vehicles over the river and cut it for boats
		{"outpost.txt", maplib.PassVehicle, 1},
		{"outpost.txt", maplib.PassNaval, 3},
	}
	for _, tt := range tests {
		e, err := Open(filepath.Join("..", "maps", tt.path), tt.flag, cfg)
		if err != nil {
			t.Fatalf("Open %s: %v", tt.path, err)
		}
		if got := e.Nav.Data().RegionCount; got != tt.regions {
			t.Fatalf("%s flag %d: %d regions, want %d", tt.path, tt.flag, got, tt.regions)
		}
	}
}
