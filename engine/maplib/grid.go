package maplib

import (
	"fmt"
	"strings"
)

// WallGrid is a rectangular passability grid indexed [x][y], true = impassable
type WallGrid struct {
	Width, Height int
	walls         []bool
}

// NewWallGrid creates an all-open grid
func NewWallGrid(width, height int) *WallGrid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("maplib: negative grid size %dx%d", width, height))
	}
	return &WallGrid{
		Width:  width,
		Height: height,
		walls:  make([]bool, width*height),
	}
}

// NewBorderedGrid creates a grid with an open interior and a solid 1-tile ring
func NewBorderedGrid(width, height int) *WallGrid {
	g := NewWallGrid(width, height)
	for x := 0; x < width; x++ {
		g.walls[x] = true
		g.walls[(height-1)*width+x] = true
	}
	for y := 0; y < height; y++ {
		g.walls[y*width] = true
		g.walls[y*width+width-1] = true
	}
	return g
}

// ParseGrid reads a grid from text rows, '#' is a wall, anything else is open.
// Blank lines are skipped; all rows must have the same length.
func ParseGrid(text string) (*WallGrid, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r \t")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("maplib: empty grid")
	}
	w := len(rows[0])
	g := NewWallGrid(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("maplib: row %d has %d tiles, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			g.walls[y*w+x] = row[x] == '#'
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures known to be well-formed
func MustParseGrid(text string) *WallGrid {
	g, err := ParseGrid(text)
	if err != nil {
		panic(err)
	}
	return g
}

// InBounds checks if coordinates are within the grid
func (g *WallGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Wall reports whether (x,y) is impassable. Out-of-bounds tiles are walls.
func (g *WallGrid) Wall(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.walls[y*g.Width+x]
}

// SetWall sets the wall flag at (x,y) and reports whether it changed
func (g *WallGrid) SetWall(x, y int, wall bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	i := y*g.Width + x
	if g.walls[i] == wall {
		return false
	}
	g.walls[i] = wall
	return true
}

// Clone returns a deep copy
func (g *WallGrid) Clone() *WallGrid {
	c := &WallGrid{Width: g.Width, Height: g.Height, walls: make([]bool, len(g.walls))}
	copy(c.walls, g.walls)
	return c
}

// Equal reports whether both grids have the same size and walls
func (g *WallGrid) Equal(o *WallGrid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for i := range g.walls {
		if g.walls[i] != o.walls[i] {
			return false
		}
	}
	return true
}

// CountWalls returns the number of impassable tiles
func (g *WallGrid) CountWalls() int {
	n := 0
	for _, w := range g.walls {
		if w {
			n++
		}
	}
	return n
}

// String renders the grid in the ParseGrid format
func (g *WallGrid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.walls[y*g.Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
