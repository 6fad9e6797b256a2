package maplib

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TerrainType defines the terrain of a tile
type TerrainType uint8

const (
	TerrainGrass TerrainType = iota
	TerrainDirt
	TerrainSand
	TerrainWater
	TerrainDeepWater
	TerrainRock
	TerrainCliff
	TerrainRoad
	TerrainBridge
	TerrainForest
	TerrainUrban
)

// Passability flags
type PassFlag uint8

const (
	PassInfantry PassFlag = 1 << iota
	PassVehicle
	PassNaval
	PassAir
	PassGround PassFlag = PassInfantry | PassVehicle
	PassAll    PassFlag = PassInfantry | PassVehicle | PassNaval | PassAir
)

// ParsePassFlag maps a movement class name to its flag
func ParsePassFlag(name string) (PassFlag, error) {
	switch strings.ToLower(name) {
	case "infantry":
		return PassInfantry, nil
	case "vehicle":
		return PassVehicle, nil
	case "naval":
		return PassNaval, nil
	case "air":
		return PassAir, nil
	case "ground":
		return PassGround, nil
	case "all":
		return PassAll, nil
	}
	return 0, fmt.Errorf("maplib: unknown movement class %q", name)
}

// terrainLegend maps map-file runes to terrain; '#' doubles as the plain wall rune
var terrainLegend = map[byte]TerrainType{
	'.': TerrainGrass,
	',': TerrainDirt,
	':': TerrainSand,
	'~': TerrainWater,
	'w': TerrainDeepWater,
	'^': TerrainRock,
	'#': TerrainCliff,
	'=': TerrainRoad,
	'H': TerrainBridge,
	'T': TerrainForest,
	'U': TerrainUrban,
}

var terrainRune = func() map[TerrainType]byte {
	m := make(map[TerrainType]byte, len(terrainLegend))
	for r, t := range terrainLegend {
		m[t] = r
	}
	return m
}()

// Passable returns which movement classes can cross the terrain
func (t TerrainType) Passable() PassFlag {
	switch t {
	case TerrainWater, TerrainDeepWater:
		return PassNaval | PassAir
	case TerrainCliff, TerrainUrban:
		return PassAir
	case TerrainRock, TerrainForest:
		return PassInfantry | PassAir
	case TerrainBridge:
		return PassGround | PassAir
	default:
		return PassGround | PassAir
	}
}

// TileMap is a terrain map; its passability for one movement class is a WallGrid
type TileMap struct {
	Name     string `json:"name"`
	Author   string `json:"author,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	TileSize int    `json:"tile_size,omitempty"` // pixels per tile, 0 = caller default

	// Rows holds one legend rune per tile, row y first
	Rows []string `json:"rows"`

	StartPositions []StartPos `json:"start_positions,omitempty"`

	terrain []TerrainType
}

// StartPos defines a player start position
type StartPos struct {
	PlayerSlot int `json:"player_slot"`
	X          int `json:"x"`
	Y          int `json:"y"`
}

// NewTileMap creates a grass map ringed by cliffs
func NewTileMap(name string, width, height int) *TileMap {
	tm := &TileMap{
		Name:    name,
		Width:   width,
		Height:  height,
		terrain: make([]TerrainType, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				tm.terrain[y*width+x] = TerrainCliff
			}
		}
	}
	return tm
}

// FromWallGrid builds a map where walls are cliffs and open tiles are grass
func FromWallGrid(name string, g *WallGrid) *TileMap {
	tm := &TileMap{
		Name:    name,
		Width:   g.Width,
		Height:  g.Height,
		terrain: make([]TerrainType, g.Width*g.Height),
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Wall(x, y) {
				tm.terrain[y*g.Width+x] = TerrainCliff
			}
		}
	}
	return tm
}

// InBounds checks if coordinates are within map bounds
func (tm *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < tm.Width && y < tm.Height
}

// At returns the terrain at (x, y)
func (tm *TileMap) At(x, y int) (TerrainType, bool) {
	if !tm.InBounds(x, y) {
		return 0, false
	}
	return tm.terrain[y*tm.Width+x], true
}

// SetTerrain sets terrain for a rectangular region, clipped to the map
func (tm *TileMap) SetTerrain(x1, y1, x2, y2 int, terrain TerrainType) {
	for y := max(y1, 0); y <= min(y2, tm.Height-1); y++ {
		for x := max(x1, 0); x <= min(x2, tm.Width-1); x++ {
			tm.terrain[y*tm.Width+x] = terrain
		}
	}
}

// IsPassable checks if a tile can be traversed by a given movement class
func (tm *TileMap) IsPassable(x, y int, flag PassFlag) bool {
	t, ok := tm.At(x, y)
	return ok && t.Passable()&flag != 0
}

// WallGrid derives the passability grid for one movement class
func (tm *TileMap) WallGrid(flag PassFlag) *WallGrid {
	g := NewWallGrid(tm.Width, tm.Height)
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			g.SetWall(x, y, !tm.IsPassable(x, y, flag))
		}
	}
	return g
}

// ApplyWalls writes wall edits back: new walls become cliffs, opened tiles grass.
// Tiles whose passability already matches are left untouched.
func (tm *TileMap) ApplyWalls(g *WallGrid, flag PassFlag) {
	for y := 0; y < tm.Height && y < g.Height; y++ {
		for x := 0; x < tm.Width && x < g.Width; x++ {
			wall := g.Wall(x, y)
			if wall == !tm.IsPassable(x, y, flag) {
				continue
			}
			if wall {
				tm.terrain[y*tm.Width+x] = TerrainCliff
			} else {
				tm.terrain[y*tm.Width+x] = TerrainGrass
			}
		}
	}
}

func (tm *TileMap) encodeRows() {
	tm.Rows = make([]string, tm.Height)
	row := make([]byte, tm.Width)
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			row[x] = terrainRune[tm.terrain[y*tm.Width+x]]
		}
		tm.Rows[y] = string(row)
	}
}

func (tm *TileMap) decodeRows() error {
	if tm.Width == 0 && tm.Height == 0 && len(tm.Rows) > 0 {
		tm.Width, tm.Height = len(tm.Rows[0]), len(tm.Rows)
	}
	if len(tm.Rows) != tm.Height {
		return fmt.Errorf("maplib: %d rows, want %d", len(tm.Rows), tm.Height)
	}
	tm.terrain = make([]TerrainType, tm.Width*tm.Height)
	for y, row := range tm.Rows {
		if len(row) != tm.Width {
			return fmt.Errorf("maplib: row %d has %d tiles, want %d", y, len(row), tm.Width)
		}
		for x := 0; x < tm.Width; x++ {
			t, ok := terrainLegend[row[x]]
			if !ok {
				return fmt.Errorf("maplib: unknown terrain %q at (%d,%d)", row[x], x, y)
			}
			tm.terrain[y*tm.Width+x] = t
		}
	}
	return nil
}

// SaveJSON saves the map to a JSON file
func (tm *TileMap) SaveJSON(path string) error {
	tm.encodeRows()
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return fmt.Errorf("maplib: encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a map from a JSON file
func LoadJSON(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maplib: load %s: %w", path, err)
	}
	var tm TileMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("maplib: unmarshal %s: %w", path, err)
	}
	if err := tm.decodeRows(); err != nil {
		return nil, fmt.Errorf("maplib: %s: %w", path, err)
	}
	return &tm, nil
}

// SaveText writes the legend rows, one line per map row
func (tm *TileMap) SaveText(path string) error {
	tm.encodeRows()
	return os.WriteFile(path, []byte(strings.Join(tm.Rows, "\n")+"\n"), 0644)
}

// LoadText reads a map made of legend rows; the map is named after the file
func LoadText(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maplib: load %s: %w", path, err)
	}
	tm := &TileMap{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r \t")
		if line == "" {
			continue
		}
		tm.Rows = append(tm.Rows, line)
	}
	if len(tm.Rows) == 0 {
		return nil, fmt.Errorf("maplib: %s: empty map", path)
	}
	if err := tm.decodeRows(); err != nil {
		return nil, fmt.Errorf("maplib: %s: %w", path, err)
	}
	return tm, nil
}

// Load reads a map by file extension: .json, an image mask, or text rows
func Load(path string) (*TileMap, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".rtsmap":
		return LoadJSON(path)
	case ".png", ".bmp", ".gif", ".jpg", ".jpeg":
		g, err := LoadMask(path, 0, 0)
		if err != nil {
			return nil, err
		}
		return FromWallGrid(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), g), nil
	default:
		return LoadText(path)
	}
}

// Save writes a map in the format implied by the extension: .json, a .png
// ground mask, or text rows
func (tm *TileMap) Save(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".rtsmap":
		return tm.SaveJSON(path)
	case ".png":
		return SaveMask(path, tm.WallGrid(PassGround))
	default:
		return tm.SaveText(path)
	}
}
