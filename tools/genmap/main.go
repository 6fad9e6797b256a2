package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/1siamBot/rts-nav/engine/maplib"
)

// terrainFn picks the terrain of interior tile (x, y) of a w×h map
type terrainFn func(x, y, w, h int, rng *rand.Rand) maplib.TerrainType

var generators = []struct {
	name string
	fn   terrainFn
}{
	{"pillars", func(x, y, w, h int, rng *rand.Rand) maplib.TerrainType {
		// 2x2 pillars on a 6-tile lattice
		if x%6 >= 3 && x%6 <= 4 && y%6 >= 3 && y%6 <= 4 {
			return maplib.TerrainCliff
		}
		return maplib.TerrainGrass
	}},
	{"river", func(x, y, w, h int, rng *rand.Rand) maplib.TerrainType {
		// a winding river with a bridge every 12 rows
		centre := float64(w)/2 + 4*math.Sin(float64(y)*0.3)
		if math.Abs(float64(x)-centre) < 2 {
			if y%12 == 6 {
				return maplib.TerrainBridge
			}
			return maplib.TerrainWater
		}
		if rng.Float64() < 0.04 {
			return maplib.TerrainForest
		}
		return maplib.TerrainGrass
	}},
	{"rooms", func(x, y, w, h int, rng *rand.Rand) maplib.TerrainType {
		// 10-tile rooms joined by 2-tile doors in the middle of each wall
		if x%10 == 0 || y%10 == 0 {
			if (x%10 == 0 && y%10 >= 4 && y%10 <= 5) || (y%10 == 0 && x%10 >= 4 && x%10 <= 5) {
				return maplib.TerrainDirt
			}
			return maplib.TerrainUrban
		}
		return maplib.TerrainGrass
	}},
	{"rubble", func(x, y, w, h int, rng *rand.Rand) maplib.TerrainType {
		if rng.Float64() < 0.22 {
			return maplib.TerrainRock
		}
		return maplib.TerrainSand
	}},
}

// generate builds one bordered map from fn; the same seed gives the same map
func generate(name string, w, h int, seed int64, fn terrainFn) *maplib.TileMap {
	rng := rand.New(rand.NewSource(seed))
	tm := maplib.NewTileMap(name, w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			t := fn(x, y, w, h, rng)
			tm.SetTerrain(x, y, x, y, t)
		}
	}
	return tm
}

func main() {
	dir := flag.String("dir", "maps", "output directory")
	w := flag.Int("w", 64, "map width in tiles")
	h := flag.Int("h", 48, "map height in tiles")
	seed := flag.Int64("seed", 12345, "random seed")
	ext := flag.String("ext", ".json", "output format: .json, .txt or .png")
	force := flag.Bool("force", false, "overwrite existing maps")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		log.Fatal(err)
	}
	for _, g := range generators {
		path := filepath.Join(*dir, g.name+*ext)
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Printf("  skip %s (exists)\n", path)
			continue
		}
		tm := generate(g.name, *w, *h, *seed, g.fn)
		if err := tm.Save(path); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  wrote %s\n", path)
	}
}
