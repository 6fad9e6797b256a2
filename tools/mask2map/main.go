package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/1siamBot/rts-nav/engine/maplib"
	"github.com/1siamBot/rts-nav/engine/pathfind"
)

// convert reads a mask image, optionally closes its outer ring and writes it
// as a map file in the format implied by out's extension
func convert(in, out string, w, h int, border bool) (*maplib.WallGrid, error) {
	g, err := maplib.LoadMask(in, w, h)
	if err != nil {
		return nil, err
	}
	if border {
		for x := 0; x < g.Width; x++ {
			g.SetWall(x, 0, true)
			g.SetWall(x, g.Height-1, true)
		}
		for y := 0; y < g.Height; y++ {
			g.SetWall(0, y, true)
			g.SetWall(g.Width-1, y, true)
		}
	}
	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	if err := maplib.FromWallGrid(name, g).Save(out); err != nil {
		return nil, err
	}
	return g, nil
}

func main() {
	in := flag.String("in", "", "mask image (png, bmp, gif, jpeg); dark pixels are walls")
	out := flag.String("out", "", "output map (.json or .txt)")
	w := flag.Int("w", 0, "map width in tiles, 0 = image width")
	h := flag.Int("h", 0, "map height in tiles, 0 = image height")
	border := flag.Bool("border", true, "force a solid outer ring")
	stats := flag.Bool("stats", false, "build navigation data and print its size")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: mask2map -in MASK -out MAP [-w N -h N]")
		os.Exit(2)
	}

	g, err := convert(*in, *out, *w, *h, *border)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %dx%d, %d walls\n", *out, g.Width, g.Height, g.CountWalls())

	if *stats {
		pf, err := pathfind.New(pathfind.DefaultConfig())
		if err != nil {
			log.Fatal(err)
		}
		data, err := pf.Build(g)
		if err != nil {
			log.Fatal(err)
		}
		nodes, edges := 0, 0
		for rid := range data.Graphs {
			nodes += len(data.Graphs[rid].Nodes)
			edges += len(data.Graphs[rid].Edges)
		}
		fmt.Printf("%d regions, %d nodes, %d edges, built in %v\n", data.RegionCount, nodes, edges, data.BuildTime)
	}
}
