package maplib

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// maskThreshold is the 16-bit luminance below which a mask pixel is a wall
const maskThreshold = 0x8000

// LoadMask decodes an image and turns it into a wall grid of w×h tiles,
// dark pixels being walls. A zero w or h keeps the image size (1 pixel = 1 tile).
func LoadMask(path string, w, h int) (*WallGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("maplib: load mask %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("maplib: decode mask %s: %w", path, err)
	}
	return MaskFromImage(img, w, h), nil
}

// MaskFromImage rescales img to w×h with nearest-neighbour sampling and
// thresholds it into a wall grid
func MaskFromImage(img image.Image, w, h int) *WallGrid {
	b := img.Bounds()
	if w <= 0 || h <= 0 {
		w, h = b.Dx(), b.Dy()
	}

	gray := image.NewGray16(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(gray, gray.Bounds(), img, b, xdraw.Src, nil)

	g := NewWallGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := gray.Gray16At(x, y)
			g.SetWall(x, y, c.Y < maskThreshold)
		}
	}
	return g
}

// MaskImage renders a grid back into a black/white image, walls black
func MaskImage(g *WallGrid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Wall(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// SaveMask writes g as a PNG mask readable by LoadMask
func SaveMask(path string, g *WallGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("maplib: save mask %s: %w", path, err)
	}
	if err := png.Encode(f, MaskImage(g)); err != nil {
		f.Close()
		return fmt.Errorf("maplib: encode mask %s: %w", path, err)
	}
	return f.Close()
}
