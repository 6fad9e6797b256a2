package render

import "math"

// Camera is a top-down viewport over a map measured in world pixels
type Camera struct {
	X, Y    float64 // world position shown at the screen centre
	Zoom    float64 // 1.0 = one world pixel per screen pixel
	MinZoom float64
	MaxZoom float64
	ScreenW int
	ScreenH int
	Speed   float64 // pan speed, screen pixels per second

	// Map bounds in world pixels for clamping, 0 = unbounded
	MapWidth  float64
	MapHeight float64
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 4.0,
		ScreenW: screenW,
		ScreenH: screenH,
		Speed:   500,
	}
}

// SetMapBounds sets the map size for camera clamping
func (c *Camera) SetMapBounds(tilesW, tilesH, tileSize int) {
	c.MapWidth = float64(tilesW * tileSize)
	c.MapHeight = float64(tilesH * tileSize)
	c.clamp()
}

// Pan moves the camera by a screen pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clamp()
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms while keeping the world point under (screenX, screenY) fixed
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	wx, wy := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	wx2, wy2 := c.ScreenToWorld(screenX, screenY)
	c.X += wx - wx2
	c.Y += wy - wy2
	c.clamp()
}

// CenterOn centres the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X, c.Y = wx, wy
	c.clamp()
}

// WorldToScreen converts a world pixel position to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (wy-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts a screen pixel to world coordinates
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X
	wy := (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y
	return wx, wy
}

// VisibleTileRange returns the inclusive range of tiles on screen
func (c *Camera) VisibleTileRange(tileSize, mapW, mapH int) (minX, minY, maxX, maxY int) {
	wx0, wy0 := c.ScreenToWorld(0, 0)
	wx1, wy1 := c.ScreenToWorld(c.ScreenW, c.ScreenH)
	ts := float64(tileSize)

	minX = max(int(math.Floor(wx0/ts)), 0)
	minY = max(int(math.Floor(wy0/ts)), 0)
	maxX = min(int(math.Floor(wx1/ts)), mapW-1)
	maxY = min(int(math.Floor(wy1/ts)), mapH-1)
	return
}

// clamp keeps the screen centre over the map
func (c *Camera) clamp() {
	if c.MapWidth > 0 {
		c.X = math.Max(0, math.Min(c.MapWidth, c.X))
	}
	if c.MapHeight > 0 {
		c.Y = math.Max(0, math.Min(c.MapHeight, c.Y))
	}
}
