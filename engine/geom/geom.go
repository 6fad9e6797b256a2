package geom

import "math"

// Point is an integer coordinate, either a tile or a world pixel
type Point struct{ X, Y int }

// Add returns p+q
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
}

// Vec is a floating point 2D vector
type Vec struct{ X, Y float64 }

// Line is a segment between two integer points
type Line struct {
	Start Point
	End   Point
}

// Rect is an axis-aligned box given by its top-left corner and size
type Rect struct {
	Pos  Vec
	Size Vec
}

// Cross returns the z component of a×b
func Cross(a, b Point) int {
	return a.X*b.Y - a.Y*b.X
}

// Collinear reports whether a, b and c lie on one line
func Collinear(a, b, c Point) bool {
	return Cross(b.Sub(a), c.Sub(a)) == 0
}

// OnSegment reports whether p lies on the closed segment l
func OnSegment(p Point, l Line) bool {
	if !Collinear(l.Start, l.End, p) {
		return false
	}
	return p.X >= min(l.Start.X, l.End.X) &&
		p.X <= max(l.Start.X, l.End.X) &&
		p.Y >= min(l.Start.Y, l.End.Y) &&
		p.Y <= max(l.Start.Y, l.End.Y)
}

// LineContains reports whether inner is a sub-segment of outer
func LineContains(outer, inner Line) bool {
	return OnSegment(inner.Start, outer) && OnSegment(inner.End, outer)
}

// PointInBox reports whether p lies inside r, edges included
func PointInBox(p Vec, r Rect) bool {
	right := r.Pos.X + r.Size.X
	bottom := r.Pos.Y + r.Size.Y
	return p.X >= r.Pos.X && p.X <= right && p.Y >= r.Pos.Y && p.Y <= bottom
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// ClampF limits v to [lo, hi]
func ClampF(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// AngleClamp wraps an angle in degrees into [0, 360)
func AngleClamp(deg float64) float64 {
	a := math.Mod(math.Mod(deg, 360)+360, 360)
	if a >= 360 {
		return 0
	}
	return a
}

// Sign returns -1, 0 or 1
func Sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
