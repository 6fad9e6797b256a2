package geom

import "math"

// Traverse walks the unit grid cells crossed by the segment (x1,y1)-(x2,y2)
// using a DDA, starting with the cell containing the start point.
// visit is called for every cell in order; returning false stops the walk.
// Traverse returns true if the end of the segment was reached.
// When the segment passes exactly through a grid corner the Y step is taken first.
func Traverse(x1, y1, x2, y2 float64, visit func(x, y int) bool) bool {
	fx, fy := math.Floor(x1), math.Floor(y1)
	cx, cy := int(fx), int(fy)
	if !visit(cx, cy) {
		return false
	}

	dx, dy := x2-x1, y2-y1
	stepX, stepY := 0, 0
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)

	if dx > 0 {
		stepX = 1
		tDeltaX = 1 / dx
		tMaxX = (fx + 1 - x1) * tDeltaX
	} else if dx < 0 {
		stepX = -1
		tDeltaX = -1 / dx
		tMaxX = (x1 - fx) * tDeltaX
	}
	if dy > 0 {
		stepY = 1
		tDeltaY = 1 / dy
		tMaxY = (fy + 1 - y1) * tDeltaY
	} else if dy < 0 {
		stepY = -1
		tDeltaY = -1 / dy
		tMaxY = (y1 - fy) * tDeltaY
	}

	for {
		if tMaxX < tMaxY {
			if tMaxX > 1 {
				return true
			}
			cx += stepX
			tMaxX += tDeltaX
		} else {
			if tMaxY > 1 {
				return true
			}
			cy += stepY
			tMaxY += tDeltaY
		}
		if !visit(cx, cy) {
			return false
		}
	}
}

// LineOfSight reports whether the segment (x1,y1)-(x2,y2) crosses no blocked
// cell. The start cell is not tested.
func LineOfSight(x1, y1, x2, y2 float64, blocked func(x, y int) bool) bool {
	first := true
	return Traverse(x1, y1, x2, y2, func(x, y int) bool {
		if first {
			first = false
			return true
		}
		return !blocked(x, y)
	})
}
