package pathfind

import (
	"math"

	"github.com/1siamBot/rts-nav/engine/geom"
)

// Steer returns the velocity that carries a unit at pos straight toward target
func Steer(pos geom.Vec, speed float64, target geom.Point) geom.Vec {
	dx, dy := float64(target.X)-pos.X, float64(target.Y)-pos.Y
	dist := math.Hypot(dx, dy)
	if dist < 0.01 {
		return geom.Vec{}
	}
	return geom.Vec{X: dx / dist * speed, Y: dy / dist * speed}
}

// Follower walks a unit along the waypoints returned by FindPath.
// Positions are world pixels and Speed is pixels per second.
type Follower struct {
	Pos    geom.Vec
	Speed  float64
	Facing float64
	Path   []geom.Point
	Idx    int
}

// SetPath replaces the current orders
func (f *Follower) SetPath(path []geom.Point) {
	f.Path = path
	f.Idx = 0
}

// Stop drops any remaining waypoints
func (f *Follower) Stop() {
	f.Path = nil
	f.Idx = 0
}

// Done reports whether every waypoint has been reached
func (f *Follower) Done() bool { return f.Idx >= len(f.Path) }

// At returns the pixel the unit currently occupies
func (f *Follower) At() geom.Point {
	return geom.Point{X: int(math.Floor(f.Pos.X)), Y: int(math.Floor(f.Pos.Y))}
}

// Remaining returns the waypoints still ahead
func (f *Follower) Remaining() []geom.Point {
	if f.Done() {
		return nil
	}
	return f.Path[f.Idx:]
}

// Step advances the unit by dt seconds. Distance left over after reaching a
// waypoint carries on toward the next one, so corners are never overshot.
func (f *Follower) Step(dt float64) bool {
	budget := f.Speed * dt
	moved := false
	for budget > 0 && !f.Done() {
		target := f.Path[f.Idx]
		tx, ty := float64(target.X), float64(target.Y)
		dist := math.Hypot(tx-f.Pos.X, ty-f.Pos.Y)
		if dist <= budget {
			if dist > 0 {
				f.Facing = math.Atan2(ty-f.Pos.Y, tx-f.Pos.X)
			}
			f.Pos = geom.Vec{X: tx, Y: ty}
			budget -= dist
			f.Idx++
			moved = true
			continue
		}
		v := Steer(f.Pos, budget, target)
		f.Pos.X += v.X
		f.Pos.Y += v.Y
		f.Facing = math.Atan2(v.Y, v.X)
		budget = 0
		moved = true
	}
	return moved
}
