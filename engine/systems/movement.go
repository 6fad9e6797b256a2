package systems

import (
	"errors"
	"fmt"
	"sort"

	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/pathfind"
)

// ErrCannotStand is returned when a unit would overlap a wall or sit outside every region
var ErrCannotStand = errors.New("systems: unit does not fit")

// Unit is one agent moving over a navigator's map
type Unit struct {
	ID int
	pathfind.Follower
}

// MovementSystem orders units around and moves them along their paths
type MovementSystem struct {
	Nav   *pathfind.Navigator
	Units map[int]*Unit

	nextID int
}

func NewMovementSystem(nav *pathfind.Navigator) *MovementSystem {
	return &MovementSystem{Nav: nav, Units: make(map[int]*Unit), nextID: 1}
}

// Spawn places a unit at world position p
func (s *MovementSystem) Spawn(p geom.Point, speed float64) (*Unit, error) {
	if !s.Nav.CanStand(p) {
		return nil, fmt.Errorf("%w at %v", ErrCannotStand, p)
	}
	u := &Unit{ID: s.nextID}
	u.Pos = geom.Vec{X: float64(p.X), Y: float64(p.Y)}
	u.Speed = speed
	s.nextID++
	s.Units[u.ID] = u
	return u, nil
}

// Remove deletes a unit
func (s *MovementSystem) Remove(id int) {
	delete(s.Units, id)
}

// Sorted returns the units in ID order
func (s *MovementSystem) Sorted() []*Unit {
	out := make([]*Unit, 0, len(s.Units))
	for _, u := range s.Units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OrderMove asks the navigator for a route to target and hands it to the
// unit. The unit keeps its old orders when no route exists.
func (s *MovementSystem) OrderMove(u *Unit, target geom.Point) bool {
	path := s.Nav.FindPath(u.At(), target)
	if len(path) == 0 {
		return false
	}
	u.SetPath(path)
	return true
}

// OrderAll sends every unit to target and returns how many found a route
func (s *MovementSystem) OrderAll(target geom.Point) int {
	n := 0
	for _, u := range s.Sorted() {
		if s.OrderMove(u, target) {
			n++
		}
	}
	return n
}

func (s *MovementSystem) Priority() int { return 10 }

// Update moves every unit dt seconds along its path
func (s *MovementSystem) Update(dt float64) {
	for _, u := range s.Units {
		u.Step(dt)
	}
}

// Revalidate drops every order after the walls changed and removes units that
// no longer fit where they stand. It returns the number of units removed.
func (s *MovementSystem) Revalidate() int {
	removed := 0
	for id, u := range s.Units {
		u.Stop()
		if !s.Nav.CanStand(u.At()) {
			delete(s.Units, id)
			removed++
		}
	}
	return removed
}
