package systems

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/1siamBot/rts-nav/engine/geom"
	"github.com/1siamBot/rts-nav/engine/maplib"
	"github.com/1siamBot/rts-nav/engine/pathfind"
)

const gapMap = `##########
#........#
#........#
#........#
#........#
####.#####
#........#
#........#
#........#
##########
`

func newTestSystem(t *testing.T) *MovementSystem {
	t.Helper()
	cfg := pathfind.DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	nav, err := pathfind.NewNavigator(maplib.MustParseGrid(gapMap), cfg)
	if err != nil {
		t.Fatalf("NewNavigator: %v", err)
	}
	return NewMovementSystem(nav)
}

func TestSpawnRejectsWalls(t *testing.T) {
	s := newTestSystem(t)
	if _, err := s.Spawn(geom.Point{X: 40, Y: 88}, 60); !errors.Is(err, ErrCannotStand) {
		t.Fatalf("spawn in the wall row: err = %v", err)
	}
	// touching the border wall
	if _, err := s.Spawn(geom.Point{X: 18, Y: 40}, 60); !errors.Is(err, ErrCannotStand) {
		t.Fatalf("spawn against the border: err = %v", err)
	}
	a, err := s.Spawn(geom.Point{X: 40, Y: 40}, 60)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	b, _ := s.Spawn(geom.Point{X: 56, Y: 40}, 60)
	if a.ID == b.ID || len(s.Sorted()) != 2 || s.Sorted()[0] != a {
		t.Fatal("units should get distinct ids in spawn order")
	}
	s.Remove(a.ID)
	if len(s.Units) != 1 {
		t.Fatal("Remove failed")
	}
}

func TestUnitsReachGoalThroughGap(t *testing.T) {
	s := newTestSystem(t)
	s.Spawn(geom.Point{X: 40, Y: 40}, 60)
	s.Spawn(geom.Point{X: 120, Y: 24}, 60)

	goal := geom.Point{X: 104, Y: 136}
	if n := s.OrderAll(goal); n != 2 {
		t.Fatalf("OrderAll routed %d units, want 2", n)
	}
	for i := 0; i < 10*60; i++ {
		s.Update(1.0 / 60)
	}
	for _, u := range s.Units {
		if !u.Done() || u.At() != goal {
			t.Fatalf("unit %d stopped at %+v", u.ID, u.Pos)
		}
	}
}

func TestOrderWithoutRouteKeepsOrders(t *testing.T) {
	s := newTestSystem(t)
	u, _ := s.Spawn(geom.Point{X: 40, Y: 40}, 60)
	if !s.OrderMove(u, geom.Point{X: 120, Y: 40}) {
		t.Fatal("expected a route inside the top room")
	}
	if s.OrderMove(u, geom.Point{X: -5, Y: 40}) {
		t.Fatal("off-map target should have no route")
	}
	if u.Done() {
		t.Fatal("a failed order should not clear the old one")
	}
}

func TestRevalidateAfterRebuild(t *testing.T) {
	s := newTestSystem(t)
	u, _ := s.Spawn(geom.Point{X: 72, Y: 40}, 60)
	v, _ := s.Spawn(geom.Point{X: 120, Y: 120}, 60)
	s.OrderMove(v, geom.Point{X: 40, Y: 40})

	s.Nav.SetWall(4, 2, true)
	s.Nav.SetWall(4, 5, true)
	if _, err := s.Nav.Rebuild(); err != nil {
		t.Fatal(err)
	}
	if removed := s.Revalidate(); removed != 1 {
		t.Fatalf("removed %d units, want 1", removed)
	}
	if _, ok := s.Units[u.ID]; ok {
		t.Fatal("the unit under the new wall should be gone")
	}
	if !v.Done() {
		t.Fatal("surviving units should lose their orders")
	}
	if s.OrderMove(v, geom.Point{X: 40, Y: 40}) {
		t.Fatal("the closed gap should leave no route")
	}
}

func TestSpawnUsesLastBuild(t *testing.T) {
	s := newTestSystem(t)
	// a wall at (2,2) and an opening at (2,5), neither built yet
	s.Nav.SetWall(2, 2, true)
	if _, err := s.Spawn(geom.Point{X: 40, Y: 40}, 60); err != nil {
		t.Fatalf("spawn should follow the last build until Rebuild: %v", err)
	}
	s.Nav.SetWall(2, 5, false)
	if _, err := s.Spawn(geom.Point{X: 40, Y: 88}, 60); !errors.Is(err, ErrCannotStand) {
		t.Fatalf("unbuilt opening accepted a unit: err = %v", err)
	}

	if _, err := s.Nav.Rebuild(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Spawn(geom.Point{X: 40, Y: 40}, 60); !errors.Is(err, ErrCannotStand) {
		t.Fatalf("spawn on a built wall: err = %v", err)
	}
	if _, err := s.Spawn(geom.Point{X: 40, Y: 88}, 60); err != nil {
		t.Fatalf("spawn in the built opening: %v", err)
	}
}
