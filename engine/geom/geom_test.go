package geom

import (
	"math"
	"testing"
)

func TestCollinear(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c Point
		want    bool
	}{
		{"horizontal", Point{0, 0}, Point{5, 0}, Point{9, 0}, true},
		{"diagonal", Point{1, 1}, Point{3, 3}, Point{-2, -2}, true},
		{"off_line", Point{0, 0}, Point{4, 2}, Point{2, 2}, false},
		{"degenerate", Point{3, 3}, Point{3, 3}, Point{7, 1}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Collinear(c.a, c.b, c.c); got != c.want {
				t.Fatalf("Collinear(%v,%v,%v) = %v, want %v", c.a, c.b, c.c, got, c.want)
			}
		})
	}
}

func TestOnSegment(t *testing.T) {
	l := Line{Point{1, 1}, Point{5, 3}}
	if !OnSegment(Point{3, 2}, l) {
		t.Fatal("midpoint should be on segment")
	}
	if !OnSegment(l.Start, l) || !OnSegment(l.End, l) {
		t.Fatal("endpoints should be on segment")
	}
	if OnSegment(Point{7, 4}, l) {
		t.Fatal("collinear point past the end should not be on segment")
	}
	if OnSegment(Point{3, 3}, l) {
		t.Fatal("non-collinear point should not be on segment")
	}
}

func TestLineContains(t *testing.T) {
	outer := Line{Point{0, 0}, Point{6, 6}}
	cases := []struct {
		name  string
		inner Line
		want  bool
	}{
		{"sub_segment", Line{Point{2, 2}, Point{4, 4}}, true},
		{"reversed", Line{Point{4, 4}, Point{0, 0}}, true},
		{"same", outer, true},
		{"overhang", Line{Point{4, 4}, Point{8, 8}}, false},
		{"parallel", Line{Point{1, 0}, Point{3, 2}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := LineContains(outer, c.inner); got != c.want {
				t.Fatalf("LineContains(%v, %v) = %v, want %v", outer, c.inner, got, c.want)
			}
		})
	}
}

func TestPointInBox(t *testing.T) {
	r := Rect{Pos: Vec{1, 1}, Size: Vec{2, 3}}
	if !PointInBox(Vec{1, 1}, r) || !PointInBox(Vec{3, 4}, r) {
		t.Fatal("box edges are inclusive")
	}
	if PointInBox(Vec{3.01, 2}, r) {
		t.Fatal("point right of box reported inside")
	}
}

func TestClampHelpers(t *testing.T) {
	if Clamp(-3, 0, 10) != 0 || Clamp(12, 0, 10) != 10 || Clamp(4, 0, 10) != 4 {
		t.Fatal("Clamp")
	}
	if ClampF(1.5, 0, 1) != 1 || ClampF(-0.5, 0, 1) != 0 {
		t.Fatal("ClampF")
	}
	angles := map[float64]float64{-90: 270, 360: 0, 725: 5, 45: 45}
	for in, want := range angles {
		if got := AngleClamp(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("AngleClamp(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestTraverseVisitsCellsInOrder(t *testing.T) {
	var got []Point
	done := Traverse(0.5, 0.5, 3.5, 0.5, func(x, y int) bool {
		got = append(got, Point{x, y})
		return true
	})
	if !done {
		t.Fatal("traversal should reach the end")
	}
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited %v, want %v", got, want)
		}
	}
}

func TestTraverseBackwardsAndDiagonal(t *testing.T) {
	var got []Point
	Traverse(3.2, 3.7, 0.6, 0.4, func(x, y int) bool {
		got = append(got, Point{x, y})
		return true
	})
	if got[0] != (Point{3, 3}) || got[len(got)-1] != (Point{0, 0}) {
		t.Fatalf("unexpected walk %v", got)
	}
	for i := 1; i < len(got); i++ {
		d := got[i].Sub(got[i-1])
		if abs(d.X)+abs(d.Y) != 1 {
			t.Fatalf("cells %v and %v are not 4-adjacent", got[i-1], got[i])
		}
	}
}

func TestTraverseStopsEarly(t *testing.T) {
	n := 0
	done := Traverse(0.5, 0.5, 9.5, 0.5, func(x, y int) bool {
		n++
		return x < 2
	})
	if done || n != 3 {
		t.Fatalf("done=%v visits=%d, want false/3", done, n)
	}
}

func TestTraverseZeroLength(t *testing.T) {
	n := 0
	if !Traverse(2.5, 2.5, 2.5, 2.5, func(x, y int) bool { n++; return true }) || n != 1 {
		t.Fatalf("zero-length traversal visited %d cells", n)
	}
}

func TestLineOfSight(t *testing.T) {
	wall := map[Point]bool{{2, 1}: true}
	blocked := func(x, y int) bool { return wall[Point{x, y}] }

	if LineOfSight(0.5, 1.5, 4.5, 1.5, blocked) {
		t.Fatal("segment through wall should be blocked")
	}
	if !LineOfSight(0.5, 0.5, 4.5, 0.5, blocked) {
		t.Fatal("segment above wall should be clear")
	}
	if !LineOfSight(2.5, 1.5, 2.5, 3.5, blocked) {
		t.Fatal("start cell must not be tested")
	}
	if LineOfSight(2.5, 3.5, 2.5, 1.5, blocked) {
		t.Fatal("end cell must be tested")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
