package input

import "testing"

// frame feeds one frame of left button state through the drag tracker
func (s *InputState) frame(x, y int, down, pressed, released bool) {
	s.MouseX, s.MouseY = x, y
	s.LeftPressed = down
	s.LeftJustPressed = pressed
	s.LeftJustReleased = released
	s.trackDrag()
}

func TestClickWithoutDrag(t *testing.T) {
	s := NewInputState()
	s.frame(100, 100, true, true, false)
	s.frame(103, 101, true, false, false)
	if s.Dragging {
		t.Fatal("movement inside the threshold is not a drag")
	}
	s.frame(103, 101, false, false, true)
	if !s.Clicked() {
		t.Fatal("release without a drag should be a click")
	}
}

func TestDragSurvivesRelease(t *testing.T) {
	s := NewInputState()
	s.frame(100, 100, true, true, false)
	s.frame(110, 100, true, false, false)
	if !s.Dragging || s.DragStartX != 100 {
		t.Fatalf("dragging = %v from %d, want a drag from 100", s.Dragging, s.DragStartX)
	}
	s.frame(140, 100, false, false, true)
	if !s.Dragging || s.Clicked() {
		t.Fatal("the release frame of a drag is not a click")
	}

	s.frame(140, 100, true, true, false)
	if s.Dragging {
		t.Fatal("a new press should reset the drag")
	}
}
