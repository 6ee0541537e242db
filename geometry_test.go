package termio

import "testing"

func TestRectDimensions(t *testing.T) {
	r := NewRect(2, 3, 10, 5)
	if r.Width() != 10 || r.Height() != 5 {
		t.Fatalf("got %dx%d, want 10x5", r.Width(), r.Height())
	}
	if r.X1 != 2 || r.Y1 != 3 || r.X2 != 11 || r.Y2 != 7 {
		t.Fatalf("unexpected rect bounds: %+v", r)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 5, 5)
	if !r.Contains(Position{X: 4, Y: 4}) {
		t.Fatal("expected (4,4) inside 5x5 rect")
	}
	if r.Contains(Position{X: 5, Y: 0}) {
		t.Fatal("expected (5,0) outside 5x5 rect")
	}
}

func TestRectClip(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	got, ok := a.Clip(b)
	if !ok {
		t.Fatal("expected overlap")
	}
	want := Rect{X1: 5, Y1: 5, X2: 9, Y2: 9}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	c := NewRect(20, 20, 5, 5)
	if _, ok := a.Clip(c); ok {
		t.Fatal("expected no overlap")
	}
}

func TestPositionAdd(t *testing.T) {
	p := Position{X: 1, Y: 1}.Add(UnitX.Scale(3)).Add(UnitY.Scale(2))
	if p != (Position{X: 4, Y: 3}) {
		t.Fatalf("got %+v, want {4 3}", p)
	}
}
