package termio

import "testing"

func TestCellBufferResizeGrowPreservesContent(t *testing.T) {
	b := NewCellBuffer(4, 4)
	fg := Foreground{CodeUnit: 'x'}
	b.DrawPoint(1, 1, &fg, nil)
	b.At(1, 1).Commit()

	b.Resize(8, 8)
	if b.Width() != 8 || b.Height() != 8 {
		t.Fatalf("resize did not grow: %dx%d", b.Width(), b.Height())
	}
	if got := b.At(1, 1).Foreground(); got != fg {
		t.Fatalf("content lost across grow-resize: got %+v", got)
	}
}

func TestCellBufferResizeShrinkThenGrowRestoresState(t *testing.T) {
	b := NewCellBuffer(10, 10)
	fg := Foreground{CodeUnit: 'y'}
	b.DrawPoint(8, 8, &fg, nil)
	b.At(8, 8).Commit()

	b.Resize(4, 4)
	if c := b.At(8, 8); c != nil {
		t.Fatal("cell outside shrunk logical bounds should not be addressable")
	}

	b.Resize(10, 10)
	if got := b.At(8, 8).Foreground(); got != fg {
		t.Fatalf("shrink-then-regrow should preserve prior content, got %+v", got)
	}
}

func TestCellBufferDrawPointOutOfBoundsIgnored(t *testing.T) {
	b := NewCellBuffer(2, 2)
	fg := Foreground{CodeUnit: 'z'}
	b.DrawPoint(5, 5, &fg, nil) // must not panic
	if b.RowChanged(5) {
		t.Fatal("out-of-bounds draw should not mark any row changed")
	}
}

func TestCellBufferRowChangedTracking(t *testing.T) {
	b := NewCellBuffer(4, 4)
	if b.RowChanged(2) {
		t.Fatal("fresh buffer should have no changed rows")
	}
	fg := Foreground{CodeUnit: 'a'}
	b.DrawPoint(0, 2, &fg, nil)
	if !b.RowChanged(2) {
		t.Fatal("expected row 2 marked changed after DrawPoint")
	}
	b.ClearRowChanged(2)
	if b.RowChanged(2) {
		t.Fatal("expected row 2 cleared")
	}
}

func TestCellBufferClearTextClearsWideGraphemePair(t *testing.T) {
	b := NewCellBuffer(10, 1)
	b.DrawText(0, 0, "雪", ForegroundStyle{})
	if b.At(0, 0).Grapheme() == nil || b.At(1, 0).Grapheme() == nil {
		t.Fatal("expected wide grapheme attached across both cells")
	}
	b.ClearText(0, 0, 1)
	if b.At(0, 0).Grapheme() != nil || b.At(1, 0).Grapheme() != nil {
		t.Fatal("expected ClearText to clear both halves of the wide grapheme")
	}
}

func TestBorderCharSetGlyphFor16Cases(t *testing.T) {
	cs := BorderSingle
	cases := []struct {
		name                     string
		left, top, right, bottom bool
		want                     rune
	}{
		{"bottomLeft", true, false, false, true, cs.BottomLeft},
		{"vertical", false, true, false, true, cs.Vertical},
		{"topLeft", true, true, false, false, cs.TopLeft},
		{"teeRight", true, true, false, true, cs.TeeRight},
		{"bottomRight", false, false, true, true, cs.BottomRight},
		{"horizontal", true, false, true, false, cs.Horizontal},
		{"teeUp", true, false, true, true, cs.TeeUp},
		{"topRight", false, true, true, false, cs.TopRight},
		{"teeLeft", true, true, true, false, cs.TeeLeft},
		{"teeDown", false, true, true, true, cs.TeeDown},
		{"cross", true, true, true, true, cs.Cross},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b BorderState
			b.Left, b.Top, b.Right, b.Bottom = tc.left, tc.top, tc.right, tc.bottom
			if got := cs.GlyphFor(b); got != tc.want {
				t.Errorf("GlyphFor(%+v) = %q, want %q", b, got, tc.want)
			}
		})
	}
}

func TestGlyphForPanicsOnNoEdges(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for no border edges set")
		}
	}()
	BorderSingle.GlyphFor(BorderState{})
}

func TestDrawBorderBoxMergesCornersAccumulatively(t *testing.T) {
	b := NewCellBuffer(10, 10)
	id := NextBorderDrawIdentifier()
	b.DrawBorderBox(NewRect(0, 0, 5, 5), id)
	b.DrawBorderBox(NewRect(4, 0, 5, 5), id)

	corner := b.At(4, 0)
	if corner == nil || !corner.Border().Left || !corner.Border().Right {
		t.Fatalf("expected shared corner to have both left and right edges, got %+v", corner.Border())
	}
}

func TestDrawBorderBoxTooSmallPanics(t *testing.T) {
	b := NewCellBuffer(10, 10)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero-area rect")
		}
	}()
	b.DrawBorderBox(Rect{X1: 1, X2: 0, Y1: 1, Y2: 0}, NextBorderDrawIdentifier())
}
