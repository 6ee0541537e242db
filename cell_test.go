package termio

import "testing"

func TestTerminalCellDrawMarksChanged(t *testing.T) {
	c := NewTerminalCell(Blank, DefaultColor)
	if c.Changed() {
		t.Fatal("new cell should not be changed")
	}
	bg := Standard(2)
	c.Draw(nil, &bg)
	if !c.Changed() {
		t.Fatal("Draw should mark the cell changed")
	}
	if !c.WouldChangeCommitted() {
		t.Fatal("pending bg differs from committed, should report a real change")
	}
}

func TestTerminalCellCommit(t *testing.T) {
	c := NewTerminalCell(Blank, DefaultColor)
	bg := Standard(4)
	fg := Foreground{CodeUnit: 'x'}
	c.Draw(&fg, &bg)
	c.Commit()
	if c.Changed() {
		t.Fatal("Commit should clear the changed flag")
	}
	if c.Background() != bg {
		t.Fatalf("committed background = %+v, want %+v", c.Background(), bg)
	}
	if c.Foreground() != fg {
		t.Fatalf("committed foreground = %+v, want %+v", c.Foreground(), fg)
	}
}

func TestTerminalCellDrawSameValueStillMarksChangedButNotReallyDifferent(t *testing.T) {
	c := NewTerminalCell(Foreground{CodeUnit: 'a'}, Standard(1))
	bg := Standard(1)
	c.Draw(nil, &bg)
	if !c.Changed() {
		t.Fatal("Draw always marks changed regardless of value")
	}
	if c.WouldChangeCommitted() {
		t.Fatal("pending value equals committed value, should not be a real change")
	}
}

func TestGraphemeAttachDetach(t *testing.T) {
	c := NewTerminalCell(Blank, DefaultColor)
	c.AttachGrapheme(Grapheme{Data: "あ", Width: 2})
	if c.Grapheme() == nil || c.Grapheme().Width != 2 {
		t.Fatal("expected a wide grapheme attached")
	}
	c.DetachGrapheme()
	if c.Grapheme() != nil {
		t.Fatal("expected grapheme cleared")
	}
}

func TestBorderStateMergeSameID(t *testing.T) {
	var b BorderState
	id := NextBorderDrawIdentifier()
	b.Merge(true, false, false, false, id)
	b.Merge(false, true, false, false, id)
	if !b.Left || !b.Top || b.Right || b.Bottom {
		t.Fatalf("expected accumulated left+top, got %+v", b)
	}
}

func TestBorderStateMergeDifferentIDReplaces(t *testing.T) {
	var b BorderState
	id1 := NextBorderDrawIdentifier()
	id2 := NextBorderDrawIdentifier()
	b.Merge(true, true, true, true, id1)
	b.Merge(false, false, true, false, id2)
	if b.Left || b.Top || b.Bottom || !b.Right {
		t.Fatalf("expected replace to drop prior edges, got %+v", b)
	}
}
