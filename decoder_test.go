package termio

import (
	"testing"
	"time"
)

func keyEvents(t *testing.T, events []Event) []KeyEvent {
	t.Helper()
	var out []KeyEvent
	for _, e := range events {
		if ke, ok := e.(KeyEvent); ok {
			out = append(out, ke)
		}
	}
	return out
}

func TestDecoderPlainRunes(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("ab"), time.Time{})
	ks := keyEvents(t, events)
	if len(ks) != 2 || ks[0].Key.Rune != 'a' || ks[1].Key.Rune != 'b' {
		t.Fatalf("got %+v", ks)
	}
}

func TestDecoderCtrlLetter(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte{0x03}, time.Time{}) // Ctrl-C
	ks := keyEvents(t, events)
	if len(ks) != 1 || ks[0].Key.Rune != 'c' || !ks[0].Key.Mods.Has(ModCtrl) {
		t.Fatalf("got %+v", ks)
	}
}

func TestDecoderArrowKeysCSI(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[A\x1b[B\x1b[C\x1b[D"), time.Time{})
	ks := keyEvents(t, events)
	want := []KeyCode{KeyUp, KeyDown, KeyRight, KeyLeft}
	if len(ks) != len(want) {
		t.Fatalf("got %d keys, want %d: %+v", len(ks), len(want), ks)
	}
	for i, w := range want {
		if ks[i].Key.Code != w {
			t.Errorf("key %d: got %v, want %v", i, ks[i].Key.Code, w)
		}
	}
}

func TestDecoderArrowKeysSS3(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1bOA"), time.Time{})
	ks := keyEvents(t, events)
	if len(ks) != 1 || ks[0].Key.Code != KeyUp {
		t.Fatalf("got %+v", ks)
	}
}

func TestDecoderModifiedArrow(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[1;3D"), time.Time{}) // Alt+Left
	ks := keyEvents(t, events)
	if len(ks) != 1 || ks[0].Key.Code != KeyLeft || !ks[0].Key.Mods.Has(ModAlt) {
		t.Fatalf("got %+v", ks)
	}
}

func TestDecoderTildeKeys(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[3~\x1b[5~\x1b[6~"), time.Time{})
	ks := keyEvents(t, events)
	want := []KeyCode{KeyDelete, KeyPageUp, KeyPageDown}
	if len(ks) != len(want) {
		t.Fatalf("got %d keys: %+v", len(ks), ks)
	}
	for i, w := range want {
		if ks[i].Key.Code != w {
			t.Errorf("key %d: got %v, want %v", i, ks[i].Key.Code, w)
		}
	}
}

func TestDecoderAltKey(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1bx"), time.Time{})
	ks := keyEvents(t, events)
	if len(ks) != 1 || ks[0].Key.Rune != 'x' || !ks[0].Key.Mods.Has(ModAlt) {
		t.Fatalf("got %+v", ks)
	}
}

func TestDecoderLoneEscapeResolvesOnTimeout(t *testing.T) {
	d := NewDecoder(WithTimeout(10 * time.Millisecond))
	start := time.Now()
	events := d.Feed([]byte{0x1b}, start)
	if len(events) != 0 {
		t.Fatalf("lone ESC should be ambiguous, got %+v", events)
	}
	if !d.Pending() {
		t.Fatal("expected pending state after lone ESC")
	}
	events = d.CheckTimeout(start.Add(5 * time.Millisecond))
	if len(events) != 0 {
		t.Fatal("should not resolve before timeout elapses")
	}
	events = d.CheckTimeout(start.Add(11 * time.Millisecond))
	ks := keyEvents(t, events)
	if len(ks) != 1 || ks[0].Key.Code != KeyEscape {
		t.Fatalf("expected standalone Escape key after timeout, got %+v", events)
	}
}

func TestDecoderBracketedPasteWholeChunk(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[200~hello world\x1b[201~"), time.Time{})
	if len(events) != 1 {
		t.Fatalf("got %+v", events)
	}
	pe, ok := events[0].(PasteEvent)
	if !ok || pe.Text != "hello world" {
		t.Fatalf("got %+v", events[0])
	}
}

func TestDecoderBracketedPasteSplitAcrossChunks(t *testing.T) {
	d := NewDecoder()
	now := time.Now()
	ev1 := d.Feed([]byte("\x1b[200~hel"), now)
	if len(ev1) != 0 {
		t.Fatalf("expected no events yet, got %+v", ev1)
	}
	ev2 := d.Feed([]byte("lo wor"), now)
	if len(ev2) != 0 {
		t.Fatalf("expected no events yet, got %+v", ev2)
	}
	ev3 := d.Feed([]byte("ld\x1b[201~"), now)
	if len(ev3) != 1 {
		t.Fatalf("got %+v", ev3)
	}
	pe := ev3[0].(PasteEvent)
	if pe.Text != "hello world" {
		t.Fatalf("got %q", pe.Text)
	}
}

func TestDecoderBracketedPasteSplitAcrossEndMarker(t *testing.T) {
	d := NewDecoder()
	now := time.Now()
	d.Feed([]byte("\x1b[200~abc\x1b[20"), now)
	events := d.Feed([]byte("1~"), now)
	if len(events) != 1 {
		t.Fatalf("got %+v", events)
	}
	if pe := events[0].(PasteEvent); pe.Text != "abc" {
		t.Fatalf("got %q", pe.Text)
	}
}

func TestDecoderPasteTimeoutQuirkFlushesPartial(t *testing.T) {
	d := NewDecoder(WithTimeout(10 * time.Millisecond))
	start := time.Now()
	d.Feed([]byte("\x1b[200~partial"), start)
	events := d.CheckTimeout(start.Add(11 * time.Millisecond))
	if len(events) != 1 {
		t.Fatalf("got %+v", events)
	}
	pe, ok := events[0].(PasteEvent)
	if !ok || pe.Text != "partial" {
		t.Fatalf("expected partial paste preserved on timeout, got %+v", events[0])
	}
}

func TestDecoderFocusEvents(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[I\x1b[O"), time.Time{})
	if len(events) != 2 {
		t.Fatalf("got %+v", events)
	}
	if fe, ok := events[0].(FocusEvent); !ok || !fe.Focused {
		t.Fatalf("expected focus-in, got %+v", events[0])
	}
	if fe, ok := events[1].(FocusEvent); !ok || fe.Focused {
		t.Fatalf("expected focus-out, got %+v", events[1])
	}
}

func TestDecoderFocusAndMouseInOneChunk(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[I\x1b[<0;10;20M"), time.Time{})
	if len(events) != 2 {
		t.Fatalf("got %+v", events)
	}
	if _, ok := events[0].(FocusEvent); !ok {
		t.Fatalf("expected focus event first, got %+v", events[0])
	}
	me, ok := events[1].(MouseEvent)
	if !ok || me.Action != MousePress || me.Pos != (Position{X: 9, Y: 19}) {
		t.Fatalf("got %+v", events[1])
	}
}

func TestDecoderSGRMousePressAndRelease(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[<0;5;5M\x1b[<0;5;5m"), time.Time{})
	if len(events) != 2 {
		t.Fatalf("got %+v", events)
	}
	press := events[0].(MouseEvent)
	release := events[1].(MouseEvent)
	if press.Action != MousePress || release.Action != MouseRelease {
		t.Fatalf("got press=%+v release=%+v", press, release)
	}
	if press.Button != MouseButtonLeft || release.Button != MouseButtonLeft {
		t.Fatalf("expected left button throughout, got press=%+v release=%+v", press, release)
	}
}

func TestDecoderSGRScrollWheel(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[<64;3;3M\x1b[<65;3;3M"), time.Time{})
	if len(events) != 2 {
		t.Fatalf("got %+v", events)
	}
	if events[0].(MouseEvent).Action != MouseScrollUp {
		t.Fatalf("got %+v", events[0])
	}
	if events[1].(MouseEvent).Action != MouseScrollDown {
		t.Fatalf("got %+v", events[1])
	}
}

func TestDecoderX10MouseWideCoordinates(t *testing.T) {
	d := NewDecoder()
	// X10: "CSI M" + 3 raw bytes (button, x, y), each value + 32.
	raw := []byte{0x1b, '[', 'M', byte(0 + 32), byte(200 + 32), byte(5 + 32)}
	events := d.Feed(raw, time.Time{})
	if len(events) != 1 {
		t.Fatalf("got %+v", events)
	}
	me := events[0].(MouseEvent)
	if me.Pos.X != 199 || me.Pos.Y != 4 {
		t.Fatalf("got pos %+v", me.Pos)
	}
}

func TestDecoderCursorPositionReply(t *testing.T) {
	d := NewDecoder()
	events := d.Feed([]byte("\x1b[24;80R"), time.Time{})
	if len(events) != 1 {
		t.Fatalf("got %+v", events)
	}
	cp, ok := events[0].(CursorPositionEvent)
	if !ok || cp.Pos != (Position{X: 79, Y: 23}) {
		t.Fatalf("got %+v", events[0])
	}
}

func TestDecoderKeystrokeBattery(t *testing.T) {
	d := NewDecoder()
	input := "\r\t\x7f" + string(rune(0x1b)) + "[21~"
	events := d.Feed([]byte(input), time.Time{})
	ks := keyEvents(t, events)
	want := []KeyCode{KeyEnter, KeyTab, KeyBackspace, KeyF10}
	if len(ks) != len(want) {
		t.Fatalf("got %d keys: %+v", len(ks), ks)
	}
	for i, w := range want {
		if ks[i].Key.Code != w {
			t.Errorf("key %d: got %v, want %v", i, ks[i].Key.Code, w)
		}
	}
}
