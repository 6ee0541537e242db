package termio

// Event is the common interface for everything the decoder can produce from
// a chunk of raw terminal input.
type Event interface{ isEvent() }

// KeyEvent is a single decoded keystroke.
type KeyEvent struct{ Key Key }

func (KeyEvent) isEvent() {}

// MouseAction classifies what happened during a MouseEvent.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
	MouseScrollUp
	MouseScrollDown
)

// MouseButton identifies which button a MouseEvent concerns. MouseButtonNone
// is used for motion-only reports and scroll events.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// MouseEvent is a decoded mouse report, from whichever of the X10, URXVT,
// or SGR wire encodings the terminal is using.
type MouseEvent struct {
	Action MouseAction
	Button MouseButton
	Pos    Position
	Mods   Modifiers
}

func (MouseEvent) isEvent() {}

// FocusEvent reports the terminal window gaining or losing focus (CSI I /
// CSI O, when focus reporting mode is enabled).
type FocusEvent struct{ Focused bool }

func (FocusEvent) isEvent() {}

// PasteEvent carries the full text of a bracketed paste.
type PasteEvent struct{ Text string }

func (PasteEvent) isEvent() {}

// ResizeEvent reports the controlling terminal changed size. The decoder
// itself never produces this directly from byte input (size changes arrive
// as SIGWINCH, not as terminal bytes) but it is part of the same Event
// union so a host event loop can funnel both through one channel.
type ResizeEvent struct{ Size Size }

func (ResizeEvent) isEvent() {}

// CursorPositionEvent is the terminal's reply to a cursor position request
// (CSI 6n), reporting its 0-based position.
type CursorPositionEvent struct{ Pos Position }

func (CursorPositionEvent) isEvent() {}
