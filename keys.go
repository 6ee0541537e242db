package termio

// KeyCode identifies a key independent of the rune it may also carry. Plain
// printable input is KeyRune with Key.Rune set; everything else is one of
// the named codes below.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUnknown

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete

	KeyEnter
	KeyTab
	KeyBackTab // shift-tab
	KeyBackspace
	KeyEscape
	KeySpace

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is a bitset of the modifier keys held during a keystroke or
// mouse action.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// Has reports whether all bits in want are set.
func (m Modifiers) Has(want Modifiers) bool { return m&want == want }

// Key is one decoded keystroke.
type Key struct {
	Code Code
	Rune rune
	Mods Modifiers
}

// Code is an alias kept for readability at call sites (Key.Code reads as
// "key code"); it is KeyCode under the hood.
type Code = KeyCode

// ctrlLetter maps a C0 control byte in [1, 0x1a] to the ctrl-held letter
// that produced it (Ctrl-A == 0x01 through Ctrl-Z == 0x1a).
func ctrlLetter(b byte) rune {
	return rune(b-1) + 'a'
}
