package termio

// TextEffects is a bitset of SGR text attributes a cell's glyph can carry
// simultaneously.
type TextEffects uint16

const (
	EffectIntense TextEffects = 1 << iota
	EffectFaint
	EffectItalic
	EffectUnderline
	EffectDoubleUnderline
	EffectSlowBlink
	EffectFastBlink
	EffectCrossedOut
)

// Has reports whether all bits in want are set in e.
func (e TextEffects) Has(want TextEffects) bool { return e&want == want }

// sgrPair is an SGR "on" code paired with the "off" code that clears it.
// Several effects share an off code (Intense and Faint both clear with 22;
// the two underline variants both clear with 24; the two blink variants
// both clear with 25), so turning one off must not be assumed to leave its
// sibling's off code redundant — the renderer handles that via effectTable.
type sgrPair struct {
	bit     TextEffects
	on, off int
}

// effectTable enumerates every effect in a fixed order, giving the renderer
// a stable iteration order when it needs to emit per-effect SGR toggles
// rather than a single reset.
var effectTable = [...]sgrPair{
	{EffectIntense, 1, 22},
	{EffectFaint, 2, 22},
	{EffectItalic, 3, 23},
	{EffectUnderline, 4, 24},
	{EffectDoubleUnderline, 21, 24},
	{EffectSlowBlink, 5, 25},
	{EffectFastBlink, 6, 25},
	{EffectCrossedOut, 9, 29},
}

// ForegroundStyle pairs a foreground color with the text effects applied to
// whatever glyph is painted in that color.
type ForegroundStyle struct {
	Colour  Color
	Effects TextEffects
}

// Foreground is the full identity of what's painted into a cell: the glyph
// (by code unit) and the style it's painted with. CodeUnit 0 is the
// sentinel for "no glyph painted" (a cell cleared to its background).
type Foreground struct {
	Style    ForegroundStyle
	CodeUnit rune
}

// Blank is the Foreground of an empty, unpainted cell.
var Blank = Foreground{CodeUnit: 0}
