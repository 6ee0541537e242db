package termio

import (
	"github.com/mattn/go-runewidth"
	xwidth "golang.org/x/text/width"
)

// GraphemeWidth returns the number of terminal cells r occupies: 0 for
// combining/zero-width marks, 1 for ordinary runes, 2 for wide
// (East-Asian-width Wide/Fullwidth) runes and most emoji. go-runewidth
// drives the common case; runes it treats as ambiguous are resolved with
// golang.org/x/text/width's East Asian Width classification, which the
// teacher's dependency graph already carries transitively and which
// javanhut-RavenTerminal's grid/width.go consults directly for this exact
// disambiguation.
func GraphemeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w != 1 {
		return w
	}
	switch xwidth.LookupRune(r).Kind() {
	case xwidth.EastAsianWide, xwidth.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
