package termio

import "fmt"

// BorderCharSet supplies the glyphs used when the cell buffer resolves a
// cell's accumulated border edges into a single box-drawing rune. The
// 16-case adjacency table below (bit 4=top, 8=right, 1=bottom, 2=left)
// mirrors the teacher's borderEdgesArray/edgesToBorderArray convention.
type BorderCharSet struct {
	Horizontal, Vertical                       rune
	TopLeft, TopRight, BottomLeft, BottomRight  rune
	TeeDown, TeeUp, TeeRight, TeeLeft, Cross    rune
}

// BorderSingle is a plain single-line border character set.
var BorderSingle = BorderCharSet{
	Horizontal: '─', Vertical: '│',
	TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	TeeDown: '┬', TeeUp: '┴', TeeRight: '├', TeeLeft: '┤', Cross: '┼',
}

// BorderRounded uses rounded corner glyphs.
var BorderRounded = BorderCharSet{
	Horizontal: '─', Vertical: '│',
	TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
	TeeDown: '┬', TeeUp: '┴', TeeRight: '├', TeeLeft: '┤', Cross: '┼',
}

// BorderDouble uses double-line glyphs throughout.
var BorderDouble = BorderCharSet{
	Horizontal: '═', Vertical: '║',
	TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
	TeeDown: '╦', TeeUp: '╩', TeeRight: '╠', TeeLeft: '╣', Cross: '╬',
}

const (
	edgeTop    = 4
	edgeRight  = 8
	edgeBottom = 1
	edgeLeft   = 2
)

// GlyphFor resolves a cell's accumulated border edges into the rune from cs
// that represents their junction. At least one edge must be set; calling
// this with no edges is a contract violation.
func (cs BorderCharSet) GlyphFor(b BorderState) rune {
	if !b.Any() {
		panic("termio: GlyphFor called with no border edges set")
	}
	edges := 0
	if b.Top {
		edges |= edgeTop
	}
	if b.Right {
		edges |= edgeRight
	}
	if b.Bottom {
		edges |= edgeBottom
	}
	if b.Left {
		edges |= edgeLeft
	}
	table := [16]rune{
		0b0011: cs.BottomLeft,
		0b0101: cs.Vertical,
		0b0110: cs.TopLeft,
		0b0111: cs.TeeRight,
		0b1001: cs.BottomRight,
		0b1010: cs.Horizontal,
		0b1011: cs.TeeUp,
		0b1100: cs.TopRight,
		0b1101: cs.TeeDown,
		0b1110: cs.TeeLeft,
		0b1111: cs.Cross,
	}
	if g := table[edges]; g != 0 {
		return g
	}
	// A single edge alone (e.g. only "top" set, from a line's interior that
	// never met a perpendicular one) has no distinct junction glyph; fall
	// back to the axis it belongs to.
	if edges == edgeTop || edges == edgeBottom {
		return cs.Horizontal
	}
	return cs.Vertical
}

// CellBuffer is a grow-only, cell-addressed back buffer. Storage only ever
// grows: calling Resize with smaller dimensions shrinks the logical
// width/height without releasing the larger backing array, so a later
// Resize back up to (or past) a previous size does not need to reallocate
// and cells within the re-grown region keep whatever committed state they
// last held there.
type CellBuffer struct {
	width, height       int // logical, currently-addressable size
	capWidth, capHeight int // allocated size, only ever grows
	cells               []TerminalCell
	rowChanged          []bool

	backgroundFill    Color
	hasBackgroundFill bool
}

// NewCellBuffer returns a buffer of the given size with every cell reset to
// (Blank, DefaultColor).
func NewCellBuffer(w, h int) *CellBuffer {
	b := &CellBuffer{}
	b.Resize(w, h)
	return b
}

// Width returns the buffer's current logical width.
func (b *CellBuffer) Width() int { return b.width }

// Height returns the buffer's current logical height.
func (b *CellBuffer) Height() int { return b.height }

// Resize changes the buffer's logical dimensions. The backing storage only
// grows: shrinking leaves the larger allocation in place with the trailing
// rows/cells simply outside the new logical bounds (logically unused, not
// freed), and growing back preserves whatever those cells held.
func (b *CellBuffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w > b.capWidth || h > b.capHeight {
		newCapW := maxInt(w, b.capWidth)
		newCapH := maxInt(h, b.capHeight)
		newCells := make([]TerminalCell, newCapW*newCapH)
		for y := 0; y < b.capHeight; y++ {
			for x := 0; x < b.capWidth; x++ {
				newCells[y*newCapW+x] = b.cells[y*b.capWidth+x]
			}
		}
		b.cells = newCells
		b.capWidth, b.capHeight = newCapW, newCapH
	}
	b.width, b.height = w, h
	if len(b.rowChanged) < h {
		rc := make([]bool, h)
		copy(rc, b.rowChanged)
		b.rowChanged = rc
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (b *CellBuffer) index(x, y int) (int, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, false
	}
	return y*b.capWidth + x, true
}

// At returns the cell at (x, y), or nil if the coordinates are out of
// bounds.
func (b *CellBuffer) At(x, y int) *TerminalCell {
	idx, ok := b.index(x, y)
	if !ok {
		return nil
	}
	return &b.cells[idx]
}

// markRowChanged flags row y dirty, if it's within bounds. Any mutation
// past this point means the buffer is no longer exactly the uniform fill
// DrawColor(optimizeByClear: true) last recorded, so it also drops that
// optimization hint.
func (b *CellBuffer) markRowChanged(y int) {
	if y >= 0 && y < len(b.rowChanged) {
		b.rowChanged[y] = true
	}
	b.hasBackgroundFill = false
}

// RowChanged reports whether row y has any pending changes since the last
// ClearRowChanged.
func (b *CellBuffer) RowChanged(y int) bool {
	if y < 0 || y >= len(b.rowChanged) {
		return false
	}
	return b.rowChanged[y]
}

// ClearRowChanged clears the dirty flag for row y. Called by the renderer
// once it has emitted that row's diff.
func (b *CellBuffer) ClearRowChanged(y int) {
	if y >= 0 && y < len(b.rowChanged) {
		b.rowChanged[y] = false
	}
}

// Reset restores every logical cell to (fg, bg) with no grapheme or border,
// and clears every row's changed flag.
func (b *CellBuffer) Reset(fg Foreground, bg Color) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx, _ := b.index(x, y)
			b.cells[idx].Reset(fg, bg)
		}
		if y < len(b.rowChanged) {
			b.rowChanged[y] = false
		}
	}
}

// DrawPoint queues a foreground/background update at (x, y). Out-of-bounds
// coordinates are silently ignored, matching the teacher's bounds-checked
// Set/SetFast. A non-nil fg always wins over any grapheme the cell was
// carrying: if (x, y) has one attached, it (and its paired half, if it was
// part of a wide grapheme) is detached first, so the cell never ends up
// displaying stale grapheme data next to a foreground that was meant to
// replace it.
func (b *CellBuffer) DrawPoint(x, y int, fg *Foreground, bg *Color) {
	c := b.At(x, y)
	if c == nil {
		return
	}
	if fg != nil && c.Grapheme() != nil {
		b.detachGraphemePair(x, y)
	}
	c.Draw(fg, bg)
	b.markRowChanged(y)
}

// DrawRect fills every cell in r with fg/bg. A nil fg or bg leaves that half
// of each cell untouched.
func (b *CellBuffer) DrawRect(r Rect, fg *Foreground, bg *Color) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			b.DrawPoint(x, y, fg, bg)
		}
	}
}

// DrawColor clears the whole buffer to Blank foreground over bg, the way a
// host repaints its background before drawing a new frame. When
// optimizeByClear is true, the fill is also recorded so the renderer can
// collapse it into a single erase-screen escape sequence instead of a
// per-cell diff; any further draw call before the next Update invalidates
// that optimization (see markRowChanged), since the buffer is then no
// longer exactly the uniform fill the renderer would be shortcutting.
func (b *CellBuffer) DrawColor(bg Color, optimizeByClear bool) {
	blank := Blank
	b.DrawRect(Rect{X1: 0, Y1: 0, X2: b.width - 1, Y2: b.height - 1}, &blank, &bg)
	if optimizeByClear {
		b.backgroundFill = bg
		b.hasBackgroundFill = true
	}
}

// TakeBackgroundFill returns the pending background fill color and clears
// it, if DrawColor(bg, true) ran since the last time this was called with
// no other draw in between. Called by the renderer at the start of Update.
func (b *CellBuffer) TakeBackgroundFill() (Color, bool) {
	if !b.hasBackgroundFill {
		return Color{}, false
	}
	fill := b.backgroundFill
	b.hasBackgroundFill = false
	b.backgroundFill = Color{}
	return fill, true
}

// CommitAll commits every cell's pending state without emitting anything.
// The renderer uses this after representing an entire buffer's content
// with a single escape sequence (a background fill), so the ordinary
// per-cell diff doesn't redundantly repaint cells already accounted for.
func (b *CellBuffer) CommitAll() {
	for i := range b.cells {
		b.cells[i].Commit()
	}
}

// DrawText writes s starting at (x, y), advancing one cell per rune. Wide
// runes (as reported by GraphemeWidth) occupy two cells: the first carries
// the grapheme, the second is attached as its IsSecond pair. Text that runs
// past the buffer's width is clipped; a wide rune that would have its
// second half clipped is not drawn at all, rather than orphaning a half.
//
// Before attaching, any grapheme already occupying a cell this write
// touches is detached first (along with its paired half), so writing a
// narrow glyph over the left half of an existing wide grapheme can never
// leave the right half behind as an orphaned IsSecond cell.
func (b *CellBuffer) DrawText(x, y int, s string, style ForegroundStyle) {
	cx := x
	for _, r := range s {
		w := GraphemeWidth(r)
		if w <= 0 {
			continue
		}
		if cx >= b.width || (w == 2 && cx+1 >= b.width) {
			break
		}
		cell := b.At(cx, y)
		if cell == nil {
			cx += w
			continue
		}
		b.detachGraphemePair(cx, y)
		if w == 2 {
			b.detachGraphemePair(cx+1, y)
		}
		cell.AttachGrapheme(Grapheme{Data: string(r), Width: w})
		fg := Foreground{Style: style, CodeUnit: 0}
		cell.Draw(&fg, nil)
		b.markRowChanged(y)
		if w == 2 {
			if second := b.At(cx+1, y); second != nil {
				second.AttachGrapheme(Grapheme{Data: "", Width: 2, IsSecond: true})
				secondFG := Foreground{Style: style, CodeUnit: 0}
				second.Draw(&secondFG, nil)
			}
		}
		cx += w
	}
}

// ClearText detaches any grapheme from the n cells starting at (x, y),
// delegating to detachGraphemePair at each column so a wide grapheme
// straddling the edge of the cleared run takes its paired cell with it. A
// plain CodeUnit foreground set through DrawPoint is left in place.
func (b *CellBuffer) ClearText(x, y, n int) {
	for i := 0; i < n; i++ {
		b.detachGraphemePair(x+i, y)
		b.markRowChanged(y)
	}
}

// detachGraphemePair removes a grapheme at (x, y) and, if it was part of a
// wide pair, also detaches the other half — whichever side of the pair
// (x, y) happens to be — so a pair never splits into an orphaned IsSecond
// cell with nothing to its left, or a left cell pointing at a right cell
// that no longer carries anything.
func (b *CellBuffer) detachGraphemePair(x, y int) {
	cell := b.At(x, y)
	if cell == nil || cell.Grapheme() == nil {
		return
	}
	g := *cell.Grapheme()
	cell.DetachGrapheme()
	if g.IsSecond {
		if first := b.At(x-1, y); first != nil {
			first.DetachGrapheme()
		}
	} else if g.Width == 2 {
		if second := b.At(x+1, y); second != nil {
			second.DetachGrapheme()
		}
	}
}

// DrawBorderLine merges a straight horizontal or vertical border segment
// between from and to (inclusive) into the cells it spans, using id to
// decide whether overlapping calls accumulate (same id) or replace
// (different id). Exactly one of the two Positions' axes must match; a
// diagonal span is a contract violation.
//
// The direction of travel picks which side of a shape the line represents:
// left-to-right (or top-to-bottom) tags the line's "near" side — top for a
// horizontal line, left for a vertical one — while the reverse direction
// tags the "far" side (bottom, right). A line drawn on its own therefore
// only ever carries a single edge bit along its whole length, including
// both endpoints: it never implies a corner or tee by itself. Two lines
// sharing an id that meet at a cell accumulate their bits there instead,
// which is what turns a plain edge cell into the right corner or tee glyph
// once GlyphFor resolves it. Composing a rectangle from four such calls,
// each walked in the direction that tags its own side (top left-to-right,
// bottom right-to-left, left top-to-bottom, right bottom-to-top), is
// exactly how DrawBorderBox builds a box's four sides.
func (b *CellBuffer) DrawBorderLine(from, to Position, id BorderDrawIdentifier) {
	switch {
	case from.Y == to.Y:
		x1, x2 := from.X, to.X
		near := x1 <= x2
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		for x := x1; x <= x2; x++ {
			b.mergeBorderEdge(x, from.Y, false, near, false, !near, id)
		}
	case from.X == to.X:
		y1, y2 := from.Y, to.Y
		near := y1 <= y2
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		for y := y1; y <= y2; y++ {
			b.mergeBorderEdge(from.X, y, near, false, !near, false, id)
		}
	default:
		panic(fmt.Sprintf("termio: DrawBorderLine requires a horizontal or vertical span, got %+v -> %+v", from, to))
	}
}

// DrawBorderBox draws a rectangle's four edges as four DrawBorderLine
// calls, each walked so that it tags its own side (top and left start at the
// top-left corner, bottom and right at the bottom-right corner), so that
// shared corners accumulate into the right junction glyph. r must be at least 2x2;
// anything smaller has no distinct corners to draw and is a contract
// violation.
func (b *CellBuffer) DrawBorderBox(r Rect, id BorderDrawIdentifier) {
	if r.Width() < 2 || r.Height() < 2 {
		panic(fmt.Sprintf("termio: DrawBorderBox rect too small: %+v", r))
	}
	b.DrawBorderLine(Position{X: r.X1, Y: r.Y1}, Position{X: r.X2, Y: r.Y1}, id) // top
	b.DrawBorderLine(Position{X: r.X2, Y: r.Y2}, Position{X: r.X1, Y: r.Y2}, id) // bottom
	b.DrawBorderLine(Position{X: r.X1, Y: r.Y1}, Position{X: r.X1, Y: r.Y2}, id) // left
	b.DrawBorderLine(Position{X: r.X2, Y: r.Y2}, Position{X: r.X2, Y: r.Y1}, id) // right
}

func (b *CellBuffer) mergeBorderEdge(x, y int, left, top, right, bottom bool, id BorderDrawIdentifier) {
	cell := b.At(x, y)
	if cell == nil {
		return
	}
	cell.border.Merge(left, top, right, bottom, id)
	cell.changed = true
	b.markRowChanged(y)
}

// ResolveBorders walks every cell with border edges set and attaches the
// resolved junction glyph from cs as its grapheme, ready for the next
// flush. Call once per frame after all DrawBorderBox calls for that frame.
func (b *CellBuffer) ResolveBorders(cs BorderCharSet) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.At(x, y)
			if cell == nil || !cell.Border().Any() {
				continue
			}
			r := cs.GlyphFor(cell.Border())
			cell.AttachGrapheme(Grapheme{Data: string(r), Width: 1})
			b.markRowChanged(y)
		}
	}
}
