package termio

import "sync/atomic"

// Grapheme is a user-perceived character attached to a cell. Wide graphemes
// (Width == 2) occupy two adjacent cells: the left cell has IsSecond false
// and carries the actual Data, the right cell has IsSecond true and carries
// no independent content — it exists only so the renderer and diff logic
// treat that column as occupied and never paint something else into it
// without first clearing the pair together.
type Grapheme struct {
	Data     string
	Width    int
	IsSecond bool
}

// BorderDrawIdentifier tags a single logical border-drawing operation so
// that overlapping DrawBorderBox calls belonging to the same operation
// accumulate their edge bits, while calls belonging to a different
// operation replace outright instead of merging. Generated by
// NextBorderDrawIdentifier; the low 60 bits are significant.
type BorderDrawIdentifier uint64

const borderDrawIDMask = BorderDrawIdentifier(1)<<60 - 1

var borderDrawIDCounter uint64

// NextBorderDrawIdentifier returns a fresh identifier for a new logical
// border-drawing operation.
func NextBorderDrawIdentifier() BorderDrawIdentifier {
	n := atomic.AddUint64(&borderDrawIDCounter, 1)
	return BorderDrawIdentifier(n) & borderDrawIDMask
}

// BorderState tracks which of a cell's four edges currently participate in
// a drawn border, plus which drawing operation last touched it.
type BorderState struct {
	Left, Top, Right, Bottom bool
	drawID                   BorderDrawIdentifier
	hasDrawID                bool
}

// Merge adds the given edges to the cell's border. If id matches the
// identifier of the last operation that touched this cell, the edges
// accumulate (OR in) so a box's shared corners and a crossing line combine
// into the correct junction glyph. Otherwise the prior edges are replaced
// outright, since a different operation drawing over this cell means a new
// border, not a continuation of the old one.
func (b *BorderState) Merge(left, top, right, bottom bool, id BorderDrawIdentifier) {
	if b.hasDrawID && b.drawID == id {
		b.Left = b.Left || left
		b.Top = b.Top || top
		b.Right = b.Right || right
		b.Bottom = b.Bottom || bottom
		return
	}
	b.Left, b.Top, b.Right, b.Bottom = left, top, right, bottom
	b.drawID = id
	b.hasDrawID = true
}

// Clear removes any border state from the cell.
func (b *BorderState) Clear() {
	*b = BorderState{}
}

// Any reports whether any edge is set.
func (b BorderState) Any() bool {
	return b.Left || b.Top || b.Right || b.Bottom
}

// TerminalCell is one addressable cell of a CellBuffer. It separates
// committed state (what was last flushed to the real terminal) from
// pending state (what Draw calls have queued for the next flush), so the
// renderer can diff the two and only emit escape codes for cells that
// actually changed.
type TerminalCell struct {
	fg Foreground
	bg Color

	pendingFG *Foreground
	pendingBG *Color

	grapheme *Grapheme
	border   BorderState
	changed  bool
}

// NewTerminalCell returns a cell committed to the given foreground and
// background with no pending changes.
func NewTerminalCell(fg Foreground, bg Color) TerminalCell {
	return TerminalCell{fg: fg, bg: bg}
}

// Foreground returns the cell's committed foreground.
func (c *TerminalCell) Foreground() Foreground { return c.fg }

// Background returns the cell's committed background.
func (c *TerminalCell) Background() Color { return c.bg }

// Grapheme returns the cell's attached grapheme, or nil if none.
func (c *TerminalCell) Grapheme() *Grapheme { return c.grapheme }

// Border returns the cell's current border state.
func (c *TerminalCell) Border() BorderState { return c.border }

// Draw queues a pending update to the cell's foreground and/or background.
// A nil argument leaves that half of the cell untouched. Passing either
// marks the cell changed.
func (c *TerminalCell) Draw(fg *Foreground, bg *Color) {
	if fg != nil {
		cp := *fg
		c.pendingFG = &cp
	}
	if bg != nil {
		cp := *bg
		c.pendingBG = &cp
	}
	if fg != nil || bg != nil {
		c.changed = true
	}
}

// AttachGrapheme attaches g to the cell and marks it changed. Callers are
// responsible for attaching the paired IsSecond cell when g.Width == 2.
func (c *TerminalCell) AttachGrapheme(g Grapheme) {
	cp := g
	c.grapheme = &cp
	c.changed = true
}

// DetachGrapheme removes any grapheme from the cell without affecting its
// color state, and marks it changed.
func (c *TerminalCell) DetachGrapheme() {
	if c.grapheme != nil {
		c.grapheme = nil
		c.changed = true
	}
}

// Changed reports whether the cell has any pending color update or was
// touched by a grapheme attach/detach since the last Commit.
func (c *TerminalCell) Changed() bool { return c.changed }

// WouldChangeCommitted reports whether committing now would actually alter
// the committed fg/bg (as opposed to a pending value identical to what's
// already committed, which Draw still marks changed for simplicity but the
// renderer should not bother re-emitting).
func (c *TerminalCell) WouldChangeCommitted() bool {
	if c.pendingFG != nil && *c.pendingFG != c.fg {
		return true
	}
	if c.pendingBG != nil && *c.pendingBG != c.bg {
		return true
	}
	return false
}

// Commit applies any pending foreground/background into the committed
// state and clears the changed flag. Called by the renderer once a cell's
// diff has been emitted.
func (c *TerminalCell) Commit() {
	if c.pendingFG != nil {
		c.fg = *c.pendingFG
		c.pendingFG = nil
	}
	if c.pendingBG != nil {
		c.bg = *c.pendingBG
		c.pendingBG = nil
	}
	c.changed = false
}

// Reset restores the cell to an unpainted state with the given default
// foreground/background, clearing any grapheme, border, and pending state.
func (c *TerminalCell) Reset(fg Foreground, bg Color) {
	*c = TerminalCell{fg: fg, bg: bg}
}
