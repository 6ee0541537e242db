package platform

import (
	"fmt"

	"golang.org/x/term"

	termio "github.com/tonyborchert/dart-terminal"
)

// PortableTerminal is a RawModeController/SizeProvider backed by
// golang.org/x/term, the dependency the rest of the retrieval pack
// converges on for this job when it isn't hand-rolling termios ioctls. It
// works on every platform x/term supports, at the cost of not exposing a
// resize-notification channel (x/term has no SIGWINCH equivalent on
// Windows, so callers needing ResizeWatcher should poll Size instead).
type PortableTerminal struct {
	fd       int
	oldState *term.State
}

// NewPortableTerminal returns a collaborator set operating on the given
// file descriptor (typically int(os.Stdin.Fd())).
func NewPortableTerminal(fd int) *PortableTerminal {
	return &PortableTerminal{fd: fd}
}

// EnterRawMode puts the terminal into raw mode via term.MakeRaw.
func (t *PortableTerminal) EnterRawMode() error {
	if t.oldState != nil {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("platform: make raw: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal state captured by EnterRawMode.
func (t *PortableTerminal) ExitRawMode() error {
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("platform: restore terminal state: %w", err)
	}
	return nil
}

// Size reports the controlling terminal's current size via term.GetSize.
func (t *PortableTerminal) Size() (termio.Size, error) {
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return termio.Size{}, fmt.Errorf("platform: get size: %w", err)
	}
	return termio.Size{W: w, H: h}, nil
}
