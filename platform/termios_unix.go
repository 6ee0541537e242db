//go:build unix

// Package platform provides the default, concrete implementations of
// termio's collaborator contracts (RawModeController, SizeProvider,
// ResizeWatcher): raw mode via direct termios ioctls, size via TIOCGWINSZ,
// and resize notification via SIGWINCH. Nothing in the termio core package
// imports this package — a host wires it in explicitly, or substitutes its
// own collaborator implementation entirely.
package platform

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	termio "github.com/tonyborchert/dart-terminal"
)

// UnixTerminal is a RawModeController, SizeProvider, and ResizeWatcher
// backed directly by POSIX termios ioctls, adapted from the teacher's
// Screen.EnterRawMode/ExitRawMode/getTerminalSize/handleSignals.
type UnixTerminal struct {
	fd           int
	origTermios  *unix.Termios
	inRawMode    bool
	sigChan      chan os.Signal
	resizeChan   chan termio.Size
}

// NewUnixTerminal returns a collaborator set operating on the given file
// descriptor (typically os.Stdin.Fd()).
func NewUnixTerminal(fd int) *UnixTerminal {
	return &UnixTerminal{
		fd:         fd,
		sigChan:    make(chan os.Signal, 1),
		resizeChan: make(chan termio.Size, 1),
	}
}

// EnterRawMode disables line buffering, echo, signal generation, and
// extended input processing, and starts watching for SIGWINCH.
func (t *UnixTerminal) EnterRawMode() error {
	if t.inRawMode {
		return nil
	}
	termios, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("platform: get termios: %w", err)
	}
	t.origTermios = termios

	raw := *termios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("platform: set raw termios: %w", err)
	}
	t.inRawMode = true

	signal.Notify(t.sigChan, syscall.SIGWINCH)
	go t.watchResize()

	return nil
}

// ExitRawMode restores the termios state captured by EnterRawMode and stops
// watching for SIGWINCH.
func (t *UnixTerminal) ExitRawMode() error {
	if !t.inRawMode {
		return nil
	}
	signal.Stop(t.sigChan)
	if t.origTermios != nil {
		if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, t.origTermios); err != nil {
			return fmt.Errorf("platform: restore termios: %w", err)
		}
	}
	t.inRawMode = false
	return nil
}

// Size reports the controlling terminal's current size via TIOCGWINSZ.
func (t *UnixTerminal) Size() (termio.Size, error) {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil {
		return termio.Size{}, fmt.Errorf("platform: get window size: %w", err)
	}
	return termio.Size{W: int(ws.Col), H: int(ws.Row)}, nil
}

// Resizes returns a channel delivering a new Size each time SIGWINCH fires.
func (t *UnixTerminal) Resizes() <-chan termio.Size { return t.resizeChan }

func (t *UnixTerminal) watchResize() {
	for range t.sigChan {
		sz, err := t.Size()
		if err != nil {
			continue
		}
		select {
		case t.resizeChan <- sz:
		default:
		}
	}
}
