package termio

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotAttached is returned by Terminal operations that require an active
// session when none has been established via Attach.
var ErrNotAttached = errors.New("termio: terminal not attached")

// Terminal ties the decoder, renderer, and output controller to a concrete
// terminal session, obtained through the collaborator contracts rather than
// touching any platform API directly.
type Terminal struct {
	source ByteSource
	sink   ByteSink
	raw    RawModeController
	size   SizeProvider

	decoder    *Decoder
	renderer   *Renderer
	output     *OutputController
	attached   bool
}

// NewTerminal wires up a Terminal over the given collaborators. opts
// configure the input decoder (currently just its ambiguity timeout).
func NewTerminal(source ByteSource, sink ByteSink, raw RawModeController, size SizeProvider, opts ...DecoderOption) *Terminal {
	return &Terminal{
		source:  source,
		sink:    sink,
		raw:     raw,
		size:    size,
		decoder: NewDecoder(opts...),
		output:  NewOutputController(sink),
	}
}

// Attach enters raw mode, switches to the alternate screen, and sizes the
// renderer from the collaborator's current size report. Calling Attach
// twice without an intervening Detach is a contract violation: a host that
// does this has a bug in its own session lifecycle, not a recoverable
// runtime condition.
func (t *Terminal) Attach() error {
	if t.attached {
		panic("termio: Attach called while already attached")
	}
	if err := t.raw.EnterRawMode(); err != nil {
		return fmt.Errorf("termio: enter raw mode: %w", err)
	}
	sz, err := t.size.Size()
	if err != nil {
		_ = t.raw.ExitRawMode()
		return fmt.Errorf("termio: read terminal size: %w", err)
	}
	t.renderer = NewRenderer(t.sink, sz.W, sz.H)
	if err := t.output.EnterAltScreen(); err != nil {
		_ = t.raw.ExitRawMode()
		return fmt.Errorf("termio: enter alt screen: %w", err)
	}
	t.attached = true
	return nil
}

// Detach restores the primary screen buffer and exits raw mode. Calling
// Detach without a prior Attach is a contract violation.
func (t *Terminal) Detach() error {
	if !t.attached {
		panic("termio: Detach called without a matching Attach")
	}
	err1 := t.output.ExitAltScreen()
	err2 := t.raw.ExitRawMode()
	t.attached = false
	if err1 != nil {
		return fmt.Errorf("termio: exit alt screen: %w", err1)
	}
	if err2 != nil {
		return fmt.Errorf("termio: exit raw mode: %w", err2)
	}
	return nil
}

// Renderer returns the attached session's viewport renderer.
func (t *Terminal) Renderer() (*Renderer, error) {
	if !t.attached {
		return nil, ErrNotAttached
	}
	return t.renderer, nil
}

// Output returns the session's output controller.
func (t *Terminal) Output() *OutputController { return t.output }

// Resize updates the renderer's buffers to a new terminal size, typically
// called by the host in response to its ResizeWatcher collaborator firing.
func (t *Terminal) Resize(sz Size) error {
	if !t.attached {
		return ErrNotAttached
	}
	t.renderer.Resize(sz.W, sz.H)
	return nil
}

// Feed reads whatever is currently available from the byte source and
// decodes it into events. It performs at most one Read call; callers
// typically loop this alongside their own timer for CheckTimeout.
func (t *Terminal) Feed(now time.Time) ([]Event, error) {
	buf := make([]byte, 4096)
	n, err := t.source.Read(buf)
	if n > 0 {
		events := t.decoder.Feed(buf[:n], now)
		if err != nil {
			return events, err
		}
		return events, nil
	}
	return nil, err
}

// CheckTimeout resolves any ambiguous pending decoder state once the
// decoder's configured timeout has elapsed; see Decoder.CheckTimeout.
func (t *Terminal) CheckTimeout(now time.Time) []Event {
	return t.decoder.CheckTimeout(now)
}

// DecoderPending reports whether the decoder is holding bytes that need a
// timer armed for CheckTimeout; see Decoder.Pending.
func (t *Terminal) DecoderPending() bool { return t.decoder.Pending() }

// DecoderTimeout returns the decoder's configured ambiguity timeout.
func (t *Terminal) DecoderTimeout() time.Duration { return t.decoder.Timeout() }
