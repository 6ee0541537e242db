package termio

import (
	"bytes"
	"time"
	"unicode/utf8"
)

// pasteStart and pasteEnd are the bracketed-paste markers a terminal sends
// around pasted text when bracketed paste mode (CSI ?2004h) is enabled.
var (
	pasteStart = []byte{0x1b, '[', '2', '0', '0', '~'}
	pasteEnd   = []byte{0x1b, '[', '2', '0', '1', '~'}
)

// Decoder turns a stream of raw bytes read from a controlling terminal into
// a sequence of Events. It is single-threaded and cooperative: Feed is
// called with whatever bytes a read() returned, and CheckTimeout is called
// by the host's own event loop once its timer for the configured timeout
// has elapsed since the last Feed call that left something pending. The
// decoder itself never starts a goroutine or a timer.
type Decoder struct {
	buf     []byte
	timeout time.Duration

	inPaste  bool
	pasteBuf []byte

	pending   bool
	pendingAt time.Time

	lastPressedButton MouseButton
}

// DecoderOption configures a Decoder at construction time.
type DecoderOption func(*Decoder)

// WithTimeout overrides the default 50ms ambiguity timeout used both to
// flush an unterminated bracketed paste and to resolve a lone trailing ESC
// byte into a standalone Escape key.
func WithTimeout(d time.Duration) DecoderOption {
	return func(dec *Decoder) { dec.timeout = d }
}

// NewDecoder returns a Decoder with a 50ms default ambiguity timeout.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{timeout: 50 * time.Millisecond}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Timeout returns the decoder's configured ambiguity timeout.
func (d *Decoder) Timeout() time.Duration { return d.timeout }

// Pending reports whether the decoder is holding bytes that can't yet be
// resolved into an event without either more input or a timeout — the host
// event loop should (re)start a timer for Timeout() after each Feed that
// leaves this true, and cancel it when false.
func (d *Decoder) Pending() bool { return d.pending }

// Feed appends newly read bytes and returns every event that can be decoded
// unambiguously from the buffer so far. now is used only to restart the
// timeout window whenever this call leaves something pending, for a later
// CheckTimeout call.
func (d *Decoder) Feed(data []byte, now time.Time) []Event {
	d.buf = append(d.buf, data...)
	events := d.drain()
	if len(d.buf) > 0 || d.inPaste {
		d.pendingAt = now
		d.pending = true
	} else {
		d.pending = false
	}
	traceEvents(events)
	return events
}

// CheckTimeout resolves any ambiguous pending state once now is at least
// Timeout() past the last Feed call that left it pending. Call this from the
// host event loop's own timer; it is a no-op if nothing is pending or not
// enough time has passed.
func (d *Decoder) CheckTimeout(now time.Time) []Event {
	if !d.pending || now.Sub(d.pendingAt) < d.timeout {
		return nil
	}
	var events []Event
	if d.inPaste {
		// Quirk preserved deliberately: a paste whose closing marker never
		// arrives still surfaces what was accumulated, rather than being
		// silently dropped, since the text was genuinely typed/pasted by
		// the user and discarding it would lose real input.
		events = append(events, PasteEvent{Text: string(d.pasteBuf)})
		d.pasteBuf = nil
		d.inPaste = false
	}
	if len(d.buf) > 0 {
		if d.buf[0] == 0x1b {
			events = append(events, KeyEvent{Key{Code: KeyEscape}})
		}
		d.buf = d.buf[:0]
	}
	d.pending = false
	return events
}

// drain consumes as many complete events from d.buf as possible, leaving
// any incomplete trailing sequence in place for the next Feed or
// CheckTimeout.
func (d *Decoder) drain() []Event {
	var events []Event
	for len(d.buf) > 0 {
		if d.inPaste {
			idx := bytes.Index(d.buf, pasteEnd)
			if idx == -1 {
				// No complete end marker yet. Flush everything except a
				// trailing byte run that could still turn into the start
				// of the end marker once more bytes arrive, so a marker
				// split across Feed calls isn't mistaken for paste text.
				safe := len(d.buf)
				maxK := len(pasteEnd) - 1
				if maxK > len(d.buf) {
					maxK = len(d.buf)
				}
				for k := maxK; k > 0; k-- {
					if bytes.Equal(d.buf[len(d.buf)-k:], pasteEnd[:k]) {
						safe = len(d.buf) - k
						break
					}
				}
				d.pasteBuf = append(d.pasteBuf, d.buf[:safe]...)
				d.buf = d.buf[safe:]
				return events
			}
			d.pasteBuf = append(d.pasteBuf, d.buf[:idx]...)
			d.buf = d.buf[idx+len(pasteEnd):]
			events = append(events, PasteEvent{Text: string(d.pasteBuf)})
			d.pasteBuf = nil
			d.inPaste = false
			continue
		}

		b := d.buf[0]
		switch {
		case b == 0x1b:
			if len(d.buf) < len(pasteStart) && bytes.HasPrefix(pasteStart, d.buf) {
				return events // could still be the start of a paste marker
			}
			if bytes.HasPrefix(d.buf, pasteStart) {
				d.buf = d.buf[len(pasteStart):]
				d.inPaste = true
				d.pasteBuf = d.pasteBuf[:0]
				continue
			}
			ev, n, ok := d.parseEscape(d.buf)
			if !ok {
				return events
			}
			d.buf = d.buf[n:]
			events = append(events, ev...)
		case b < 0x20 || b == 0x7f:
			events = append(events, parseControl(b))
			d.buf = d.buf[1:]
		default:
			r, size := decodeRune(d.buf)
			events = append(events, KeyEvent{Key{Code: KeyRune, Rune: r}})
			d.buf = d.buf[size:]
		}
	}
	return events
}

// parseControl maps a single C0 control byte (or DEL) to its Key.
func parseControl(b byte) Event {
	switch b {
	case 0x00:
		return KeyEvent{Key{Code: KeyRune, Rune: ' ', Mods: ModCtrl}}
	case '\r', '\n':
		return KeyEvent{Key{Code: KeyEnter}}
	case '\t':
		return KeyEvent{Key{Code: KeyTab}}
	case 0x7f, 0x08:
		return KeyEvent{Key{Code: KeyBackspace}}
	case 1, 2, 3, 4, 5, 6, 7, 11, 12, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26:
		return KeyEvent{Key{Code: KeyRune, Rune: ctrlLetter(b), Mods: ModCtrl}}
	default:
		return KeyEvent{Key{Code: KeyUnknown}}
	}
}

// decodeRune decodes one UTF-8 rune from the front of data, returning the
// replacement rune and a consumed byte count of at least 1 even on
// malformed input so the decoder always makes forward progress.
func decodeRune(data []byte) (rune, int) {
	r, size := utf8.DecodeRune(data)
	if size == 0 {
		size = 1
	}
	return r, size
}
