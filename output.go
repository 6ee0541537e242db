package termio

import "bytes"

// OutputController owns the terminal-wide state that isn't part of the
// cell buffer: alternate screen, cursor visibility/shape/position, window
// title, line wrap, and the mouse/focus/bracketed-paste reporting modes.
// Raw mode and size are explicitly not its job — those are delegated to a
// RawModeController/SizeProvider collaborator the host supplies.
type OutputController struct {
	sink ByteSink
	buf  bytes.Buffer

	cursor      CursorState
	altScreen   bool
	wrap        bool
	mouse       bool
	focus       bool
	bracketed   bool
}

// NewOutputController returns a controller writing to sink, with the
// cursor visible at the origin, line wrap enabled, and the alternate screen
// and mouse/focus/bracketed-paste reporting disabled — the state a freshly
// opened terminal is normally in.
func NewOutputController(sink ByteSink) *OutputController {
	return &OutputController{
		sink:   sink,
		cursor: DefaultCursorState(),
		wrap:   true,
	}
}

func (o *OutputController) flush() error {
	if o.buf.Len() == 0 {
		return nil
	}
	_, err := o.sink.Write(o.buf.Bytes())
	o.buf.Reset()
	return err
}

// EnterAltScreen switches to the alternate screen buffer and clears it.
func (o *OutputController) EnterAltScreen() error {
	if o.altScreen {
		return nil
	}
	o.buf.WriteString(escEnterAltScreen)
	o.buf.WriteString(escEraseScreen)
	o.buf.WriteString(escCursorHome)
	o.altScreen = true
	return o.flush()
}

// ExitAltScreen returns to the primary screen buffer.
func (o *OutputController) ExitAltScreen() error {
	if !o.altScreen {
		return nil
	}
	o.buf.WriteString(escExitAltScreen)
	o.altScreen = false
	return o.flush()
}

// SetCursorVisible shows or hides the hardware cursor.
func (o *OutputController) SetCursorVisible(visible bool) error {
	if o.cursor.Visible == visible {
		return nil
	}
	if visible {
		o.buf.WriteString(escShowCursor)
	} else {
		o.buf.WriteString(escHideCursor)
	}
	o.cursor.Visible = visible
	return o.flush()
}

// SetCursorShape changes the hardware cursor's glyph via DECSCUSR.
func (o *OutputController) SetCursorShape(shape CursorShape) error {
	if o.cursor.Shape == shape {
		return nil
	}
	writeCursorShape(&o.buf, shape)
	o.cursor.Shape = shape
	return o.flush()
}

// MoveCursor positions the hardware cursor at p.
func (o *OutputController) MoveCursor(p Position) error {
	writeCursorMove(&o.buf, p.X, p.Y)
	o.cursor.Pos = p
	return o.flush()
}

// Cursor returns the controller's last-known cursor state.
func (o *OutputController) Cursor() CursorState { return o.cursor }

// RequestCursorPosition asks the terminal to report its cursor position
// (CSI 6n). The reply arrives asynchronously through the input decoder as a
// CursorPositionEvent.
func (o *OutputController) RequestCursorPosition() error {
	o.buf.WriteString(escRequestCursorPos)
	return o.flush()
}

// SetTitle sets the terminal window's title and icon name.
func (o *OutputController) SetTitle(title string) error {
	writeTitle(&o.buf, title)
	return o.flush()
}

// SetCursorColor sets the terminal's text cursor color via OSC 12.
func (o *OutputController) SetCursorColor(hex string) error {
	writeCursorColor(&o.buf, hex)
	return o.flush()
}

// Bell rings the terminal bell.
func (o *OutputController) Bell() error {
	o.buf.WriteString(escBell)
	return o.flush()
}

// SetLineWrap enables or disables automatic line wrapping (DECAWM).
func (o *OutputController) SetLineWrap(enabled bool) error {
	if o.wrap == enabled {
		return nil
	}
	if enabled {
		o.buf.WriteString(escEnableWrap)
	} else {
		o.buf.WriteString(escDisableWrap)
	}
	o.wrap = enabled
	return o.flush()
}

// SetMouseReporting enables or disables SGR mouse reporting (button press,
// release, and drag motion).
func (o *OutputController) SetMouseReporting(enabled bool) error {
	if o.mouse == enabled {
		return nil
	}
	if enabled {
		o.buf.WriteString(escEnableMouseSGR)
	} else {
		o.buf.WriteString(escDisableMouseSGR)
	}
	o.mouse = enabled
	return o.flush()
}

// SetFocusReporting enables or disables focus-in/focus-out events.
func (o *OutputController) SetFocusReporting(enabled bool) error {
	if o.focus == enabled {
		return nil
	}
	if enabled {
		o.buf.WriteString(escEnableFocus)
	} else {
		o.buf.WriteString(escDisableFocus)
	}
	o.focus = enabled
	return o.flush()
}

// SetBracketedPaste enables or disables bracketed paste mode.
func (o *OutputController) SetBracketedPaste(enabled bool) error {
	if o.bracketed == enabled {
		return nil
	}
	if enabled {
		o.buf.WriteString(escEnableBracketed)
	} else {
		o.buf.WriteString(escDisableBracketed)
	}
	o.bracketed = enabled
	return o.flush()
}
