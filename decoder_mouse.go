package termio

// This file covers the wire encodings for mouse reporting: X10 (DECSET
// 1000, three raw bytes after "CSI M"), URXVT (DECSET 1015, decimal
// "CSI <btn>;<x>;<y>M"), and SGR (DECSET 1006, "CSI <<btn>;<x>;<y>M/m",
// distinguished from URXVT by the leading '<' and by release being a
// literal trailing 'm' rather than an inferred button).

// decodeMouseButton splits the raw button byte (X10/URXVT encoding, already
// offset by 32) into an action/button/modifier tuple. Bit layout: bits 0-1
// are the button number (3 = release in X10), bit2=Shift, bit3=Meta,
// bit4=Ctrl, bit5=motion flag, bit6 set with bits0-1 meaning a wheel event
// (0=up,1=down).
func decodeMouseButton(raw int, lastPressed MouseButton) (MouseAction, MouseButton, Modifiers) {
	mods := Modifiers(0)
	if raw&4 != 0 {
		mods |= ModShift
	}
	if raw&8 != 0 {
		mods |= ModMeta
	}
	if raw&16 != 0 {
		mods |= ModCtrl
	}
	motion := raw&32 != 0

	if raw&64 != 0 {
		if raw&1 != 0 {
			return MouseScrollDown, MouseButtonNone, mods
		}
		return MouseScrollUp, MouseButtonNone, mods
	}

	btnBits := raw & 3
	var btn MouseButton
	switch btnBits {
	case 0:
		btn = MouseButtonLeft
	case 1:
		btn = MouseButtonMiddle
	case 2:
		btn = MouseButtonRight
	case 3:
		btn = lastPressed // release with no button bits: last pressed button
	}

	if motion {
		return MouseMotion, btn, mods
	}
	if btnBits == 3 {
		return MouseRelease, btn, mods
	}
	return MousePress, btn, mods
}

// parseSGRMouse parses the already-split "<btn>;<x>;<y>" payload of an SGR
// mouse report, given the sequence's final byte ('M' for press/motion, 'm'
// for release).
func parseSGRMouse(payload []byte, final byte) (Event, bool) {
	parts := splitParams(payload)
	if len(parts) != 3 {
		return nil, false
	}
	raw, x, y := parts[0], parts[1], parts[2]
	mods := Modifiers(0)
	if raw&4 != 0 {
		mods |= ModShift
	}
	if raw&8 != 0 {
		mods |= ModMeta
	}
	if raw&16 != 0 {
		mods |= ModCtrl
	}
	pos := Position{X: x - 1, Y: y - 1}

	if raw&64 != 0 {
		if raw&1 != 0 {
			return MouseEvent{Action: MouseScrollDown, Pos: pos, Mods: mods}, true
		}
		return MouseEvent{Action: MouseScrollUp, Pos: pos, Mods: mods}, true
	}

	var btn MouseButton
	switch raw & 3 {
	case 0:
		btn = MouseButtonLeft
	case 1:
		btn = MouseButtonMiddle
	case 2:
		btn = MouseButtonRight
	}

	action := MousePress
	if final == 'm' {
		action = MouseRelease
	} else if raw&32 != 0 {
		action = MouseMotion
	}
	return MouseEvent{Action: action, Button: btn, Pos: pos, Mods: mods}, true
}

// parseURXVTMouse parses the already-split "<raw>;<x>;<y>" decimal payload
// of a URXVT mouse report (always terminated with a literal 'M'; release is
// inferred from the button bits rather than a distinct final byte).
func (d *Decoder) parseURXVTMouse(payload []byte) (Event, bool) {
	parts := splitParams(payload)
	if len(parts) != 3 {
		return nil, false
	}
	raw, x, y := parts[0]-32, parts[1], parts[2]
	action, btn, mods := decodeMouseButton(raw, d.lastPressedButton)
	if action == MousePress {
		d.lastPressedButton = btn
	}
	return MouseEvent{Action: action, Button: btn, Pos: Position{X: x - 1, Y: y - 1}, Mods: mods}, true
}

// parseX10Mouse parses the three raw (non-decimal) bytes following
// "CSI M" in the original X10 mouse encoding: button, x, y, each the real
// value plus 32 so it stays in a printable range. A coordinate byte of
// exactly 0x20 decodes to 0, which never happens for a real 1-based
// coordinate; it means the true coordinate overflowed a single byte and
// wrapped, and the documented repair is to add back the 0xff it lost.
func (d *Decoder) parseX10Mouse(b [3]byte) Event {
	raw := int(b[0]) - 32
	x := fixX10Overflow(int(b[1]) - 32)
	y := fixX10Overflow(int(b[2]) - 32)
	action, btn, mods := decodeMouseButton(raw, d.lastPressedButton)
	if action == MousePress {
		d.lastPressedButton = btn
	}
	return MouseEvent{Action: action, Button: btn, Pos: Position{X: x - 1, Y: y - 1}, Mods: mods}
}

func fixX10Overflow(n int) int {
	if n <= 0 {
		return n + 0xff
	}
	return n
}
