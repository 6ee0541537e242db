package termio

// parseEscape dispatches an ESC-prefixed sequence at the front of data.
// Returns the decoded events, the number of bytes consumed, and whether the
// sequence was complete. A false ok means the caller should wait for more
// bytes (or, eventually, a CheckTimeout) before trying again.
func (d *Decoder) parseEscape(data []byte) ([]Event, int, bool) {
	if len(data) < 2 {
		return nil, 0, false
	}
	switch data[1] {
	case '[':
		return d.parseCSI(data)
	case 'O':
		return parseSS3(data)
	default:
		// Alt+key: ESC immediately followed by the key's own encoding.
		// Re-decode the byte(s) after ESC as if they'd arrived on their
		// own, then set the Alt modifier on the resulting key event.
		rest := data[1:]
		var inner Event
		var consumed int
		if rest[0] < 0x20 || rest[0] == 0x7f {
			inner = parseControl(rest[0])
			consumed = 1
		} else {
			r, size := decodeRune(rest)
			inner = KeyEvent{Key{Code: KeyRune, Rune: r}}
			consumed = size
		}
		if ke, ok := inner.(KeyEvent); ok {
			ke.Key.Mods |= ModAlt
			inner = ke
		}
		return []Event{inner}, 1 + consumed, true
	}
}

// isFinalCSIByte reports whether b terminates a CSI sequence (the "final
// byte" range 0x40-0x7E).
func isFinalCSIByte(b byte) bool { return b >= 0x40 && b <= 0x7e }

// parseCSI parses a CSI sequence (ESC '[' ... final-byte). Returns the
// decoded events, bytes consumed including the ESC and '[', and whether the
// sequence was complete within data.
func (d *Decoder) parseCSI(data []byte) ([]Event, int, bool) {
	// data[0]==ESC, data[1]=='['
	i := 2
	for i < len(data) && !isFinalCSIByte(data[i]) {
		i++
	}
	if i >= len(data) {
		return nil, 0, false // final byte not yet seen
	}
	final := data[i]
	params := data[2:i]
	consumed := i + 1

	// Mouse reports.
	if final == 'M' && len(params) == 0 {
		// X10 encoding: "CSI M" followed by three raw (non-decimal) bytes.
		if len(data) < consumed+3 {
			return nil, 0, false
		}
		ev := d.parseX10Mouse([3]byte{data[consumed], data[consumed+1], data[consumed+2]})
		return []Event{ev}, consumed + 3, true
	}
	if final == 'M' || final == 'm' {
		if len(params) > 0 && params[0] == '<' {
			ev, ok := parseSGRMouse(params[1:], final)
			if ok {
				return []Event{ev}, consumed, true
			}
			return nil, consumed, true
		}
		if len(params) > 0 {
			ev, ok := d.parseURXVTMouse(params)
			if ok {
				return []Event{ev}, consumed, true
			}
			return nil, consumed, true
		}
	}

	if ev, ok := lookupSimpleCSI(params, final); ok {
		return []Event{ev}, consumed, true
	}

	switch final {
	case 'I':
		return []Event{FocusEvent{Focused: true}}, consumed, true
	case 'O':
		return []Event{FocusEvent{Focused: false}}, consumed, true
	case 'R':
		if pos, ok := parseCursorPositionReply(params); ok {
			return []Event{CursorPositionEvent{Pos: pos}}, consumed, true
		}
	case '~':
		if ev, ok := parseTildeCSI(params); ok {
			return []Event{ev}, consumed, true
		}
	case 'u':
		if ev, ok := parseKittyKey(params); ok {
			return []Event{ev}, consumed, true
		}
	}
	return nil, consumed, true // unrecognized CSI: consumed and dropped
}

// parseSS3 parses an SS3 sequence (ESC 'O' letter), used for the
// application-keypad encodings of arrows, Home/End, and F1-F4.
func parseSS3(data []byte) ([]Event, int, bool) {
	if len(data) < 3 {
		return nil, 0, false
	}
	code, ok := ss3Table[data[2]]
	if !ok {
		return nil, 3, true
	}
	return []Event{KeyEvent{Key{Code: code}}}, 3, true
}

var ss3Table = map[byte]KeyCode{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
	'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
}

// lookupSimpleCSI handles the bare-letter and modifier-suffixed CSI forms:
// "CSI A" means Up and "CSI 1;3A" means Alt+Up, for example.
func lookupSimpleCSI(params []byte, final byte) (Event, bool) {
	code, ok := csiLetterTable[final]
	if !ok {
		return nil, false
	}
	mods := Modifiers(0)
	if len(params) > 0 {
		// Modifier form: "1;<mod>" where <mod>-1 is the modifier bitmask.
		parts := splitParams(params)
		if len(parts) >= 2 {
			mods = modifierFromParam(parts[1])
		}
	}
	return KeyEvent{Key{Code: code, Mods: mods}}, true
}

var csiLetterTable = map[byte]KeyCode{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
	'Z': KeyBackTab,
}

// parseTildeCSI handles the "CSI <n>~" and "CSI <n>;<mod>~" families used
// for Insert/Delete/Home/End/PageUp/PageDown/F5-F12.
func parseTildeCSI(params []byte) (Event, bool) {
	parts := splitParams(params)
	if len(parts) == 0 {
		return nil, false
	}
	code, ok := tildeTable[parts[0]]
	if !ok {
		return nil, false
	}
	mods := Modifiers(0)
	if len(parts) >= 2 {
		mods = modifierFromParam(parts[1])
	}
	return KeyEvent{Key{Code: code, Mods: mods}}, true
}

var tildeTable = map[int]KeyCode{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd,
	5: KeyPageUp, 6: KeyPageDown,
	7: KeyHome, 8: KeyEnd,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4,
	15: KeyF5, 17: KeyF6, 18: KeyF7, 19: KeyF8,
	20: KeyF9, 21: KeyF10, 23: KeyF11, 24: KeyF12,
}

// parseKittyKey handles the minimal subset of the kitty keyboard protocol
// ("CSI <code>;<mod>u") needed to recover a ctrl/alt/shift-modified
// printable key reported as its Unicode code point.
func parseKittyKey(params []byte) (Event, bool) {
	parts := splitParams(params)
	if len(parts) == 0 {
		return nil, false
	}
	mods := Modifiers(0)
	if len(parts) >= 2 {
		mods = modifierFromParam(parts[1])
	}
	return KeyEvent{Key{Code: KeyRune, Rune: rune(parts[0]), Mods: mods}}, true
}

// parseCursorPositionReply parses "CSI <row>;<col>R" into a 0-based
// Position.
func parseCursorPositionReply(params []byte) (Position, bool) {
	parts := splitParams(params)
	if len(parts) != 2 {
		return Position{}, false
	}
	return Position{X: parts[1] - 1, Y: parts[0] - 1}, true
}

// modifierFromParam decodes the xterm modifier encoding, where the wire
// value is 1 + the modifier bitmask (bit0=Shift, bit1=Alt, bit2=Ctrl,
// bit3=Meta). Alt and Meta collapse onto the same ModAlt flag: xterm itself
// only ever sets one or the other depending on how the host's Alt key is
// configured to report, so a CSI param never carries both, and keeping them
// as one flag matches the ESC-prefixed Alt+key fallback in parseEscape.
func modifierFromParam(n int) Modifiers {
	if n <= 0 {
		return 0
	}
	bits := n - 1
	var m Modifiers
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&(2|8) != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

// splitParams splits a ';'-separated CSI parameter list into ints. Empty
// fields (e.g. a leading "CSI ;5H") decode to 0.
func splitParams(params []byte) []int {
	var out []int
	n := 0
	has := false
	for _, b := range params {
		if b == ';' {
			out = append(out, n)
			n, has = 0, false
			continue
		}
		if b >= '0' && b <= '9' {
			n = n*10 + int(b-'0')
			has = true
		}
	}
	if has || len(out) == 0 || len(params) == 0 || params[len(params)-1] == ';' {
		out = append(out, n)
	}
	return out
}
