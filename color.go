package termio

import "fmt"

// colorKind tags the variant held by a Color value.
type colorKind uint8

const (
	colorNormal colorKind = iota
	colorStandard
	colorBright
	colorExtended
	colorRGB
)

// Color is a tagged union over the five ways a terminal cell's foreground or
// background can be expressed on the wire: the terminal's own default,
// one of the 8 standard ANSI colors, one of their 8 bright counterparts,
// one of the 256 extended palette entries, or a 24-bit RGB triple.
type Color struct {
	kind  colorKind
	index uint8 // 0-7 for Standard/Bright, 0-255 for Extended
	r, g, b uint8 // only meaningful for RGB
}

// DefaultColor is the terminal's own default foreground/background.
var DefaultColor = Color{kind: colorNormal}

// Standard returns one of the 8 standard ANSI colors (0-7). Values outside
// that range are clamped into it.
func Standard(n int) Color {
	return Color{kind: colorStandard, index: clampIndex(n, 7)}
}

// Bright returns one of the 8 bright ANSI colors (0-7).
func Bright(n int) Color {
	return Color{kind: colorBright, index: clampIndex(n, 7)}
}

// Extended returns one of the 256 extended palette colors (0-255).
func Extended(n int) Color {
	return Color{kind: colorExtended, index: clampIndex(n, 255)}
}

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{kind: colorRGB, r: r, g: g, b: b}
}

func clampIndex(n, max int) uint8 {
	if n < 0 {
		return 0
	}
	if n > max {
		return uint8(max)
	}
	return uint8(n)
}

// Named standard colors, matching the conventional ANSI ordering.
var (
	Black   = Standard(0)
	Red     = Standard(1)
	Green   = Standard(2)
	Yellow  = Standard(3)
	Blue    = Standard(4)
	Magenta = Standard(5)
	Cyan    = Standard(6)
	White   = Standard(7)

	BrightBlack   = Bright(0)
	BrightRed     = Bright(1)
	BrightGreen   = Bright(2)
	BrightYellow  = Bright(3)
	BrightBlue    = Bright(4)
	BrightMagenta = Bright(5)
	BrightCyan    = Bright(6)
	BrightWhite   = Bright(7)
)

// IsDefault reports whether c is the terminal's own default color.
func (c Color) IsDefault() bool { return c.kind == colorNormal }

// optimizedExtended builds the narrowest Color representing extended palette
// index n: indices 0-7 and 8-15 fold back down to Standard/Bright so the
// renderer can emit the shorter classic SGR codes instead of the 38;5;n form.
func optimizedExtended(n int) Color {
	switch {
	case n >= 0 && n <= 7:
		return Standard(n)
	case n >= 8 && n <= 15:
		return Bright(n - 8)
	default:
		return Extended(n)
	}
}

// fgParam returns the SGR parameter sequence (without the leading "CSI" or
// trailing "m") that selects c as a foreground color.
func (c Color) fgParam() string {
	switch c.kind {
	case colorNormal:
		return "39"
	case colorStandard:
		return fmt.Sprintf("%d", 30+int(c.index))
	case colorBright:
		return fmt.Sprintf("%d", 90+int(c.index))
	case colorExtended:
		return fmt.Sprintf("38;5;%d", c.index)
	case colorRGB:
		return fmt.Sprintf("38;2;%d;%d;%d", c.r, c.g, c.b)
	default:
		return "39"
	}
}

// bgParam returns the SGR parameter sequence that selects c as a background
// color.
func (c Color) bgParam() string {
	switch c.kind {
	case colorNormal:
		return "49"
	case colorStandard:
		return fmt.Sprintf("%d", 40+int(c.index))
	case colorBright:
		return fmt.Sprintf("%d", 100+int(c.index))
	case colorExtended:
		return fmt.Sprintf("48;5;%d", c.index)
	case colorRGB:
		return fmt.Sprintf("48;2;%d;%d;%d", c.r, c.g, c.b)
	default:
		return "49"
	}
}

// cube6 holds the 6 intensity levels xterm uses for the 6x6x6 color cube
// portion (indices 16-231) of the extended palette.
var cube6 = [6]uint8{0, 95, 135, 175, 215, 255}

// toExtended down-converts any Color to its closest Extended (256-palette)
// equivalent. Standard/Bright/Normal colors map to their fixed low indices;
// RGB colors are quantized to the nearest cube or grayscale-ramp entry,
// whichever is closer.
func toExtended(c Color) Color {
	switch c.kind {
	case colorNormal:
		return Extended(7)
	case colorStandard:
		return Extended(int(c.index))
	case colorBright:
		return Extended(int(c.index) + 8)
	case colorExtended:
		return c
	case colorRGB:
		return Extended(rgbToExtendedIndex(c.r, c.g, c.b))
	default:
		return Extended(7)
	}
}

func rgbToExtendedIndex(r, g, b uint8) int {
	cubeIdx := func(v uint8) int {
		best, bestDist := 0, 1<<30
		for i, level := range cube6 {
			d := int(v) - int(level)
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				bestDist, best = d, i
			}
		}
		return best
	}
	ri, gi, bi := cubeIdx(r), cubeIdx(g), cubeIdx(b)
	cubeColor := 16 + 36*ri + 6*gi + bi
	cr, cg, cb := cube6[ri], cube6[gi], cube6[bi]
	cubeDist := sqDist(r, g, b, cr, cg, cb)

	gray := (int(r) + int(g) + int(b)) / 3
	grayLevel := (gray - 8) / 10
	if grayLevel < 0 {
		grayLevel = 0
	}
	if grayLevel > 23 {
		grayLevel = 23
	}
	grayValue := uint8(8 + grayLevel*10)
	grayColor := 232 + grayLevel
	grayDist := sqDist(r, g, b, grayValue, grayValue, grayValue)

	if grayDist < cubeDist {
		return grayColor
	}
	return cubeColor
}

func sqDist(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}

// toStandard down-converts any Color to the closest one of the 8 standard
// ANSI colors (the renderer's fallback for terminals that only advertise
// basic color support).
func toStandard(c Color) Color {
	switch c.kind {
	case colorNormal:
		return c
	case colorStandard:
		return c
	case colorBright:
		return Standard(int(c.index))
	case colorExtended:
		r, g, b := getRgb(c)
		return Standard(nearestStandardIndex(r, g, b))
	case colorRGB:
		return Standard(nearestStandardIndex(c.r, c.g, c.b))
	default:
		return c
	}
}

// toAnsi down-converts to the full 16-color ANSI palette (standard + bright),
// used when a terminal supports bright colors but not 256-color/RGB.
func toAnsi(c Color) Color {
	switch c.kind {
	case colorNormal, colorStandard, colorBright:
		return c
	case colorExtended:
		r, g, b := getRgb(c)
		return nearestAnsi16(r, g, b)
	case colorRGB:
		return nearestAnsi16(c.r, c.g, c.b)
	default:
		return c
	}
}

// ansi16Palette mirrors the conventional xterm default 16-color RGB values,
// used only as the reference points for down-conversion.
var ansi16Palette = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

func nearestStandardIndex(r, g, b uint8) int {
	best, bestDist := 0, 1<<30
	for i := 0; i < 8; i++ {
		p := ansi16Palette[i]
		d := sqDist(r, g, b, p[0], p[1], p[2])
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	return best
}

func nearestAnsi16(r, g, b uint8) Color {
	best, bestDist := 0, 1<<30
	for i := 0; i < 16; i++ {
		p := ansi16Palette[i]
		d := sqDist(r, g, b, p[0], p[1], p[2])
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	if best < 8 {
		return Standard(best)
	}
	return Bright(best - 8)
}

// getRgb resolves any Color to its approximate 24-bit RGB value. Normal
// (default) resolves to a mid-gray placeholder since the true default
// foreground/background is controlled by the terminal's own theme and is
// not knowable here.
func getRgb(c Color) (r, g, b uint8) {
	switch c.kind {
	case colorRGB:
		return c.r, c.g, c.b
	case colorStandard:
		p := ansi16Palette[c.index]
		return p[0], p[1], p[2]
	case colorBright:
		p := ansi16Palette[8+c.index]
		return p[0], p[1], p[2]
	case colorExtended:
		return extendedToRgb(c.index)
	default:
		return 190, 190, 190
	}
}

func extendedToRgb(idx uint8) (r, g, b uint8) {
	switch {
	case idx < 8:
		p := ansi16Palette[idx]
		return p[0], p[1], p[2]
	case idx < 16:
		p := ansi16Palette[idx]
		return p[0], p[1], p[2]
	case idx < 232:
		n := int(idx) - 16
		ri, gi, bi := n/36, (n/6)%6, n%6
		return cube6[ri], cube6[gi], cube6[bi]
	default:
		level := int(idx) - 232
		v := uint8(8 + level*10)
		return v, v, v
	}
}
