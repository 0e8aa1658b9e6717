package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB color. Channels are always kept within [0, 255].
type Color struct {
	R, G, B int
}

// NewColor returns a color with each channel clamped to [0, 255].
func NewColor(r, g, b int) Color {
	var c Color
	c.SetRGB(r, g, b)
	return c
}

// SetRGB sets all three channels, clamping out of range values.
func (c *Color) SetRGB(r, g, b int) *Color {
	c.R = clampChannel(r)
	c.G = clampChannel(g)
	c.B = clampChannel(b)
	return c
}

// RGB returns the three channels.
func (c Color) RGB() (r, g, b int) {
	return c.R, c.G, c.B
}

// Equal reports whether both colors have the same channels.
func (c Color) Equal(other Color) bool {
	return c == other
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

func clampChannel(v int) int {
	return max(0, min(255, v))
}

// ParseHex parses a hexadecimal color. Every non hexadecimal character
// (such as '#' or spaces) is removed first. The remaining string must contain
// 3 or 6 digits; in the short form each digit is doubled ("FAC" is "FFAACC").
func ParseHex(s string) (rgb [3]int, ok bool) {
	var b strings.Builder
	for _, r := range s {
		if isHexDigit(r) {
			b.WriteRune(r)
		}
	}
	hex := b.String()
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return rgb, false
	}
	for i := range rgb {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return [3]int{}, false
		}
		rgb[i] = int(v)
	}
	return rgb, true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// CreateColor builds a color from a hexadecimal string or from a slice or
// array of three integers. It returns false when the value cannot be
// converted.
func CreateColor(v any) (Color, bool) {
	switch t := v.(type) {
	case Color:
		return t, true
	case string:
		rgb, ok := ParseHex(t)
		if !ok {
			return Color{}, false
		}
		return NewColor(rgb[0], rgb[1], rgb[2]), true
	case [3]int:
		return NewColor(t[0], t[1], t[2]), true
	case []int:
		if len(t) != 3 {
			return Color{}, false
		}
		return NewColor(t[0], t[1], t[2]), true
	}
	return Color{}, false
}

// Black returns RGB 0,0,0.
func Black() Color { return Color{0, 0, 0} }

// White returns RGB 255,255,255.
func White() Color { return Color{255, 255, 255} }

// Red returns RGB 255,0,0.
func Red() Color { return Color{255, 0, 0} }

// Green returns RGB 0,255,0.
func Green() Color { return Color{0, 255, 0} }

// Blue returns RGB 0,0,255.
func Blue() Color { return Color{0, 0, 255} }

// DarkGreen returns RGB 0,128,0.
func DarkGreen() Color { return Color{0, 128, 0} }

// HeaderFill is the background of header cells.
func HeaderFill() Color { return Color{245, 245, 245} }

// CellBorder is the draw color of cell borders.
func CellBorder() Color { return Color{221, 221, 221} }

// LinkColor is the text color of links.
func LinkColor() Color { return Blue() }

func (c Color) applyDraw(s Surface) { s.SetDrawColor(c.R, c.G, c.B) }
func (c Color) applyFill(s Surface) { s.SetFillColor(c.R, c.G, c.B) }
func (c Color) applyText(s Surface) { s.SetTextColor(c.R, c.G, c.B) }
