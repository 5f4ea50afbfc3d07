package fireworks

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses "#RRGGBB" (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

type Palette []Color

var defaultHex = []string{
	"#FF5252", "#FF4081", "#E040FB", "#7C4DFF",
	"#536DFE", "#448AFF", "#40C4FF", "#18FFFF",
	"#64FFDA", "#69F0AE", "#B2FF59", "#EEFF41",
	"#FFFF00", "#FFD740", "#FFAB40", "#FF6E40",
}

func DefaultPalette() Palette {
	p := make(Palette, 0, len(defaultHex))
	for _, h := range defaultHex {
		c, _ := ParseHex(h)
		p = append(p, c)
	}
	return p
}

// RainbowPalette spaces n pastel-bright hues (saturation 0.7) around the color wheel.
func RainbowPalette(n int) Palette {
	if n <= 0 {
		return nil
	}
	p := make(Palette, n)
	for i := range p {
		r, g, b := hsvToRgb(float64(i)*360/float64(n), 0.7, 1.0)
		p[i] = Color{R: r, G: g, B: b}
	}
	return p
}

// ParsePalette converts the palette setting. An empty list selects the
// default palette and the single entry "rainbow" a 16 hue wheel.
func ParsePalette(entries []string) (Palette, error) {
	if len(entries) == 0 {
		return DefaultPalette(), nil
	}
	if len(entries) == 1 && strings.EqualFold(strings.TrimSpace(entries[0]), "rainbow") {
		return RainbowPalette(len(defaultHex)), nil
	}
	p := make(Palette, 0, len(entries))
	for _, e := range entries {
		c, err := ParseHex(e)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}
