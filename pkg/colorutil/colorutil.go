// Package colorutil provides shared color helpers for scrim overlays.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Common scrim fills.
var (
	// DefaultScrim is the standard dimming fill: neutral gray at 50% opacity.
	DefaultScrim = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}

	Shadow    = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x99} // Dark modal backdrop
	Spotlight = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x66} // Light wash
	Frost     = color.NRGBA{R: 0xE8, G: 0xF0, B: 0xF8, A: 0xB3} // Frosted pale blue
)

// WithAlpha returns c with its alpha channel replaced by a.
func WithAlpha(c color.Color, a uint8) color.NRGBA {
	n := toNRGBA(c)
	n.A = a
	return n
}

// ScaleAlpha returns c with its alpha channel multiplied by f, where f is
// clamped to the 0 to 1 range. Used to fade a fill in and out.
func ScaleAlpha(c color.Color, f float64) color.NRGBA {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	n := toNRGBA(c)
	n.A = uint8(float64(n.A)*f + 0.5)
	return n
}

// Parse interprets s as a fill color. Accepted forms are hex
// (#RGB, #RRGGBB, #RRGGBBAA) and SVG 1.1 color names ("gray", "royalblue").
// Hex colors without an alpha component are fully opaque.
func Parse(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color name %q", s)
}

// parseHex handles #RGB, #RRGGBB, and #RRGGBBAA.
func parseHex(s string) (color.NRGBA, error) {
	alpha := uint8(0xFF)
	switch len(s) {
	case 9:
		var a uint8
		if _, err := fmt.Sscanf(s[7:9], "%02x", &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex alpha in %q", s)
		}
		alpha = a
		s = s[:7]
	case 4, 7:
		// colorful.Hex scans these directly.
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: want #RGB, #RRGGBB, or #RRGGBBAA", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// toNRGBA converts any color to non-premultiplied RGBA.
func toNRGBA(c color.Color) color.NRGBA {
	if n, ok := c.(color.NRGBA); ok {
		return n
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
