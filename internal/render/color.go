package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a straight-alpha color with components in [0,1], the form the
// draw-primitive boundary consumes.
type RGBA struct {
	R, G, B, A float32
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = a
	return c
}

// NRGBA converts to an 8-bit color for image-based sinks.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(c.R, 0, 1) * 255),
		G: uint8(clamp(c.G, 0, 1) * 255),
		B: uint8(clamp(c.B, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// ParseHex parses a "#rrggbb" config color with the given alpha.
func ParseHex(s string, alpha float32) (RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGBA{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}

// MustHex is ParseHex for compiled-in colors.
func MustHex(s string, alpha float32) RGBA {
	c, err := ParseHex(s, alpha)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb", dropping alpha.
func (c RGBA) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
