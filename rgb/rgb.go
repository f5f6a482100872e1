// Package rgb provides the linear-blend colour type shared by the scene
// parameters.
package rgb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color holds red, green and blue in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("rgb: invalid hex colour %q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("rgb: invalid hex colour %q: %w", s, err)
	}

	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// MustParseHex is like ParseHex but panics on error.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

// Lerp blends c toward o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Array returns the channels as a triple.
func (c Color) Array() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

// FromArray builds a colour from a triple.
func FromArray(v [3]float64) Color {
	return Color{R: v[0], G: v[1], B: v[2]}
}

// FromHSL converts hue, saturation and lightness in [0, 1] to a colour.
// Hue wraps; saturation and lightness are clamped.
func FromHSL(h, s, l float64) Color {
	h = h - math.Floor(h)
	s = math.Max(0, math.Min(1, s))
	l = math.Max(0, math.Min(1, l))

	if s == 0 {
		return Color{R: l, G: l, B: l}
	}

	var q float64
	if l <= 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return Color{
		R: hueToRGB(p, q, h+1.0/3),
		G: hueToRGB(p, q, h),
		B: hueToRGB(p, q, h-1.0/3),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*6*(2.0/3-t)
	default:
		return p
	}
}

func channelByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
