package halftone

import (
	"image"
	"image/color"
	"math"

	"github.com/cwbudde/algo-glass/dsp/interp"
)

const hybridLumaThreshold = 0.4

// RGBA is a colour with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

func (c RGBA) mix(o RGBA, t float64) RGBA {
	return RGBA{
		R: c.R*(1-t) + o.R*t,
		G: c.G*(1-t) + o.G*t,
		B: c.B*(1-t) + o.B*t,
		A: c.A*(1-t) + o.A*t,
	}
}

func (c RGBA) luma() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Sampler reads the input buffer at a texture coordinate with the origin at
// the bottom left.
type Sampler interface {
	Sample(u, v float64) RGBA
}

// SamplerFunc adapts a function to [Sampler].
type SamplerFunc func(u, v float64) RGBA

// Sample calls f.
func (f SamplerFunc) Sample(u, v float64) RGBA { return f(u, v) }

// Shade evaluates the fragment program for one pixel at texture coordinate
// (x, y) whose pre-effect colour is in. A non-positive grid size or
// resolution leaves in unchanged.
func Shade(in RGBA, x, y float64, u Uniforms, src Sampler) RGBA {
	if u.Intensity == 0 || !(u.GridSize > 0) || !(u.Resolution[0] > 0) || !(u.Resolution[1] > 0) {
		return in
	}

	cw := u.GridSize / u.Resolution[0]
	ch := u.GridSize / u.Resolution[1]

	row := math.Floor(y / ch)
	if u.Stagger && glslMod(row, 2) == 1 {
		x += cw * 0.5
	}

	cx := math.Floor(x/cw)*cw + cw*0.5
	cy := math.Floor(y/ch)*ch + ch*0.5
	sampled := src.Sample(cx, cy)
	luma := sampled.luma()

	fx := x/cw - math.Floor(x/cw) - 0.5
	fy := y/ch - math.Floor(y/ch) - 0.5
	d := math.Hypot(fx, fy)
	r := u.Radius * luma

	ink := sampled
	if u.ColorMode == Luma {
		ink = RGBA{R: luma, G: luma, B: luma}
	}

	mask := func(radius float64) float64 {
		return 1 - interp.Smoothstep(radius-u.Softness, radius+u.Softness, d)
	}

	var m float64
	switch {
	case u.Mode == Dot:
		m = mask(r)
	case u.Mode == Ring:
		m = mask(r) - mask(r*0.5)
	case luma < hybridLumaThreshold:
		k := mask(r)
		square := RGBA{R: ink.R * (1 - k), G: ink.G * (1 - k), B: ink.B * (1 - k), A: 1}
		return in.mix(square, u.Intensity)
	default:
		m = mask(r)
	}

	out := RGBA{R: ink.R * m, G: ink.G * m, B: ink.B * m, A: in.A}
	return in.mix(out, u.Intensity)
}

// glslMod matches GLSL mod: x - y*floor(x/y).
func glslMod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// ImageSampler samples an image with nearest-neighbour lookup, flipping v so
// that v=0 is the bottom row.
type ImageSampler struct {
	Image image.Image
}

// Sample returns the pixel covering (u, v), clamped to the image edges.
func (s ImageSampler) Sample(u, v float64) RGBA {
	b := s.Image.Bounds()
	if b.Empty() {
		return RGBA{}
	}

	px := b.Min.X + clampInt(int(math.Floor(u*float64(b.Dx()))), 0, b.Dx()-1)
	py := b.Min.Y + clampInt(int(math.Floor((1-v)*float64(b.Dy()))), 0, b.Dy()-1)

	return fromColor(s.Image.At(px, py))
}

// Render applies the effect to src and returns a new image. The resolution
// uniform is taken from the image bounds.
func Render(src image.Image, u Uniforms) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	if b.Empty() {
		return dst
	}

	u.Resolution = [2]float64{float64(b.Dx()), float64(b.Dy())}
	sampler := ImageSampler{Image: src}

	for py := b.Min.Y; py < b.Max.Y; py++ {
		y := 1 - (float64(py-b.Min.Y)+0.5)/float64(b.Dy())
		for px := b.Min.X; px < b.Max.X; px++ {
			x := (float64(px-b.Min.X) + 0.5) / float64(b.Dx())
			in := fromColor(src.At(px, py))
			dst.Set(px, py, toColor(Shade(in, x, y, u, sampler)))
		}
	}

	return dst
}

func fromColor(c color.Color) RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

func toColor(c RGBA) color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
