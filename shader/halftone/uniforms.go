package halftone

import (
	"fmt"

	"github.com/cwbudde/algo-glass/uniform"
)

// EffectName identifies the halftone effect in a uniform set.
const EffectName = "halftone"

// Uniform names of the fragment program.
const (
	UniformGridSize   = "uGridSize"
	UniformRadius     = "uRadius"
	UniformSoftness   = "uSoftness"
	UniformMode       = "uMode"
	UniformStagger    = "uStagger"
	UniformColorMode  = "uColorMode"
	UniformResolution = "uResolution"
	UniformIntensity  = "uIntensity"
)

// Mode selects the halftone rendering.
type Mode int

const (
	Dot Mode = iota
	Ring
	Hybrid
)

func (m Mode) String() string {
	switch m {
	case Dot:
		return "dot"
	case Ring:
		return "ring"
	case Hybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ColorMode selects the ink colour.
type ColorMode int

const (
	Sampled ColorMode = iota
	Luma
)

// Uniforms is the typed form of the uniform contract.
type Uniforms struct {
	GridSize   float64
	Radius     float64
	Softness   float64
	Mode       Mode
	Stagger    bool
	ColorMode  ColorMode
	Resolution [2]float64
	Intensity  float64
}

// Defaults returns grid 48, radius 0.4, softness 0.02, dot mode, staggered
// rows, sampled colour, a 1x1 resolution and full intensity.
func Defaults() Uniforms {
	return Uniforms{
		GridSize:   48,
		Radius:     0.4,
		Softness:   0.02,
		Mode:       Dot,
		Stagger:    true,
		ColorMode:  Sampled,
		Resolution: [2]float64{1, 1},
		Intensity:  1,
	}
}

var descriptors = []uniform.Descriptor{
	{Effect: EffectName, Name: UniformGridSize, Kind: uniform.Float},
	{Effect: EffectName, Name: UniformRadius, Kind: uniform.Float},
	{Effect: EffectName, Name: UniformSoftness, Kind: uniform.Float},
	{Effect: EffectName, Name: UniformMode, Kind: uniform.Float},
	{Effect: EffectName, Name: UniformStagger, Kind: uniform.Float},
	{Effect: EffectName, Name: UniformColorMode, Kind: uniform.Float},
	{Effect: EffectName, Name: UniformResolution, Kind: uniform.Vec2},
	{Effect: EffectName, Name: UniformIntensity, Kind: uniform.Float},
}

// Descriptors returns the uniform table in declaration order.
func Descriptors() []uniform.Descriptor {
	return append([]uniform.Descriptor(nil), descriptors...)
}

// Values returns u as uniform values aligned with [Descriptors].
func (u Uniforms) Values() []uniform.Value {
	return []uniform.Value{
		uniform.FloatValue(u.GridSize),
		uniform.FloatValue(u.Radius),
		uniform.FloatValue(u.Softness),
		uniform.FloatValue(float64(u.Mode)),
		uniform.Bool(u.Stagger),
		uniform.FloatValue(float64(u.ColorMode)),
		uniform.Vec2Value(u.Resolution[0], u.Resolution[1]),
		uniform.FloatValue(u.Intensity),
	}
}

// WriteTo writes every uniform of u to w.
func (u Uniforms) WriteTo(w uniform.Writer) {
	for i, v := range u.Values() {
		w.Write(descriptors[i], v)
	}
}

// FromSet reads the halftone uniforms back from s, keeping the defaults for
// anything not present.
func FromSet(s *uniform.Set) Uniforms {
	u := Defaults()
	if v, ok := s.Get(EffectName, UniformGridSize); ok {
		u.GridSize = v.X
	}
	if v, ok := s.Get(EffectName, UniformRadius); ok {
		u.Radius = v.X
	}
	if v, ok := s.Get(EffectName, UniformSoftness); ok {
		u.Softness = v.X
	}
	if v, ok := s.Get(EffectName, UniformMode); ok {
		u.Mode = Mode(int(v.X + 0.5))
	}
	if v, ok := s.Get(EffectName, UniformStagger); ok {
		u.Stagger = v.X > 0.5
	}
	if v, ok := s.Get(EffectName, UniformColorMode); ok {
		u.ColorMode = ColorMode(int(v.X + 0.5))
	}
	if v, ok := s.Get(EffectName, UniformResolution); ok {
		u.Resolution = [2]float64{v.X, v.Y}
	}
	if v, ok := s.Get(EffectName, UniformIntensity); ok {
		u.Intensity = v.X
	}
	return u
}
