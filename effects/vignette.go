package effects

import (
	"math"

	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/uniform"
)

// VignetteName is the registry name of the vignette effect.
const VignetteName = "vignette"

var (
	vignetteDarkness = floatDesc(VignetteName, "darkness")
	vignetteOffset   = floatDesc(VignetteName, "offset")
)

// VignetteConfig holds the vignette constants.
type VignetteConfig struct {
	BaseDarkness   float64
	ScrollDarkness float64
	BassDarkness   float64
	MaxDarkness    float64

	BaseOffset   float64
	ScrollOffset float64
	MinOffset    float64

	Rate float64
}

// DefaultVignetteConfig returns the reference constants. Bass is smoothed at
// rate 6.
func DefaultVignetteConfig() VignetteConfig {
	return VignetteConfig{
		BaseDarkness:   0.5,
		ScrollDarkness: 0.3,
		BassDarkness:   0.2,
		MaxDarkness:    0.9,
		BaseOffset:     0.35,
		ScrollOffset:   0.15,
		MinOffset:      0.1,
		Rate:           6,
	}
}

// Vignette darkens and tightens the frame edge as the page scrolls.
type Vignette struct {
	cfg  VignetteConfig
	bass smooth.Damper
}

// NewVignette returns a vignette effect.
func NewVignette(cfg VignetteConfig) *Vignette {
	return &Vignette{cfg: cfg, bass: smooth.NewDamper(cfg.Rate, 0)}
}

func (v *Vignette) Name() string { return VignetteName }

func (v *Vignette) Descriptors() []uniform.Descriptor {
	return []uniform.Descriptor{vignetteDarkness, vignetteOffset}
}

func (v *Vignette) Update(in Inputs, w uniform.Writer) {
	bass := v.bass.Step(in.band(bassOf), in.Delta)

	dark := math.Min(v.cfg.BaseDarkness+in.Scroll*v.cfg.ScrollDarkness+bass*v.cfg.BassDarkness, v.cfg.MaxDarkness)
	off := math.Max(v.cfg.BaseOffset-in.Scroll*v.cfg.ScrollOffset, v.cfg.MinOffset)

	w.Write(vignetteDarkness, uniform.FloatValue(dark))
	w.Write(vignetteOffset, uniform.FloatValue(off))
}
