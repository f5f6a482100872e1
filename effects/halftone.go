package effects

import (
	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/dsp/interp"
	"github.com/cwbudde/algo-glass/shader/halftone"
	"github.com/cwbudde/algo-glass/uniform"
)

// HalftoneConfig holds the scroll staging of the halftone effect.
type HalftoneConfig struct {
	// Intensity ramps from 0 to 1 across [FadeStart, FadeEnd].
	FadeStart float64
	FadeEnd   float64

	// Ring mode starts at RingAt, hybrid mode at HybridAt.
	RingAt   float64
	HybridAt float64

	BaseRadius float64
	BassRadius float64
	BaseGrid   float64
	AvgGrid    float64

	Rate float64

	// Static holds the uniforms that do not follow audio or scroll.
	Static halftone.Uniforms
}

// DefaultHalftoneConfig returns the reference staging.
func DefaultHalftoneConfig() HalftoneConfig {
	return HalftoneConfig{
		FadeStart:  0.3,
		FadeEnd:    0.4,
		RingAt:     0.5,
		HybridAt:   0.7,
		BaseRadius: 0.35,
		BassRadius: 0.2,
		BaseGrid:   48,
		AvgGrid:    24,
		Rate:       5,
		Static:     halftone.Defaults(),
	}
}

// Mode returns the halftone mode for scroll: dot below RingAt, ring up to
// HybridAt, hybrid above.
func (c HalftoneConfig) Mode(scroll float64) halftone.Mode {
	switch {
	case scroll < c.RingAt:
		return halftone.Dot
	case scroll <= c.HybridAt:
		return halftone.Ring
	default:
		return halftone.Hybrid
	}
}

// Halftone stages the halftone uniforms by scroll. When disabled it keeps
// writing every uniform with intensity 0, so resolution changes still reach
// the program.
type Halftone struct {
	cfg  HalftoneConfig
	bass smooth.Damper
	avg  smooth.Damper
}

// NewHalftone returns a halftone effect.
func NewHalftone(cfg HalftoneConfig) *Halftone {
	return &Halftone{
		cfg:  cfg,
		bass: smooth.NewDamper(cfg.Rate, 0),
		avg:  smooth.NewDamper(cfg.Rate, 0),
	}
}

func (h *Halftone) Name() string { return halftone.EffectName }

func (h *Halftone) Descriptors() []uniform.Descriptor {
	return halftone.Descriptors()
}

func (h *Halftone) Update(in Inputs, w uniform.Writer) {
	bass := h.bass.Step(in.band(bassOf), in.Delta)
	avg := h.avg.Step(in.band(func(b bands.Bands) float64 { return b.Average }), in.Delta)

	u := h.cfg.Static
	u.Resolution = in.Resolution
	u.Mode = h.cfg.Mode(in.Scroll)
	u.Radius = h.cfg.BaseRadius + bass*h.cfg.BassRadius
	u.GridSize = h.cfg.BaseGrid + avg*h.cfg.AvgGrid
	u.Intensity = 0
	if in.Enabled {
		u.Intensity = interp.Ramp(h.cfg.FadeStart, h.cfg.FadeEnd, in.Scroll)
	}

	u.WriteTo(w)
}
