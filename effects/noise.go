package effects

import (
	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/uniform"
)

// NoiseName is the registry name of the film grain effect.
const NoiseName = "noise"

var noiseOpacity = floatDesc(NoiseName, "opacity")

// NoiseConfig holds the film grain constants.
type NoiseConfig struct {
	BaseOpacity float64
	HighGain    float64
	ScrollGain  float64
	Rate        float64
}

// DefaultNoiseConfig returns the reference constants.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{BaseOpacity: 0.02, HighGain: 0.08, ScrollGain: 0.5, Rate: 6}
}

// Noise writes opacity = (base + high*gain) * (1 + scroll*scrollGain).
type Noise struct {
	cfg  NoiseConfig
	high smooth.Damper
}

// NewNoise returns a film grain effect.
func NewNoise(cfg NoiseConfig) *Noise {
	return &Noise{cfg: cfg, high: smooth.NewDamper(cfg.Rate, 0)}
}

func (n *Noise) Name() string { return NoiseName }

func (n *Noise) Descriptors() []uniform.Descriptor {
	return []uniform.Descriptor{noiseOpacity}
}

func (n *Noise) Update(in Inputs, w uniform.Writer) {
	high := n.high.Step(in.band(highOf), in.Delta)
	op := (n.cfg.BaseOpacity + high*n.cfg.HighGain) * (1 + in.Scroll*n.cfg.ScrollGain)
	w.Write(noiseOpacity, uniform.FloatValue(op))
}
