package effects

import (
	"math"

	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/dsp/core"
	"github.com/cwbudde/algo-glass/uniform"
)

// BloomName is the registry name of the bloom effect.
const BloomName = "bloom"

var (
	bloomIntensity = floatDesc(BloomName, "intensity")
	bloomThreshold = floatDesc(BloomName, "luminanceThreshold")
)

// BloomConfig holds the bloom mapping constants.
type BloomConfig struct {
	BaseIntensity float64
	BassGain      float64

	// The crescendo ramps quadratically from CrescendoStart to scroll 1 and
	// peaks at CrescendoScale.
	CrescendoStart float64
	CrescendoScale float64

	BaseThreshold  float64
	CrescendoDrop  float64
	AverageDrop    float64
	ThresholdFloor float64
}

// DefaultBloomConfig returns the reference bloom constants.
func DefaultBloomConfig() BloomConfig {
	return BloomConfig{
		BaseIntensity:  0.8,
		BassGain:       1.0,
		CrescendoStart: 0.65,
		CrescendoScale: 1.2,
		BaseThreshold:  0.85,
		CrescendoDrop:  0.25,
		AverageDrop:    0.3,
		ThresholdFloor: 0.3,
	}
}

// Crescendo returns clamp((scroll-start)/(1-start), 0, 1)^2 * scale.
func (c BloomConfig) Crescendo(scroll float64) float64 {
	span := 1 - c.CrescendoStart
	if span <= 0 {
		return 0
	}
	t := core.Clamp01((scroll - c.CrescendoStart) / span)
	return t * t * c.CrescendoScale
}

// Bloom drives bloom intensity and luminance threshold. Bass and average are
// read unsmoothed so bloom reacts to hits immediately.
type Bloom struct {
	cfg BloomConfig
}

// NewBloom returns a bloom effect.
func NewBloom(cfg BloomConfig) *Bloom {
	return &Bloom{cfg: cfg}
}

func (b *Bloom) Name() string { return BloomName }

func (b *Bloom) Descriptors() []uniform.Descriptor {
	return []uniform.Descriptor{bloomIntensity, bloomThreshold}
}

// Update writes intensity = base + crescendo + bass*gain and the threshold
// base - crescendo*k - average*j, floored.
func (b *Bloom) Update(in Inputs, w uniform.Writer) {
	crescendo := b.cfg.Crescendo(in.Scroll)
	bass := in.band(func(x bands.Bands) float64 { return x.Bass })
	avg := in.band(func(x bands.Bands) float64 { return x.Average })

	intensity := b.cfg.BaseIntensity + crescendo + bass*b.cfg.BassGain
	threshold := b.cfg.BaseThreshold - crescendo*b.cfg.CrescendoDrop - avg*b.cfg.AverageDrop

	w.Write(bloomIntensity, uniform.FloatValue(intensity))
	w.Write(bloomThreshold, uniform.FloatValue(math.Max(threshold, b.cfg.ThresholdFloor)))
}
