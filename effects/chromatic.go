package effects

import (
	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/uniform"
)

// ChromaticName is the registry name of the chromatic aberration effect.
const ChromaticName = "chromatic"

var chromaticOffset = uniform.Descriptor{Effect: ChromaticName, Name: "offset", Kind: uniform.Vec2}

// ChromaticConfig holds the chromatic aberration constants.
type ChromaticConfig struct {
	BaseOffset float64
	BassGain   float64
	ScrollGain float64
	Rate       float64
}

// DefaultChromaticConfig returns the reference constants. Bass is smoothed at
// rate 8.
func DefaultChromaticConfig() ChromaticConfig {
	return ChromaticConfig{BaseOffset: 0.0008, BassGain: 0.004, ScrollGain: 0.5, Rate: 8}
}

// Chromatic writes the colour channel offset
// (base + bass*gain) * (1 + scroll*scrollGain) to both axes.
type Chromatic struct {
	cfg  ChromaticConfig
	bass smooth.Damper
}

// NewChromatic returns a chromatic aberration effect.
func NewChromatic(cfg ChromaticConfig) *Chromatic {
	return &Chromatic{cfg: cfg, bass: smooth.NewDamper(cfg.Rate, 0)}
}

func (c *Chromatic) Name() string { return ChromaticName }

func (c *Chromatic) Descriptors() []uniform.Descriptor {
	return []uniform.Descriptor{chromaticOffset}
}

func (c *Chromatic) Update(in Inputs, w uniform.Writer) {
	bass := c.bass.Step(in.band(bassOf), in.Delta)
	off := (c.cfg.BaseOffset + bass*c.cfg.BassGain) * (1 + in.Scroll*c.cfg.ScrollGain)
	w.Write(chromaticOffset, uniform.Vec2Value(off, off))
}
