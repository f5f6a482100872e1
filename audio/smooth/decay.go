package smooth

import (
	"math"

	"github.com/cwbudde/algo-glass/audio/bands"
)

// DefaultDecayBase is the per-reference-frame retention applied to bands
// while audio is inactive.
const DefaultDecayBase = 0.95

// Decay shrinks values geometrically toward zero. The retention base applies
// once per reference frame, so a 30 fps and a 144 fps loop fade at the same
// wall-clock speed.
type Decay struct {
	Base          float64
	ReferenceRate float64
}

// DefaultDecay returns 0.95 retention per 1/60 s.
func DefaultDecay() Decay {
	return Decay{Base: DefaultDecayBase, ReferenceRate: 60}
}

// Retention returns the multiplier applied for a step of dt seconds.
func (d Decay) Retention(dt float64) float64 {
	if !(dt > 0) {
		return 1
	}
	if d.Base <= 0 {
		return 0
	}
	if d.Base >= 1 {
		return 1
	}
	rate := d.ReferenceRate
	if rate <= 0 {
		rate = 60
	}
	return math.Pow(d.Base, dt*rate)
}

// Apply returns v scaled by the retention for dt.
func (d Decay) Apply(v, dt float64) float64 {
	return v * d.Retention(dt)
}

// ApplyBands returns b with every field decayed for dt.
func (d Decay) ApplyBands(b bands.Bands, dt float64) bands.Bands {
	return b.Scale(d.Retention(dt))
}
