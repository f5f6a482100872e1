package smooth

import "github.com/cwbudde/algo-glass/audio/bands"

// Damper is a single-channel exponential smoother.
type Damper struct {
	Rate  float64
	Value float64
}

// NewDamper returns a damper with the given rate (per second) and starting value.
func NewDamper(rate, initial float64) Damper {
	return Damper{Rate: rate, Value: initial}
}

// Step moves Value toward target by min(dt*Rate, 1) of the remaining distance
// and returns the new value. The step never overshoots.
func (d *Damper) Step(target, dt float64) float64 {
	d.Value += (target - d.Value) * Factor(d.Rate, dt)
	return d.Value
}

// Reset sets Value without smoothing.
func (d *Damper) Reset(v float64) {
	d.Value = v
}

// Factor returns the blend factor min(dt*rate, 1), or 0 for non-positive input.
func Factor(rate, dt float64) float64 {
	k := rate * dt
	if !(k > 0) {
		return 0
	}
	if k > 1 {
		return 1
	}
	return k
}

// BandDamper smooths every field of [bands.Bands] at one shared rate.
type BandDamper struct {
	Rate  float64
	Value bands.Bands
}

// NewBandDamper returns a band damper starting from silence.
func NewBandDamper(rate float64) BandDamper {
	return BandDamper{Rate: rate}
}

// Step moves every band toward target and returns the smoothed bands.
func (d *BandDamper) Step(target bands.Bands, dt float64) bands.Bands {
	k := Factor(d.Rate, dt)
	d.Value.Bass += (target.Bass - d.Value.Bass) * k
	d.Value.LowMid += (target.LowMid - d.Value.LowMid) * k
	d.Value.Mid += (target.Mid - d.Value.Mid) * k
	d.Value.High += (target.High - d.Value.High) * k
	d.Value.Average += (target.Average - d.Value.Average) * k
	return d.Value
}
