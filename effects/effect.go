package effects

import (
	"errors"

	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/uniform"
)

// MaxTier is the highest GPU capability class.
const MaxTier = 3

var (
	// ErrDuplicateEffect is returned when an effect name is registered twice.
	ErrDuplicateEffect = errors.New("effects: duplicate effect")
	// ErrInvalidTier is returned for a tier outside 0..MaxTier.
	ErrInvalidTier = errors.New("effects: invalid GPU tier")
	// ErrNotActive is returned for an effect the pipeline did not instantiate.
	ErrNotActive = errors.New("effects: effect not active")
	// ErrNotToggle is returned when enabling an effect that has no toggle.
	ErrNotToggle = errors.New("effects: effect has no toggle")
)

// Inputs is the per-frame state an effect reads.
type Inputs struct {
	// Delta is the frame time in seconds.
	Delta float64
	// Audio holds the frame's band energies. Effects smooth them with their
	// own rates.
	Audio bands.Bands
	// Active reports whether audio is playing. Inactive audio drives every
	// smoothed band toward zero.
	Active bool
	// Scroll is the page progress in [0, 1].
	Scroll float64

	// Tier, Resolution and Enabled are filled in by the pipeline.
	Tier       int
	Resolution [2]float64
	Enabled    bool
}

func (in Inputs) band(pick func(bands.Bands) float64) float64 {
	if !in.Active {
		return 0
	}
	return pick(in.Audio)
}

// Effect computes the uniforms of one post-processing effect.
type Effect interface {
	Name() string
	Descriptors() []uniform.Descriptor
	Update(in Inputs, w uniform.Writer)
}

func floatDesc(effect, name string) uniform.Descriptor {
	return uniform.Descriptor{Effect: effect, Name: name, Kind: uniform.Float}
}

func bassOf(b bands.Bands) float64 { return b.Bass }

func highOf(b bands.Bands) float64 { return b.High }
