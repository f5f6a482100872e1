// Package window generates the analysis windows used before the frequency transform.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultBlackmanAlpha is the alpha of the classic (non-exact) Blackman window,
// which is also what browser analyser nodes apply.
const DefaultBlackmanAlpha = 0.16

var errMismatchedLength = errors.New("samples and coefficients must have same length")

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: DefaultBlackmanAlpha}
}

// WithAlpha configures the Blackman alpha parameter.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 && v < 1 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Blackman returns a Blackman window of the given size.
func Blackman(size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)
	a0 := (1 - cfg.alpha) / 2
	a1 := 0.5
	a2 := cfg.alpha / 2

	out := make([]float64, size)
	for i := range out {
		phase := 2 * math.Pi * samplePosition(i, size, cfg.periodic)
		out[i] = a0 - a1*math.Cos(phase) + a2*math.Cos(2*phase)
	}

	return out, nil
}

// Hann returns a Hann window of the given size.
func Hann(size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)

	out := make([]float64, size)
	for i := range out {
		out[i] = 0.5 * (1 - math.Cos(2*math.Pi*samplePosition(i, size, cfg.periodic)))
	}

	return out, nil
}

// Apply multiplies samples in-place by coeffs.
func Apply(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return fmt.Errorf("%w: %d != %d", errMismatchedLength, len(samples), len(coeffs))
	}

	if len(samples) == 0 {
		return nil
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// CoherentGain returns the mean coefficient value.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
