package morph

import (
	"log/slog"
	"math"

	"github.com/cwbudde/algo-glass/internal/log"
)

const (
	defaultMorphSpeed      = 1.5
	defaultMorphingCadence = 2
	defaultIdleCadence     = 4
	defaultNoiseFloor      = 0.01
	defaultWaveAmplitude   = 0.08
	maxDetail              = 8
)

// Config holds engine construction parameters.
type Config struct {
	Detail int
	Shapes []Shape

	// MorphSpeed is the transition progress per second.
	MorphSpeed float64

	// MorphingCadence and IdleCadence recompute normals every Nth frame.
	MorphingCadence int
	IdleCadence     int

	// Bass at or below NoiseFloor leaves the idle shape unperturbed.
	NoiseFloor    float64
	WaveAmplitude float64

	Logger *slog.Logger
}

// Option mutates engine configuration.
type Option func(*Config)

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Detail:          DefaultDetail,
		Shapes:          DefaultShapes(),
		MorphSpeed:      defaultMorphSpeed,
		MorphingCadence: defaultMorphingCadence,
		IdleCadence:     defaultIdleCadence,
		NoiseFloor:      defaultNoiseFloor,
		WaveAmplitude:   defaultWaveAmplitude,
		Logger:          log.Discard(),
	}
}

// WithDetail sets the icosphere subdivision, 0..8.
func WithDetail(detail int) Option {
	return func(cfg *Config) {
		if detail >= 0 && detail <= maxDetail {
			cfg.Detail = detail
		}
	}
}

// WithShapes sets the ordered shape cycle. An empty list is ignored.
func WithShapes(shapes ...Shape) Option {
	return func(cfg *Config) {
		if len(shapes) > 0 {
			cfg.Shapes = append([]Shape(nil), shapes...)
		}
	}
}

// WithMorphSpeed sets the transition progress per second.
func WithMorphSpeed(speed float64) Option {
	return func(cfg *Config) {
		if speed > 0 && !math.IsInf(speed, 0) {
			cfg.MorphSpeed = speed
		}
	}
}

// WithNormalCadence sets how many frames pass between normal recomputes
// while morphing and while idle.
func WithNormalCadence(morphing, idle int) Option {
	return func(cfg *Config) {
		if morphing >= 1 {
			cfg.MorphingCadence = morphing
		}
		if idle >= 1 {
			cfg.IdleCadence = idle
		}
	}
}

// WithNoiseFloor sets the bass level below which the idle wave is off.
func WithNoiseFloor(floor float64) Option {
	return func(cfg *Config) {
		if floor >= 0 {
			cfg.NoiseFloor = floor
		}
	}
}

// WithWaveAmplitude sets the radial scale of the idle bass wave.
func WithWaveAmplitude(amp float64) Option {
	return func(cfg *Config) {
		if amp >= 0 && !math.IsInf(amp, 0) {
			cfg.WaveAmplitude = amp
		}
	}
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies opts over DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
