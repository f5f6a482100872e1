package analyser

// Default analyser settings.
const (
	DefaultFFTSize     = 256
	DefaultSmoothing   = 0.75
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0

	minFFTSize = 32
	maxFFTSize = 32768
)

// Config holds analyser parameters.
type Config struct {
	FFTSize     int
	Smoothing   float64
	MinDecibels float64
	MaxDecibels float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the 256-point, 0.75-smoothing configuration.
func DefaultConfig() Config {
	return Config{
		FFTSize:     DefaultFFTSize,
		Smoothing:   DefaultSmoothing,
		MinDecibels: DefaultMinDecibels,
		MaxDecibels: DefaultMaxDecibels,
	}
}

// WithFFTSize sets the transform length. Sizes that are not a power of two
// in [32, 32768] are ignored.
func WithFFTSize(n int) Option {
	return func(cfg *Config) {
		if n >= minFFTSize && n <= maxFFTSize && n&(n-1) == 0 {
			cfg.FFTSize = n
		}
	}
}

// WithSmoothing sets the per-bin time smoothing constant in [0, 1).
func WithSmoothing(tau float64) Option {
	return func(cfg *Config) {
		if tau >= 0 && tau < 1 {
			cfg.Smoothing = tau
		}
	}
}

// WithDecibelRange sets the range mapped onto [0, 255]. min must be below max.
func WithDecibelRange(minDB, maxDB float64) Option {
	return func(cfg *Config) {
		if minDB < maxDB {
			cfg.MinDecibels = minDB
			cfg.MaxDecibels = maxDB
		}
	}
}

func applyOptions(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
