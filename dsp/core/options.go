package core

// FrameConfig defines the frame-clock settings shared by every per-frame consumer.
type FrameConfig struct {
	// ReferenceRate is the frame rate at which per-frame constants were tuned.
	ReferenceRate float64
	// MaxDelta caps a single frame step in seconds.
	MaxDelta float64
}

// FrameOption mutates a FrameConfig.
type FrameOption func(*FrameConfig)

// DefaultFrameConfig returns the 60 fps reference clock with a 100 ms step cap.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		ReferenceRate: 60,
		MaxDelta:      0.1,
	}
}

// WithReferenceRate sets the reference frame rate.
func WithReferenceRate(rate float64) FrameOption {
	return func(cfg *FrameConfig) {
		if rate > 0 {
			cfg.ReferenceRate = rate
		}
	}
}

// WithMaxDelta sets the largest accepted frame delta in seconds.
func WithMaxDelta(maxDelta float64) FrameOption {
	return func(cfg *FrameConfig) {
		if maxDelta > 0 {
			cfg.MaxDelta = maxDelta
		}
	}
}

// ApplyFrameOptions applies zero or more options to the default config.
func ApplyFrameOptions(opts ...FrameOption) FrameConfig {
	cfg := DefaultFrameConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ClampDelta maps dt into [0, MaxDelta]. Non-finite deltas become 0.
func (c FrameConfig) ClampDelta(dt float64) float64 {
	if !Finite(dt) || dt <= 0 {
		return 0
	}
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		return c.MaxDelta
	}
	return dt
}
