package core

import (
	"math"
	"testing"
)

func TestApplyFrameOptions(t *testing.T) {
	cfg := ApplyFrameOptions(WithReferenceRate(120), WithMaxDelta(0.05))
	if cfg.ReferenceRate != 120 {
		t.Fatalf("reference rate = %v, want 120", cfg.ReferenceRate)
	}
	if cfg.MaxDelta != 0.05 {
		t.Fatalf("max delta = %v, want 0.05", cfg.MaxDelta)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyFrameOptions(WithReferenceRate(0), WithMaxDelta(-1), nil)
	def := DefaultFrameConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestClampDelta(t *testing.T) {
	cfg := DefaultFrameConfig()

	tests := []struct {
		name string
		dt   float64
		want float64
	}{
		{name: "normal", dt: 1.0 / 60, want: 1.0 / 60},
		{name: "stall", dt: 2.5, want: 0.1},
		{name: "negative", dt: -0.01, want: 0},
		{name: "nan", dt: math.NaN(), want: 0},
		{name: "inf", dt: math.Inf(1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ClampDelta(tt.dt); got != tt.want {
				t.Fatalf("ClampDelta(%v) = %v, want %v", tt.dt, got, tt.want)
			}
		})
	}
}
