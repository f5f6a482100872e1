package window

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-glass/internal/testutil"
)

func TestBlackmanSymmetricEndpoints(t *testing.T) {
	w, err := Blackman(65)
	if err != nil {
		t.Fatalf("Blackman error: %v", err)
	}

	if math.Abs(w[0]) > 1e-12 || math.Abs(w[64]) > 1e-12 {
		t.Fatalf("endpoints = %v, %v, want 0", w[0], w[64])
	}

	if math.Abs(w[32]-1) > 1e-12 {
		t.Fatalf("center = %v, want 1", w[32])
	}

	for i := range w {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
			t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[len(w)-1-i])
		}
	}
}

func TestBlackmanPeriodicMatchesAnalyserForm(t *testing.T) {
	const n = 256

	w, err := Blackman(n, WithPeriodic())
	if err != nil {
		t.Fatalf("Blackman error: %v", err)
	}

	want := make([]float64, n)
	for i := range want {
		x := 2 * math.Pi * float64(i) / n
		want[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}

	testutil.RequireSliceNearlyEqual(t, w, want, 1e-12)
}

func TestHannPeakAndZero(t *testing.T) {
	w, err := Hann(9)
	if err != nil {
		t.Fatalf("Hann error: %v", err)
	}

	if w[0] != 0 || math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("unexpected Hann shape: %v", w)
	}
}

func TestInvalidSize(t *testing.T) {
	if _, err := Blackman(0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := Hann(-3); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestApply(t *testing.T) {
	samples := []float64{1, 2, 3}
	if err := Apply(samples, []float64{0.5, 0.5, 2}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, samples, []float64{0.5, 1, 6}, 1e-15)

	if err := Apply(samples, []float64{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestCoherentGain(t *testing.T) {
	w, _ := Hann(1024, WithPeriodic())
	if g := CoherentGain(w); math.Abs(g-0.5) > 1e-9 {
		t.Fatalf("CoherentGain = %v, want 0.5", g)
	}
	if CoherentGain(nil) != 0 {
		t.Fatal("expected 0 for empty window")
	}
}
