package smooth

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-glass/audio/bands"
)

func TestDamperConvergesMonotonically(t *testing.T) {
	const (
		dt     = 1.0 / 60
		target = 0.8
		eps    = 1e-4
	)

	for _, rate := range []float64{4, 6, 8} {
		d := NewDamper(rate, 0)
		prevDist := math.Abs(target - d.Value)

		reached := -1
		for frame := 0; frame < 600; frame++ {
			v := d.Step(target, dt)
			if v > target {
				t.Fatalf("rate %v: overshoot at frame %d: %v", rate, frame, v)
			}
			dist := math.Abs(target - v)
			if dist > prevDist {
				t.Fatalf("rate %v: distance grew at frame %d", rate, frame)
			}
			prevDist = dist
			if dist < eps && reached < 0 {
				reached = frame
			}
		}

		// (1-k)^n < eps/target  =>  n = ceil(log(eps/target)/log(1-k))
		k := rate * dt
		bound := int(math.Ceil(math.Log(eps/target)/math.Log(1-k))) + 1
		if reached < 0 || reached > bound {
			t.Fatalf("rate %v: reached eps at frame %d, bound %d", rate, reached, bound)
		}
	}
}

func TestDamperFactorCapsAtOne(t *testing.T) {
	d := NewDamper(8, 0)
	if got := d.Step(1, 0.5); got != 1 {
		t.Fatalf("large step = %v, want exactly the target", got)
	}
	if got := d.Step(0, 0); got != 1 {
		t.Fatalf("zero dt moved value to %v", got)
	}
	if got := Factor(6, math.NaN()); got != 0 {
		t.Fatalf("Factor(NaN) = %v, want 0", got)
	}
}

func TestBandDamperIndependentRates(t *testing.T) {
	target := bands.Bands{Bass: 1, High: 0.5}

	fast := NewBandDamper(8)
	slow := NewBandDamper(6)

	f := fast.Step(target, 1.0/60)
	s := slow.Step(target, 1.0/60)
	if !(f.Bass > s.Bass) {
		t.Fatalf("rate 8 should settle faster: %v vs %v", f.Bass, s.Bass)
	}
	if math.Abs(f.Bass-8.0/60) > 1e-12 {
		t.Fatalf("fast bass = %v, want %v", f.Bass, 8.0/60)
	}
	if math.Abs(f.High-0.5*8.0/60) > 1e-12 {
		t.Fatalf("fast high = %v", f.High)
	}
}

func TestDecayIsFrameRateIndependent(t *testing.T) {
	d := DefaultDecay()

	at60 := 1.0
	for i := 0; i < 60; i++ {
		at60 = d.Apply(at60, 1.0/60)
	}

	at144 := 1.0
	for i := 0; i < 144; i++ {
		at144 = d.Apply(at144, 1.0/144)
	}

	want := math.Pow(0.95, 60)
	if math.Abs(at60-want) > 1e-9 || math.Abs(at144-want) > 1e-9 {
		t.Fatalf("one second of decay: 60fps=%v 144fps=%v want %v", at60, at144, want)
	}

	if got := d.Retention(1.0 / 60); math.Abs(got-0.95) > 1e-12 {
		t.Fatalf("retention per reference frame = %v, want 0.95", got)
	}
	if d.Retention(0) != 1 {
		t.Fatal("zero dt must not decay")
	}
}

func TestDecayBands(t *testing.T) {
	b := DefaultDecay().ApplyBands(bands.Bands{Bass: 1, Average: 0.5}, 1.0/60)
	if math.Abs(b.Bass-0.95) > 1e-12 || math.Abs(b.Average-0.475) > 1e-12 {
		t.Fatalf("ApplyBands = %+v", b)
	}
}

func TestSpringSettlesWithoutOvershoot(t *testing.T) {
	s := NewSpring(0.25, 8)

	for i := 0; i < 240; i++ {
		v := s.Step(5, 1.0/60)
		if v < 5 {
			t.Fatalf("frame %d overshot: %v", i, v)
		}
	}
	if s.Value != 5 {
		t.Fatalf("spring did not settle: %v", s.Value)
	}
}

func TestSpring3(t *testing.T) {
	s := NewSpring3(0.2, [3]float64{0, 0, 0})
	for i := 0; i < 300; i++ {
		s.Step([3]float64{1, -1, 2}, 1.0/60)
	}
	if s.Value() != [3]float64{1, -1, 2} {
		t.Fatalf("Spring3 = %v", s.Value())
	}
}
