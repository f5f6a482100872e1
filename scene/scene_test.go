package scene

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-glass/config"
	"github.com/cwbudde/algo-glass/effects"
	"github.com/cwbudde/algo-glass/material"
	"github.com/cwbudde/algo-glass/morph"
	"github.com/cwbudde/algo-glass/shader/halftone"
	"github.com/cwbudde/algo-glass/uniform"
)

const dt = 1.0 / 60

type fakeGraph struct {
	level  uint8
	closed int
}

func (g *fakeGraph) ByteFrequencyData(dst []uint8) bool {
	if g.closed > 0 {
		return false
	}
	for i := range dst {
		dst[i] = g.level
	}
	return true
}

func (g *fakeGraph) Close() error {
	g.closed++
	return nil
}

func newScene(t *testing.T, cfg *config.Scene, opts ...Option) *Scene {
	t.Helper()

	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func tickN(s *Scene, n int) {
	for range n {
		s.Tick(dt)
	}
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	s := newScene(t, nil)
	snap := s.Tick(dt)
	if snap.Frame != 1 || snap.Audio.Active {
		t.Fatalf("first snapshot = %+v", snap)
	}

	out := s.Frame()
	want := []string{effects.BloomName, effects.ChromaticName, effects.NoiseName, effects.VignetteName, halftone.EffectName}
	if !reflect.DeepEqual(out.Effects, want) {
		t.Fatalf("effects = %v, want %v", out.Effects, want)
	}
	if got := s.Pipeline().Uniforms().Float(halftone.EffectName, halftone.UniformIntensity); got != 0 {
		t.Fatalf("disabled halftone intensity = %v", got)
	}
	if out.Section != "intro" || out.Morph.Shape != "icosahedron" || out.Morph.State != "idle" {
		t.Fatalf("output = %+v", out)
	}
	if !s.Background().Uniforms().HasEffect(material.BackgroundEffect) {
		t.Fatal("background uniforms not written")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Tier = 7
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalidTier) {
		t.Fatalf("New() error = %v", err)
	}
}

func TestTierZeroOmitsExpensiveEffects(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Tier = 0
	cfg.Effects.Halftone = true
	s := newScene(t, cfg)
	tickN(s, 10)

	u := s.Pipeline().Uniforms()
	for _, name := range []string{effects.ChromaticName, effects.NoiseName, halftone.EffectName} {
		if u.HasEffect(name) {
			t.Fatalf("%s written at tier 0", name)
		}
	}
	if err := s.SetHalftone(true); !errors.Is(err, effects.ErrNotActive) {
		t.Fatalf("SetHalftone() = %v", err)
	}
	if got := s.Background().Uniforms().Float(material.BackgroundEffect, "uDetail"); got != 3.2 {
		t.Fatalf("uDetail = %v", got)
	}
}

func TestAudioPlayAndDecay(t *testing.T) {
	t.Parallel()

	g := &fakeGraph{level: 255}
	s := newScene(t, nil, WithAudioGraph(g))

	// Not playing: the source is ignored.
	if snap := s.Tick(dt); snap.Audio.Active || snap.Audio.Bands.Bass != 0 {
		t.Fatalf("paused snapshot = %+v", snap.Audio)
	}

	s.SetPlaying(true)
	snap := s.Tick(dt)
	if !snap.Audio.Active || snap.Audio.Bands.Bass != 1 || snap.Audio.Bands.Average != 1 {
		t.Fatalf("playing snapshot = %+v", snap.Audio)
	}

	s.SetPlaying(false)
	snap = s.Tick(dt)
	if snap.Audio.Active || math.Abs(snap.Audio.Bands.Bass-0.95) > 1e-9 {
		t.Fatalf("decayed bass = %v, want 0.95", snap.Audio.Bands.Bass)
	}

	// Half the frame rate decays twice as much per frame.
	snap = s.Tick(2 * dt)
	if math.Abs(snap.Audio.Bands.Bass-0.95*0.95*0.95) > 1e-9 {
		t.Fatalf("decayed bass = %v", snap.Audio.Bands.Bass)
	}
}

func TestFullScaleSourceFillsEveryBand(t *testing.T) {
	t.Parallel()

	for _, size := range []int{128, 256, 1024} {
		cfg := config.Default()
		cfg.Analyser.FFTSize = size
		s := newScene(t, cfg, WithAudioGraph(&fakeGraph{level: 255}))
		s.SetPlaying(true)

		b := s.Tick(dt).Audio.Bands
		if b.Bass != 1 || b.LowMid != 1 || b.Mid != 1 || b.High != 1 || b.Average != 1 {
			t.Fatalf("fft size %d: bands = %+v, want all 1", size, b)
		}
	}

	cfg := config.Default()
	cfg.Analyser.FFTSize = 32
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("New() with fft size 32 = %v, want ErrInvalid", err)
	}
}

func TestTriggerCycle(t *testing.T) {
	t.Parallel()

	s := newScene(t, nil)
	tickN(s, 1)

	for i := 1; i <= 3; i++ {
		if !s.Trigger() {
			t.Fatalf("trigger %d rejected", i)
		}
		if s.Trigger() {
			t.Fatal("re-trigger accepted while morphing")
		}
		s.Tick(dt)
		if out := s.Frame(); out.Morph.State != "morphing" || out.Morph.Pulse <= 0 {
			t.Fatalf("mid-transition output = %+v", out.Morph)
		}
		tickN(s, 60)
		if s.Engine().State() != morph.Idle {
			t.Fatalf("transition %d did not finish", i)
		}
	}

	if tr := s.Engine().Transition(); tr.Current != 0 || tr.Previous != 2 {
		t.Fatalf("after three triggers: %+v", tr)
	}
}

func TestScrollDrivesCameraAndLabels(t *testing.T) {
	t.Parallel()

	s := newScene(t, nil)
	if !s.SetScroll(1.5) {
		t.Fatal("SetScroll rejected")
	}
	tickN(s, 600)

	out := s.Frame()
	if out.Scroll != 1 || out.Section != "transcend" || out.SectionProgress != 0 {
		t.Fatalf("scroll output = %+v", out)
	}
	if math.Abs(out.Camera[2]-6) > 1e-9 || math.Abs(out.Camera[1]+1) > 1e-9 {
		t.Fatalf("camera = %v", out.Camera)
	}
	if out.Background != "#0a1530" || out.Fog != "#0a1530" {
		t.Fatalf("colours = %s %s", out.Background, out.Fog)
	}
	// Offset 1 lies outside every half-open section interval.
	for i, l := range out.Labels {
		if l > 1e-9 {
			t.Fatalf("label %d opacity = %v", i, l)
		}
	}
	if out.Title.Opacity != 0 || out.Title.Scale != 0.5 {
		t.Fatalf("title = %+v", out.Title)
	}
	if out.Glass.Samples != 4 {
		t.Fatalf("glass samples = %d", out.Glass.Samples)
	}

	s.SetScroll(0.3)
	tickN(s, 600)
	if l := s.Frame().Labels[1]; math.Abs(l-1) > 1e-9 {
		t.Fatalf("explore label = %v", l)
	}
}

func TestExternalScrollSource(t *testing.T) {
	t.Parallel()

	s := newScene(t, nil, WithScrollSource(ScrollFunc(func() float64 { return math.NaN() })))
	if s.SetScroll(0.5) {
		t.Fatal("SetScroll accepted with an external source")
	}
	if snap := s.Tick(dt); snap.Scroll.Offset != 0 {
		t.Fatalf("NaN scroll = %v", snap.Scroll.Offset)
	}
}

func TestHalftoneToggleAndResize(t *testing.T) {
	t.Parallel()

	var writes []uniform.Descriptor
	s := newScene(t, nil, WithResolution(800, 600))
	err := s.Bind(halftone.EffectName, uniform.BindingFunc(func(d uniform.Descriptor, _ uniform.Value) {
		writes = append(writes, d)
	}))
	if err != nil {
		t.Fatal(err)
	}

	s.SetScroll(0.9)
	tickN(s, 1)
	if len(writes) == 0 {
		t.Fatal("disabled halftone wrote nothing")
	}

	s.SetResolution(1920, 1080)
	tickN(s, 1)
	res, _ := s.Pipeline().Uniforms().Get(halftone.EffectName, halftone.UniformResolution)
	if res.X != 1920 || res.Y != 1080 {
		t.Fatalf("resolution = %+v", res)
	}
	bg, _ := s.Background().Uniforms().Get(material.BackgroundEffect, "uResolution")
	if bg.X != 1920 {
		t.Fatalf("background resolution = %+v", bg)
	}

	if err := s.SetHalftone(true); err != nil {
		t.Fatal(err)
	}
	tickN(s, 1)
	if got := s.Pipeline().Uniforms().Float(halftone.EffectName, halftone.UniformIntensity); got != 1 {
		t.Fatalf("enabled intensity at scroll 0.9 = %v", got)
	}
}

func TestBindBackground(t *testing.T) {
	t.Parallel()

	var n int
	s := newScene(t, nil)
	if err := s.Bind(material.BackgroundEffect, uniform.BindingFunc(func(uniform.Descriptor, uniform.Value) { n++ })); err != nil {
		t.Fatal(err)
	}
	tickN(s, 1)
	if n != len(s.Background().Descriptors()) {
		t.Fatalf("background writes = %d", n)
	}
	if err := s.Bind("missing", nil); !errors.Is(err, effects.ErrNotActive) {
		t.Fatalf("Bind(missing) = %v", err)
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	g := &fakeGraph{level: 128}
	s, err := New(nil, WithAudioGraph(g))
	if err != nil {
		t.Fatal(err)
	}
	s.SetPlaying(true)
	last := s.Tick(dt)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
	if g.closed != 1 {
		t.Fatalf("graph closed %d times", g.closed)
	}
	if !s.Closed() || !s.Engine().Released() {
		t.Fatal("scene resources not released")
	}
	if s.Trigger() {
		t.Fatal("Trigger accepted after Close")
	}
	if got := s.Tick(dt); got != last {
		t.Fatalf("Tick after Close = %+v, want %+v", got, last)
	}
	if err := s.SetHalftone(true); !errors.Is(err, ErrClosed) {
		t.Fatalf("SetHalftone after Close = %v", err)
	}
}

func TestFrameJSON(t *testing.T) {
	t.Parallel()

	s := newScene(t, nil)
	tickN(s, 3)

	data, err := json.Marshal(s.Frame())
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"frame", "audio", "camera", "morph", "glass", "uniforms", "effects"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %q in %s", key, data)
		}
	}
	if decoded["frame"].(float64) != 3 {
		t.Fatalf("frame = %v", decoded["frame"])
	}
}
