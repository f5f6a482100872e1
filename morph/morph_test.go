package morph

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-glass/geom"
	"github.com/cwbudde/algo-glass/internal/testutil"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func requireExact(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want exactly %v", i, got[i], want[i])
		}
	}
}

func TestProjectDefaultShapesShareTopology(t *testing.T) {
	t.Parallel()

	topo := NewTopology(DefaultDetail)
	if topo.Len() != 162 {
		t.Fatalf("topology vertices = %d, want 162", topo.Len())
	}

	for _, s := range DefaultShapes() {
		t.Run(s.Name, func(t *testing.T) {
			target, misses := Project(topo, s)
			if target.Len() != topo.Len() {
				t.Fatalf("target vertices = %d, want %d", target.Len(), topo.Len())
			}
			if misses > topo.Len()/10 {
				t.Fatalf("too many misses: %d", misses)
			}
			if r := target.MeanRadius(); math.Abs(r-1) > 1e-5 {
				t.Fatalf("mean radius = %v, want 1", r)
			}
		})
	}
}

func TestProjectDiffersPerShape(t *testing.T) {
	t.Parallel()

	topo := NewTopology(2)
	ico, _ := Project(topo, MustShape("icosahedron"))
	oct, _ := Project(topo, MustShape("octahedron"))

	diff := 0.0
	for i := range ico.Positions {
		diff = math.Max(diff, math.Abs(float64(ico.Positions[i]-oct.Positions[i])))
	}
	if diff < 0.05 {
		t.Fatalf("icosahedron and octahedron targets nearly identical (max diff %v)", diff)
	}
}

func TestProjectMissFallsBackToDirection(t *testing.T) {
	t.Parallel()

	topo := NewTopology(2)
	patch := Shape{
		Name: "patch",
		Surface: geom.Mesh{
			Vertices: []geom.Vec3{geom.V(-1, -1, 0.5), geom.V(1, -1, 0.5), geom.V(0, 1, 0.5)},
			Indices:  []uint32{0, 1, 2},
		},
	}

	target, misses := Project(topo, patch)
	if misses == 0 || misses == topo.Len() {
		t.Fatalf("misses = %d, want a partial miss", misses)
	}
	if r := target.MeanRadius(); math.Abs(r-1) > 1e-5 {
		t.Fatalf("mean radius = %v, want 1", r)
	}

	for i := 0; i < topo.Len(); i++ {
		d := topo.Direction(i)
		p := geom.V(float64(target.Positions[3*i]), float64(target.Positions[3*i+1]), float64(target.Positions[3*i+2]))
		if p.Normalize().Dot(d) < 1-1e-6 {
			t.Fatalf("vertex %d left its direction", i)
		}
	}
}

func TestProjectEmptySurfaceIsUnitSphere(t *testing.T) {
	t.Parallel()

	topo := NewTopology(1)
	target, misses := Project(topo, Shape{Name: "none"})
	if misses != topo.Len() {
		t.Fatalf("misses = %d, want %d", misses, topo.Len())
	}

	want := geom.Mesh{Vertices: topo.directions}.Positions()
	testutil.RequireVerticesNearlyEqual(t, target.Positions, want, 1e-6)
}

func TestEngineStartsIdleOnFirstShape(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	if e.State() != Idle {
		t.Fatalf("state = %v, want idle", e.State())
	}

	tr := e.Transition()
	if tr.Current != 0 || tr.Previous != 0 || tr.Progress != 1 || tr.Morphing {
		t.Fatalf("initial transition = %+v", tr)
	}
	requireExact(t, e.Displayed(), e.Targets()[0].Positions)
	if e.ShapeName() != "icosahedron" {
		t.Fatalf("shape = %q", e.ShapeName())
	}

	buf := e.Buffer()
	if !buf.NeedsUpdate || !buf.NeedsNormalUpdate {
		t.Fatal("fresh buffer should request upload")
	}
	if len(buf.Normals) != len(buf.Positions) || len(buf.Indices) == 0 {
		t.Fatal("buffer missing normals or indices")
	}
}

func TestProgressEndpointsMatchTargets(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	targets := e.Targets()

	if !e.Trigger() {
		t.Fatal("trigger from idle rejected")
	}
	e.Advance(0, 0, 0)
	if e.Transition().Progress != 0 {
		t.Fatalf("progress = %v, want 0", e.Transition().Progress)
	}
	requireExact(t, e.Displayed(), targets[0].Positions)

	e.Advance(0.3, 0.3, 0)
	if tr := e.Transition(); !tr.Morphing || tr.Progress <= 0 || tr.Progress >= 1 {
		t.Fatalf("mid transition = %+v", tr)
	}

	e.Advance(1, 1.3, 0)
	if e.State() != Idle || e.Transition().Progress != 1 {
		t.Fatalf("transition = %+v, want completed", e.Transition())
	}
	requireExact(t, e.Displayed(), targets[1].Positions)
}

func TestTriggerWhileMorphingIsIgnored(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	e.Trigger()
	e.Advance(0.1, 0.1, 0)

	before := e.Transition()
	if e.Trigger() {
		t.Fatal("trigger accepted while morphing")
	}
	if after := e.Transition(); after != before {
		t.Fatalf("transition changed: %+v -> %+v", before, after)
	}
}

func TestThreeTriggersReturnToStart(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	for i := 0; i < 3; i++ {
		if !e.Trigger() {
			t.Fatalf("trigger %d rejected", i)
		}
		e.Advance(1, float64(i), 0)
	}

	if got := e.Transition().Current; got != 0 {
		t.Fatalf("current = %d, want 0", got)
	}
	requireExact(t, e.Displayed(), e.Targets()[0].Positions)
}

func TestMorphDuration(t *testing.T) {
	t.Parallel()

	e := newEngine(t, WithMorphSpeed(1.5))
	e.Trigger()

	frames := 0
	for e.State() == Morphing && frames < 100 {
		e.Advance(1.0/60, 0, 0)
		frames++
	}

	if frames < 40 || frames > 41 {
		t.Fatalf("transition took %d frames, want about 40", frames)
	}
}

func TestNormalCadence(t *testing.T) {
	t.Parallel()

	e := newEngine(t, WithNormalCadence(2, 4))
	buf := e.Buffer()
	buf.Acknowledge()

	for frame := 1; frame <= 8; frame++ {
		e.Advance(1.0/60, 0, 0)
		want := frame%4 == 0
		if buf.NeedsNormalUpdate != want {
			t.Fatalf("idle frame %d: NeedsNormalUpdate = %v, want %v", frame, buf.NeedsNormalUpdate, want)
		}
		if !buf.NeedsUpdate {
			t.Fatalf("idle frame %d: positions not flagged", frame)
		}
		buf.Acknowledge()
	}

	e.Trigger()
	for frame := 9; frame <= 12; frame++ {
		e.Advance(1.0/60, 0, 0)
		want := frame%2 == 0
		if buf.NeedsNormalUpdate != want {
			t.Fatalf("morph frame %d: NeedsNormalUpdate = %v, want %v", frame, buf.NeedsNormalUpdate, want)
		}
		buf.Acknowledge()
	}
}

func TestNormalsRecomputedOnCompletion(t *testing.T) {
	t.Parallel()

	e := newEngine(t, WithNormalCadence(1000, 1000))
	buf := e.Buffer()
	buf.Acknowledge()

	e.Trigger()
	e.Advance(0.2, 0, 0)
	if buf.NeedsNormalUpdate {
		t.Fatal("normals recomputed off cadence")
	}

	e.Advance(1, 0, 0)
	if !buf.NeedsNormalUpdate {
		t.Fatal("normals not recomputed on completion frame")
	}
}

func TestIdleBassWave(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	target := e.Targets()[0].Positions

	e.Advance(1.0/60, 1.7, 0.005)
	requireExact(t, e.Displayed(), target)

	const bass = 0.5
	e.Advance(1.0/60, 1.7, bass)
	got := e.Displayed()

	changed := false
	for i := 0; i < len(target); i += 3 {
		want := geom.V(float64(target[i]), float64(target[i+1]), float64(target[i+2]))
		have := geom.V(float64(got[i]), float64(got[i+1]), float64(got[i+2]))
		k := have.Len() / want.Len()
		if math.Abs(k-1) > bass*0.08+1e-6 {
			t.Fatalf("vertex %d scaled by %v, beyond wave amplitude", i/3, k)
		}
		if have != want {
			changed = true
		}
	}
	if !changed {
		t.Fatal("bass wave did not perturb the shape")
	}

	e.Advance(1.0/60, 1.7, 0)
	requireExact(t, e.Displayed(), target)
}

func TestPulse(t *testing.T) {
	t.Parallel()

	e := newEngine(t, WithMorphSpeed(1))
	if e.Pulse() != 0 {
		t.Fatal("pulse while idle")
	}

	e.Trigger()
	e.Advance(0.5, 0, 0)
	if p := e.Pulse(); math.Abs(p-0.15) > 1e-12 {
		t.Fatalf("pulse at half progress = %v, want 0.15", p)
	}
}

func TestRelease(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	if err := e.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := e.Release(); !errors.Is(err, ErrReleased) {
		t.Fatalf("second Release = %v, want ErrReleased", err)
	}
	if e.Trigger() {
		t.Fatal("trigger accepted after release")
	}

	e.Advance(1, 1, 1)
	if e.Buffer().Positions != nil || e.Targets() != nil || !e.Released() {
		t.Fatal("release kept geometry")
	}
}

func TestNewRejectsDuplicateShapes(t *testing.T) {
	t.Parallel()

	_, err := New(WithShapes(MustShape("cube"), MustShape("cube")))
	if !errors.Is(err, ErrDuplicateShape) {
		t.Fatalf("err = %v, want ErrDuplicateShape", err)
	}
}

func TestShapeByName(t *testing.T) {
	t.Parallel()

	if _, err := ShapeByName("torus"); !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("err = %v, want ErrUnknownShape", err)
	}
	for _, name := range ShapeNames() {
		s, err := ShapeByName(name)
		if err != nil || s.Surface.NumTriangles() == 0 {
			t.Fatalf("shape %q: %v", name, err)
		}
	}
}

func TestOptionsSanitize(t *testing.T) {
	t.Parallel()

	cfg := ApplyOptions(
		WithDetail(-1),
		WithDetail(99),
		WithMorphSpeed(0),
		WithMorphSpeed(math.Inf(1)),
		WithNormalCadence(0, -3),
		WithNoiseFloor(-1),
		WithWaveAmplitude(math.NaN()),
		WithShapes(),
		WithLogger(nil),
		nil,
	)
	def := DefaultConfig()

	if cfg.Detail != def.Detail || cfg.MorphSpeed != def.MorphSpeed ||
		cfg.MorphingCadence != def.MorphingCadence || cfg.IdleCadence != def.IdleCadence ||
		cfg.NoiseFloor != def.NoiseFloor || cfg.WaveAmplitude != def.WaveAmplitude ||
		len(cfg.Shapes) != len(def.Shapes) || cfg.Logger == nil {
		t.Fatalf("invalid options were applied: %+v", cfg)
	}
}
