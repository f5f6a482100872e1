package morph

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-glass/dsp/core"
	"github.com/cwbudde/algo-glass/dsp/interp"
	"github.com/cwbudde/algo-glass/geom"
)

var (
	// ErrDuplicateShape is returned when two shapes in the cycle share a name.
	ErrDuplicateShape = errors.New("morph: duplicate shape name")
	// ErrReleased is returned by operations on a released engine.
	ErrReleased = errors.New("morph: engine released")
)

const morphPulseScale = 0.15

// State is the transition state of an [Engine].
type State int

const (
	Idle State = iota
	Morphing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Morphing:
		return "morphing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transition is a snapshot of the shape transition.
type Transition struct {
	Previous int
	Current  int
	Progress float64
	Morphing bool
}

// VertexBuffer is the displayed mesh. Positions and Normals are updated in
// place; the flags stay set until [VertexBuffer.Acknowledge].
type VertexBuffer struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32

	NeedsUpdate       bool
	NeedsNormalUpdate bool
}

// Acknowledge clears both update flags after the buffer has been consumed.
func (b *VertexBuffer) Acknowledge() {
	b.NeedsUpdate = false
	b.NeedsNormalUpdate = false
}

// Engine morphs the shared topology between shape targets.
type Engine struct {
	cfg     Config
	logger  *slog.Logger
	topo    *Topology
	targets []Target

	state Transition
	buf   VertexBuffer
	frame uint64

	released bool
}

// New projects every configured shape onto the topology and returns an
// engine displaying the first shape.
func New(opts ...Option) (*Engine, error) {
	cfg := ApplyOptions(opts...)

	seen := make(map[string]struct{}, len(cfg.Shapes))
	for _, s := range cfg.Shapes {
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateShape, s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	topo := NewTopology(cfg.Detail)
	targets := make([]Target, len(cfg.Shapes))
	for i, s := range cfg.Shapes {
		t, misses := Project(topo, s)
		if misses > 0 {
			cfg.Logger.Debug("morph: projection fell back to sphere",
				"shape", s.Name, "misses", misses, "vertices", topo.Len())
		}
		targets[i] = t
	}

	e := &Engine{
		cfg:     cfg,
		logger:  cfg.Logger,
		topo:    topo,
		targets: targets,
		state:   Transition{Progress: 1},
	}

	e.buf.Positions = core.EnsureLen([]float32(nil), topo.Len()*3)
	core.CopyInto(e.buf.Positions, targets[0].Positions)
	e.buf.Indices = topo.Indices()
	e.buf.Normals = geom.VertexNormals(e.buf.Positions, e.buf.Indices, nil)
	e.buf.NeedsUpdate = true
	e.buf.NeedsNormalUpdate = true

	return e, nil
}

// Trigger starts a transition to the next shape in cyclic order. It returns
// false and changes nothing while a transition is running.
func (e *Engine) Trigger() bool {
	if e.released || e.state.Morphing {
		return false
	}

	e.state.Previous = e.state.Current
	e.state.Current = (e.state.Current + 1) % len(e.targets)
	e.state.Progress = 0
	e.state.Morphing = true

	return true
}

// Advance steps the transition by dt seconds and rewrites the displayed
// positions. While idle the current target is perturbed by a radial wave
// driven by bass at time elapsed.
func (e *Engine) Advance(dt, elapsed, bass float64) {
	if e.released {
		return
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}

	morphing := e.state.Morphing
	completed := false

	if morphing {
		e.state.Progress += dt * e.cfg.MorphSpeed
		if e.state.Progress >= 1 {
			e.state.Progress = 1
			e.state.Morphing = false
			completed = true
		}

		from := e.targets[e.state.Previous].Positions
		to := e.targets[e.state.Current].Positions
		interp.LerpInto(e.buf.Positions, from, to, interp.EaseInOutCubic(e.state.Progress))
	} else {
		e.wave(elapsed, bass)
	}
	e.buf.NeedsUpdate = true

	e.frame++
	cadence := e.cfg.IdleCadence
	if morphing {
		cadence = e.cfg.MorphingCadence
	}
	if completed || e.frame%uint64(cadence) == 0 {
		e.buf.Normals = geom.VertexNormals(e.buf.Positions, e.buf.Indices, e.buf.Normals)
		e.buf.NeedsNormalUpdate = true
	}
}

func (e *Engine) wave(elapsed, bass float64) {
	target := e.targets[e.state.Current].Positions
	if !(bass > e.cfg.NoiseFloor) {
		core.CopyInto(e.buf.Positions, target)
		return
	}

	amp := bass * e.cfg.WaveAmplitude
	for i := 0; i+2 < len(target); i += 3 {
		x, y, z := float64(target[i]), float64(target[i+1]), float64(target[i+2])
		k := 1 + math.Sin(elapsed*8+x*5+y*3)*amp
		e.buf.Positions[i] = float32(x * k)
		e.buf.Positions[i+1] = float32(y * k)
		e.buf.Positions[i+2] = float32(z * k)
	}
}

// State reports Idle or Morphing.
func (e *Engine) State() State {
	if e.state.Morphing {
		return Morphing
	}
	return Idle
}

// Transition returns the current transition snapshot.
func (e *Engine) Transition() Transition {
	return e.state
}

// Displayed returns the live displayed positions. The slice is rewritten by
// the next Advance.
func (e *Engine) Displayed() []float32 {
	return e.buf.Positions
}

// Buffer returns the engine-owned vertex buffer.
func (e *Engine) Buffer() *VertexBuffer {
	return &e.buf
}

// Pulse returns the scale pulse sin(progress*pi)*0.15 while morphing, else 0.
func (e *Engine) Pulse() float64 {
	if !e.state.Morphing {
		return 0
	}
	return math.Sin(e.state.Progress*math.Pi) * morphPulseScale
}

// Targets returns the projected targets in cycle order. Callers must not
// modify the positions.
func (e *Engine) Targets() []Target {
	return e.targets
}

// Topology returns the shared topology.
func (e *Engine) Topology() *Topology {
	return e.topo
}

// ShapeName returns the name of the current shape.
func (e *Engine) ShapeName() string {
	if e.released {
		return ""
	}
	return e.targets[e.state.Current].Name
}

// Release drops the targets and vertex buffers. Later calls to Trigger and
// Advance do nothing. A second Release returns ErrReleased.
func (e *Engine) Release() error {
	if e.released {
		return ErrReleased
	}
	e.released = true
	e.targets = nil
	e.topo = nil
	e.buf = VertexBuffer{}
	e.logger.Debug("morph: released")
	return nil
}

// Released reports whether Release has been called.
func (e *Engine) Released() bool {
	return e.released
}
