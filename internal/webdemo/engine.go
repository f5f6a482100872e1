// Package webdemo holds the host-independent half of the browser bridge: a
// scene fed either from raw samples or from magnitudes computed by the page.
package webdemo

import (
	"errors"
	"sync"

	"github.com/cwbudde/algo-glass/audio/analyser"
	"github.com/cwbudde/algo-glass/config"
	"github.com/cwbudde/algo-glass/scene"
	"github.com/cwbudde/algo-glass/uniform"
)

// ErrDisposed is returned after Dispose.
var ErrDisposed = errors.New("webdemo: engine disposed")

type feed int

const (
	feedNone feed = iota
	feedSamples
	feedMagnitudes
)

// Engine bridges page events to a scene. The page either pushes PCM samples,
// which run through the Go analyser, or pushes an analyser snapshot it
// computed itself. The most recent push decides which one is read.
type Engine struct {
	scene    *scene.Scene
	analyser *analyser.Analyser

	mu   sync.Mutex
	feed feed
	mags []uint8

	positions []float32
	normals   []float32
	disposed  bool
}

// NewEngine builds a scene for samples at sampleRate. A nil cfg uses the
// defaults.
func NewEngine(sampleRate float64, cfg *config.Scene, opts ...scene.Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	a, err := analyser.New(sampleRate, cfg.AnalyserOptions()...)
	if err != nil {
		return nil, err
	}

	e := &Engine{analyser: a}
	opts = append(opts, scene.WithAudioGraph(e))
	if e.scene, err = scene.New(cfg, opts...); err != nil {
		_ = a.Close()
		return nil, err
	}

	return e, nil
}

// ByteFrequencyData reads the active feed. It implements [bands.Source].
func (e *Engine) ByteFrequencyData(dst []uint8) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.feed {
	case feedSamples:
		return e.analyser.ByteFrequencyData(dst)
	case feedMagnitudes:
		n := copy(dst, e.mags)
		clear(dst[n:])
		return true
	default:
		return false
	}
}

// Close releases the analyser. The scene calls it on Dispose.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.feed = feedNone
	e.mu.Unlock()
	return e.analyser.Close()
}

// PushSamples appends mono PCM to the analyser and selects the sample feed.
func (e *Engine) PushSamples(samples []float64) error {
	if err := e.analyser.Write(samples); err != nil {
		return err
	}
	e.mu.Lock()
	e.feed = feedSamples
	e.mu.Unlock()
	return nil
}

// PushMagnitudes stores a byte magnitude snapshot and selects the magnitude
// feed.
func (e *Engine) PushMagnitudes(mags []uint8) {
	e.mu.Lock()
	e.mags = append(e.mags[:0], mags...)
	e.feed = feedMagnitudes
	e.mu.Unlock()
}

// Tick advances one frame and returns its output.
func (e *Engine) Tick(dt float64) scene.Output {
	e.scene.Tick(dt)
	return e.scene.Frame()
}

// Trigger starts the next shape transition.
func (e *Engine) Trigger() bool      { return e.scene.Trigger() }
func (e *Engine) SetPlaying(on bool) { e.scene.SetPlaying(on) }
func (e *Engine) SetHover(on bool)   { e.scene.SetHover(on) }

// SetScroll sets the page progress.
func (e *Engine) SetScroll(offset float64) { e.scene.SetScroll(offset) }

// Resize updates resolution-dependent uniforms.
func (e *Engine) Resize(width, height float64) { e.scene.SetResolution(width, height) }

// SetHalftone toggles the halftone pass.
func (e *Engine) SetHalftone(on bool) error { return e.scene.SetHalftone(on) }

// Positions returns the displayed vertex positions and normals when the
// buffer changed since the last call, and ok=false otherwise. The slices are
// reused by later calls.
func (e *Engine) Positions() (positions, normals []float32, ok bool) {
	if e.disposed {
		return nil, nil, false
	}

	buf := e.scene.Engine().Buffer()
	if !buf.NeedsUpdate && !buf.NeedsNormalUpdate {
		return e.positions, e.normals, false
	}

	e.positions = append(e.positions[:0], buf.Positions...)
	if buf.NeedsNormalUpdate {
		e.normals = append(e.normals[:0], buf.Normals...)
	}
	buf.Acknowledge()

	return e.positions, e.normals, true
}

// Indices returns the shared triangle indices.
func (e *Engine) Indices() []uint32 {
	return e.scene.Engine().Buffer().Indices
}

// Uniforms returns every effect and background uniform of the last frame.
func (e *Engine) Uniforms() []uniform.Entry {
	return e.scene.Frame().Uniforms
}

// Dispose tears down the scene and its analyser.
func (e *Engine) Dispose() error {
	if e.disposed {
		return ErrDisposed
	}
	e.disposed = true
	return e.scene.Close()
}
