package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/config"
	"github.com/cwbudde/algo-glass/effects"
	"github.com/cwbudde/algo-glass/frame"
	"github.com/cwbudde/algo-glass/material"
	"github.com/cwbudde/algo-glass/morph"
	"github.com/cwbudde/algo-glass/scroll"
	"github.com/cwbudde/algo-glass/shader/halftone"
	"github.com/cwbudde/algo-glass/uniform"
)

// ErrClosed is returned by operations on a closed scene.
var ErrClosed = errors.New("scene: closed")

// morphBassRate matches the glass shape's per-frame 0.15 blend at 60 fps.
const morphBassRate = 9

// Scene is the composition root of the reactive pipeline.
type Scene struct {
	cfg    config.Scene
	logger *slog.Logger
	opts   options

	sched    *frame.Scheduler
	audio    *audioProducer
	manual   *ManualScroll
	sections *scroll.Interpolator

	engine     *morph.Engine
	morphBass  smooth.Damper
	glass      *material.Glass
	pipeline   *effects.Pipeline
	background *material.Background
	particles  material.Particles
	camera     *CameraRig
	labels     []scroll.LabelFade
	title      scroll.Title

	last   frame.Snapshot
	closed bool
}

// New validates cfg and builds a scene; a nil cfg uses [config.Default].
func New(cfg *config.Scene, opts ...Option) (*Scene, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.registry == nil {
		o.registry = effects.DefaultRegistry()
	}

	s := &Scene{
		cfg:       *cfg,
		logger:    o.logger,
		opts:      o,
		morphBass: smooth.NewDamper(morphBassRate, 0),
		title:     scroll.TitleTargets(0),
	}

	sections, err := cfg.ScrollSections()
	if err != nil {
		return nil, err
	}
	if s.sections, err = scroll.NewInterpolator(sections); err != nil {
		return nil, err
	}

	morphOpts, err := cfg.MorphOptions()
	if err != nil {
		return nil, err
	}
	morphOpts = append(morphOpts, morph.WithLogger(o.logger))
	if s.engine, err = morph.New(morphOpts...); err != nil {
		return nil, fmt.Errorf("scene: morph engine: %w", err)
	}

	var enabled []string
	if cfg.Effects.Halftone {
		enabled = append(enabled, halftone.EffectName)
	}
	s.pipeline, err = effects.NewPipeline(o.registry, cfg.Tier,
		effects.WithLogger(o.logger),
		effects.WithEnabled(enabled...),
		effects.WithResolution(o.width, o.height),
	)
	if err != nil {
		_ = s.engine.Release()
		return nil, err
	}

	s.glass = material.NewGlass(s.engine)
	s.background = material.NewBackground(cfg.Tier)
	s.background.SetResolution(o.width, o.height)
	s.camera = NewCameraRig(s.sections)
	s.labels = make([]scroll.LabelFade, len(sections))
	for i := range s.labels {
		s.labels[i] = scroll.LabelFade{Index: i, Count: len(sections)}
	}

	s.wire()

	return s, nil
}

func (s *Scene) wire() {
	bins := s.cfg.Analyser.FFTSize / 2
	s.audio = &audioProducer{
		analyzer: bands.NewAnalyzer(bins, bands.DefaultRanges()),
		source:   s.opts.source,
		decay:    smooth.DefaultDecay(),
	}

	src := s.opts.scroll
	if src == nil {
		s.manual = &ManualScroll{}
		src = s.manual
	}

	s.sched = frame.NewScheduler(s.opts.frame...)
	// Both producers own disjoint fields, so registration cannot fail.
	_ = s.sched.AddProducer(s.audio)
	_ = s.sched.AddProducer(scrollProducer{source: src})

	s.sched.AddConsumer(frame.ConsumerFunc(s.advanceMorph))
	s.sched.AddConsumer(s.glass)
	s.sched.AddConsumer(frame.ConsumerFunc(s.updateEffects))
	s.sched.AddConsumer(s.background)
	s.sched.AddConsumer(&s.particles)
	s.sched.AddConsumer(s.camera)
	s.sched.AddConsumer(frame.ConsumerFunc(s.updateLabels))
}

func (s *Scene) advanceMorph(f frame.Snapshot) {
	bass := s.morphBass.Step(f.Audio.Bands.Bass, f.Delta)
	s.engine.Advance(f.Delta, f.Elapsed, bass)
}

func (s *Scene) updateEffects(f frame.Snapshot) {
	s.pipeline.Update(effects.Inputs{
		Delta:  f.Delta,
		Audio:  f.Audio.Bands,
		Active: f.Audio.Active,
		Scroll: f.Scroll.Offset,
	})
}

func (s *Scene) updateLabels(f frame.Snapshot) {
	for i := range s.labels {
		s.labels[i].Step(f.Scroll.Offset, f.Delta)
	}
	s.title = scroll.TitleTargets(f.Scroll.Offset)
}

// Tick runs one frame of dt seconds and returns its snapshot. A closed scene
// returns the last snapshot unchanged.
func (s *Scene) Tick(dt float64) frame.Snapshot {
	if s.closed {
		return s.last
	}
	s.last = s.sched.Tick(dt)
	return s.last
}

// Trigger starts the next shape transition. It reports false while a
// transition is running or after Close.
func (s *Scene) Trigger() bool {
	if s.closed {
		return false
	}
	return s.engine.Trigger()
}

// SetPlaying starts or pauses band extraction. Paused bands decay to zero.
func (s *Scene) SetPlaying(on bool) {
	s.audio.playing = on
}

// Playing reports the play flag.
func (s *Scene) Playing() bool {
	return s.audio.playing
}

// SetScroll sets the offset of the built-in scroll source. It reports false
// when an external source was configured.
func (s *Scene) SetScroll(offset float64) bool {
	if s.manual == nil {
		return false
	}
	s.manual.Set(offset)
	return true
}

// SetResolution resizes every resolution-dependent uniform.
func (s *Scene) SetResolution(width, height float64) {
	s.pipeline.SetResolution(width, height)
	s.background.SetResolution(width, height)
}

// SetHalftone toggles the halftone pass. It fails with
// [effects.ErrNotActive] below tier 2.
func (s *Scene) SetHalftone(on bool) error {
	if s.closed {
		return ErrClosed
	}
	return s.pipeline.SetEnabled(halftone.EffectName, on)
}

// SetHover marks the pointer as over the glass shape.
func (s *Scene) SetHover(on bool) {
	s.glass.SetHover(on)
}

// Bind attaches an external effect or background material.
func (s *Scene) Bind(effect string, b uniform.Binding) error {
	if effect == material.BackgroundEffect {
		s.background.Bind(b)
		return nil
	}
	return s.pipeline.Bind(effect, b)
}

// Config returns the validated configuration.
func (s *Scene) Config() config.Scene { return s.cfg }

// Engine returns the morph engine.
func (s *Scene) Engine() *morph.Engine { return s.engine }

// Pipeline returns the effect pipeline.
func (s *Scene) Pipeline() *effects.Pipeline { return s.pipeline }

// Glass returns the glass material.
func (s *Scene) Glass() *material.Glass { return s.glass }

// Background returns the background material.
func (s *Scene) Background() *material.Background { return s.background }

// Camera returns the camera state.
func (s *Scene) Camera() Camera { return s.camera.State() }

// Last returns the most recent snapshot.
func (s *Scene) Last() frame.Snapshot { return s.last }

// Closed reports whether Close was called.
func (s *Scene) Closed() bool { return s.closed }

// Close tears down the audio graph and releases the morph geometry.
// Subsequent calls return nil.
func (s *Scene) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.opts.closer != nil {
		if err := s.opts.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("scene: close audio graph: %w", err))
		}
		s.logger.Debug("scene: audio graph closed")
	}
	s.audio.source = nil
	if err := s.engine.Release(); err != nil && !errors.Is(err, morph.ErrReleased) {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
