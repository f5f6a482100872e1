package scene

import (
	"io"
	"log/slog"

	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/dsp/core"
	"github.com/cwbudde/algo-glass/effects"
	"github.com/cwbudde/algo-glass/internal/log"
)

type options struct {
	logger   *slog.Logger
	source   bands.Source
	closer   io.Closer
	scroll   ScrollSource
	registry *effects.Registry
	frame    []core.FrameOption
	width    float64
	height   float64
}

// Option configures a [Scene].
type Option func(*options)

func defaultOptions() options {
	return options{
		logger: log.Discard(),
		width:  1,
		height: 1,
	}
}

// WithLogger sets the logger for soft failures. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSource reads magnitudes from src. Without a source the scene is silent.
func WithSource(src bands.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithAudioGraph reads magnitudes from g and closes it with the scene.
func WithAudioGraph(g AudioGraph) Option {
	return func(o *options) {
		if g != nil {
			o.source = g
			o.closer = g
		}
	}
}

// WithScrollSource replaces the built-in [ManualScroll]. [Scene.SetScroll]
// has no effect afterwards.
func WithScrollSource(s ScrollSource) Option {
	return func(o *options) {
		if s != nil {
			o.scroll = s
		}
	}
}

// WithRegistry replaces [effects.DefaultRegistry].
func WithRegistry(r *effects.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithFrameOptions sets the delta clamping of the scheduler.
func WithFrameOptions(opts ...core.FrameOption) Option {
	return func(o *options) {
		o.frame = append(o.frame, opts...)
	}
}

// WithResolution sets the initial viewport size. Non-positive sizes are
// ignored.
func WithResolution(width, height float64) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// AudioGraph is a magnitude source the scene tears down on Close.
type AudioGraph interface {
	bands.Source
	io.Closer
}
