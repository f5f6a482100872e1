package scene

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/frame"
)

// ScrollSource reports the current page progress in [0, 1].
type ScrollSource interface {
	Offset() float64
}

// ScrollFunc adapts a function to [ScrollSource].
type ScrollFunc func() float64

// Offset calls f.
func (f ScrollFunc) Offset() float64 { return f() }

// ManualScroll is a settable [ScrollSource]. It is safe for concurrent use so
// an input goroutine can set the offset while the render loop reads it.
type ManualScroll struct {
	mu     sync.Mutex
	offset float64
}

// Set stores offset clamped to [0, 1]. NaN is stored as 0.
func (m *ManualScroll) Set(offset float64) {
	if math.IsNaN(offset) {
		offset = 0
	}
	offset = math.Min(math.Max(offset, 0), 1)

	m.mu.Lock()
	m.offset = offset
	m.mu.Unlock()
}

// Offset returns the stored offset.
func (m *ManualScroll) Offset() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offset
}

// audioProducer owns the audio field. While playing with a connected source
// it publishes the extracted bands; otherwise the previous bands decay.
type audioProducer struct {
	analyzer *bands.Analyzer
	source   bands.Source
	decay    smooth.Decay
	playing  bool
	bands    bands.Bands
}

func (p *audioProducer) Fields() frame.Field { return frame.FieldAudio }

func (p *audioProducer) Produce(s *frame.Snapshot) {
	active := false
	if p.playing {
		if b, ok := p.analyzer.Read(p.source); ok {
			p.bands = b
			active = true
		}
	}
	if !active {
		p.bands = p.decay.ApplyBands(p.bands, s.Delta)
	}

	s.Audio = frame.Audio{Bands: p.bands, Active: active}
}

type scrollProducer struct {
	source ScrollSource
}

func (p scrollProducer) Fields() frame.Field { return frame.FieldScroll }

func (p scrollProducer) Produce(s *frame.Snapshot) {
	o := p.source.Offset()
	if math.IsNaN(o) {
		o = 0
	}
	s.Scroll.Offset = math.Min(math.Max(o, 0), 1)
}
