// Package frame is the per-frame state bus. Producers fill the fields they
// own, then every consumer receives the finished snapshot by value. The
// scheduler, not traversal order, guarantees that all writes of a frame
// happen before any read.
package frame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/dsp/core"
)

var (
	// ErrFieldOwned is returned when a producer claims a field that already
	// has a writer.
	ErrFieldOwned = errors.New("frame: field already owned")
	// ErrNoFields is returned for a producer that owns nothing.
	ErrNoFields = errors.New("frame: producer owns no fields")
)

// Field is a bitmask of snapshot fields.
type Field uint32

const (
	FieldAudio Field = 1 << iota
	FieldScroll

	fieldAll = FieldAudio | FieldScroll
)

func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f&FieldAudio != 0 {
		parts = append(parts, "audio")
	}
	if f&FieldScroll != 0 {
		parts = append(parts, "scroll")
	}
	if rest := f &^ fieldAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// Audio is the frame's band state.
type Audio struct {
	Bands bands.Bands
	// Active reports whether a connected source is playing.
	Active bool
}

// Scroll is the frame's page progress.
type Scroll struct {
	Offset float64
}

// Snapshot is the complete state of one frame. Frame, Delta and Elapsed are
// set by the scheduler.
type Snapshot struct {
	Frame   uint64
	Delta   float64
	Elapsed float64

	Audio  Audio
	Scroll Scroll
}

// Producer writes the fields it owns.
type Producer interface {
	Fields() Field
	Produce(s *Snapshot)
}

// Consumer reads a finished snapshot.
type Consumer interface {
	Consume(s Snapshot)
}

// ConsumerFunc adapts a function to [Consumer].
type ConsumerFunc func(s Snapshot)

// Consume calls f.
func (f ConsumerFunc) Consume(s Snapshot) { f(s) }

type funcProducer struct {
	fields Field
	fn     func(*Snapshot)
}

func (p funcProducer) Fields() Field       { return p.fields }
func (p funcProducer) Produce(s *Snapshot) { p.fn(s) }

// ProducerFunc returns a producer owning fields that runs fn.
func ProducerFunc(fields Field, fn func(*Snapshot)) Producer {
	return funcProducer{fields: fields, fn: fn}
}

// merge copies the fields selected by f from src into dst.
func merge(dst *Snapshot, src Snapshot, f Field) {
	if f&FieldAudio != 0 {
		dst.Audio = src.Audio
	}
	if f&FieldScroll != 0 {
		dst.Scroll = src.Scroll
	}
}

// Scheduler runs producers then consumers once per tick.
type Scheduler struct {
	cfg       core.FrameConfig
	owned     Field
	producers []Producer
	consumers []Consumer
	last      Snapshot
}

// NewScheduler returns a scheduler whose frame deltas are clamped by the
// given frame options.
func NewScheduler(opts ...core.FrameOption) *Scheduler {
	return &Scheduler{cfg: core.ApplyFrameOptions(opts...)}
}

// AddProducer registers p. Producers run in registration order, so a later
// producer can read the fields of an earlier one.
func (s *Scheduler) AddProducer(p Producer) error {
	f := p.Fields()
	if f == 0 {
		return ErrNoFields
	}
	if clash := s.owned & f; clash != 0 {
		return fmt.Errorf("%w: %s", ErrFieldOwned, clash)
	}

	s.owned |= f
	s.producers = append(s.producers, p)

	return nil
}

// AddConsumer registers c. Consumers run in registration order.
func (s *Scheduler) AddConsumer(c Consumer) {
	s.consumers = append(s.consumers, c)
}

// Owned returns the union of producer fields.
func (s *Scheduler) Owned() Field {
	return s.owned
}

// Tick advances one frame of dt seconds. Each producer works on a copy of
// the snapshot and only its own fields are kept. Consumers then receive the
// finished snapshot, which is also returned.
func (s *Scheduler) Tick(dt float64) Snapshot {
	dt = s.cfg.ClampDelta(dt)

	next := s.last
	next.Frame++
	next.Delta = dt
	next.Elapsed += dt

	for _, p := range s.producers {
		work := next
		p.Produce(&work)
		merge(&next, work, p.Fields())
	}

	s.last = next

	for _, c := range s.consumers {
		c.Consume(next)
	}

	return next
}

// Last returns the most recent snapshot.
func (s *Scheduler) Last() Snapshot {
	return s.last
}
