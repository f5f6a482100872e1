package analyser

import (
	"errors"
	"io"
	"sync"
)

// ErrAlreadyConnected is returned when a graph already has an input attached.
var ErrAlreadyConnected = errors.New("analyser graph already connected")

// SampleWriter receives mono PCM samples from an input.
type SampleWriter interface {
	Write(samples []float64) error
}

// Input is an audio source that can route its samples into a writer.
type Input interface {
	Attach(w SampleWriter) error
	Detach()
}

// Graph owns one analyser and at most one connected input. A graph that is
// not connected reports no data, which consumers treat as silence.
type Graph struct {
	mu        sync.Mutex
	analyser  *Analyser
	input     Input
	connected bool
	closed    bool
}

var _ io.Closer = (*Graph)(nil)

// NewGraph creates a graph with a fresh analyser.
func NewGraph(sampleRate float64, opts ...Option) (*Graph, error) {
	a, err := New(sampleRate, opts...)
	if err != nil {
		return nil, err
	}
	return &Graph{analyser: a}, nil
}

// Analyser returns the graph's analyser.
func (g *Graph) Analyser() *Analyser {
	return g.analyser
}

// Connect attaches in to the analyser.
func (g *Graph) Connect(in Input) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}
	if in == nil {
		return errors.New("analyser graph: nil input")
	}
	if g.connected {
		return ErrAlreadyConnected
	}

	if err := in.Attach(g.analyser); err != nil {
		return err
	}

	g.input = in
	g.connected = true

	return nil
}

// Connected reports whether an input is attached.
func (g *Graph) Connected() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.connected
}

// Disconnect detaches the current input, if any, and clears analyser state so
// a new source starts from silence.
func (g *Graph) Disconnect() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disconnectLocked()
}

func (g *Graph) disconnectLocked() {
	if !g.connected {
		return
	}

	g.input.Detach()
	g.input = nil
	g.connected = false
	g.analyser.Reset()
}

// ByteFrequencyData reads the analyser when an input is connected.
func (g *Graph) ByteFrequencyData(dst []uint8) bool {
	g.mu.Lock()
	connected := g.connected && !g.closed
	g.mu.Unlock()

	if !connected {
		return false
	}

	return g.analyser.ByteFrequencyData(dst)
}

// Close disconnects the input and releases the analyser.
func (g *Graph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}

	g.disconnectLocked()
	g.closed = true

	return g.analyser.Close()
}
