package analyser

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-glass/dsp/core"
	"github.com/cwbudde/algo-glass/dsp/window"
)

// ErrClosed is returned by operations on a closed analyser.
var ErrClosed = errors.New("analyser closed")

type forwardPlan interface {
	Forward(dst, src []complex128) error
}

// Analyser computes byte magnitude snapshots from pushed PCM samples.
// It is safe for one writer goroutine and one reader goroutine.
type Analyser struct {
	mu sync.Mutex

	cfg        Config
	sampleRate float64
	plan       forwardPlan
	win        []float64

	ring   []float64
	write  int
	filled int

	frame    []float64
	fftIn    []complex128
	fftOut   []complex128
	re, im   []float64
	mag      []float64
	smoothed []float64

	closed bool
}

// New creates an analyser for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Analyser, error) {
	if sampleRate <= 0 || !core.Finite(sampleRate) {
		return nil, fmt.Errorf("analyser sample rate must be > 0: %f", sampleRate)
	}

	cfg := applyOptions(opts)

	win, err := window.Blackman(cfg.FFTSize, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("analyser window: %w", err)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("analyser init fft plan: %w", err)
	}

	bins := cfg.FFTSize / 2

	return &Analyser{
		cfg:        cfg,
		sampleRate: sampleRate,
		plan:       plan,
		win:        win,
		ring:       make([]float64, cfg.FFTSize),
		frame:      make([]float64, cfg.FFTSize),
		fftIn:      make([]complex128, cfg.FFTSize),
		fftOut:     make([]complex128, cfg.FFTSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
		smoothed:   make([]float64, bins),
	}, nil
}

// Config returns the active configuration.
func (a *Analyser) Config() Config {
	return a.cfg
}

// SampleRate returns the input sample rate.
func (a *Analyser) SampleRate() float64 {
	return a.sampleRate
}

// FrequencyBinCount returns FFTSize/2, the snapshot length.
func (a *Analyser) FrequencyBinCount() int {
	return a.cfg.FFTSize / 2
}

// BinFrequency returns the center frequency of bin k in Hz.
func (a *Analyser) BinFrequency(k int) float64 {
	return float64(k) * a.sampleRate / float64(a.cfg.FFTSize)
}

// Ready reports whether at least FFTSize samples have been written since the
// last reset.
func (a *Analyser) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.closed && a.filled == len(a.ring)
}

// Write appends mono samples to the analysis ring.
func (a *Analyser) Write(samples []float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	for _, s := range samples {
		if !core.Finite(s) {
			s = 0
		}
		a.ring[a.write] = s
		a.write++
		if a.write == len(a.ring) {
			a.write = 0
		}
	}
	a.filled = min(a.filled+len(samples), len(a.ring))

	return nil
}

// ByteFrequencyData fills dst with the current byte magnitudes and reports
// whether the analyser is still open. Bins beyond FrequencyBinCount are zeroed.
func (a *Analyser) ByteFrequencyData(dst []uint8) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false
	}

	if err := a.analyse(); err != nil {
		clear(dst)
		return true
	}

	scale := 255 / (a.cfg.MaxDecibels - a.cfg.MinDecibels)
	n := min(len(dst), len(a.smoothed))
	for k := 0; k < n; k++ {
		db := core.LinearToDB(a.smoothed[k])
		v := math.Floor(scale * (db - a.cfg.MinDecibels))
		switch {
		case math.IsNaN(v) || v < 0:
			dst[k] = 0
		case v > 255:
			dst[k] = 255
		default:
			dst[k] = uint8(v)
		}
	}
	clear(dst[n:])

	return true
}

// FloatFrequencyData fills dst with the current smoothed magnitudes in dB.
func (a *Analyser) FloatFrequencyData(dst []float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false
	}

	if err := a.analyse(); err != nil {
		return true
	}

	n := min(len(dst), len(a.smoothed))
	for k := 0; k < n; k++ {
		dst[k] = core.LinearToDB(a.smoothed[k])
	}

	return true
}

// Reset clears the sample ring and the smoothing state.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	clear(a.ring)
	clear(a.smoothed)
	a.write = 0
	a.filled = 0
}

// Close releases the analyser buffers. It is safe to call more than once.
func (a *Analyser) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}

	a.closed = true
	a.ring, a.frame, a.fftIn, a.fftOut = nil, nil, nil, nil
	a.re, a.im, a.mag, a.smoothed = nil, nil, nil, nil

	return nil
}

// analyse runs one windowed transform over the latest FFTSize samples and
// folds it into the smoothed magnitudes. Caller holds a.mu.
func (a *Analyser) analyse() error {
	size := len(a.ring)

	read := a.write
	for i := 0; i < size; i++ {
		a.frame[i] = a.ring[read]
		read++
		if read == size {
			read = 0
		}
	}

	if err := window.Apply(a.frame, a.win); err != nil {
		return err
	}

	for i, s := range a.frame {
		a.fftIn[i] = complex(s, 0)
	}

	if err := a.plan.Forward(a.fftOut, a.fftIn); err != nil {
		return fmt.Errorf("analyser forward fft: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.fftOut[k])
		a.im[k] = imag(a.fftOut[k])
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	tau := a.cfg.Smoothing
	norm := 1 / float64(size)
	for k, m := range a.mag {
		s := tau*a.smoothed[k] + (1-tau)*m*norm
		if !core.Finite(s) {
			s = 0
		}
		a.smoothed[k] = s
	}

	return nil
}
