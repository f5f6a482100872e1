// Package tap decodes audio files and routes their samples into an analyser
// graph while the audio plays or while a headless driver pulls it.
package tap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"

	"github.com/cwbudde/algo-glass/audio/analyser"
)

// ErrUnsupportedFormat is returned for file extensions without a decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Track is a decoded audio file.
type Track struct {
	Streamer beep.StreamSeekCloser
	Format   beep.Format
}

// Open decodes an mp3 or wav file.
func Open(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tap open %q: %w", path, err)
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("tap decode %q: %w", path, err)
	}

	return &Track{Streamer: s, Format: format}, nil
}

// SampleRate returns the track sample rate in Hz.
func (t *Track) SampleRate() float64 {
	return float64(t.Format.SampleRate)
}

// Close releases the decoder and the underlying file.
func (t *Track) Close() error {
	return t.Streamer.Close()
}

// Tap is a streamer wrapper that copies a mono mix of everything it streams
// into the attached writer. It implements [analyser.Input].
type Tap struct {
	s    beep.Streamer
	loop bool

	mu   sync.Mutex
	w    analyser.SampleWriter
	mono []float64
	err  error
}

var _ analyser.Input = (*Tap)(nil)

// New wraps s. With loop set, a seekable source rewinds at its end.
func New(s beep.Streamer, loop bool) *Tap {
	return &Tap{s: s, loop: loop}
}

// Attach routes future samples into w.
func (t *Tap) Attach(w analyser.SampleWriter) error {
	if w == nil {
		return errors.New("tap: nil writer")
	}
	t.mu.Lock()
	t.w = w
	t.mu.Unlock()
	return nil
}

// Detach stops routing samples.
func (t *Tap) Detach() {
	t.mu.Lock()
	t.w = nil
	t.mu.Unlock()
}

// Stream passes audio through while capturing the mono mix.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)
	if !ok && t.loop {
		if seeker, isSeeker := t.s.(beep.StreamSeeker); isSeeker {
			if err := seeker.Seek(0); err == nil {
				var more int
				more, ok = t.s.Stream(samples[n:])
				n += more
			}
		}
	}

	t.capture(samples[:n])

	return n, ok
}

// Err returns the underlying streamer's error or the last writer error.
func (t *Tap) Err() error {
	if err := t.s.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Pull streams n frames and discards them after capture. It is used to drive
// the analyser without an output device and returns the frames read.
func (t *Tap) Pull(n int) (int, bool) {
	if n <= 0 {
		return 0, true
	}
	buf := make([][2]float64, n)
	return t.Stream(buf)
}

func (t *Tap) capture(samples [][2]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.w == nil || len(samples) == 0 {
		return
	}

	if cap(t.mono) < len(samples) {
		t.mono = make([]float64, len(samples))
	}
	mono := t.mono[:len(samples)]
	for i, s := range samples {
		mono[i] = (s[0] + s[1]) / 2
	}

	if err := t.w.Write(mono); err != nil {
		t.err = err
		t.w = nil
	}
}
