package tap

import (
	"errors"
	"testing"

	"github.com/gopxl/beep/v2"
)

type recorder struct {
	got  []float64
	fail error
}

func (r *recorder) Write(samples []float64) error {
	if r.fail != nil {
		return r.fail
	}
	r.got = append(r.got, samples...)
	return nil
}

type constStream struct {
	left, right float64
	remaining   int
}

func (c *constStream) Stream(samples [][2]float64) (int, bool) {
	if c.remaining <= 0 {
		return 0, false
	}
	n := min(len(samples), c.remaining)
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{c.left, c.right}
	}
	c.remaining -= n
	return n, true
}

func (c *constStream) Err() error { return nil }

var _ beep.Streamer = (*constStream)(nil)

func TestTapCapturesMonoMix(t *testing.T) {
	tp := New(&constStream{left: 1, right: 0, remaining: 10}, false)

	rec := &recorder{}
	if err := tp.Attach(rec); err != nil {
		t.Fatalf("Attach error: %v", err)
	}

	n, ok := tp.Pull(4)
	if n != 4 || !ok {
		t.Fatalf("Pull = %d, %v", n, ok)
	}
	if len(rec.got) != 4 || rec.got[0] != 0.5 {
		t.Fatalf("captured %v, want four samples of 0.5", rec.got)
	}

	tp.Detach()
	tp.Pull(4)
	if len(rec.got) != 4 {
		t.Fatalf("detached tap kept capturing: %d samples", len(rec.got))
	}

	n, ok = tp.Pull(8)
	if n != 2 || !ok {
		t.Fatalf("tail Pull = %d, %v, want 2, true", n, ok)
	}
}

func TestTapWriterErrorDetaches(t *testing.T) {
	tp := New(&constStream{left: 1, right: 1, remaining: 10}, false)

	boom := errors.New("closed")
	if err := tp.Attach(&recorder{fail: boom}); err != nil {
		t.Fatalf("Attach error: %v", err)
	}

	tp.Pull(2)
	if !errors.Is(tp.Err(), boom) {
		t.Fatalf("Err = %v, want %v", tp.Err(), boom)
	}
	if err := tp.Attach(nil); err == nil {
		t.Fatal("expected error for nil writer")
	}
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	path := t.TempDir() + "/track.ogg"
	if err := writeFile(path); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	if _, err := Open(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Open = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Open(t.TempDir() + "/missing.mp3"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
