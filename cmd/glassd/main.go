// Command glassd drives the glass scene headlessly.
//
// It decodes an optional track, feeds the analyser each frame, advances the
// scroll at a fixed speed, cycles the shape on a frame cadence and either
// prints a summary line per second of scene time or streams every frame as
// JSON over a websocket.
//
// Usage:
//
//	glassd [flags]
//
// Examples:
//
//	glassd -audio track.mp3 -frames 600
//	glassd -audio track.wav -tier 3 -click-every 90 -serve :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/algo-glass/audio/analyser"
	"github.com/cwbudde/algo-glass/audio/tap"
	"github.com/cwbudde/algo-glass/config"
	"github.com/cwbudde/algo-glass/internal/log"
	"github.com/cwbudde/algo-glass/internal/stream"
	"github.com/cwbudde/algo-glass/scene"
)

type options struct {
	audio       string
	config      string
	tier        int
	fps         float64
	frames      int
	scrollSpeed float64
	clickEvery  int
	serve       string
}

func main() {
	var o options
	flag.StringVar(&o.audio, "audio", "", "mp3 or wav file to analyse (silent when empty)")
	flag.StringVar(&o.config, "config", "", "scene YAML file (default: probe the user config paths)")
	flag.IntVar(&o.tier, "tier", -1, "GPU tier 0-3 (overrides config and environment)")
	flag.Float64Var(&o.fps, "fps", 60, "frames per second")
	flag.IntVar(&o.frames, "frames", 600, "frames to run, 0 runs until interrupted")
	flag.Float64Var(&o.scrollSpeed, "scroll-speed", 0.05, "scroll progress per second; the offset wraps at 1")
	flag.IntVar(&o.clickEvery, "click-every", 120, "trigger a shape change every N frames, 0 disables")
	flag.StringVar(&o.serve, "serve", "", "listen address for the websocket frame stream, e.g. :8080")
	level := flag.String("log", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, log.L(), os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("glassd failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(o options, logger *slog.Logger) (*config.Scene, error) {
	cfg := config.Default()
	if o.config != "" {
		if err := cfg.LoadFromFile(o.config); err != nil {
			return nil, err
		}
	} else if path := cfg.TryLoadDefault(); path != "" {
		logger.Info("loaded scene config", "path", path)
	}

	applied, err := cfg.ApplyEnv()
	if err != nil {
		return nil, err
	}
	for _, name := range applied {
		logger.Info("scene config override from environment", "var", name)
	}

	if o.tier >= 0 {
		cfg.Tier = o.tier
	}

	return cfg, cfg.Validate()
}

// driver owns the optional track and pulls one frame of samples per tick.
type driver struct {
	track *tap.Track
	tap   *tap.Tap
	rate  float64
	carry float64
}

func openAudio(path string, cfg *config.Scene, logger *slog.Logger) (*driver, *analyser.Graph) {
	if path == "" {
		return &driver{}, nil
	}

	track, err := tap.Open(path)
	if err != nil {
		logger.Warn("audio unavailable, running silent", "error", err)
		return &driver{}, nil
	}

	graph, err := analyser.NewGraph(track.SampleRate(), cfg.AnalyserOptions()...)
	if err != nil {
		_ = track.Close()
		logger.Warn("audio graph unavailable, running silent", "error", err)
		return &driver{}, nil
	}

	t := tap.New(track.Streamer, true)
	if err := graph.Connect(t); err != nil {
		_ = graph.Close()
		_ = track.Close()
		logger.Warn("audio graph connect failed, running silent", "error", err)
		return &driver{}, nil
	}

	logger.Info("audio connected", "path", path, "sample_rate", track.SampleRate())

	return &driver{track: track, tap: t, rate: track.SampleRate()}, graph
}

// pull reads the samples that play during dt seconds.
func (d *driver) pull(dt float64) {
	if d.tap == nil {
		return
	}
	d.carry += d.rate * dt
	n := int(d.carry)
	d.carry -= float64(n)
	d.tap.Pull(n)
}

func (d *driver) Close() error {
	if d.track == nil {
		return nil
	}
	return d.track.Close()
}

func run(ctx context.Context, o options, logger *slog.Logger, out io.Writer) error {
	if !(o.fps > 0) {
		return fmt.Errorf("glassd: invalid -fps %v", o.fps)
	}

	cfg, err := loadConfig(o, logger)
	if err != nil {
		return err
	}

	audio, graph := openAudio(o.audio, cfg, logger)
	defer audio.Close()

	opts := []scene.Option{scene.WithLogger(logger)}
	if graph != nil {
		opts = append(opts, scene.WithAudioGraph(graph))
	}
	sc, err := scene.New(cfg, opts...)
	if err != nil {
		if graph != nil {
			_ = graph.Close()
		}
		return err
	}
	defer sc.Close()
	sc.SetPlaying(graph != nil)

	var hub *stream.Hub
	if o.serve != "" {
		hub = stream.New("frames", stream.WithLogger(logger))
		srv := &http.Server{Addr: o.serve, Handler: hub, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("frame stream server failed", "error", err)
			}
		}()
		defer func() {
			_ = hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("streaming frames", "addr", o.serve)
	}

	dt := 1 / o.fps
	var pace *time.Ticker
	if hub != nil {
		pace = time.NewTicker(time.Duration(float64(time.Second) * dt))
		defer pace.Stop()
	}

	offset := 0.0
	perSecond := max(int(o.fps), 1)

	for frame := 1; o.frames <= 0 || frame <= o.frames; frame++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		audio.pull(dt)

		offset += o.scrollSpeed * dt
		if offset > 1 {
			offset -= 1
		}
		sc.SetScroll(offset)

		if o.clickEvery > 0 && frame%o.clickEvery == 0 {
			sc.Trigger()
		}

		sc.Tick(dt)

		if hub != nil {
			if err := hub.BroadcastJSON(sc.Frame()); err != nil {
				return err
			}
			continue
		}
		if frame%perSecond == 0 {
			if err := printSummary(out, sc.Frame()); err != nil {
				return err
			}
		}
	}

	return nil
}

func printSummary(w io.Writer, f scene.Output) error {
	_, err := fmt.Fprintf(w, "frame=%d t=%.2fs scroll=%.3f section=%s shape=%s/%s bass=%.3f avg=%.3f scale=%.3f camera_z=%.2f effects=%d\n",
		f.Frame,
		f.Elapsed,
		f.Scroll,
		f.Section,
		f.Morph.Shape,
		f.Morph.State,
		f.Audio.Bass,
		f.Audio.Average,
		f.Glass.Scale,
		f.Camera[2],
		len(f.Effects),
	)
	return err
}
