// Package config loads the scene configuration from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-glass/audio/analyser"
	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/morph"
	"github.com/cwbudde/algo-glass/rgb"
	"github.com/cwbudde/algo-glass/scroll"
)

// Environment variables read by [Scene.ApplyEnv].
const (
	EnvGPUTier  = "GLASS_GPU_TIER"
	EnvHalftone = "GLASS_HALFTONE"
)

const maxTier = 3

var (
	// ErrInvalidTier is returned for a GPU tier outside 0..3.
	ErrInvalidTier = errors.New("config: invalid gpu tier")
	// ErrInvalid is returned for any other invalid field.
	ErrInvalid = errors.New("config: invalid field")
)

// Section is one scroll stop with hex colours.
type Section struct {
	Name       string  `yaml:"name"`
	CameraZ    float64 `yaml:"camera_z"`
	CameraY    float64 `yaml:"camera_y"`
	Background string  `yaml:"background"`
	Fog        string  `yaml:"fog"`
}

// Morph configures the shape morph engine.
type Morph struct {
	Detail int      `yaml:"detail"`
	Shapes []string `yaml:"shapes"`
	Speed  float64  `yaml:"speed"`
}

// Analyser configures the frequency analyser.
type Analyser struct {
	FFTSize   int     `yaml:"fft_size"`
	Smoothing float64 `yaml:"smoothing"`
}

// Effects holds the externally toggled effects.
type Effects struct {
	Halftone bool `yaml:"halftone"`
}

// Scene is the full scene configuration.
type Scene struct {
	Tier     int       `yaml:"gpu_tier"`
	Sections []Section `yaml:"sections"`
	Morph    Morph     `yaml:"morph"`
	Analyser Analyser  `yaml:"analyser"`
	Effects  Effects   `yaml:"effects"`
}

// Default returns the four-section scene at tier 2 with halftone off.
func Default() *Scene {
	cfg := &Scene{
		Tier: 2,
		Morph: Morph{
			Detail: morph.DefaultDetail,
			Shapes: []string{"icosahedron", "dodecahedron", "octahedron"},
			Speed:  1.5,
		},
		Analyser: Analyser{
			FFTSize:   analyser.DefaultFFTSize,
			Smoothing: analyser.DefaultSmoothing,
		},
	}
	for _, s := range scroll.DefaultSections() {
		cfg.Sections = append(cfg.Sections, Section{
			Name:       s.Name,
			CameraZ:    s.CameraZ,
			CameraY:    s.CameraY,
			Background: s.Background.Hex(),
			Fog:        s.Fog.Hex(),
		})
	}
	return cfg
}

// LoadFromFile merges the YAML file at path into c.
func (c *Scene) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// DefaultPaths returns the locations TryLoadDefault probes, in order.
func DefaultPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "algo-glass", "scene.yaml"),
		filepath.Join(home, ".config", "algo-glass", "scene.yml"),
		filepath.Join(home, ".algo-glass.yaml"),
	}
}

// TryLoadDefault loads the first existing default path and returns it, or ""
// when none exists or the file does not parse.
func (c *Scene) TryLoadDefault() string {
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			if c.LoadFromFile(p) == nil {
				return p
			}
			return ""
		}
	}
	return ""
}

// ApplyEnv applies GLASS_GPU_TIER and GLASS_HALFTONE and returns the names
// of the variables it applied. Empty variables are skipped; unparsable values
// are reported as errors and leave the field unchanged.
func (c *Scene) ApplyEnv() ([]string, error) {
	var applied []string
	var errs []error

	if v := strings.TrimSpace(os.Getenv(EnvGPUTier)); v != "" {
		tier, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidTier, EnvGPUTier, v))
		} else {
			c.Tier = tier
			applied = append(applied, EnvGPUTier)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvHalftone)); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalid, EnvHalftone, v))
		} else {
			c.Effects.Halftone = on
			applied = append(applied, EnvHalftone)
		}
	}

	return applied, errors.Join(errs...)
}

// Validate reports the first invalid field.
func (c *Scene) Validate() error {
	if c.Tier < 0 || c.Tier > maxTier {
		return fmt.Errorf("%w: %d", ErrInvalidTier, c.Tier)
	}
	if _, err := c.ScrollSections(); err != nil {
		return err
	}
	if _, err := c.MorphShapes(); err != nil {
		return err
	}
	if c.Morph.Speed <= 0 {
		return fmt.Errorf("%w: morph.speed %v", ErrInvalid, c.Morph.Speed)
	}
	// Each frequency bin spans two transform points.
	if n := c.Analyser.FFTSize; n < 2*bands.MinBins || n&(n-1) != 0 {
		return fmt.Errorf("%w: analyser.fft_size %d", ErrInvalid, n)
	}
	if s := c.Analyser.Smoothing; s < 0 || s >= 1 {
		return fmt.Errorf("%w: analyser.smoothing %v", ErrInvalid, s)
	}
	return nil
}

// ScrollSections converts the section list, parsing colours.
func (c *Scene) ScrollSections() ([]scroll.Section, error) {
	if len(c.Sections) == 0 {
		return nil, scroll.ErrNoSections
	}

	out := make([]scroll.Section, 0, len(c.Sections))
	for i, s := range c.Sections {
		bg, err := rgb.ParseHex(s.Background)
		if err != nil {
			return nil, fmt.Errorf("%w: sections[%d].background: %w", ErrInvalid, i, err)
		}
		fog := bg
		if s.Fog != "" {
			if fog, err = rgb.ParseHex(s.Fog); err != nil {
				return nil, fmt.Errorf("%w: sections[%d].fog: %w", ErrInvalid, i, err)
			}
		}
		out = append(out, scroll.Section{
			Name:       s.Name,
			CameraZ:    s.CameraZ,
			CameraY:    s.CameraY,
			Background: bg,
			Fog:        fog,
		})
	}
	return out, nil
}

// MorphShapes resolves the configured shape names.
func (c *Scene) MorphShapes() ([]morph.Shape, error) {
	if len(c.Morph.Shapes) == 0 {
		return nil, fmt.Errorf("%w: morph.shapes is empty", ErrInvalid)
	}

	out := make([]morph.Shape, 0, len(c.Morph.Shapes))
	for _, name := range c.Morph.Shapes {
		s, err := morph.ShapeByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// MorphOptions returns the engine options for the configuration.
func (c *Scene) MorphOptions() ([]morph.Option, error) {
	shapes, err := c.MorphShapes()
	if err != nil {
		return nil, err
	}
	return []morph.Option{
		morph.WithDetail(c.Morph.Detail),
		morph.WithShapes(shapes...),
		morph.WithMorphSpeed(c.Morph.Speed),
	}, nil
}

// AnalyserOptions returns the analyser options for the configuration.
func (c *Scene) AnalyserOptions() []analyser.Option {
	return []analyser.Option{
		analyser.WithFFTSize(c.Analyser.FFTSize),
		analyser.WithSmoothing(c.Analyser.Smoothing),
	}
}
