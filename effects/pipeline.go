package effects

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-glass/internal/log"
	"github.com/cwbudde/algo-glass/uniform"
)

type pipelineConfig struct {
	logger     *slog.Logger
	enabled    map[string]bool
	resolution [2]float64
}

// Option configures a [Pipeline].
type Option func(*pipelineConfig)

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *pipelineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEnabled switches on toggle effects at construction.
func WithEnabled(names ...string) Option {
	return func(c *pipelineConfig) {
		for _, n := range names {
			c.enabled[n] = true
		}
	}
}

// WithResolution sets the initial viewport size in pixels.
func WithResolution(width, height float64) Option {
	return func(c *pipelineConfig) {
		if width > 0 && height > 0 {
			c.resolution = [2]float64{width, height}
		}
	}
}

type slot struct {
	name       string
	capability Capability
	fx         Effect
	enabled    bool
	binding    uniform.Binding
}

// Pipeline owns the effects instantiated for one GPU tier and the uniform
// values they wrote last frame.
type Pipeline struct {
	tier       int
	slots      []*slot
	byName     map[string]*slot
	values     *uniform.Set
	resolution [2]float64
	logger     *slog.Logger
}

// NewPipeline instantiates every effect of reg that tier supports.
func NewPipeline(reg *Registry, tier int, opts ...Option) (*Pipeline, error) {
	if tier < 0 || tier > MaxTier {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTier, tier)
	}

	cfg := pipelineConfig{
		logger:     log.Discard(),
		enabled:    make(map[string]bool),
		resolution: [2]float64{1, 1},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Pipeline{
		tier:       tier,
		byName:     make(map[string]*slot),
		values:     uniform.NewSet(),
		resolution: cfg.resolution,
		logger:     cfg.logger,
	}

	for _, e := range reg.entries {
		if !e.Capability.Supports(tier) {
			p.logger.Debug("effects: omitted for tier", "effect", e.Name, "tier", tier, "min_tier", e.Capability.MinTier)
			continue
		}

		s := &slot{
			name:       e.Name,
			capability: e.Capability,
			fx:         e.Factory(),
			enabled:    !e.Capability.Toggle || cfg.enabled[e.Name],
		}
		p.slots = append(p.slots, s)
		p.byName[e.Name] = s
	}

	return p, nil
}

// Tier returns the GPU tier the pipeline was built for.
func (p *Pipeline) Tier() int {
	return p.tier
}

// Active reports whether name was instantiated.
func (p *Pipeline) Active(name string) bool {
	_, ok := p.byName[name]
	return ok
}

// ActiveEffects returns the instantiated effect names in update order.
func (p *Pipeline) ActiveEffects() []string {
	out := make([]string, len(p.slots))
	for i, s := range p.slots {
		out[i] = s.name
	}
	return out
}

// Bind attaches an external effect handle that receives every uniform write
// of name. A nil binding detaches.
func (p *Pipeline) Bind(name string, b uniform.Binding) error {
	s, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotActive, name)
	}
	s.binding = b
	return nil
}

// SetEnabled switches a toggle effect.
func (p *Pipeline) SetEnabled(name string, on bool) error {
	s, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotActive, name)
	}
	if !s.capability.Toggle {
		return fmt.Errorf("%w: %s", ErrNotToggle, name)
	}
	s.enabled = on
	return nil
}

// Enabled reports whether name is instantiated and enabled.
func (p *Pipeline) Enabled(name string) bool {
	s, ok := p.byName[name]
	return ok && s.enabled
}

// SetResolution sets the viewport size used by resolution-dependent
// uniforms from the next Update on. Non-positive sizes are ignored.
func (p *Pipeline) SetResolution(width, height float64) {
	if width > 0 && height > 0 && !math.IsInf(width, 0) && !math.IsInf(height, 0) {
		p.resolution = [2]float64{width, height}
	}
}

// Resolution returns the current viewport size.
func (p *Pipeline) Resolution() [2]float64 {
	return p.resolution
}

// Update runs every instantiated effect once, in registration order.
func (p *Pipeline) Update(in Inputs) {
	in.Tier = p.tier
	in.Resolution = p.resolution

	for _, s := range p.slots {
		in.Enabled = s.enabled
		s.fx.Update(in, slotWriter{set: p.values, binding: s.binding})
	}
}

// Uniforms returns the values written so far. The set is owned by the
// pipeline and changes on every Update.
func (p *Pipeline) Uniforms() *uniform.Set {
	return p.values
}

type slotWriter struct {
	set     *uniform.Set
	binding uniform.Binding
}

func (w slotWriter) Write(d uniform.Descriptor, v uniform.Value) {
	w.set.Write(d, v)
	if w.binding != nil {
		w.binding.SetUniform(d, v)
	}
}
