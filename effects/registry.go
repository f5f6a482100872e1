package effects

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-glass/shader/halftone"
)

// Capability gates the instantiation of an effect.
type Capability struct {
	// MinTier is the lowest GPU tier that instantiates the effect.
	MinTier int
	// Toggle effects are instantiated disabled and update with Enabled false
	// until switched on.
	Toggle bool
}

// Supports reports whether tier instantiates the effect.
func (c Capability) Supports(tier int) bool {
	return tier >= c.MinTier
}

// Factory builds one effect instance.
type Factory func() Effect

// Entry is one registered effect.
type Entry struct {
	Name       string
	Capability Capability
	Factory    Factory
}

// Registry is an ordered set of effect factories keyed by name.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends an effect. Registration order is update order.
func (r *Registry) Register(name string, c Capability, factory Factory) error {
	if name == "" {
		return errors.New("effects: empty effect name")
	}
	if factory == nil {
		return errors.New("effects: nil factory")
	}
	if c.MinTier < 0 || c.MinTier > MaxTier {
		return fmt.Errorf("%w: %d", ErrInvalidTier, c.MinTier)
	}
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEffect, name)
	}

	r.index[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Capability: c, Factory: factory})

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, c Capability, factory Factory) {
	if err := r.Register(name, c, factory); err != nil {
		panic("effects registry: " + err.Error())
	}
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	i, ok := r.index[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}

// Supported returns the names instantiated at tier.
func (r *Registry) Supported(tier int) []string {
	var out []string
	for _, e := range r.entries {
		if e.Capability.Supports(tier) {
			out = append(out, e.Name)
		}
	}
	return out
}

// DefaultRegistry returns a registry with the built-in effects.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(BloomName, Capability{MinTier: 0}, func() Effect { return NewBloom(DefaultBloomConfig()) })
	r.MustRegister(ChromaticName, Capability{MinTier: 2}, func() Effect { return NewChromatic(DefaultChromaticConfig()) })
	r.MustRegister(NoiseName, Capability{MinTier: 2}, func() Effect { return NewNoise(DefaultNoiseConfig()) })
	r.MustRegister(VignetteName, Capability{MinTier: 0}, func() Effect { return NewVignette(DefaultVignetteConfig()) })
	r.MustRegister(halftone.EffectName, Capability{MinTier: 2, Toggle: true}, func() Effect {
		return NewHalftone(DefaultHalftoneConfig())
	})

	return r
}
