// Package uniform is the typed boundary between effect parameter code and
// the externally owned shader or effect instances that consume the values.
//
// Every value is addressed by a [Descriptor] carrying the owning effect, the
// uniform name as the consumer knows it (for example "uGridSize") and the
// value kind. A [Set] collects one frame's writes.
package uniform

import (
	"fmt"
	"sort"
)

// Kind is the value shape of a uniform.
type Kind uint8

const (
	Float Kind = iota + 1
	Vec2
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Descriptor names one uniform of one effect.
type Descriptor struct {
	Effect string
	Name   string
	Kind   Kind
}

func (d Descriptor) String() string {
	return d.Effect + "." + d.Name
}

// Value is a float or vec2 uniform value.
type Value struct {
	Kind Kind
	X, Y float64
}

// FloatValue returns a Float value.
func FloatValue(x float64) Value {
	return Value{Kind: Float, X: x}
}

// Vec2Value returns a Vec2 value.
func Vec2Value(x, y float64) Value {
	return Value{Kind: Vec2, X: x, Y: y}
}

// Bool returns 1 for true and 0 for false as a Float value.
func Bool(b bool) Value {
	if b {
		return FloatValue(1)
	}
	return FloatValue(0)
}

// Floats returns the components, one for Float and two for Vec2.
func (v Value) Floats() []float64 {
	if v.Kind == Vec2 {
		return []float64{v.X, v.Y}
	}
	return []float64{v.X}
}

// Binding is an externally owned effect instance that accepts uniform writes.
type Binding interface {
	SetUniform(d Descriptor, v Value)
}

// BindingFunc adapts a function to [Binding].
type BindingFunc func(d Descriptor, v Value)

// SetUniform calls f.
func (f BindingFunc) SetUniform(d Descriptor, v Value) { f(d, v) }

// Writer receives uniform values during an update.
type Writer interface {
	Write(d Descriptor, v Value)
}

// Entry is one stored value.
type Entry struct {
	Effect string    `json:"effect"`
	Name   string    `json:"name"`
	Kind   string    `json:"kind"`
	Value  []float64 `json:"value"`
}

// Set holds the latest value of every written uniform. Values whose kind
// does not match their descriptor are dropped.
type Set struct {
	values map[Descriptor]Value
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{values: make(map[Descriptor]Value)}
}

// Write stores v under d.
func (s *Set) Write(d Descriptor, v Value) {
	if v.Kind != d.Kind {
		return
	}
	s.values[d] = v
}

// Get returns the value stored for effect and name.
func (s *Set) Get(effect, name string) (Value, bool) {
	for _, k := range []Kind{Float, Vec2} {
		if v, ok := s.values[Descriptor{Effect: effect, Name: name, Kind: k}]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Float returns the X component stored for effect and name, or 0.
func (s *Set) Float(effect, name string) float64 {
	v, _ := s.Get(effect, name)
	return v.X
}

// HasEffect reports whether any uniform of effect was written.
func (s *Set) HasEffect(effect string) bool {
	for d := range s.values {
		if d.Effect == effect {
			return true
		}
	}
	return false
}

// Len returns the number of stored uniforms.
func (s *Set) Len() int {
	return len(s.values)
}

// Entries returns the stored values sorted by effect and name.
func (s *Set) Entries() []Entry {
	out := make([]Entry, 0, len(s.values))
	for d, v := range s.values {
		out = append(out, Entry{Effect: d.Effect, Name: d.Name, Kind: d.Kind.String(), Value: v.Floats()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Effect != out[j].Effect {
			return out[i].Effect < out[j].Effect
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset removes every value.
func (s *Set) Reset() {
	clear(s.values)
}
