package morph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-glass/geom"
)

// ErrUnknownShape is returned for a shape name with no built-in surface.
var ErrUnknownShape = errors.New("morph: unknown shape")

// Shape is a named projection surface. The surface should contain the origin.
type Shape struct {
	Name    string
	Surface geom.Mesh
}

var builtin = map[string]func() geom.Mesh{
	"icosahedron":  geom.Icosahedron,
	"dodecahedron": geom.Dodecahedron,
	"octahedron":   geom.Octahedron,
	"tetrahedron":  geom.Tetrahedron,
	"cube":         geom.Cube,
}

// DefaultShapes returns the icosahedron, dodecahedron, octahedron cycle.
func DefaultShapes() []Shape {
	return []Shape{
		MustShape("icosahedron"),
		MustShape("dodecahedron"),
		MustShape("octahedron"),
	}
}

// ShapeByName returns a built-in shape.
func ShapeByName(name string) (Shape, error) {
	build, ok := builtin[name]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	return Shape{Name: name, Surface: build()}, nil
}

// MustShape is like ShapeByName but panics on error.
func MustShape(name string) Shape {
	s, err := ShapeByName(name)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// ShapeNames lists the built-in shape names in sorted order.
func ShapeNames() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
