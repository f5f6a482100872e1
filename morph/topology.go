package morph

import "github.com/cwbudde/algo-glass/geom"

// DefaultDetail is the icosphere subdivision used for the shared topology
// (162 vertices).
const DefaultDetail = 3

// Topology is the immutable set of unit directions and triangle indices
// shared by every target.
type Topology struct {
	directions []geom.Vec3
	indices    []uint32
}

// NewTopology builds the topology of a subdivided icosphere.
func NewTopology(detail int) *Topology {
	m := geom.Icosphere(detail)
	return &Topology{directions: m.Vertices, indices: m.Indices}
}

// Len returns the vertex count.
func (t *Topology) Len() int {
	return len(t.directions)
}

// Direction returns the unit direction of vertex i.
func (t *Topology) Direction(i int) geom.Vec3 {
	return t.directions[i]
}

// Indices returns a copy of the triangle indices.
func (t *Topology) Indices() []uint32 {
	return append([]uint32(nil), t.indices...)
}
