package morph

import "github.com/cwbudde/algo-glass/geom"

// Target is one shape's projected vertex positions, xyz interleaved, in
// topology order.
type Target struct {
	Name      string
	Positions []float32
}

// Len returns the vertex count.
func (t Target) Len() int {
	return len(t.Positions) / 3
}

// MeanRadius returns the mean distance of the target's vertices from the
// origin.
func (t Target) MeanRadius() float64 {
	n := t.Len()
	if n == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		v := geom.V(float64(t.Positions[3*i]), float64(t.Positions[3*i+1]), float64(t.Positions[3*i+2]))
		sum += v.Len()
	}
	return sum / float64(n)
}

// Project casts a ray from the origin along every topology direction against
// the shape surface. A direction that misses the surface keeps the raw
// direction. The result is rescaled to mean radius 1. misses counts the
// directions that fell back.
func Project(topo *Topology, shape Shape) (target Target, misses int) {
	n := topo.Len()
	points := make([]geom.Vec3, n)

	var sum float64
	for i, dir := range topo.directions {
		p := dir
		if t, ok := shape.Surface.Raycast(geom.Vec3{}, dir); ok {
			p = dir.Scale(t)
		} else {
			misses++
		}
		points[i] = p
		sum += p.Len()
	}

	scale := 1.0
	if sum > 0 {
		scale = float64(n) / sum
	}

	target = Target{Name: shape.Name, Positions: make([]float32, 3*n)}
	for i, p := range points {
		p = p.Scale(scale)
		target.Positions[3*i] = float32(p.X)
		target.Positions[3*i+1] = float32(p.Y)
		target.Positions[3*i+2] = float32(p.Z)
	}

	return target, misses
}
