package geom

import "math"

// Triangle is one face given by its corners.
type Triangle struct {
	A, B, C Vec3
}

// Normal returns the unnormalized face normal (B-A)x(C-A). Its length is
// twice the triangle area.
func (t Triangle) Normal() Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Centroid returns the mean of the three corners.
func (t Triangle) Centroid() Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3)
}

// Mesh is an indexed triangle mesh. len(Indices) is a multiple of three.
type Mesh struct {
	Vertices []Vec3
	Indices  []uint32
}

// NumTriangles returns len(Indices)/3.
func (m Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Triangle returns face i.
func (m Mesh) Triangle(i int) Triangle {
	return Triangle{
		A: m.Vertices[m.Indices[3*i]],
		B: m.Vertices[m.Indices[3*i+1]],
		C: m.Vertices[m.Indices[3*i+2]],
	}
}

// Positions flattens the vertices into an xyz float32 buffer.
func (m Mesh) Positions() []float32 {
	out := make([]float32, 0, 3*len(m.Vertices))
	for _, v := range m.Vertices {
		out = append(out, float32(v.X), float32(v.Y), float32(v.Z))
	}
	return out
}

// Radii returns the minimum, maximum and mean vertex distance from the origin.
func (m Mesh) Radii() (minR, maxR, mean float64) {
	if len(m.Vertices) == 0 {
		return 0, 0, 0
	}

	minR = math.Inf(1)
	var sum float64
	for _, v := range m.Vertices {
		l := v.Len()
		minR = math.Min(minR, l)
		maxR = math.Max(maxR, l)
		sum += l
	}
	return minR, maxR, sum / float64(len(m.Vertices))
}

// Clone returns a deep copy of m.
func (m Mesh) Clone() Mesh {
	return Mesh{
		Vertices: append([]Vec3(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
}

// orientOutward flips every face whose normal points toward the origin. It is
// only meaningful for solids that contain the origin.
func orientOutward(m *Mesh) {
	for i := range m.NumTriangles() {
		t := m.Triangle(i)
		if t.Normal().Dot(t.Centroid()) < 0 {
			m.Indices[3*i+1], m.Indices[3*i+2] = m.Indices[3*i+2], m.Indices[3*i+1]
		}
	}
}
