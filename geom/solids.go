package geom

import (
	"math"
	"sort"
)

var phi = (1 + math.Sqrt(5)) / 2

var icosahedronVertices = []Vec3{
	{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
	{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
	{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
}

var icosahedronIndices = []uint32{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

// Icosahedron returns the regular icosahedron with circumradius 1.
func Icosahedron() Mesh {
	m := Mesh{
		Vertices: make([]Vec3, len(icosahedronVertices)),
		Indices:  append([]uint32(nil), icosahedronIndices...),
	}
	for i, v := range icosahedronVertices {
		m.Vertices[i] = v.Normalize()
	}
	orientOutward(&m)
	return m
}

// Octahedron returns the regular octahedron with circumradius 1.
func Octahedron() Mesh {
	m := Mesh{
		Vertices: []Vec3{
			{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
		},
		Indices: []uint32{
			0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2,
			1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2,
		},
	}
	orientOutward(&m)
	return m
}

// Tetrahedron returns the regular tetrahedron with circumradius 1.
func Tetrahedron() Mesh {
	m := Mesh{
		Vertices: []Vec3{
			V(1, 1, 1).Normalize(), V(-1, -1, 1).Normalize(),
			V(-1, 1, -1).Normalize(), V(1, -1, -1).Normalize(),
		},
		Indices: []uint32{0, 1, 2, 0, 3, 1, 0, 2, 3, 1, 3, 2},
	}
	orientOutward(&m)
	return m
}

// Cube returns the axis-aligned cube with circumradius 1.
func Cube() Mesh {
	s := 1 / math.Sqrt(3)
	m := Mesh{
		Vertices: []Vec3{
			{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
			{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
		},
		Indices: []uint32{
			0, 1, 2, 0, 2, 3, // -z
			4, 6, 5, 4, 7, 6, // +z
			0, 4, 5, 0, 5, 1, // -y
			3, 2, 6, 3, 6, 7, // +y
			0, 3, 7, 0, 7, 4, // -x
			1, 5, 6, 1, 6, 2, // +x
		},
	}
	orientOutward(&m)
	return m
}

// Dodecahedron returns the regular dodecahedron with circumradius 1, built as
// the dual of the icosahedron: one vertex per icosahedron face and one
// pentagon, fanned into three triangles, per icosahedron vertex.
func Dodecahedron() Mesh {
	ico := Icosahedron()
	faces := ico.NumTriangles()

	m := Mesh{Vertices: make([]Vec3, faces)}
	for f := range faces {
		m.Vertices[f] = ico.Triangle(f).Centroid().Normalize()
	}

	for v := range ico.Vertices {
		axis := ico.Vertices[v]

		var ring []uint32
		for f := range faces {
			i := ico.Indices[3*f : 3*f+3]
			if i[0] == uint32(v) || i[1] == uint32(v) || i[2] == uint32(v) {
				ring = append(ring, uint32(f))
			}
		}

		ref := m.Vertices[ring[0]].Sub(axis.Scale(m.Vertices[ring[0]].Dot(axis))).Normalize()
		side := axis.Cross(ref)
		angle := func(k uint32) float64 {
			p := m.Vertices[k]
			return math.Atan2(p.Dot(side), p.Dot(ref))
		}
		sort.Slice(ring, func(a, b int) bool { return angle(ring[a]) < angle(ring[b]) })

		for k := 1; k+1 < len(ring); k++ {
			m.Indices = append(m.Indices, ring[0], ring[k], ring[k+1])
		}
	}

	orientOutward(&m)
	return m
}
