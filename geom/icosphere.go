package geom

import "sort"

// IcosphereVertexCount returns the vertex count of Icosphere(detail).
func IcosphereVertexCount(detail int) int {
	n := max(detail, 0) + 1
	return 10*n*n + 2
}

// weightKey identifies a subdivision point by the integer barycentric weights
// it gives to the base icosahedron vertices. Shared edge points produce the
// same key from both adjacent faces.
type weightKey [3][2]int32

// Icosphere subdivides each icosahedron edge into detail+1 segments and
// projects every point onto the unit sphere. Vertices on shared edges are
// merged, so the result has 10(detail+1)^2+2 vertices and 20(detail+1)^2
// triangles. Negative detail is treated as 0.
func Icosphere(detail int) Mesh {
	base := Icosahedron()
	n := max(detail, 0) + 1

	m := Mesh{
		Vertices: make([]Vec3, 0, IcosphereVertexCount(detail)),
		Indices:  make([]uint32, 0, 3*20*n*n),
	}
	lookup := make(map[weightKey]uint32, IcosphereVertexCount(detail))

	vertex := func(corners [3]uint32, weights [3]int) uint32 {
		type term struct {
			idx    uint32
			weight int
		}
		terms := make([]term, 0, 3)
		for k := range 3 {
			if weights[k] != 0 {
				terms = append(terms, term{corners[k], weights[k]})
			}
		}
		sort.Slice(terms, func(a, b int) bool { return terms[a].idx < terms[b].idx })

		key := weightKey{{-1, 0}, {-1, 0}, {-1, 0}}
		var p Vec3
		for k, tm := range terms {
			key[k] = [2]int32{int32(tm.idx), int32(tm.weight)}
			p = p.Add(base.Vertices[tm.idx].Scale(float64(tm.weight) / float64(n)))
		}

		if idx, ok := lookup[key]; ok {
			return idx
		}
		idx := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, p.Normalize())
		lookup[key] = idx
		return idx
	}

	for f := range base.NumTriangles() {
		corners := [3]uint32{base.Indices[3*f], base.Indices[3*f+1], base.Indices[3*f+2]}

		// Row i holds i+1 points; point (i, j) weighs the corners n-i, i-j, j.
		rows := make([][]uint32, n+1)
		for i := 0; i <= n; i++ {
			rows[i] = make([]uint32, i+1)
			for j := 0; j <= i; j++ {
				rows[i][j] = vertex(corners, [3]int{n - i, i - j, j})
			}
		}

		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				m.Indices = append(m.Indices, rows[i][j], rows[i+1][j], rows[i+1][j+1])
				if j < i {
					m.Indices = append(m.Indices, rows[i][j], rows[i+1][j+1], rows[i][j+1])
				}
			}
		}
	}

	return m
}
