package geom

import (
	"math"

	"github.com/cwbudde/algo-glass/dsp/core"
)

const rayEpsilon = 1e-9

// IntersectRay intersects the ray origin + t*dir with tri using the
// Möller-Trumbore test. It reports the distance parameter t of a hit in
// front of the origin. Both faces of the triangle are hit.
func IntersectRay(origin, dir Vec3, tri Triangle) (float64, bool) {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)

	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := origin.Sub(tri.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// Raycast returns the nearest hit distance of the ray against every face
// of m.
func (m Mesh) Raycast(origin, dir Vec3) (float64, bool) {
	best := math.Inf(1)
	hit := false

	for i := range m.NumTriangles() {
		if t, ok := IntersectRay(origin, dir, m.Triangle(i)); ok && t < best {
			best = t
			hit = true
		}
	}

	if !hit {
		return 0, false
	}
	return best, true
}

// VertexNormals writes area-weighted smooth normals for the xyz positions
// buffer into dst, resizing it as needed, and returns it. Vertices that
// belong to no face or only to degenerate faces get a zero normal.
func VertexNormals(positions []float32, indices []uint32, dst []float32) []float32 {
	dst = core.EnsureLen(dst, len(positions))
	core.Zero(dst)

	at := func(i uint32) Vec3 {
		return Vec3{float64(positions[3*i]), float64(positions[3*i+1]), float64(positions[3*i+2])}
	}

	for f := 0; f+2 < len(indices); f += 3 {
		a, b, c := indices[f], indices[f+1], indices[f+2]
		n := Triangle{at(a), at(b), at(c)}.Normal()
		for _, k := range [3]uint32{a, b, c} {
			dst[3*k] += float32(n.X)
			dst[3*k+1] += float32(n.Y)
			dst[3*k+2] += float32(n.Z)
		}
	}

	for i := 0; i+2 < len(dst); i += 3 {
		v := Vec3{float64(dst[i]), float64(dst[i+1]), float64(dst[i+2])}.Normalize()
		dst[i], dst[i+1], dst[i+2] = float32(v.X), float32(v.Y), float32(v.Z)
	}

	return dst
}
