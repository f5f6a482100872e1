// Package geom provides the small amount of 3D geometry the morph engine
// needs: vectors, indexed triangle meshes, the subdivided icosphere used as
// the shared vertex topology, flat convex solids used as projection targets,
// ray/triangle intersection and smooth vertex normals.
//
// Meshes are indexed. Triangles wind counter-clockwise when viewed from
// outside, so the cross product of the first two edges points outward.
package geom
