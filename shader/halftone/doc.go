// Package halftone holds the screen-space halftone post-process: the GLSL
// fragment program, its uniform contract and a CPU reference of the same
// math.
//
// The program expects these uniforms:
//
//	uGridSize   float  cell size in pixels
//	uRadius     float  dot radius at full luma, in cell units
//	uSoftness   float  smoothstep half-width of every edge
//	uMode       float  0 dot, 1 ring, 2 hybrid
//	uStagger    float  > 0.5 offsets odd rows by half a cell
//	uColorMode  float  > 0.5 paints luma instead of the sampled colour
//	uResolution vec2   viewport size in pixels
//	uIntensity  float  blend toward the halftoned colour
//
// With uIntensity 0 the output equals the input colour.
package halftone
