// Package interp provides the blend and easing primitives used by per-frame
// animation code.
//
// Available functions:
//
//   - [Lerp]:           scalar linear interpolation
//   - [LerpInto]:       element-wise linear interpolation of float32 buffers
//   - [Smoothstep]:     Hermite edge step, matching the GLSL built-in
//   - [EaseInOutCubic]: symmetric cubic ease used for shape transitions
//   - [Ramp]:           clamped linear ramp between two edges
package interp
