// Package material holds the per-frame consumers that turn a frame snapshot
// into scene object parameters: the glass shape's transform and transmission
// material, the audio-reactive background shader uniforms and the particle
// group rotations.
package material
