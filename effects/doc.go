// Package effects maps smoothed audio bands, scroll progress and the GPU tier
// to the uniform values of the post-processing stack.
//
// Each effect is an independent [Effect] registered in a [Registry] together
// with its [Capability]: the minimum GPU tier that instantiates it and whether
// it additionally needs an explicit toggle. A [Pipeline] instantiates the
// effects its tier supports and updates them once per frame in registration
// order:
//
//	p, err := effects.NewPipeline(effects.DefaultRegistry(), tier)
//	...
//	p.Bind("bloom", bloomHandle)
//	p.Update(effects.Inputs{Delta: dt, Audio: b, Active: playing, Scroll: s})
//
// Built-in effects:
//
//   - bloom (tier 0): intensity and luminance threshold with a final-section crescendo
//   - vignette (tier 0): darkness and offset
//   - chromatic (tier 2): bass-coupled colour offset
//   - noise (tier 2): treble-coupled film grain opacity
//   - halftone (tier 2, toggle): scroll-staged halftone uniforms
//
// Lower tiers omit effects; the formulas of the effects they keep do not
// change.
package effects
