// Package smooth converts jittery per-frame signals into settled values.
//
// Three filters are provided:
//
//   - [Damper]: first-order exponential approach, v += (t-v)*min(dt*rate, 1)
//   - [Decay]:  elapsed-time-scaled geometric fall-off toward zero
//   - [Spring]: critically damped spring with velocity, parameterized by a
//     smooth time in seconds
//
// Every filter is frame-delta aware, so settle times are independent of the
// render loop's frame rate. Consumers that want different settle times keep
// their own filters over the same raw input.
package smooth
