package interp

import "math"

// Lerp returns a + (b-a)*t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpInto writes a*(1-t) + b*t element-wise into dst and returns the number
// of written elements (the shortest of the three lengths). The result equals a
// exactly at t=0 and b exactly at t=1.
func LerpInto(dst, a, b []float32, t float64) int {
	n := min(len(dst), len(a), len(b))
	tb := float32(t)
	ta := 1 - tb
	for i := 0; i < n; i++ {
		dst[i] = a[i]*ta + b[i]*tb
	}
	return n
}

// Smoothstep returns 0 below edge0, 1 above edge1 and a Hermite blend in between.
// Equal edges degrade to a hard step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}

	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))

	return t * t * (3 - 2*t)
}

// EaseInOutCubic eases t in [0,1]: 4t^3 for t<0.5, 1-(-2t+2)^3/2 otherwise.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}

	u := -2*t + 2

	return 1 - u*u*u/2
}

// Ramp maps x linearly from [lo, hi] to [0, 1], clamping outside.
func Ramp(lo, hi, x float64) float64 {
	if hi <= lo {
		if x < lo {
			return 0
		}
		return 1
	}

	return math.Max(0, math.Min(1, (x-lo)/(hi-lo)))
}
