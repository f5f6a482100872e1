package smooth

import "math"

const (
	minSmoothTime = 1e-4
	springEpsilon = 1e-3
)

// Spring is a critically damped follower parameterized by SmoothTime, the
// approximate time in seconds to reach the target.
type Spring struct {
	SmoothTime float64
	Value      float64
	Velocity   float64
}

// NewSpring returns a spring at rest on initial.
func NewSpring(smoothTime, initial float64) Spring {
	return Spring{SmoothTime: smoothTime, Value: initial}
}

// Step advances the spring by dt toward target and returns the new value.
// Within 1e-3 of the target the value snaps and velocity is kept.
func (s *Spring) Step(target, dt float64) float64 {
	if math.Abs(s.Value-target) <= springEpsilon {
		s.Value = target
		return s.Value
	}
	if !(dt > 0) {
		return s.Value
	}

	smoothTime := math.Max(minSmoothTime, s.SmoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	k := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := s.Value - target
	temp := (s.Velocity + omega*change) * dt
	s.Velocity = (s.Velocity - omega*temp) * k

	out := target + (change+temp)*k
	if (target-s.Value > 0) == (out > target) {
		out = target
		s.Velocity = 0
	}

	s.Value = out

	return s.Value
}

// Spring3 damps three components with a shared smooth time.
type Spring3 [3]Spring

// NewSpring3 returns three springs at rest on v.
func NewSpring3(smoothTime float64, v [3]float64) Spring3 {
	return Spring3{
		NewSpring(smoothTime, v[0]),
		NewSpring(smoothTime, v[1]),
		NewSpring(smoothTime, v[2]),
	}
}

// Step advances all three components and returns their values.
func (s *Spring3) Step(target [3]float64, dt float64) [3]float64 {
	return [3]float64{
		s[0].Step(target[0], dt),
		s[1].Step(target[1], dt),
		s[2].Step(target[2], dt),
	}
}

// Value returns the current components.
func (s *Spring3) Value() [3]float64 {
	return [3]float64{s[0].Value, s[1].Value, s[2].Value}
}
