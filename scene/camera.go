package scene

import (
	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/frame"
	"github.com/cwbudde/algo-glass/rgb"
	"github.com/cwbudde/algo-glass/scroll"
)

const (
	cameraSmoothTime = 0.25
	colorRate        = 4
)

// Camera is the smoothed camera and scene colour state.
type Camera struct {
	Position   [3]float64
	Background rgb.Color
	Fog        rgb.Color

	// Section is the raw interpolation at the frame's offset.
	Section scroll.State
}

// CameraRig follows the section interpolation: the position through a
// critically damped spring, the colours by a dt*4 blend.
type CameraRig struct {
	sections *scroll.Interpolator
	position smooth.Spring3
	state    Camera
}

// NewCameraRig returns a rig resting on the first section.
func NewCameraRig(sections *scroll.Interpolator) *CameraRig {
	start := sections.At(0)
	pos := [3]float64{0, start.CameraY, start.CameraZ}
	return &CameraRig{
		sections: sections,
		position: smooth.NewSpring3(cameraSmoothTime, pos),
		state: Camera{
			Position:   pos,
			Background: start.Background,
			Fog:        start.Fog,
			Section:    start,
		},
	}
}

// Consume moves the camera toward the section state at the frame's offset.
func (r *CameraRig) Consume(s frame.Snapshot) {
	st := r.sections.At(s.Scroll.Offset)

	r.state.Position = r.position.Step([3]float64{0, st.CameraY, st.CameraZ}, s.Delta)

	k := smooth.Factor(colorRate, s.Delta)
	r.state.Background = r.state.Background.Lerp(st.Background, k)
	r.state.Fog = r.state.Fog.Lerp(st.Fog, k)
	r.state.Section = st
}

// State returns the latest camera state.
func (r *CameraRig) State() Camera {
	return r.state
}
