package scene

import (
	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/uniform"
)

// Output is the JSON view of one frame, as broadcast to remote renderers.
type Output struct {
	Frame   uint64  `json:"frame"`
	Elapsed float64 `json:"elapsed"`

	Audio  AudioOutput `json:"audio"`
	Scroll float64     `json:"scroll"`

	Section         string     `json:"section"`
	SectionProgress float64    `json:"sectionProgress"`
	Camera          [3]float64 `json:"camera"`
	Background      string     `json:"background"`
	Fog             string     `json:"fog"`

	Morph     MorphOutput   `json:"morph"`
	Glass     GlassOutput   `json:"glass"`
	Particles [2][3]float64 `json:"particles"`
	Labels    []float64     `json:"labels"`
	Title     TitleOutput   `json:"title"`

	Effects  []string        `json:"effects"`
	Uniforms []uniform.Entry `json:"uniforms"`
}

// AudioOutput is the frame's band state.
type AudioOutput struct {
	Bass    float64 `json:"bass"`
	LowMid  float64 `json:"lowMid"`
	Mid     float64 `json:"mid"`
	High    float64 `json:"high"`
	Average float64 `json:"average"`
	Active  bool    `json:"active"`
}

// MorphOutput is the shape transition state.
type MorphOutput struct {
	Shape    string  `json:"shape"`
	State    string  `json:"state"`
	Previous int     `json:"previous"`
	Current  int     `json:"current"`
	Progress float64 `json:"progress"`
	Pulse    float64 `json:"pulse"`
}

// GlassOutput is the glass transform and material.
type GlassOutput struct {
	Rotation            [3]float64 `json:"rotation"`
	PositionY           float64    `json:"positionY"`
	Scale               float64    `json:"scale"`
	Roughness           float64    `json:"roughness"`
	ChromaticAberration float64    `json:"chromaticAberration"`
	Distortion          float64    `json:"distortion"`
	TemporalDistortion  float64    `json:"temporalDistortion"`
	IOR                 float64    `json:"ior"`
	Color               string     `json:"color"`
	Samples             int        `json:"samples"`
	Resolution          int        `json:"resolution"`
	Hovered             bool       `json:"hovered"`
}

// TitleOutput is the main title transform.
type TitleOutput struct {
	Opacity float64 `json:"opacity"`
	Scale   float64 `json:"scale"`
	Z       float64 `json:"z"`
}

func audioOutput(b bands.Bands, active bool) AudioOutput {
	return AudioOutput{
		Bass:    b.Bass,
		LowMid:  b.LowMid,
		Mid:     b.Mid,
		High:    b.High,
		Average: b.Average,
		Active:  active,
	}
}

// Frame returns the output of the last tick. Uniforms hold the effect
// pipeline's values followed by the background's.
func (s *Scene) Frame() Output {
	f := s.last
	cam := s.camera.State()
	g := s.glass.State()
	tr := s.engine.Transition()

	labels := make([]float64, len(s.labels))
	for i, l := range s.labels {
		labels[i] = l.Opacity
	}

	sections := s.sections.Sections()
	name := ""
	if i := cam.Section.SectionIndex; i >= 0 && i < len(sections) {
		name = sections[i].Name
	}

	return Output{
		Frame:   f.Frame,
		Elapsed: f.Elapsed,

		Audio:  audioOutput(f.Audio.Bands, f.Audio.Active),
		Scroll: f.Scroll.Offset,

		Section:         name,
		SectionProgress: cam.Section.SectionProgress,
		Camera:          cam.Position,
		Background:      cam.Background.Hex(),
		Fog:             cam.Fog.Hex(),

		Morph: MorphOutput{
			Shape:    s.engine.ShapeName(),
			State:    s.engine.State().String(),
			Previous: tr.Previous,
			Current:  tr.Current,
			Progress: tr.Progress,
			Pulse:    s.engine.Pulse(),
		},
		Glass: GlassOutput{
			Rotation:            g.Rotation,
			PositionY:           g.PositionY,
			Scale:               g.Scale,
			Roughness:           g.Roughness,
			ChromaticAberration: g.ChromaticAberration,
			Distortion:          g.Distortion,
			TemporalDistortion:  g.TemporalDistortion,
			IOR:                 g.IOR,
			Color:               g.Color.Hex(),
			Samples:             g.Samples,
			Resolution:          g.Resolution,
			Hovered:             s.glass.Hovered(),
		},
		Particles: s.particles.Groups,
		Labels:    labels,
		Title:     TitleOutput(s.title),

		Effects:  s.pipeline.ActiveEffects(),
		Uniforms: append(s.pipeline.Uniforms().Entries(), s.background.Uniforms().Entries()...),
	}
}
