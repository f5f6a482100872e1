package material

import (
	"math"

	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/frame"
	"github.com/cwbudde/algo-glass/rgb"
)

const (
	glassAudioRate = 9 // 0.15 per frame at 60 fps

	lodScroll        = 0.3
	highSamples      = 8
	lowSamples       = 4
	highResolution   = 256
	lowResolution    = 128
	idleScale        = 2.0
	playingScale     = 2.2
	baseRoughness    = 0.5
	hoverRoughness   = 0.2
	minRoughness     = 0.05
	baseAberration   = 0.1
	hoverAberration  = 0.5
	baseIOR          = 1.5
	baseBobAmplitude = 0.2
)

// Pulser reports the current morph scale pulse.
type Pulser interface {
	Pulse() float64
}

// GlassState is the glass shape's transform and material for one frame.
type GlassState struct {
	Rotation  [3]float64
	PositionY float64
	Scale     float64

	Roughness           float64
	ChromaticAberration float64
	Distortion          float64
	TemporalDistortion  float64
	IOR                 float64
	Color               rgb.Color

	Samples    int
	Resolution int
	// QualityChanged is set on the frame Samples or Resolution changed.
	QualityChanged bool
}

// Glass drives the glass shape from the frame snapshot.
type Glass struct {
	pulse   Pulser
	hovered bool

	audio smooth.BandDamper

	scale      smooth.Spring
	roughness  smooth.Spring
	aberration smooth.Spring
	distortion smooth.Spring
	temporal   smooth.Spring
	ior        smooth.Spring
	color      smooth.Spring3

	state GlassState
}

// NewGlass returns the glass consumer. pulse may be nil.
func NewGlass(pulse Pulser) *Glass {
	base := rgb.MustParseHex("#aaccff")
	return &Glass{
		pulse:      pulse,
		audio:      smooth.NewBandDamper(glassAudioRate),
		scale:      smooth.NewSpring(0.15, idleScale),
		roughness:  smooth.NewSpring(0.2, baseRoughness),
		aberration: smooth.NewSpring(0.1, baseAberration),
		distortion: smooth.NewSpring(0.15, 0.3),
		temporal:   smooth.NewSpring(0.2, 0.1),
		ior:        smooth.NewSpring(0.3, baseIOR),
		color:      smooth.NewSpring3(0.25, base.Array()),
		state: GlassState{
			Scale:      idleScale,
			Roughness:  baseRoughness,
			IOR:        baseIOR,
			Color:      base,
			Samples:    highSamples,
			Resolution: highResolution,
		},
	}
}

// SetHover marks the pointer as over the shape.
func (g *Glass) SetHover(on bool) {
	g.hovered = on
}

// Hovered reports the hover flag.
func (g *Glass) Hovered() bool {
	return g.hovered
}

// Bass returns the glass's smoothed bass.
func (g *Glass) Bass() float64 {
	return g.audio.Value.Bass
}

// State returns the latest glass state.
func (g *Glass) State() GlassState {
	return g.state
}

// Consume updates the glass state for s.
func (g *Glass) Consume(s frame.Snapshot) {
	dt := s.Delta
	raw := s.Audio.Bands
	b := g.audio.Step(raw, dt)
	scroll := s.Scroll.Offset
	playing := s.Audio.Active

	speed := 0.2
	if playing {
		speed = 0.4
	}
	speed += b.Mid * 0.6
	g.state.Rotation[0] += dt * speed
	g.state.Rotation[1] += dt * speed * 1.1
	g.state.Rotation[2] = scroll * math.Pi * 0.5

	g.state.PositionY = math.Sin(s.Elapsed*0.5) * (baseBobAmplitude + b.Bass*0.3)

	var pulse float64
	if g.pulse != nil {
		pulse = g.pulse.Pulse()
	}
	size := idleScale
	if playing {
		size = playingScale
	}
	g.state.Scale = g.scale.Step((size+pulse+b.Bass*0.4)*(1+scroll*0.3), dt)

	rough, aberr := baseRoughness, baseAberration
	if g.hovered {
		rough, aberr = hoverRoughness, hoverAberration
	}
	g.state.Roughness = g.roughness.Step(math.Max(minRoughness, rough-b.High*0.4), dt)
	g.state.ChromaticAberration = g.aberration.Step(aberr+b.Bass*1.5, dt)
	g.state.Distortion = g.distortion.Step(0.5+b.Mid*0.8, dt)
	g.state.TemporalDistortion = g.temporal.Step(0.2+b.Bass*0.5, dt)
	g.state.IOR = g.ior.Step(baseIOR+raw.Average*0.3, dt)

	target := rgb.FromHSL(0.6-b.Bass*0.15+b.High*0.1, 0.3+b.Mid*0.4, 0.7+b.High*0.2)
	if g.hovered {
		target = rgb.Color{R: 1, G: 1, B: 1}
	}
	g.state.Color = rgb.FromArray(g.color.Step(target.Array(), dt))

	samples, res := highSamples, highResolution
	if scroll > lodScroll {
		samples, res = lowSamples, lowResolution
	}
	g.state.QualityChanged = samples != g.state.Samples || res != g.state.Resolution
	g.state.Samples, g.state.Resolution = samples, res
}
