package material

import (
	"math"

	"github.com/cwbudde/algo-glass/audio/bands"
	"github.com/cwbudde/algo-glass/audio/smooth"
	"github.com/cwbudde/algo-glass/frame"
	"github.com/cwbudde/algo-glass/uniform"
)

// BackgroundEffect names the background shader in uniform descriptors.
const BackgroundEffect = "background"

const (
	backgroundAudioRate  = 6
	backgroundScrollRate = 4
	lowDetail            = 3.2
	highDetail           = 6.5
)

var (
	bgTime       = uniform.Descriptor{Effect: BackgroundEffect, Name: "uTime", Kind: uniform.Float}
	bgBass       = uniform.Descriptor{Effect: BackgroundEffect, Name: "uBass", Kind: uniform.Float}
	bgMid        = uniform.Descriptor{Effect: BackgroundEffect, Name: "uMid", Kind: uniform.Float}
	bgHigh       = uniform.Descriptor{Effect: BackgroundEffect, Name: "uHigh", Kind: uniform.Float}
	bgAverage    = uniform.Descriptor{Effect: BackgroundEffect, Name: "uAverage", Kind: uniform.Float}
	bgScroll     = uniform.Descriptor{Effect: BackgroundEffect, Name: "uScroll", Kind: uniform.Float}
	bgResolution = uniform.Descriptor{Effect: BackgroundEffect, Name: "uResolution", Kind: uniform.Vec2}
	bgDetail     = uniform.Descriptor{Effect: BackgroundEffect, Name: "uDetail", Kind: uniform.Float}
)

// DetailForTier returns the background noise detail: 3.2 for tiers 0 and 1,
// 6.5 above.
func DetailForTier(tier int) float64 {
	if tier <= 1 {
		return lowDetail
	}
	return highDetail
}

// Background writes the audio-reactive background shader uniforms.
type Background struct {
	detail     float64
	audio      smooth.BandDamper
	scroll     smooth.Damper
	resolution [2]float64

	values  *uniform.Set
	binding uniform.Binding
}

// NewBackground returns the background consumer for a GPU tier.
func NewBackground(tier int) *Background {
	return &Background{
		detail:     DetailForTier(tier),
		audio:      smooth.NewBandDamper(backgroundAudioRate),
		scroll:     smooth.NewDamper(backgroundScrollRate, 0),
		resolution: [2]float64{1, 1},
		values:     uniform.NewSet(),
	}
}

// Descriptors returns the background uniform table.
func (b *Background) Descriptors() []uniform.Descriptor {
	return []uniform.Descriptor{bgTime, bgBass, bgMid, bgHigh, bgAverage, bgScroll, bgResolution, bgDetail}
}

// Bind attaches the external shader material. A nil binding detaches.
func (b *Background) Bind(binding uniform.Binding) {
	b.binding = binding
}

// SetResolution sets the viewport size. Non-positive sizes are ignored.
func (b *Background) SetResolution(width, height float64) {
	if width > 0 && height > 0 && !math.IsInf(width, 0) && !math.IsInf(height, 0) {
		b.resolution = [2]float64{width, height}
	}
}

// Uniforms returns the last written values.
func (b *Background) Uniforms() *uniform.Set {
	return b.values
}

// Consume smooths audio at rate 6 toward the live bands, or toward zero when
// audio is inactive, and scroll at rate 4.
func (b *Background) Consume(s frame.Snapshot) {
	var target bands.Bands
	if s.Audio.Active {
		target = s.Audio.Bands
	}
	a := b.audio.Step(target, s.Delta)
	scroll := b.scroll.Step(s.Scroll.Offset, s.Delta)

	b.write(bgTime, uniform.FloatValue(s.Elapsed))
	b.write(bgBass, uniform.FloatValue(a.Bass))
	b.write(bgMid, uniform.FloatValue(a.Mid))
	b.write(bgHigh, uniform.FloatValue(a.High))
	b.write(bgAverage, uniform.FloatValue(a.Average))
	b.write(bgScroll, uniform.FloatValue(scroll))
	b.write(bgResolution, uniform.Vec2Value(b.resolution[0], b.resolution[1]))
	b.write(bgDetail, uniform.FloatValue(b.detail))
}

func (b *Background) write(d uniform.Descriptor, v uniform.Value) {
	b.values.Write(d, v)
	if b.binding != nil {
		b.binding.SetUniform(d, v)
	}
}
