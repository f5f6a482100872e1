package scroll

import "math"

const (
	contentFalloff  = 3.5
	contentMaxShift = 40.0
	labelFadeRate   = 3.0
)

// ContentOpacity returns the overlay opacity of section index out of count:
// max(0, 1 - |offset - center| * 3.5) with center = (index+0.5)/count.
func ContentOpacity(offset float64, index, count int) float64 {
	if count <= 0 {
		return 0
	}
	center := (float64(index) + 0.5) / float64(count)
	return math.Max(0, 1-math.Abs(offset-center)*contentFalloff)
}

// ContentShift returns the vertical overlay shift in pixels for an opacity.
func ContentShift(opacity float64) float64 {
	return (1 - opacity) * contentMaxShift
}

// InSection reports whether offset lies in [index/count, (index+1)/count).
func InSection(offset float64, index, count int) bool {
	if count <= 0 {
		return false
	}
	start := float64(index) / float64(count)
	end := float64(index+1) / float64(count)
	return offset >= start && offset < end
}

// LabelFade tracks the in-scene label opacity of one section.
type LabelFade struct {
	Index   int
	Count   int
	Opacity float64
}

// Step fades the label toward 1 while offset is inside its section and toward
// 0 otherwise. The blend factor is capped at 1 so long frames do not overshoot.
func (l *LabelFade) Step(offset, dt float64) float64 {
	target := 0.0
	if InSection(offset, l.Index, l.Count) {
		target = 1
	}

	k := math.Min(math.Max(dt*labelFadeRate, 0), 1)
	l.Opacity += (target - l.Opacity) * k

	return l.Opacity
}

// Title holds the scroll-driven targets of the main title.
type Title struct {
	Opacity float64
	Scale   float64
	Z       float64
}

// TitleTargets returns the title targets for offset: fully faded by half the
// page, shrinking to half size and receding three units.
func TitleTargets(offset float64) Title {
	const baseZ = 3.4
	return Title{
		Opacity: math.Max(0, 1-offset*2),
		Scale:   1 - offset*0.5,
		Z:       baseZ - offset*3,
	}
}
