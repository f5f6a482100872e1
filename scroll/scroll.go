// Package scroll maps a scroll progress value in [0,1] across an ordered list
// of named sections into interpolated camera and background parameters.
package scroll

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-glass/rgb"
)

// ErrNoSections is returned when a section list is empty.
var ErrNoSections = errors.New("scroll: no sections")

// Section is one named stop along the scroll path.
type Section struct {
	Name       string
	CameraZ    float64
	CameraY    float64
	Background rgb.Color
	Fog        rgb.Color
}

// DefaultSections returns the intro/explore/discover/transcend path.
func DefaultSections() []Section {
	return []Section{
		{Name: "intro", CameraZ: 8, CameraY: 0, Background: rgb.MustParseHex("#050520"), Fog: rgb.MustParseHex("#050520")},
		{Name: "explore", CameraZ: 5, CameraY: 1, Background: rgb.MustParseHex("#0a0a30"), Fog: rgb.MustParseHex("#0a0a30")},
		{Name: "discover", CameraZ: 3, CameraY: 0, Background: rgb.MustParseHex("#150a30"), Fog: rgb.MustParseHex("#150a30")},
		{Name: "transcend", CameraZ: 6, CameraY: -1, Background: rgb.MustParseHex("#0a1530"), Fog: rgb.MustParseHex("#0a1530")},
	}
}

// State is the interpolated scroll result for one offset.
type State struct {
	CameraZ    float64
	CameraY    float64
	Background rgb.Color
	Fog        rgb.Color

	// SectionIndex is the section the offset falls in.
	SectionIndex int
	// SectionProgress is the blend factor toward the next section.
	SectionProgress float64
}

// Interpolate blends the two sections around offset. offset is clamped to
// [0,1]; offset 1 selects the last section with zero progress. A single
// section is returned as is. An empty list yields the zero State.
func Interpolate(offset float64, sections []Section) State {
	n := len(sections)
	if n == 0 {
		return State{}
	}

	offset = clamp01(offset)

	pos := offset * float64(n-1)
	from := int(math.Floor(pos))
	if from > n-1 {
		from = n - 1
	}
	to := min(from+1, n-1)
	t := pos - float64(from)

	a, b := sections[from], sections[to]

	return State{
		CameraZ:         a.CameraZ + (b.CameraZ-a.CameraZ)*t,
		CameraY:         a.CameraY + (b.CameraY-a.CameraY)*t,
		Background:      a.Background.Lerp(b.Background, t),
		Fog:             a.Fog.Lerp(b.Fog, t),
		SectionIndex:    from,
		SectionProgress: t,
	}
}

// Interpolator binds a validated section list.
type Interpolator struct {
	sections []Section
}

// NewInterpolator copies sections into a new interpolator.
func NewInterpolator(sections []Section) (*Interpolator, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	return &Interpolator{sections: append([]Section(nil), sections...)}, nil
}

// At interpolates the bound sections at offset.
func (p *Interpolator) At(offset float64) State {
	return Interpolate(offset, p.sections)
}

// Sections returns a copy of the bound sections.
func (p *Interpolator) Sections() []Section {
	return append([]Section(nil), p.sections...)
}

// Len returns the section count.
func (p *Interpolator) Len() int {
	return len(p.sections)
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
