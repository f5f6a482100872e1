package material

import (
	"math"

	"github.com/cwbudde/algo-glass/frame"
)

// Particles rotates the two sparkle groups with scroll.
type Particles struct {
	// Groups holds the xyz Euler rotation of each group.
	Groups [2][3]float64
}

// Consume sets the group rotations for s.
func (p *Particles) Consume(s frame.Snapshot) {
	o := s.Scroll.Offset
	p.Groups[0] = [3]float64{o * math.Pi * 0.5, o * math.Pi * 2, 0}
	p.Groups[1] = [3]float64{0, -o * math.Pi * 1.5, o * math.Pi * 0.3}
}
