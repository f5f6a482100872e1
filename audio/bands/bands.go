package bands

import "math"

// MaxMagnitude is the full-scale value of one snapshot bin.
const MaxMagnitude = 255

// DefaultBins is the snapshot length produced by a 256-point transform.
const DefaultBins = 128

// MinBins is the shortest snapshot that covers every band of [DefaultRanges].
const MinBins = 64

// Bands holds normalized band energies for one frame.
type Bands struct {
	Bass    float64
	LowMid  float64
	Mid     float64
	High    float64
	Average float64
}

// Scale returns b with every field multiplied by k.
func (b Bands) Scale(k float64) Bands {
	return Bands{
		Bass:    b.Bass * k,
		LowMid:  b.LowMid * k,
		Mid:     b.Mid * k,
		High:    b.High * k,
		Average: b.Average * k,
	}
}

// Clamp returns b with every field limited to [0, 1]. NaN maps to 0.
func (b Bands) Clamp() Bands {
	return Bands{
		Bass:    clamp01(b.Bass),
		LowMid:  clamp01(b.LowMid),
		Mid:     clamp01(b.Mid),
		High:    clamp01(b.High),
		Average: clamp01(b.Average),
	}
}

// IsZero reports whether every field is exactly zero.
func (b Bands) IsZero() bool {
	return b == Bands{}
}

// Range is a half-open bin interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bins covered.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Ranges assigns a bin interval to each named band.
type Ranges struct {
	Bass   Range
	LowMid Range
	Mid    Range
	High   Range
}

// DefaultRanges returns the layout for a 128-bin snapshot.
func DefaultRanges() Ranges {
	return Ranges{
		Bass:   Range{Start: 0, End: 4},
		LowMid: Range{Start: 4, End: 12},
		Mid:    Range{Start: 12, End: 32},
		High:   Range{Start: 32, End: 64},
	}
}

// Extract averages each range of mag and divides by 255. Ranges are clipped
// to len(mag); an empty range yields 0. Average covers every bin of mag.
func Extract(mag []uint8, r Ranges) Bands {
	if len(mag) == 0 {
		return Bands{}
	}

	sum := 0
	for _, v := range mag {
		sum += int(v)
	}

	return Bands{
		Bass:    mean(mag, r.Bass),
		LowMid:  mean(mag, r.LowMid),
		Mid:     mean(mag, r.Mid),
		High:    mean(mag, r.High),
		Average: float64(sum) / float64(len(mag)) / MaxMagnitude,
	}
}

func mean(mag []uint8, r Range) float64 {
	start := max(r.Start, 0)
	end := min(r.End, len(mag))
	if end <= start {
		return 0
	}

	sum := 0
	for _, v := range mag[start:end] {
		sum += int(v)
	}

	return float64(sum) / float64(end-start) / MaxMagnitude
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
