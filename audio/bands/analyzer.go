package bands

// Source supplies the latest magnitude snapshot. ByteFrequencyData fills dst
// and reports false when no audio graph is connected.
type Source interface {
	ByteFrequencyData(dst []uint8) bool
}

// SourceFunc adapts a function to [Source].
type SourceFunc func(dst []uint8) bool

// ByteFrequencyData calls f.
func (f SourceFunc) ByteFrequencyData(dst []uint8) bool { return f(dst) }

// Analyzer owns the reusable snapshot buffer and the band layout.
type Analyzer struct {
	ranges   Ranges
	snapshot []uint8
}

// NewAnalyzer creates an analyzer for snapshots of the given bin count.
// Non-positive bins fall back to [DefaultBins].
func NewAnalyzer(bins int, ranges Ranges) *Analyzer {
	if bins <= 0 {
		bins = DefaultBins
	}
	return &Analyzer{
		ranges:   ranges,
		snapshot: make([]uint8, bins),
	}
}

// Read pulls one snapshot from src and extracts its bands. A nil or
// disconnected source yields all-zero bands, never an error.
func (a *Analyzer) Read(src Source) (Bands, bool) {
	if src == nil {
		return Bands{}, false
	}

	if !src.ByteFrequencyData(a.snapshot) {
		clear(a.snapshot)
		return Bands{}, false
	}

	return Extract(a.snapshot, a.ranges), true
}

// Snapshot returns the bins read by the last successful [Analyzer.Read].
// The slice is reused on the next call.
func (a *Analyzer) Snapshot() []uint8 {
	return a.snapshot
}

// Ranges returns the band layout.
func (a *Analyzer) Ranges() Ranges {
	return a.ranges
}
