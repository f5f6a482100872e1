package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Spectrum returns a byte magnitude snapshot of the given size with bins
// [start, end) set to level and everything else zero.
func Spectrum(size, start, end int, level uint8) []uint8 {
	out := make([]uint8, size)
	for i := max(start, 0); i < end && i < size; i++ {
		out[i] = level
	}
	return out
}

// RandomSpectrum returns a byte magnitude snapshot with a fixed seed.
func RandomSpectrum(seed int64, size int) []uint8 {
	out := make([]uint8, size)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = uint8(rng.Intn(256))
	}
	return out
}
