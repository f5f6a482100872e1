// Package analyser turns a stream of mono PCM samples into the byte-scaled
// magnitude snapshots consumed by package bands.
//
// [Analyser] mirrors the behaviour of a browser analyser node: the latest
// FFTSize samples are Blackman windowed, transformed, smoothed over time per
// bin, converted to decibels and mapped linearly from [MinDecibels,
// MaxDecibels] onto [0,255]. [Graph] adds the connect/disconnect/close
// lifecycle of the audio graph that owns one analyser per scene.
package analyser
