// Package testutil holds deterministic test signals and assertions shared by
// the package tests.
package testutil

import "math/rand"

// DeterministicNoise generates white noise in [-amplitude, amplitude] with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// GateTrain generates a rectangular gate signal: level for the first width
// samples of every period, 0 otherwise.
func GateTrain(length, period, width int, level float64) []float64 {
	out := make([]float64, length)
	if period <= 0 {
		return out
	}
	for i := range out {
		if i%period < width {
			out[i] = level
		}
	}
	return out
}

// Bounce generates a contact-bounce burst: the signal alternates between high
// and low every sample for the first bounces samples, then settles at high.
func Bounce(length, bounces int, low, high float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i < bounces && i%2 == 1 {
			out[i] = low
			continue
		}
		out[i] = high
	}
	return out
}
