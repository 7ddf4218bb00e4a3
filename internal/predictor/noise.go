// Package predictor implements the race outcome prediction core: the
// weighted perturbation ranker, the pluggable model-backed predictor with
// its statistical fallback, and the rank normalizer both backends share.
package predictor

import "math/rand"

// NoiseSource supplies the entropy consumed by the prediction backends.
// *math/rand.Rand satisfies it directly, which is how tests inject a
// seeded generator for deterministic runs.
//
// A NoiseSource handed to a shared Ranker or ModelPredictor must be safe
// for concurrent use; seeded *rand.Rand instances are not, so they belong
// in single-goroutine contexts such as tests.
type NoiseSource interface {
	// NormFloat64 returns a standard normal draw.
	NormFloat64() float64
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
}

// sharedSource delegates to math/rand's top-level generator, which is
// safe for concurrent use.
type sharedSource struct{}

func (sharedSource) NormFloat64() float64 { return rand.NormFloat64() }
func (sharedSource) Float64() float64     { return rand.Float64() }

// DefaultNoise returns the process-wide concurrency-safe noise source.
func DefaultNoise() NoiseSource {
	return sharedSource{}
}

// gaussian draws from a zero-mean normal with the given standard deviation.
func gaussian(src NoiseSource, stddev float64) float64 {
	return src.NormFloat64() * stddev
}

// uniform draws uniformly from [min, max).
func uniform(src NoiseSource, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
