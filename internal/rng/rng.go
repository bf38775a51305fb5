package rng

import "math/rand"

// Source is the random source injected into every engine. Production code
// uses a seeded math/rand generator; tests substitute a fixed sequence.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSeeded returns a Source backed by math/rand with the given seed.
func NewSeeded(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Uniform draws a value in [min, max).
func Uniform(s Source, min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// Chance reports true with probability p.
func Chance(s Source, p float64) bool {
	return s.Float64() < p
}

// Between draws an int in [lo, hi] inclusive.
func Between(s Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}
