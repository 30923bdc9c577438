package systems

import "math/rand/v2"

// Rand is the random source used by every stochastic subsystem.
// *rand.Rand from math/rand/v2 satisfies it; tests substitute scripted
// sequences to pin probability branches.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand creates a PCG-backed source. A zero seed picks a random one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// chance rolls a single Bernoulli trial.
func chance(rng Rand, p float64) bool {
	return rng.Float64() < p
}
