package sampler

import "math/rand/v2"

// Rand is the randomness source consumed by a Sampler.
// Float64 must return a uniform value in [0, 1); *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed generator. A zero seed picks a random one.
// The generator is not safe for concurrent use.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
