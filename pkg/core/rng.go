package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// A single RNG is meant to be seeded once and advanced by every draw.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Coord returns a grid coordinate in [0, n) by scaling a uniform float and
// truncating, so each axis costs exactly one draw.
func (r *RNG) Coord(n int) int {
	if n <= 0 {
		return 0
	}
	c := int(r.r.Float64() * float64(n))
	if c >= n {
		c = n - 1
	}
	return c
}
