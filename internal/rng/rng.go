// Package rng provides the seeded random streams consumed by the growth engine.
//
// A Stream is a plain value threaded through every call that draws from it, so a
// given seed always reproduces the same sequence of draws.
package rng

import "math/rand/v2"

// streamKey is mixed into the second PCG word so seed 0 is still a usable stream.
const streamKey = 0x9e3779b97f4a7c15

type Stream struct {
	r *rand.Rand
}

// New returns the main stream for a tree seed.
func New(seed int64) *Stream {
	return FromSeed(uint64(seed))
}

// FromSeed returns a stream for a raw 64-bit seed, used for per-branch leaf streams.
func FromSeed(seed uint64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(seed, seed^streamKey))}
}

// Intn returns a value in [0, n). A non-positive n yields 0 without consuming a draw.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Seed draws a fresh seed for a derived stream.
func (s *Stream) Seed() uint64 {
	return s.r.Uint64()
}
