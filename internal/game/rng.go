package game

import "math/rand"

// Rand is the random source a session draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a math/rand source seeded with seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- game randomness only
}
