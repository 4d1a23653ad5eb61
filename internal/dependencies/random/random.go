// Package random supplies the randomness used to generate player rosters.
package random

import (
	"math/rand/v2"
	"sync"
)

// Random is the source the roster generator draws from
type Random interface {
	// Intn returns a random int in [0, n), or 0 when n <= 0
	Intn(n int) int

	// Percent reports true with probability p/100
	Percent(p int) bool
}

// PCGRandom implements Random with a PCG generator. It is safe for concurrent use.
type PCGRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a randomly seeded PCGRandom
func New() *PCGRandom {
	return NewSeeded(rand.Uint64())
}

// NewSeeded creates a PCGRandom whose sequence is fixed by seed
func NewSeeded(seed uint64) *PCGRandom {
	return &PCGRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *PCGRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *PCGRandom) Percent(p int) bool {
	return r.Intn(100) < p
}
