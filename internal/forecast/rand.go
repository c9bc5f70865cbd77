package forecast

import (
	"math/rand/v2"
)

// Rand is the randomness the forecaster draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

type systemRand struct{}

func (systemRand) Float64() float64                   { return rand.Float64() }
func (systemRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// SystemRand draws from the runtime's global generator and is safe for
// concurrent use.
func SystemRand() Rand { return systemRand{} }

// RandFor picks a seeded source when seed is set and the system source
// otherwise.
func RandFor(seed *int64) Rand {
	if seed == nil {
		return SystemRand()
	}
	return NewRand(*seed)
}
