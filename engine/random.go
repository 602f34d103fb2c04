package engine

import "math/rand"

// Trialer is the probability source the scheduler consults while emitting.
type Trialer interface {
	Trial(percent int) bool
}

// Gate is the default Trialer, backed by a seedable pseudo-random source.
// It is only ever used from the tick goroutine.
type Gate struct {
	rng *rand.Rand
}

// NewGate creates a gate seeded for reproducible runs.
func NewGate(seed int64) *Gate {
	return &Gate{rng: rand.New(rand.NewSource(seed))}
}

// Trial draws one sample in [1,100] and reports whether an event with the
// given percent chance fires. 100 always fires without consuming randomness,
// so fully-open runs are identical for any seed.
func (g *Gate) Trial(percent int) bool {
	if percent >= 100 {
		return true
	}
	return g.rng.Intn(100)+1 <= percent
}
