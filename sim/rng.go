package sim

import (
	"math/rand"
)

// DefaultSeed is the base seed used when a SimulationConfig carries no seed.
const DefaultSeed uint64 = 42

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical paths.
type SimulationKey uint64

// NewSimulationKey resolves an optional seed into a SimulationKey.
// A nil seed resolves to DefaultSeed.
func NewSimulationKey(seed *uint64) SimulationKey {
	if seed == nil {
		return SimulationKey(DefaultSeed)
	}
	return SimulationKey(*seed)
}

// Seed returns the base seed of the run.
func (k SimulationKey) Seed() uint64 {
	return uint64(k)
}

// PathSeed returns the seed of work unit i: base + i.
// Arithmetic wraps at 2^64, so every index maps to exactly one seed.
//
// The index→seed mapping is the whole reproducibility contract for
// parallel generation: a unit's stream never depends on which goroutine
// ran it or in what order.
func (k SimulationKey) PathSeed(i int) uint64 {
	return uint64(k) + uint64(i)
}

// === Per-unit RNG ===

// NewPathRNG returns a generator seeded exactly once with seed.
// The uint64 seed is reinterpreted bit-for-bit as the int64 source seed.
//
// Thread-safety: the returned *rand.Rand is NOT thread-safe. Each work
// unit owns its generator; generators are never shared between units.
func NewPathRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}
