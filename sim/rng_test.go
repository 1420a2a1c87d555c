package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed *uint64
		want uint64
	}{
		{"nil seed uses default", nil, DefaultSeed},
		{"explicit zero", WithSeed(0), 0},
		{"positive seed", WithSeed(7), 7},
		{"max uint64", WithSeed(math.MaxUint64), math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if key.Seed() != tt.want {
				t.Errorf("NewSimulationKey(%v).Seed() = %d, want %d", tt.seed, key.Seed(), tt.want)
			}
		})
	}
}

func TestSimulationKey_PathSeed(t *testing.T) {
	// BDD: unit i is seeded with base + i
	key := SimulationKey(100)
	for i := 0; i < 5; i++ {
		if got := key.PathSeed(i); got != 100+uint64(i) {
			t.Errorf("PathSeed(%d) = %d, want %d", i, got, 100+uint64(i))
		}
	}
}

func TestSimulationKey_PathSeedWraps(t *testing.T) {
	// BDD: seed arithmetic wraps at 2^64 instead of failing
	key := SimulationKey(math.MaxUint64)
	if got := key.PathSeed(1); got != 0 {
		t.Errorf("PathSeed(1) from MaxUint64 = %d, want 0", got)
	}
	if got := key.PathSeed(3); got != 2 {
		t.Errorf("PathSeed(3) from MaxUint64 = %d, want 2", got)
	}
}

// === Per-unit RNG Tests ===

func TestNewPathRNG_Deterministic(t *testing.T) {
	// BDD: same seed produces the same stream
	a := NewPathRNG(42)
	b := NewPathRNG(42)
	for i := 0; i < 100; i++ {
		va, vb := a.NormFloat64(), b.NormFloat64()
		if va != vb {
			t.Fatalf("draw %d: got %v and %v, want identical", i, va, vb)
		}
	}
}

func TestNewPathRNG_AdjacentSeedsDiffer(t *testing.T) {
	// BDD: neighbouring path seeds start different streams
	a := NewPathRNG(42)
	b := NewPathRNG(43)
	same := 0
	for i := 0; i < 10; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 10 {
		t.Error("seeds 42 and 43 produced identical streams")
	}
}

func TestNewPathRNG_LargeSeedReinterpreted(t *testing.T) {
	// BDD: seeds above MaxInt64 are usable and still deterministic
	a := NewPathRNG(math.MaxUint64)
	b := NewPathRNG(math.MaxUint64)
	if a.Int63() != b.Int63() {
		t.Error("MaxUint64 seed is not deterministic")
	}
}

// === Benchmarks ===

func BenchmarkNewPathRNG(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewPathRNG(uint64(i))
	}
}
