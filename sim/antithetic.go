package sim

import (
	"context"
	"math"
)

// AntitheticPair simulates two GBM paths from a single normal stream seeded
// with seed. Each day one Z is drawn; the first path steps with +Z and the
// second with −Z, both using the same drift and diffusion coefficients.
func AntitheticPair(initialPrice, mu, sigma float64, days int, dt float64, seed uint64) (Path, Path, error) {
	if err := validateGBM(initialPrice, mu, sigma, days, dt); err != nil {
		return nil, nil, err
	}
	a, b := antitheticPair(initialPrice, mu, sigma, days, dt, seed)
	return a, b, nil
}

func antitheticPair(initialPrice, mu, sigma float64, days int, dt float64, seed uint64) (Path, Path) {
	rng := NewPathRNG(seed)
	drift, randomTerm := gbmCoefficients(mu, sigma, dt)

	up := newPath(initialPrice, days)
	down := newPath(initialPrice, days)
	curUp, curDown := initialPrice, initialPrice
	for d := 0; d < days; d++ {
		z := rng.NormFloat64()
		curUp *= math.Exp(drift + randomTerm*z)
		curDown *= math.Exp(drift + randomTerm*(-z))
		up = append(up, curUp)
		down = append(down, curDown)
	}
	return up, down
}

// AntitheticPairCount returns how many pairs AntitheticPaths builds for
// numPaths: floor(numPaths/2). An odd numPaths loses its final unit.
func AntitheticPairCount(numPaths int) int {
	return numPaths / 2
}

// AntitheticPaths simulates AntitheticPairCount(numPaths) pairs in parallel.
// Pair k is seeded with baseSeed+k and lands at indices 2k and 2k+1, so the
// output is [pair0_a, pair0_b, pair1_a, pair1_b, ...] of length
// 2·floor(numPaths/2).
func AntitheticPaths(ctx context.Context, initialPrice, mu, sigma float64, days int, dt float64,
	numPaths int, baseSeed uint64, workers int) ([]Path, error) {
	if err := validateGBM(initialPrice, mu, sigma, days, dt); err != nil {
		return nil, err
	}
	key := SimulationKey(baseSeed)
	pairs := AntitheticPairCount(numPaths)
	paths := make([]Path, 2*pairs)
	err := forEachIndex(ctx, pairs, workers, func(k int) error {
		paths[2*k], paths[2*k+1] = antitheticPair(initialPrice, mu, sigma, days, dt, key.PathSeed(k))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
