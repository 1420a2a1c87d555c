package sim

import (
	"context"
	"math"
)

// gbmCoefficients returns the per-step drift (mu - σ²/2)·dt and the
// diffusion scale σ·√dt.
func gbmCoefficients(mu, sigma, dt float64) (drift, randomTerm float64) {
	return (mu - 0.5*sigma*sigma) * dt, sigma * math.Sqrt(dt)
}

func validateGBM(initialPrice, mu, sigma float64, days int, dt float64) error {
	if err := validateStepParams(initialPrice, days, dt); err != nil {
		return err
	}
	return GBM{Mu: mu, Sigma: sigma}.validate()
}

// GBMPath simulates one Geometric Brownian Motion path:
//
//	S_{t+dt} = S_t · exp((mu − σ²/2)·dt + σ·√dt·Z_t),  Z_t ~ N(0,1)
//
// The generator is seeded exactly once with seed, so identical arguments
// yield an identical path. days == 0 yields [initialPrice].
func GBMPath(initialPrice, mu, sigma float64, days int, dt float64, seed uint64) (Path, error) {
	if err := validateGBM(initialPrice, mu, sigma, days, dt); err != nil {
		return nil, err
	}
	return gbmPath(initialPrice, mu, sigma, days, dt, seed), nil
}

func gbmPath(initialPrice, mu, sigma float64, days int, dt float64, seed uint64) Path {
	rng := NewPathRNG(seed)
	drift, randomTerm := gbmCoefficients(mu, sigma, dt)

	prices := newPath(initialPrice, days)
	current := initialPrice
	for d := 0; d < days; d++ {
		z := rng.NormFloat64()
		current *= math.Exp(drift + randomTerm*z)
		prices = append(prices, current)
	}
	return prices
}

// GBMPaths simulates numPaths independent GBM paths in parallel. Path i is
// exactly GBMPath(..., baseSeed+i) regardless of workers (<= 0 means GOMAXPROCS).
func GBMPaths(ctx context.Context, initialPrice, mu, sigma float64, days int, dt float64,
	numPaths int, baseSeed uint64, workers int) ([]Path, error) {
	if err := validateGBM(initialPrice, mu, sigma, days, dt); err != nil {
		return nil, err
	}
	key := SimulationKey(baseSeed)
	paths := make([]Path, numPaths)
	err := forEachIndex(ctx, numPaths, workers, func(i int) error {
		paths[i] = gbmPath(initialPrice, mu, sigma, days, dt, key.PathSeed(i))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
