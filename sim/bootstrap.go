package sim

import (
	"context"
	"math"
)

func validateBootstrap(initialPrice float64, returns []float64, days int) error {
	// dt does not enter the bootstrap recurrence; 1 satisfies the shared check.
	if err := validateStepParams(initialPrice, days, 1); err != nil {
		return err
	}
	return Bootstrap{HistoricalReturns: returns}.validate()
}

// BootstrapPath simulates one path by resampling historical log-returns with
// replacement: each step draws a uniform index into returns and applies
// S_{t+1} = S_t · exp(returns[idx]). Empty returns is a configuration error
// and no draw is attempted.
func BootstrapPath(initialPrice float64, returns []float64, days int, seed uint64) (Path, error) {
	if err := validateBootstrap(initialPrice, returns, days); err != nil {
		return nil, err
	}
	return bootstrapPath(initialPrice, returns, days, seed), nil
}

func bootstrapPath(initialPrice float64, returns []float64, days int, seed uint64) Path {
	rng := NewPathRNG(seed)
	prices := newPath(initialPrice, days)
	current := initialPrice
	for d := 0; d < days; d++ {
		r := returns[rng.Intn(len(returns))]
		current *= math.Exp(r)
		prices = append(prices, current)
	}
	return prices
}

// BootstrapPaths simulates numPaths bootstrap paths in parallel; path i is
// exactly BootstrapPath(..., baseSeed+i). returns is shared read-only.
func BootstrapPaths(ctx context.Context, initialPrice float64, returns []float64, days int,
	numPaths int, baseSeed uint64, workers int) ([]Path, error) {
	if err := validateBootstrap(initialPrice, returns, days); err != nil {
		return nil, err
	}
	key := SimulationKey(baseSeed)
	paths := make([]Path, numPaths)
	err := forEachIndex(ctx, numPaths, workers, func(i int) error {
		paths[i] = bootstrapPath(initialPrice, returns, days, key.PathSeed(i))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
