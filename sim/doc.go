// Package sim provides the Monte Carlo price-path engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - config.go, model.go: SimulationConfig and the GBM/Bootstrap model variants
//   - rng.go: seed derivation; path i is always generated from base seed + i
//   - simulator.go: Run, which validates a config and dispatches to a generator
//   - gbm.go, antithetic.go, bootstrap.go: the three path generators
//
// # Determinism
//
// Every path (or antithetic pair) owns a private *rand.Rand seeded from its
// index, and results are written by index. Output is therefore identical for
// a given config regardless of the worker count passed to WithWorkers.
//
// # Sub-packages
//   - sim/stats/: mean, sample standard deviation, nearest-rank percentile, VaR, summaries
//   - sim/marketdata/: price CSV loading and ticker metadata
//   - sim/export/: CSV exports of summaries, paths and final prices
//   - sim/chart/: PNG charts of sampled paths and the terminal-price histogram
//   - sim/server/: HTTP front end with Prometheus metrics
package sim
