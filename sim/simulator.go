package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// SimulationResult is the output of one Run. It is owned by the caller and
// threaded explicitly to whichever consumer needs it next (analysis, export).
type SimulationResult struct {
	Paths         []Path
	ExecutionTime time.Duration // wall-clock time of path generation only
	Seed          uint64        // resolved base seed
	Model         string        // model name, see SimulationModel.Name
}

// TerminalPrices returns the last price of every path, in path order.
func (r *SimulationResult) TerminalPrices() []float64 {
	out := make([]float64, len(r.Paths))
	for i, p := range r.Paths {
		out[i] = p.Terminal()
	}
	return out
}

type runOptions struct {
	workers int
	now     func() time.Time
}

// RunOption customizes Run.
type RunOption func(*runOptions)

// WithWorkers bounds the number of goroutines generating paths.
// n <= 0 means runtime.GOMAXPROCS(0). Output does not depend on n.
func WithWorkers(n int) RunOption {
	return func(o *runOptions) { o.workers = n }
}

// WithClock replaces time.Now for measuring ExecutionTime.
func WithClock(now func() time.Time) RunOption {
	return func(o *runOptions) { o.now = now }
}

// Run validates cfg, resolves the seed, generates all paths with the
// generator selected by cfg.Model and cfg.UseAntithetic, and times the
// generation phase. Any error aborts the whole run; no partial result is
// returned. Cancelling ctx stops generation early.
func Run(ctx context.Context, cfg SimulationConfig, opts ...RunOption) (*SimulationResult, error) {
	o := runOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := NewSimulationKey(cfg.Seed)
	log := logrus.WithFields(logrus.Fields{
		"model":   cfg.Model.Name(),
		"paths":   cfg.NumPaths,
		"horizon": cfg.HorizonDays,
		"seed":    key.Seed(),
	})

	var (
		paths []Path
		err   error
	)
	start := o.now()
	switch m := cfg.Model.(type) {
	case GBM:
		if cfg.UseAntithetic {
			if cfg.NumPaths%2 != 0 {
				log.Warnf("antithetic variates need an even path count; generating %d of %d paths",
					2*AntitheticPairCount(cfg.NumPaths), cfg.NumPaths)
			}
			paths, err = AntitheticPaths(ctx, cfg.InitialPrice, m.Mu, m.Sigma, cfg.HorizonDays, cfg.Dt,
				cfg.NumPaths, key.Seed(), o.workers)
		} else {
			paths, err = GBMPaths(ctx, cfg.InitialPrice, m.Mu, m.Sigma, cfg.HorizonDays, cfg.Dt,
				cfg.NumPaths, key.Seed(), o.workers)
		}
	case Bootstrap:
		if cfg.UseAntithetic {
			log.Debug("antithetic variates apply to GBM only; ignored for bootstrap")
		}
		paths, err = BootstrapPaths(ctx, cfg.InitialPrice, m.HistoricalReturns, cfg.HorizonDays,
			cfg.NumPaths, key.Seed(), o.workers)
	default:
		return nil, fmt.Errorf("%w: unsupported model %T", ErrInvalidConfig, cfg.Model)
	}
	elapsed := o.now().Sub(start)
	if err != nil {
		return nil, fmt.Errorf("generating paths: %w", err)
	}

	log.WithField("elapsed", elapsed).Debug("simulation complete")
	return &SimulationResult{
		Paths:         paths,
		ExecutionTime: elapsed,
		Seed:          key.Seed(),
		Model:         cfg.Model.Name(),
	}, nil
}
