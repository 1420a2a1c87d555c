package sim

import (
	"fmt"
	"math"
)

// SimulationModel selects the stochastic process that drives price paths.
// The set of implementations is closed: GBM and Bootstrap.
type SimulationModel interface {
	// Name returns the model identifier used in logs, metrics and exports.
	Name() string
	validate() error
}

// Model identifiers.
const (
	ModelGBM       = "gbm"
	ModelBootstrap = "bootstrap"
)

// ValidModels is the set of recognized model names.
var ValidModels = map[string]bool{ModelGBM: true, ModelBootstrap: true}

// GBM is Geometric Brownian Motion with drift Mu and volatility Sigma per unit time.
type GBM struct {
	Mu    float64
	Sigma float64 // must be >= 0
}

// Name implements SimulationModel.
func (GBM) Name() string { return ModelGBM }

func (m GBM) validate() error {
	if err := requireFinite("mu", m.Mu); err != nil {
		return err
	}
	if err := requireFinite("sigma", m.Sigma); err != nil {
		return err
	}
	if m.Sigma < 0 {
		return fmt.Errorf("%w: sigma must be non-negative, got %v", ErrInvalidConfig, m.Sigma)
	}
	return nil
}

// Bootstrap resamples HistoricalReturns (log-returns) with replacement.
// HistoricalReturns is read-only once handed to the engine.
type Bootstrap struct {
	HistoricalReturns []float64
}

// Name implements SimulationModel.
func (Bootstrap) Name() string { return ModelBootstrap }

func (m Bootstrap) validate() error {
	if len(m.HistoricalReturns) == 0 {
		return fmt.Errorf("%w: bootstrap model requires at least one historical return", ErrInvalidConfig)
	}
	for i, r := range m.HistoricalReturns {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: historical return %d is not finite: %v", ErrInvalidConfig, i, r)
		}
	}
	return nil
}
