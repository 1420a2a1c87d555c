package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig marks every configuration error. Callers test with errors.Is.
var ErrInvalidConfig = errors.New("invalid simulation config")

// SimulationConfig describes one simulation run. The engine only reads it.
type SimulationConfig struct {
	InitialPrice  float64         // S_0, must be > 0
	HorizonDays   int             // steps per path; paths have HorizonDays+1 prices
	NumPaths      int             // number of paths requested
	Dt            float64         // time step, must be > 0
	Model         SimulationModel // GBM or Bootstrap
	UseAntithetic bool            // GBM only; ignored for Bootstrap
	Seed          *uint64         // nil = DefaultSeed
}

// Validate checks the config before any path is generated.
func (c *SimulationConfig) Validate() error {
	if err := requireFinite("initial_price", c.InitialPrice); err != nil {
		return err
	}
	if c.InitialPrice <= 0 {
		return fmt.Errorf("%w: initial_price must be positive, got %v", ErrInvalidConfig, c.InitialPrice)
	}
	if err := requireFinite("dt", c.Dt); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Dt)
	}
	if c.HorizonDays < 0 {
		return fmt.Errorf("%w: horizon_days must be non-negative, got %d", ErrInvalidConfig, c.HorizonDays)
	}
	if c.NumPaths < 0 {
		return fmt.Errorf("%w: num_paths must be non-negative, got %d", ErrInvalidConfig, c.NumPaths)
	}
	if c.Model == nil {
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	return c.Model.validate()
}

// WithSeed returns a pointer to seed, for filling SimulationConfig.Seed inline.
func WithSeed(seed uint64) *uint64 {
	return &seed
}

func requireFinite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidConfig, name, val)
	}
	return nil
}

// validateStepParams is shared by the single-path generators.
func validateStepParams(initialPrice float64, days int, dt float64) error {
	if err := requireFinite("initial_price", initialPrice); err != nil {
		return err
	}
	if initialPrice <= 0 {
		return fmt.Errorf("%w: initial_price must be positive, got %v", ErrInvalidConfig, initialPrice)
	}
	if err := requireFinite("dt", dt); err != nil {
		return err
	}
	if dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, dt)
	}
	if days < 0 {
		return fmt.Errorf("%w: days must be non-negative, got %d", ErrInvalidConfig, days)
	}
	return nil
}
