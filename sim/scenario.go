package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the YAML form of a simulation run, loaded with LoadScenario.
// Historical data for the bootstrap model (or for estimating GBM
// parameters) is referenced by Data and resolved by the caller.
type Scenario struct {
	InitialPrice float64       `yaml:"initial_price"`
	HorizonDays  int           `yaml:"horizon_days"`
	NumPaths     int           `yaml:"num_paths"`
	Dt           float64       `yaml:"dt"`
	Model        string        `yaml:"model"` // "gbm" or "bootstrap"
	Mu           float64       `yaml:"mu"`
	Sigma        float64       `yaml:"sigma"`
	Antithetic   bool          `yaml:"antithetic"`
	Seed         *uint64       `yaml:"seed,omitempty"` // absent = DefaultSeed
	Confidence   float64       `yaml:"confidence,omitempty"`
	Workers      int           `yaml:"workers,omitempty"`
	Data         *ScenarioData `yaml:"data,omitempty"`
}

// ScenarioData points at a price CSV and a ticker within it.
type ScenarioData struct {
	CSV      string `yaml:"csv"`
	Ticker   string `yaml:"ticker"`
	Estimate bool   `yaml:"estimate"` // fill mu/sigma from the ticker's log-returns
}

// DefaultScenario returns the defaults used when no scenario file is given.
func DefaultScenario() Scenario {
	return Scenario{
		InitialPrice: 100,
		HorizonDays:  30,
		NumPaths:     1000,
		Dt:           1,
		Model:        ModelGBM,
		Mu:           0,
		Sigma:        0.2,
		Confidence:   DefaultConfidence,
	}
}

// LoadScenario reads a YAML scenario on top of DefaultScenario.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc := DefaultScenario()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks the fields that do not depend on historical data.
func (s *Scenario) Validate() error {
	if !ValidModels[s.Model] {
		return fmt.Errorf("%w: unknown model %q; valid: gbm, bootstrap", ErrInvalidConfig, s.Model)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be in [0, 1], got %v", ErrInvalidConfig, s.Confidence)
	}
	if s.Model == ModelBootstrap && (s.Data == nil || s.Data.CSV == "" || s.Data.Ticker == "") {
		return fmt.Errorf("%w: bootstrap model requires data.csv and data.ticker", ErrInvalidConfig)
	}
	if s.Data != nil && s.Data.CSV != "" && s.Data.Ticker == "" {
		return fmt.Errorf("%w: data.csv %q requires data.ticker", ErrInvalidConfig, s.Data.CSV)
	}
	if s.Data != nil && s.Data.Estimate && (s.Data.CSV == "" || s.Data.Ticker == "") {
		return fmt.Errorf("%w: data.estimate requires data.csv and data.ticker", ErrInvalidConfig)
	}
	return nil
}

// Config builds the SimulationConfig for s. returns are the historical
// log-returns, used only by the bootstrap model.
func (s *Scenario) Config(returns []float64) (SimulationConfig, error) {
	if err := s.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	cfg := SimulationConfig{
		InitialPrice:  s.InitialPrice,
		HorizonDays:   s.HorizonDays,
		NumPaths:      s.NumPaths,
		Dt:            s.Dt,
		UseAntithetic: s.Antithetic,
		Seed:          s.Seed,
	}
	switch s.Model {
	case ModelGBM:
		cfg.Model = GBM{Mu: s.Mu, Sigma: s.Sigma}
	case ModelBootstrap:
		cfg.Model = Bootstrap{HistoricalReturns: returns}
	}
	return cfg, cfg.Validate()
}
