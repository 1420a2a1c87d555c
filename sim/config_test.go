package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() SimulationConfig {
	return SimulationConfig{
		InitialPrice: 100,
		HorizonDays:  30,
		NumPaths:     100,
		Dt:           1,
		Model:        GBM{Mu: 0.05, Sigma: 0.2},
	}
}

func TestSimulationConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SimulationConfig)
		wantErr bool
	}{
		{"valid gbm", func(c *SimulationConfig) {}, false},
		{"valid bootstrap", func(c *SimulationConfig) { c.Model = Bootstrap{HistoricalReturns: []float64{0.01}} }, false},
		{"zero paths allowed", func(c *SimulationConfig) { c.NumPaths = 0 }, false},
		{"zero horizon allowed", func(c *SimulationConfig) { c.HorizonDays = 0 }, false},
		{"zero sigma allowed", func(c *SimulationConfig) { c.Model = GBM{Mu: 0.01} }, false},
		{"zero initial price", func(c *SimulationConfig) { c.InitialPrice = 0 }, true},
		{"NaN initial price", func(c *SimulationConfig) { c.InitialPrice = math.NaN() }, true},
		{"negative dt", func(c *SimulationConfig) { c.Dt = -1 }, true},
		{"infinite dt", func(c *SimulationConfig) { c.Dt = math.Inf(1) }, true},
		{"negative horizon", func(c *SimulationConfig) { c.HorizonDays = -1 }, true},
		{"negative paths", func(c *SimulationConfig) { c.NumPaths = -1 }, true},
		{"nil model", func(c *SimulationConfig) { c.Model = nil }, true},
		{"negative sigma", func(c *SimulationConfig) { c.Model = GBM{Sigma: -0.2} }, true},
		{"empty bootstrap history", func(c *SimulationConfig) { c.Model = Bootstrap{} }, true},
		{"infinite bootstrap return", func(c *SimulationConfig) {
			c.Model = Bootstrap{HistoricalReturns: []float64{0.01, math.Inf(-1)}}
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithSeed_ReturnsDistinctPointers(t *testing.T) {
	a, b := WithSeed(1), WithSeed(1)
	assert.Equal(t, *a, *b)
	assert.NotSame(t, a, b)
}

func TestModelNames(t *testing.T) {
	assert.Equal(t, ModelGBM, GBM{}.Name())
	assert.Equal(t, ModelBootstrap, Bootstrap{}.Name())
	assert.True(t, ValidModels[ModelGBM])
	assert.True(t, ValidModels[ModelBootstrap])
	assert.False(t, ValidModels["heston"])
}
