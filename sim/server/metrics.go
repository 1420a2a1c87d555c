package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for mcsim_simulations_total.
const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid"
	outcomeCancelled = "cancelled"
	outcomeError     = "error"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	PathsGenerated     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SimulationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcsim",
			Name:      "simulations_total",
			Help:      "Simulation requests by model and outcome",
		}, []string{"model", "outcome"}),
		SimulationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mcsim",
			Name:      "simulation_duration_seconds",
			Help:      "Wall-clock time of path generation",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"model"}),
		PathsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcsim",
			Name:      "paths_generated_total",
			Help:      "Price paths generated",
		}, []string{"model"}),
	}
	reg.MustRegister(m.SimulationsTotal, m.SimulationDuration, m.PathsGenerated)
	return m
}
