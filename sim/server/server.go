// Package server exposes the simulation engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mcsim/mcsim/sim"
	"github.com/mcsim/mcsim/sim/stats"
)

// Options bounds what a single request may ask for.
type Options struct {
	MaxPaths   int           // 0 = unlimited
	MaxHorizon int           // 0 = unlimited
	MaxCells   int64         // num_paths × (horizon_days+1) prices held in memory; 0 = unlimited
	Workers    int           // passed to sim.WithWorkers
	Timeout    time.Duration // per-request generation deadline; 0 = none
}

// DefaultOptions are the limits used by `mcsim serve`.
func DefaultOptions() Options {
	return Options{
		MaxPaths:   1_000_000,
		MaxHorizon: 3650,
		MaxCells:   50_000_000, // 400 MB of float64 prices
		Timeout:    30 * time.Second,
	}
}

// SimulationRequest is the JSON body of POST /api/v1/simulations.
// Omitted fields keep the values of sim.DefaultScenario.
type SimulationRequest struct {
	InitialPrice       float64   `json:"initial_price"`
	HorizonDays        int       `json:"horizon_days"`
	NumPaths           int       `json:"num_paths"`
	Dt                 float64   `json:"dt"`
	Model              string    `json:"model"`
	Mu                 float64   `json:"mu"`
	Sigma              float64   `json:"sigma"`
	Antithetic         bool      `json:"antithetic"`
	Seed               *uint64   `json:"seed,omitempty"`
	Confidence         float64   `json:"confidence"`
	HistoricalReturns  []float64 `json:"historical_returns,omitempty"`
	Closes             []float64 `json:"closes,omitempty"`
	Estimate           bool      `json:"estimate"` // fill mu/sigma from closes
	IncludeFinalPrices bool      `json:"include_final_prices"`
}

func defaultRequest() SimulationRequest {
	sc := sim.DefaultScenario()
	return SimulationRequest{
		InitialPrice: sc.InitialPrice,
		HorizonDays:  sc.HorizonDays,
		NumPaths:     sc.NumPaths,
		Dt:           sc.Dt,
		Model:        sc.Model,
		Mu:           sc.Mu,
		Sigma:        sc.Sigma,
		Confidence:   sc.Confidence,
	}
}

// config turns the request into a SimulationConfig, deriving log-returns
// from closes when historical_returns is not given.
func (r *SimulationRequest) config() (sim.SimulationConfig, error) {
	if r.Confidence < 0 || r.Confidence > 1 {
		return sim.SimulationConfig{}, fmt.Errorf("%w: confidence must be in [0, 1], got %v", sim.ErrInvalidConfig, r.Confidence)
	}
	cfg := sim.SimulationConfig{
		InitialPrice:  r.InitialPrice,
		HorizonDays:   r.HorizonDays,
		NumPaths:      r.NumPaths,
		Dt:            r.Dt,
		UseAntithetic: r.Antithetic,
		Seed:          r.Seed,
	}
	switch r.Model {
	case sim.ModelGBM:
		mu, sigma := r.Mu, r.Sigma
		if r.Estimate {
			var err error
			if mu, sigma, err = stats.EstimateGBM(r.Closes); err != nil {
				return cfg, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
			}
		}
		cfg.Model = sim.GBM{Mu: mu, Sigma: sigma}
	case sim.ModelBootstrap:
		returns := r.HistoricalReturns
		if len(returns) == 0 && len(r.Closes) > 0 {
			var err error
			if returns, err = stats.LogReturns(r.Closes); err != nil {
				return cfg, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
			}
		}
		cfg.Model = sim.Bootstrap{HistoricalReturns: returns}
	default:
		return cfg, fmt.Errorf("%w: unknown model %q; valid: gbm, bootstrap", sim.ErrInvalidConfig, r.Model)
	}
	return cfg, cfg.Validate()
}

// SimulationResponse is the JSON reply of POST /api/v1/simulations.
type SimulationResponse struct {
	Model           string        `json:"model"`
	Seed            uint64        `json:"seed"`
	NumPaths        int           `json:"num_paths"`
	HorizonDays     int           `json:"horizon_days"`
	ExecutionTimeMs int64         `json:"execution_time_ms"`
	Analysis        *sim.Analysis `json:"analysis"`
	FinalPrices     []float64     `json:"final_prices,omitempty"`
}

// Server serves simulation requests.
type Server struct {
	opts    Options
	metrics *Metrics
	engine  *gin.Engine
}

// New builds a Server with its own metrics registry and routes.
func New(opts Options) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		opts:    opts,
		metrics: NewMetrics(reg),
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/simulations", s.simulate)
	}
	s.engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) simulate(c *gin.Context) {
	req := defaultRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg, err := req.config()
	if err == nil {
		err = s.checkLimits(&cfg)
	}
	if err != nil {
		s.metrics.SimulationsTotal.WithLabelValues(modelLabel(req.Model), outcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := cfg.Model.Name()

	ctx := c.Request.Context()
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	res, err := sim.Run(ctx, cfg, sim.WithWorkers(s.opts.Workers))
	if err != nil {
		status, outcome := http.StatusInternalServerError, outcomeError
		switch {
		case errors.Is(err, sim.ErrInvalidConfig):
			status, outcome = http.StatusBadRequest, outcomeInvalid
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status, outcome = http.StatusServiceUnavailable, outcomeCancelled
		}
		s.metrics.SimulationsTotal.WithLabelValues(model, outcome).Inc()
		logrus.WithError(err).WithField("model", model).Warn("simulation failed")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.metrics.SimulationDuration.WithLabelValues(model).Observe(res.ExecutionTime.Seconds())
	s.metrics.PathsGenerated.WithLabelValues(model).Add(float64(len(res.Paths)))

	analysis, err := res.Analyze(cfg.InitialPrice, req.Confidence)
	if err != nil {
		s.metrics.SimulationsTotal.WithLabelValues(model, outcomeInvalid).Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	s.metrics.SimulationsTotal.WithLabelValues(model, outcomeOK).Inc()

	resp := SimulationResponse{
		Model:           model,
		Seed:            res.Seed,
		NumPaths:        len(res.Paths),
		HorizonDays:     cfg.HorizonDays,
		ExecutionTimeMs: res.ExecutionTime.Milliseconds(),
		Analysis:        analysis,
	}
	if req.IncludeFinalPrices {
		resp.FinalPrices = res.TerminalPrices()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) checkLimits(cfg *sim.SimulationConfig) error {
	if s.opts.MaxPaths > 0 && cfg.NumPaths > s.opts.MaxPaths {
		return fmt.Errorf("%w: num_paths %d exceeds limit %d", sim.ErrInvalidConfig, cfg.NumPaths, s.opts.MaxPaths)
	}
	if s.opts.MaxHorizon > 0 && cfg.HorizonDays > s.opts.MaxHorizon {
		return fmt.Errorf("%w: horizon_days %d exceeds limit %d", sim.ErrInvalidConfig, cfg.HorizonDays, s.opts.MaxHorizon)
	}
	if cells := int64(cfg.NumPaths) * int64(cfg.HorizonDays+1); s.opts.MaxCells > 0 && cells > s.opts.MaxCells {
		return fmt.Errorf("%w: num_paths × (horizon_days+1) = %d exceeds limit %d", sim.ErrInvalidConfig, cells, s.opts.MaxCells)
	}
	return nil
}

// modelLabel keeps metric label cardinality bounded for unknown model names.
func modelLabel(name string) string {
	if sim.ValidModels[name] {
		return name
	}
	return "unknown"
}
