package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mcsim/mcsim/sim"
	"github.com/mcsim/mcsim/sim/chart"
	"github.com/mcsim/mcsim/sim/export"
	"github.com/mcsim/mcsim/sim/marketdata"
	"github.com/mcsim/mcsim/sim/stats"
)

var (
	// CLI flags for the simulation run
	scenarioPath string        // YAML scenario; explicit flags override it
	logLevel     string        // Log verbosity level
	initialPrice float64       // S_0
	horizonDays  int           // Steps per path
	numPaths     int           // Number of paths
	dt           float64       // Time step
	modelName    string        // gbm or bootstrap
	mu           float64       // GBM drift per step
	sigma        float64       // GBM volatility per step
	antithetic   bool          // Antithetic variates (GBM only)
	seed         uint64        // Base seed
	confidence   float64       // VaR confidence level
	workers      int           // Generation goroutines (0 = GOMAXPROCS)
	timeout      time.Duration // Generation deadline (0 = none)
	exportDir    string        // Write CSV exports here when set
	chartDir     string        // Write PNG charts here when set

	// CLI flags for historical data
	csvPath  string // Price CSV
	ticker   string // Ticker within the CSV
	estimate bool   // Estimate mu/sigma from the ticker's log-returns
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mcsim",
	Short: "Monte Carlo price-path simulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd executes the simulation using parameters from the scenario file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Monte Carlo simulation and print risk statistics",
	Run: func(cmd *cobra.Command, args []string) {
		sc := sim.DefaultScenario()
		if scenarioPath != "" {
			loaded, err := sim.LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("Failed to load scenario: %v", err)
			}
			sc = *loaded
		}
		applyRunFlags(cmd, &sc)
		if err := sc.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}

		returns := loadHistory(&sc)
		cfg, err := sc.Config(returns)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting simulation: model=%s, paths=%d, horizon=%d days, dt=%v, antithetic=%v",
			sc.Model, cfg.NumPaths, cfg.HorizonDays, cfg.Dt, cfg.UseAntithetic)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		res, err := sim.Run(ctx, cfg, sim.WithWorkers(sc.Workers))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		analysis, err := res.Analyze(cfg.InitialPrice, sc.Confidence)
		if err != nil {
			logrus.Fatalf("Analysis failed: %v", err)
		}
		sim.PrintReport(os.Stdout, res, analysis, cfg.HorizonDays)

		stamp := time.Now().UTC().Format("20060102_150405")
		if exportDir != "" {
			rep := export.Report{
				Model:        reportModelName(&sc),
				InitialPrice: cfg.InitialPrice,
				HorizonDays:  cfg.HorizonDays,
				Analysis:     analysis,
				Result:       res,
			}
			if sc.Data != nil {
				rep.Ticker = sc.Data.Ticker
			}
			if _, err := export.WriteAll(exportDir, stamp, rep); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
		}

		if chartDir != "" {
			if _, err := chart.WriteAll(chartDir, stamp, res); err != nil {
				logrus.Fatalf("Chart export failed: %v", err)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

// applyRunFlags overrides scenario values with flags the user set explicitly.
// Unset flags never clobber values from the scenario file.
func applyRunFlags(cmd *cobra.Command, sc *sim.Scenario) {
	f := cmd.Flags()
	if f.Changed("initial-price") {
		sc.InitialPrice = initialPrice
	}
	if f.Changed("horizon") {
		sc.HorizonDays = horizonDays
	}
	if f.Changed("paths") {
		sc.NumPaths = numPaths
	}
	if f.Changed("dt") {
		sc.Dt = dt
	}
	if f.Changed("model") {
		sc.Model = modelName
	}
	if f.Changed("mu") {
		sc.Mu = mu
	}
	if f.Changed("sigma") {
		sc.Sigma = sigma
	}
	if f.Changed("antithetic") {
		sc.Antithetic = antithetic
	}
	if f.Changed("seed") {
		s := seed
		sc.Seed = &s
	}
	if f.Changed("confidence") {
		sc.Confidence = confidence
	}
	if f.Changed("workers") {
		sc.Workers = workers
	}
	if f.Changed("csv") || f.Changed("ticker") || f.Changed("estimate") {
		if sc.Data == nil {
			sc.Data = &sim.ScenarioData{}
		}
		if f.Changed("csv") {
			sc.Data.CSV = csvPath
		}
		if f.Changed("ticker") {
			sc.Data.Ticker = ticker
		}
		if f.Changed("estimate") {
			sc.Data.Estimate = estimate
		}
	}
}

// loadHistory reads the scenario's price history, returning log-returns for
// the bootstrap model and filling mu/sigma when estimation is requested.
func loadHistory(sc *sim.Scenario) []float64 {
	if sc.Data == nil || sc.Data.CSV == "" {
		return nil
	}
	closes, err := marketdata.LoadCloses(sc.Data.CSV, sc.Data.Ticker)
	if err != nil {
		logrus.Fatalf("Failed to load history: %v", err)
	}
	returns, err := stats.LogReturns(closes)
	if err != nil {
		logrus.Fatalf("Failed to compute log-returns for %s: %v", sc.Data.Ticker, err)
	}
	logrus.Infof("Loaded %d closes for %s", len(closes), sc.Data.Ticker)

	if sc.Data.Estimate {
		m, s, err := stats.EstimateGBM(closes)
		if err != nil {
			logrus.Fatalf("Failed to estimate parameters: %v", err)
		}
		sc.Mu, sc.Sigma = m, s
		logrus.Infof("Estimated parameters: mu = %.6f, sigma = %.6f", m, s)
	}
	return returns
}

func reportModelName(sc *sim.Scenario) string {
	if sc.Model == sim.ModelGBM && sc.Antithetic {
		return "GBM (antithetic)"
	}
	if sc.Model == sim.ModelGBM {
		return "GBM"
	}
	return "Bootstrap"
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the simulation flags of `run` to cmd.
func registerRunFlags(cmd *cobra.Command) {
	defaults := sim.DefaultScenario()

	cmd.Flags().StringVar(&scenarioPath, "config", "", "YAML scenario file; explicitly set flags override its values")
	cmd.Flags().Float64Var(&initialPrice, "initial-price", defaults.InitialPrice, "Initial price S_0")
	cmd.Flags().IntVar(&horizonDays, "horizon", defaults.HorizonDays, "Simulation horizon in steps (days)")
	cmd.Flags().IntVar(&numPaths, "paths", defaults.NumPaths, "Number of simulated paths")
	cmd.Flags().Float64Var(&dt, "dt", defaults.Dt, "Time step")
	cmd.Flags().StringVar(&modelName, "model", defaults.Model, "Simulation model (gbm, bootstrap)")
	cmd.Flags().Float64Var(&mu, "mu", defaults.Mu, "GBM drift per unit time")
	cmd.Flags().Float64Var(&sigma, "sigma", defaults.Sigma, "GBM volatility per unit time")
	cmd.Flags().BoolVar(&antithetic, "antithetic", false, "Use antithetic variates (GBM only; odd path counts drop the last path)")
	cmd.Flags().Uint64Var(&seed, "seed", sim.DefaultSeed, "Base seed; path i uses seed+i")
	cmd.Flags().Float64Var(&confidence, "confidence", defaults.Confidence, "VaR confidence level")
	cmd.Flags().IntVar(&workers, "workers", 0, "Goroutines generating paths (0 = GOMAXPROCS)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort generation after this duration (0 = no limit)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Write summary, path and final-price CSVs into this directory")
	cmd.Flags().StringVar(&chartDir, "chart-dir", "", "Write price-path and terminal-price histogram PNGs into this directory")

	cmd.Flags().StringVar(&csvPath, "csv", "", "Price CSV with <Ticker>,<DTYYYYMMDD>,...,<Close>,<Volume> columns")
	cmd.Flags().StringVar(&ticker, "ticker", "", "Ticker to read from --csv")
	cmd.Flags().BoolVar(&estimate, "estimate", false, "Estimate mu and sigma from the ticker's log-returns")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	registerRunFlags(runCmd)

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(tickersCmd)
	rootCmd.AddCommand(serveCmd)
}
