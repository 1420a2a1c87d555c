package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mcsim/mcsim/sim/server"
)

// --- mcsim serve ---

var (
	serveAddr string
	serveOpts = server.DefaultOptions()
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over HTTP",
	Long:  "Serve POST /api/v1/simulations, GET /healthz and Prometheus metrics on GET /metrics until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		if logrus.GetLevel() < logrus.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logrus.WithFields(logrus.Fields{
			"max_paths":   serveOpts.MaxPaths,
			"max_horizon": serveOpts.MaxHorizon,
			"max_cells":   serveOpts.MaxCells,
			"timeout":     serveOpts.Timeout,
		}).Info("Starting server")
		err := server.New(serveOpts).ListenAndServe(ctx, serveAddr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().IntVar(&serveOpts.MaxPaths, "max-paths", serveOpts.MaxPaths, "Largest num_paths a request may ask for (0 = unlimited)")
	serveCmd.Flags().IntVar(&serveOpts.MaxHorizon, "max-horizon", serveOpts.MaxHorizon, "Largest horizon_days a request may ask for (0 = unlimited)")
	serveCmd.Flags().Int64Var(&serveOpts.MaxCells, "max-cells", serveOpts.MaxCells, "Largest num_paths × (horizon_days+1) a request may ask for (0 = unlimited)")
	serveCmd.Flags().IntVar(&serveOpts.Workers, "workers", 0, "Goroutines generating paths per request (0 = GOMAXPROCS)")
	serveCmd.Flags().DurationVar(&serveOpts.Timeout, "timeout", serveOpts.Timeout, "Per-request generation deadline (0 = none)")
}
