package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mcsim/mcsim/sim/marketdata"
	"github.com/mcsim/mcsim/sim/stats"
)

// --- mcsim estimate ---

var (
	estimateCSVPath string
	estimateTicker  string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate GBM drift and volatility from a ticker's closing prices",
	Long:  "Estimate mu (mean log-return) and sigma (sample standard deviation of log-returns) for one ticker. The output can be pasted into --mu/--sigma or a scenario file.",
	Run: func(cmd *cobra.Command, args []string) {
		if estimateCSVPath == "" || estimateTicker == "" {
			logrus.Fatalf("--csv and --ticker are required")
		}
		closes, err := marketdata.LoadCloses(estimateCSVPath, estimateTicker)
		if err != nil {
			logrus.Fatalf("Failed to load history: %v", err)
		}
		mu, sigma, err := stats.EstimateGBM(closes)
		if err != nil {
			logrus.Fatalf("Estimation failed for %s: %v", estimateTicker, err)
		}
		fmt.Printf("Ticker      : %s\n", estimateTicker)
		fmt.Printf("Closes      : %d\n", len(closes))
		fmt.Printf("mu          : %.6f\n", mu)
		fmt.Printf("sigma       : %.6f\n", sigma)
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estimateCSVPath, "csv", "", "Price CSV with <Ticker>,<DTYYYYMMDD>,...,<Close>,<Volume> columns")
	estimateCmd.Flags().StringVar(&estimateTicker, "ticker", "", "Ticker to estimate")
}
