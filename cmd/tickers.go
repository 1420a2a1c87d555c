package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mcsim/mcsim/sim/marketdata"
)

// --- mcsim tickers ---

var tickersCSVPath string

var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "List the tickers in a price CSV with their date range and last close",
	Run: func(cmd *cobra.Command, args []string) {
		if tickersCSVPath == "" {
			logrus.Fatalf("--csv is required")
		}
		prices, err := marketdata.LoadPrices(tickersCSVPath)
		if err != nil {
			logrus.Fatalf("Failed to load price data: %v", err)
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TICKER\tDATES\tRECORDS\tLAST PRICE")
		for _, t := range marketdata.Tickers(prices) {
			info, err := marketdata.Info(prices, t)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", info.Ticker, info.DateRange(), info.RecordCount, info.LastPrice)
		}
		if err := tw.Flush(); err != nil {
			logrus.Fatalf("Failed to write output: %v", err)
		}
	},
}

func init() {
	tickersCmd.Flags().StringVar(&tickersCSVPath, "csv", "", "Price CSV with <Ticker>,<DTYYYYMMDD>,...,<Close>,<Volume> columns")
}
