package sim

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// PrintReport writes the human-readable summary of a run to w.
func PrintReport(w io.Writer, res *SimulationResult, a *Analysis, horizonDays int) {
	s := a.Summary
	fmt.Fprintln(w, "=== Simulation Results ===")
	fmt.Fprintf(w, "Model                : %s\n", res.Model)
	fmt.Fprintf(w, "Seed                 : %d\n", res.Seed)
	fmt.Fprintf(w, "Execution Time       : %d ms\n", res.ExecutionTime.Milliseconds())
	fmt.Fprintf(w, "Number of Paths      : %d\n", len(res.Paths))
	fmt.Fprintf(w, "Horizon              : %d days\n", horizonDays)
	fmt.Fprintln(w, "=== Final Price Statistics ===")
	fmt.Fprintf(w, "Mean                 : %.2f\n", s.Mean)
	fmt.Fprintf(w, "Std Dev              : %.2f\n", s.StdDev)
	fmt.Fprintf(w, "Median               : %.2f\n", s.Median)
	fmt.Fprintf(w, "Min                  : %.2f\n", s.Min)
	fmt.Fprintf(w, "Max                  : %.2f\n", s.Max)
	fmt.Fprintln(w, "=== Percentiles ===")
	fmt.Fprintf(w, "P5                   : %.2f\n", s.P5)
	fmt.Fprintf(w, "P25                  : %.2f\n", s.P25)
	fmt.Fprintf(w, "P75                  : %.2f\n", s.P75)
	fmt.Fprintf(w, "P95                  : %.2f\n", s.P95)
	fmt.Fprintln(w, "=== Risk Metrics ===")
	label := "VaR" + decimal.NewFromFloat(a.Confidence).Shift(2).String()
	fmt.Fprintf(w, "%-21s: %.2f (%.1f%%)\n", label, a.VaR, a.VaRPercent)
	fmt.Fprintf(w, "Expected Shortfall   : %.2f\n", a.ExpectedShortfall)
}
