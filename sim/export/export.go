// Package export writes simulation results as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mcsim/mcsim/sim"
)

// DefaultMaxPaths caps how many paths WritePaths emits.
const DefaultMaxPaths = 100

// priceDecimals is the number of fixed decimals for exported prices.
const priceDecimals = 4

// Report is everything the summary file needs about one run.
type Report struct {
	Ticker       string
	Model        string
	InitialPrice float64
	HorizonDays  int
	Analysis     *sim.Analysis
	Result       *sim.SimulationResult
}

// FormatPrice renders v with four fixed decimals.
func FormatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(priceDecimals)
}

// WriteSummary writes the Metric,Value table for rep.
func WriteSummary(w io.Writer, rep Report) error {
	if rep.Analysis == nil || rep.Result == nil {
		return fmt.Errorf("summary export needs an analysis and a result")
	}
	s := rep.Analysis.Summary
	rows := [][]string{
		{"Metric", "Value"},
		{"Ticker", rep.Ticker},
		{"Model Type", rep.Model},
		{"Initial Price", FormatPrice(rep.InitialPrice)},
		{"Horizon Days", strconv.Itoa(rep.HorizonDays)},
		{"Number of Paths", strconv.Itoa(len(rep.Result.Paths))},
		{"Seed", strconv.FormatUint(rep.Result.Seed, 10)},
		{"Mean", FormatPrice(s.Mean)},
		{"Standard Deviation", FormatPrice(s.StdDev)},
		{"Median", FormatPrice(s.Median)},
		{"Minimum", FormatPrice(s.Min)},
		{"Maximum", FormatPrice(s.Max)},
		{"P5", FormatPrice(s.P5)},
		{"P25", FormatPrice(s.P25)},
		{"P75", FormatPrice(s.P75)},
		{"P95", FormatPrice(s.P95)},
		{"VaR" + decimal.NewFromFloat(rep.Analysis.Confidence).Shift(2).String(), FormatPrice(rep.Analysis.VaR)},
		{"Expected Shortfall", FormatPrice(rep.Analysis.ExpectedShortfall)},
		{"Execution Time (ms)", strconv.FormatInt(rep.Result.ExecutionTime.Milliseconds(), 10)},
	}
	return writeAll(w, rows)
}

// WritePaths writes up to maxPaths paths, one row per path, with columns
// Path,Day_0..Day_n. maxPaths <= 0 means DefaultMaxPaths.
func WritePaths(w io.Writer, paths []sim.Path, maxPaths int) error {
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}
	header := []string{"Path"}
	if len(paths) > 0 {
		for day := range paths[0] {
			header = append(header, "Day_"+strconv.Itoa(day))
		}
	}
	rows := [][]string{header}
	for i, p := range paths[:min(len(paths), maxPaths)] {
		row := make([]string, 0, len(p)+1)
		row = append(row, "Path_"+strconv.Itoa(i+1))
		for _, price := range p {
			row = append(row, FormatPrice(price))
		}
		rows = append(rows, row)
	}
	return writeAll(w, rows)
}

// WriteFinalPrices writes Path,Final_Price rows, paths numbered from 1.
func WriteFinalPrices(w io.Writer, finals []float64) error {
	rows := make([][]string, 0, len(finals)+1)
	rows = append(rows, []string{"Path", "Final_Price"})
	for i, v := range finals {
		rows = append(rows, []string{strconv.Itoa(i + 1), FormatPrice(v)})
	}
	return writeAll(w, rows)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

// Files lists the paths written by WriteAll.
type Files struct {
	Summary     string
	Paths       string
	FinalPrices string
}

// WriteAll writes the summary, path and final-price files into dir, with
// stamp (e.g. 20250101_120000) in every file name.
func WriteAll(dir, stamp string, rep Report) (*Files, error) {
	if rep.Result == nil {
		return nil, fmt.Errorf("export needs a simulation result")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}
	files := &Files{
		Summary:     filepath.Join(dir, fmt.Sprintf("simulation_summary_%s.csv", stamp)),
		Paths:       filepath.Join(dir, fmt.Sprintf("simulation_paths_%s.csv", stamp)),
		FinalPrices: filepath.Join(dir, fmt.Sprintf("final_prices_%s.csv", stamp)),
	}
	if err := writeFile(files.Summary, func(w io.Writer) error { return WriteSummary(w, rep) }); err != nil {
		return nil, err
	}
	if err := writeFile(files.Paths, func(w io.Writer) error { return WritePaths(w, rep.Result.Paths, DefaultMaxPaths) }); err != nil {
		return nil, err
	}
	if err := writeFile(files.FinalPrices, func(w io.Writer) error { return WriteFinalPrices(w, rep.Result.TerminalPrices()) }); err != nil {
		return nil, err
	}
	logrus.Infof("Exported %s, %s, %s", files.Summary, files.Paths, files.FinalPrices)
	return files, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	if err := write(file); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
