// Package chart renders simulation results as PNG charts: a sample of the
// price paths and a histogram of terminal prices.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/mcsim/mcsim/sim"
)

// DefaultMaxPaths is how many paths PricePaths draws when maxPaths <= 0.
const DefaultMaxPaths = 50

// DefaultBins is the histogram bin count used when bins <= 0.
const DefaultBins = 30

// Image size of saved charts.
const (
	width  = 10 * vg.Inch
	height = 6 * vg.Inch
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("chart: no data")

// SamplePaths picks up to maxPaths paths spread evenly over paths: every
// len(paths)/maxPaths-th path, starting with the first.
func SamplePaths(paths []sim.Path, maxPaths int) []sim.Path {
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}
	if len(paths) <= maxPaths {
		return paths
	}
	step := len(paths) / maxPaths
	out := make([]sim.Path, 0, maxPaths)
	for i := 0; i < len(paths) && len(out) < maxPaths; i += step {
		out = append(out, paths[i])
	}
	return out
}

// PricePaths plots a sample of paths as lines, price against day.
func PricePaths(paths []sim.Path, maxPaths int) (*plot.Plot, error) {
	if len(paths) == 0 {
		return nil, ErrNoData
	}
	p := plot.New()
	p.Title.Text = "Monte Carlo Price Paths"
	p.X.Label.Text = "Days"
	p.Y.Label.Text = "Price"
	p.Add(plotter.NewGrid())

	for i, path := range SamplePaths(paths, maxPaths) {
		xys := make(plotter.XYs, len(path))
		for day, price := range path {
			xys[day] = plotter.XY{X: float64(day), Y: price}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
	}
	return p, nil
}

// Histogram plots the distribution of terminal prices in bins bins.
func Histogram(finals []float64, bins int) (*plot.Plot, error) {
	if len(finals) == 0 {
		return nil, ErrNoData
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	h, err := plotter.NewHist(plotter.Values(finals), bins)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	h.FillColor = plotutil.Color(0)

	p := plot.New()
	p.Title.Text = "Terminal Price Distribution"
	p.X.Label.Text = "Final Price"
	p.Y.Label.Text = "Frequency"
	p.Add(h)
	return p, nil
}

// Files lists the charts written by WriteAll.
type Files struct {
	PricePaths string
	Histogram  string
}

// WriteAll saves price_paths_<stamp>.png and histogram_<stamp>.png into dir.
func WriteAll(dir, stamp string, res *sim.SimulationResult) (*Files, error) {
	if res == nil {
		return nil, fmt.Errorf("chart export needs a simulation result")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating chart dir: %w", err)
	}
	files := &Files{
		PricePaths: filepath.Join(dir, fmt.Sprintf("price_paths_%s.png", stamp)),
		Histogram:  filepath.Join(dir, fmt.Sprintf("histogram_%s.png", stamp)),
	}

	paths, err := PricePaths(res.Paths, DefaultMaxPaths)
	if err != nil {
		return nil, err
	}
	if err := paths.Save(width, height, files.PricePaths); err != nil {
		return nil, fmt.Errorf("saving %s: %w", files.PricePaths, err)
	}

	hist, err := Histogram(res.TerminalPrices(), DefaultBins)
	if err != nil {
		return nil, err
	}
	if err := hist.Save(width, height, files.Histogram); err != nil {
		return nil, fmt.Errorf("saving %s: %w", files.Histogram, err)
	}

	logrus.Infof("Exported %s, %s", files.PricePaths, files.Histogram)
	return files, nil
}
