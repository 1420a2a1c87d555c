// Package stats summarizes simulated prices: log-returns, mean, sample
// standard deviation, nearest-rank percentiles and Value-at-Risk.
//
// Every function is pure and single-threaded. Undefined inputs (empty
// samples, out-of-range probabilities) are reported as errors rather than
// mapped to a default value.
package stats

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptySample is returned when a statistic is requested over no data.
	ErrEmptySample = errors.New("empty sample")
	// ErrInsufficientSample is returned when a statistic needs more points than given.
	ErrInsufficientSample = errors.New("insufficient sample")
	// ErrInvalidProbability is returned for a percentile or confidence outside [0, 1].
	ErrInvalidProbability = errors.New("probability must be in [0, 1]")
	// ErrNonPositivePrice is returned when a log-return would need a price <= 0.
	ErrNonPositivePrice = errors.New("prices must be positive and finite")
)

// LogReturns returns ln(closes[i]/closes[i-1]) for i in [1, n).
// Fewer than two closes yield an empty slice.
func LogReturns(closes []float64) ([]float64, error) {
	for i, c := range closes {
		if !(c > 0) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: close %d is %v", ErrNonPositivePrice, i, c)
		}
	}
	if len(closes) < 2 {
		return []float64{}, nil
	}
	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out[i-1] = math.Log(closes[i] / closes[i-1])
	}
	return out, nil
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("mean: %w", ErrEmptySample)
	}
	return stat.Mean(xs, nil), nil
}

// StdDev returns the sample standard deviation of xs around mean, using
// Bessel's correction (denominator n-1). Requires at least two points.
func StdDev(xs []float64, mean float64) (float64, error) {
	if len(xs) <= 1 {
		return 0, fmt.Errorf("stdev: %w: need at least 2 values, got %d", ErrInsufficientSample, len(xs))
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1)), nil
}

// Percentile returns the nearest-rank p-quantile of xs: the element at
// index floor(p·(n−1)) of a sorted copy. No interpolation is performed, so
// the result is always a member of xs. p=0 is the minimum, p=1 the maximum.
func Percentile(xs []float64, p float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("percentile: %w", ErrEmptySample)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("percentile: %w, got %v", ErrInvalidProbability, p)
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return sorted[rankIndex(len(sorted), p)], nil
}

func rankIndex(n int, p float64) int {
	return int(math.Floor(p * float64(n-1)))
}

// ValueAtRisk returns initialPrice − Percentile(finalPrices, 1−confidence).
// A negative value means even the loss tail ends above initialPrice.
func ValueAtRisk(finalPrices []float64, initialPrice, confidence float64) (float64, error) {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return 0, fmt.Errorf("value at risk: confidence: %w, got %v", ErrInvalidProbability, confidence)
	}
	q, err := Percentile(finalPrices, 1-confidence)
	if err != nil {
		return 0, fmt.Errorf("value at risk: %w", err)
	}
	return initialPrice - q, nil
}

// ExpectedShortfall returns the mean loss (initialPrice − price) over the
// sorted tail up to and including the VaR index. It is always >= the VaR
// computed with the same arguments.
func ExpectedShortfall(finalPrices []float64, initialPrice, confidence float64) (float64, error) {
	if len(finalPrices) == 0 {
		return 0, fmt.Errorf("expected shortfall: %w", ErrEmptySample)
	}
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return 0, fmt.Errorf("expected shortfall: confidence: %w, got %v", ErrInvalidProbability, confidence)
	}
	sorted := slices.Clone(finalPrices)
	slices.Sort(sorted)
	tail := sorted[:rankIndex(len(sorted), 1-confidence)+1]
	return initialPrice - floats.Sum(tail)/float64(len(tail)), nil
}

// SummaryStats describes the distribution of a sample.
type SummaryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	P5     float64 `json:"p5"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
}

// Summarize computes SummaryStats over xs. Because the standard deviation
// is a sample statistic, xs needs at least two values.
func Summarize(xs []float64) (SummaryStats, error) {
	mean, err := Mean(xs)
	if err != nil {
		return SummaryStats{}, fmt.Errorf("summary: %w", err)
	}
	sd, err := StdDev(xs, mean)
	if err != nil {
		return SummaryStats{}, fmt.Errorf("summary: %w", err)
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	at := func(p float64) float64 { return sorted[rankIndex(len(sorted), p)] }

	return SummaryStats{
		Mean:   mean,
		StdDev: sd,
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Median: at(0.5),
		P5:     at(0.05),
		P25:    at(0.25),
		P75:    at(0.75),
		P95:    at(0.95),
	}, nil
}

// EstimateGBM estimates GBM drift and volatility per step from daily closes:
// the mean and sample standard deviation of their log-returns.
func EstimateGBM(closes []float64) (mu, sigma float64, err error) {
	returns, err := LogReturns(closes)
	if err != nil {
		return 0, 0, fmt.Errorf("estimate: %w", err)
	}
	mu, err = Mean(returns)
	if err != nil {
		return 0, 0, fmt.Errorf("estimate: %w", err)
	}
	sigma, err = StdDev(returns, mu)
	if err != nil {
		return 0, 0, fmt.Errorf("estimate: %w", err)
	}
	return mu, sigma, nil
}
