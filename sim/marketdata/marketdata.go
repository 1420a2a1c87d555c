// Package marketdata reads daily price history from CSV exports with the
// header layout <Ticker>,<DTYYYYMMDD>,<Open>,<High>,<Low>,<Close>,<Volume>.
package marketdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrTickerNotFound is returned when a ticker has no rows in the file.
var ErrTickerNotFound = errors.New("ticker not found")

// CSV column headers.
const (
	colTicker = "<Ticker>"
	colDate   = "<DTYYYYMMDD>"
	colOpen   = "<Open>"
	colHigh   = "<High>"
	colLow    = "<Low>"
	colClose  = "<Close>"
	colVolume = "<Volume>"
)

var requiredColumns = []string{colTicker, colDate, colOpen, colHigh, colLow, colClose, colVolume}

// StockPrice is one daily bar.
type StockPrice struct {
	Ticker string
	Date   string // YYYYMMDD as written in the file
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// StockInfo describes the history available for one ticker.
type StockInfo struct {
	Ticker      string
	FirstDate   string
	LastDate    string
	RecordCount int
	LastPrice   float64
}

// DateRange renders the covered dates as "first to last".
func (s *StockInfo) DateRange() string {
	return fmt.Sprintf("%s to %s", s.FirstDate, s.LastDate)
}

// ReadPrices parses every row of a price CSV in file order.
// Columns are located by header name, so extra or reordered columns are fine.
func ReadPrices(r io.Reader) ([]StockPrice, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("CSV header missing column %s", col)
		}
	}

	var prices []StockPrice
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", line, err)
		}
		p, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", line, err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

func parseRow(row []string, idx map[string]int) (StockPrice, error) {
	field := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("missing column %s", col)
		}
		return strings.TrimSpace(row[i]), nil
	}
	num := func(col string) (float64, error) {
		s, err := field(col)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		return v, nil
	}

	var p StockPrice
	var err error
	if p.Ticker, err = field(colTicker); err != nil {
		return p, err
	}
	if p.Date, err = field(colDate); err != nil {
		return p, err
	}
	if p.Open, err = num(colOpen); err != nil {
		return p, err
	}
	if p.High, err = num(colHigh); err != nil {
		return p, err
	}
	if p.Low, err = num(colLow); err != nil {
		return p, err
	}
	if p.Close, err = num(colClose); err != nil {
		return p, err
	}
	vol, err := field(colVolume)
	if err != nil {
		return p, err
	}
	if p.Volume, err = strconv.ParseInt(vol, 10, 64); err != nil {
		return p, fmt.Errorf("column %s: %w", colVolume, err)
	}
	return p, nil
}

// LoadPrices reads every row of the price CSV at path.
func LoadPrices(path string) ([]StockPrice, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening price data: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadPrices(file)
}

// CloseSeries returns the closes of ticker in file order.
func CloseSeries(prices []StockPrice, ticker string) ([]float64, error) {
	var closes []float64
	for _, p := range prices {
		if p.Ticker == ticker {
			closes = append(closes, p.Close)
		}
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTickerNotFound, ticker)
	}
	return closes, nil
}

// Tickers returns the distinct tickers in prices, sorted.
func Tickers(prices []StockPrice) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range prices {
		if !seen[p.Ticker] {
			seen[p.Ticker] = true
			out = append(out, p.Ticker)
		}
	}
	sort.Strings(out)
	return out
}

// Info summarizes the rows of ticker.
func Info(prices []StockPrice, ticker string) (*StockInfo, error) {
	var rows []StockPrice
	for _, p := range prices {
		if p.Ticker == ticker {
			rows = append(rows, p)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTickerNotFound, ticker)
	}
	last := rows[len(rows)-1]
	return &StockInfo{
		Ticker:      ticker,
		FirstDate:   rows[0].Date,
		LastDate:    last.Date,
		RecordCount: len(rows),
		LastPrice:   last.Close,
	}, nil
}

// LoadCloses reads path and returns the closes of ticker in file order.
func LoadCloses(path, ticker string) ([]float64, error) {
	prices, err := LoadPrices(path)
	if err != nil {
		return nil, err
	}
	return CloseSeries(prices, ticker)
}

// LoadTickers reads path and returns its distinct tickers, sorted.
func LoadTickers(path string) ([]string, error) {
	prices, err := LoadPrices(path)
	if err != nil {
		return nil, err
	}
	return Tickers(prices), nil
}

// LoadStockInfo reads path and summarizes the rows of ticker.
func LoadStockInfo(path, ticker string) (*StockInfo, error) {
	prices, err := LoadPrices(path)
	if err != nil {
		return nil, err
	}
	return Info(prices, ticker)
}
