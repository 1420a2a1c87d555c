package marketdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "\ufeff<Ticker>,<DTYYYYMMDD>,<Open>,<High>,<Low>,<Close>,<Volume>\n" +
	"BBB,20240102,10,11,9,10.5,1000\n" +
	"AAA,20240102,100,102,99,101,5000\n" +
	"AAA,20240103,101,104,100,103.5,6000\n" +
	"BBB,20240103,10.5,10.8,10.1,10.2,1200\n" +
	"AAA,20240104,103,105,102,104,5500\n"

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadPrices_ParsesRowsInFileOrder(t *testing.T) {
	prices, err := ReadPrices(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, prices, 5)
	assert.Equal(t, StockPrice{
		Ticker: "BBB", Date: "20240102", Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 1000,
	}, prices[0])
	assert.Equal(t, "AAA", prices[1].Ticker)
}

func TestReadPrices_ReorderedColumns(t *testing.T) {
	body := "<Close>,<Ticker>,<Volume>,<DTYYYYMMDD>,<Open>,<High>,<Low>,<Extra>\n" +
		"42.5,ZZZ,10,20240105,42,43,41,ignored\n"
	prices, err := ReadPrices(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, 42.5, prices[0].Close)
	assert.Equal(t, "ZZZ", prices[0].Ticker)
}

func TestReadPrices_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty input", "", "header"},
		{"missing column", "<Ticker>,<DTYYYYMMDD>,<Open>,<High>,<Low>,<Close>\nAAA,1,1,1,1,1\n", "<Volume>"},
		{"bad close", "<Ticker>,<DTYYYYMMDD>,<Open>,<High>,<Low>,<Close>,<Volume>\nAAA,1,1,1,1,x,1\n", "row 2"},
		{"short row", "<Ticker>,<DTYYYYMMDD>,<Open>,<High>,<Low>,<Close>,<Volume>\nAAA,1,1\n", "row 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPrices(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCloseSeries(t *testing.T) {
	prices, err := ReadPrices(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	closes, err := CloseSeries(prices, "AAA")
	require.NoError(t, err)
	assert.Equal(t, []float64{101, 103.5, 104}, closes)

	_, err = CloseSeries(prices, "CCC")
	assert.ErrorIs(t, err, ErrTickerNotFound)
}

func TestTickers_SortedAndUnique(t *testing.T) {
	prices, err := ReadPrices(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, Tickers(prices))
}

func TestInfo(t *testing.T) {
	prices, err := ReadPrices(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	info, err := Info(prices, "BBB")
	require.NoError(t, err)
	assert.Equal(t, &StockInfo{
		Ticker: "BBB", FirstDate: "20240102", LastDate: "20240103", RecordCount: 2, LastPrice: 10.2,
	}, info)
	assert.Equal(t, "20240102 to 20240103", info.DateRange())

	_, err = Info(prices, "CCC")
	assert.ErrorIs(t, err, ErrTickerNotFound)
}

func TestLoadHelpers(t *testing.T) {
	path := writeCSV(t, sampleCSV)

	closes, err := LoadCloses(path, "BBB")
	require.NoError(t, err)
	assert.Equal(t, []float64{10.5, 10.2}, closes)

	tickers, err := LoadTickers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, tickers)

	info, err := LoadStockInfo(path, "AAA")
	require.NoError(t, err)
	assert.Equal(t, 3, info.RecordCount)
	assert.Equal(t, 104.0, info.LastPrice)

	_, err = LoadCloses(filepath.Join(t.TempDir(), "missing.csv"), "AAA")
	assert.Error(t, err)
}
