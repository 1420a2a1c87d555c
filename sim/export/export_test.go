package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcsim/mcsim/sim"
)

func testReport(t *testing.T) Report {
	t.Helper()
	res := &sim.SimulationResult{
		Paths:         []sim.Path{{100, 80}, {100, 90}, {100, 100}, {100, 110}, {100, 120}},
		ExecutionTime: 12 * time.Millisecond,
		Seed:          42,
		Model:         sim.ModelGBM,
	}
	a, err := res.Analyze(100, 0.95)
	require.NoError(t, err)
	return Report{
		Ticker:       "AAA",
		Model:        "GBM",
		InitialPrice: 100,
		HorizonDays:  1,
		Analysis:     a,
		Result:       res,
	}
}

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100.0000"},
		{0.1 + 0.2, "0.3000"},
		{123.456789, "123.4568"},
		{-20, "-20.0000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in))
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, testReport(t)))

	values := map[string]string{}
	rows := readCSV(t, buf.String())
	assert.Equal(t, []string{"Metric", "Value"}, rows[0])
	for _, r := range rows[1:] {
		values[r[0]] = r[1]
	}
	assert.Equal(t, "AAA", values["Ticker"])
	assert.Equal(t, "GBM", values["Model Type"])
	assert.Equal(t, "5", values["Number of Paths"])
	assert.Equal(t, "42", values["Seed"])
	assert.Equal(t, "100.0000", values["Mean"])
	assert.Equal(t, "20.0000", values["VaR95"])
	assert.Equal(t, "12", values["Execution Time (ms)"])
}

func TestWriteSummary_NeedsAnalysis(t *testing.T) {
	rep := testReport(t)
	rep.Analysis = nil
	assert.Error(t, WriteSummary(&bytes.Buffer{}, rep))
}

func TestWritePaths_HeaderAndCap(t *testing.T) {
	paths := make([]sim.Path, 5)
	for i := range paths {
		paths[i] = sim.Path{100, 100 + float64(i), 100 + 2*float64(i)}
	}

	var buf bytes.Buffer
	require.NoError(t, WritePaths(&buf, paths, 3))
	rows := readCSV(t, buf.String())

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Path", "Day_0", "Day_1", "Day_2"}, rows[0])
	assert.Equal(t, []string{"Path_1", "100.0000", "100.0000", "100.0000"}, rows[1])
	assert.Equal(t, []string{"Path_3", "100.0000", "102.0000", "104.0000"}, rows[3])
}

func TestWritePaths_DefaultCap(t *testing.T) {
	paths := make([]sim.Path, DefaultMaxPaths+10)
	for i := range paths {
		paths[i] = sim.Path{1}
	}
	var buf bytes.Buffer
	require.NoError(t, WritePaths(&buf, paths, 0))
	assert.Len(t, readCSV(t, buf.String()), DefaultMaxPaths+1)
}

func TestWriteFinalPrices(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFinalPrices(&buf, []float64{101.5, 99}))
	assert.Equal(t, [][]string{
		{"Path", "Final_Price"},
		{"1", "101.5000"},
		{"2", "99.0000"},
	}, readCSV(t, buf.String()))
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	files, err := WriteAll(dir, "20250101_120000", testReport(t))
	require.NoError(t, err)

	assert.Contains(t, files.Summary, "simulation_summary_20250101_120000.csv")
	assert.Contains(t, files.Paths, "simulation_paths_20250101_120000.csv")
	assert.Contains(t, files.FinalPrices, "final_prices_20250101_120000.csv")
	for _, f := range []string{files.Summary, files.Paths, files.FinalPrices} {
		data, err := os.ReadFile(f)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}

	finals, err := os.ReadFile(files.FinalPrices)
	require.NoError(t, err)
	assert.Len(t, readCSV(t, string(finals)), 6)
}
