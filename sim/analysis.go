package sim

import (
	"fmt"

	"github.com/mcsim/mcsim/sim/stats"
)

// DefaultConfidence is the VaR confidence level reported by the CLI and server.
const DefaultConfidence = 0.95

// Analysis is the risk summary of a SimulationResult's terminal prices.
type Analysis struct {
	Summary           stats.SummaryStats `json:"summary"`
	Confidence        float64            `json:"confidence"`
	VaR               float64            `json:"var"`
	VaRPercent        float64            `json:"var_percent"` // VaR / initial price × 100
	ExpectedShortfall float64            `json:"expected_shortfall"`
}

// Analyze summarizes the terminal prices of r relative to initialPrice.
func (r *SimulationResult) Analyze(initialPrice, confidence float64) (*Analysis, error) {
	finals := r.TerminalPrices()
	summary, err := stats.Summarize(finals)
	if err != nil {
		return nil, fmt.Errorf("analyzing %d terminal prices: %w", len(finals), err)
	}
	v, err := stats.ValueAtRisk(finals, initialPrice, confidence)
	if err != nil {
		return nil, err
	}
	es, err := stats.ExpectedShortfall(finals, initialPrice, confidence)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		Summary:           summary,
		Confidence:        confidence,
		VaR:               v,
		VaRPercent:        v / initialPrice * 100,
		ExpectedShortfall: es,
	}, nil
}
