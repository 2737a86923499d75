package macro

import (
	"MacroBoard/internal/domain/models"
	"MacroBoard/pkg/config"
)

// Classify evaluates a ticker's rule cascade against the derived scalars.
// It never fails: a ticker without a rule is UNCLASSIFIED, and a rule
// whose clauses all miss (including via NaN inputs) is RED.
func Classify(ticker string, s models.MacroScalars, th config.Thresholds) models.SignalRow {
	r, ok := ruleTable[ticker]
	if !ok {
		return models.SignalRow{
			Ticker:    ticker,
			Signal:    models.SignalUnclassified,
			Rationale: "no rule configured",
		}
	}
	for _, c := range r.clauses {
		if c.when(s, th) {
			return models.SignalRow{Ticker: ticker, Signal: c.out, Rationale: r.rationale}
		}
	}
	return models.SignalRow{Ticker: ticker, Signal: models.SignalRed, Rationale: r.rationale}
}

// ClassifyAll classifies every configured ticker in display order.
func ClassifyAll(s models.MacroScalars, th config.Thresholds) []models.SignalRow {
	rows := make([]models.SignalRow, 0, len(tickerOrder))
	for _, t := range tickerOrder {
		rows = append(rows, Classify(t, s, th))
	}
	return rows
}
