package usecase

import (
	"fmt"
	"math"

	"MacroBoard/internal/domain/models"
	"MacroBoard/pkg/xlsx"
)

// Sheet names in the exported workbook.
const (
	SheetSignals    = "Signals"
	SheetIndicators = "Indicators"
)

// ExportWorkbook renders a dashboard into the two-sheet spreadsheet blob:
// one signals sheet, one indicator-tile sheet. Missing tile values export
// as empty cells.
func ExportWorkbook(d *models.Dashboard) ([]byte, error) {
	signalRows := make([][]string, 0, len(d.Signals))
	for _, s := range d.Signals {
		signalRows = append(signalRows, []string{s.Ticker, string(s.Signal), s.Rationale})
	}

	tileRows := make([][]string, 0, len(d.Tiles))
	for _, t := range d.Tiles {
		val := ""
		if !math.IsNaN(t.Value) {
			val = fmt.Sprintf("%.2f", t.Value)
		}
		tileRows = append(tileRows, []string{t.Label, val})
	}

	return xlsx.Write(
		xlsx.Sheet{
			Name:   SheetSignals,
			Header: []string{"Ticker", "Signal", "Rationale"},
			Rows:   signalRows,
		},
		xlsx.Sheet{
			Name:   SheetIndicators,
			Header: []string{"Indicator", "Value"},
			Rows:   tileRows,
		},
	)
}
