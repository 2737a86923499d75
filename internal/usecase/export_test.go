package usecase

import (
	"math"
	"testing"
	"time"

	"MacroBoard/internal/domain/models"
	"MacroBoard/pkg/xlsx"
)

func TestExportWorkbookRoundTrip(t *testing.T) {
	d := &models.Dashboard{
		Tiles: models.TileSet{
			{Label: "10Y UST (%)", Value: 4.20, Tone: models.ToneGreen},
			{Label: "PMI (ISM)", Value: math.NaN(), Tone: models.ToneUnknown},
		},
		Signals: []models.SignalRow{
			{Ticker: "SPY", Signal: models.SignalGreen, Rationale: "broad risk appetite"},
			{Ticker: "UUP", Signal: models.SignalRed, Rationale: "dollar long"},
		},
		AsOf:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Generated: time.Now(),
	}

	blob, err := ExportWorkbook(d)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("empty workbook blob")
	}

	signals, err := xlsx.Read(blob, SheetSignals)
	if err != nil {
		t.Fatalf("read signals sheet: %v", err)
	}
	if len(signals) != 3 {
		t.Fatalf("signals sheet has %d rows, want header + 2", len(signals))
	}
	if signals[0][0] != "Ticker" || signals[0][1] != "Signal" {
		t.Errorf("unexpected header: %v", signals[0])
	}
	if signals[1][0] != "SPY" || signals[1][1] != string(models.SignalGreen) {
		t.Errorf("row 1 = %v, want SPY GREEN", signals[1])
	}
	if signals[2][0] != "UUP" || signals[2][1] != string(models.SignalRed) {
		t.Errorf("row 2 = %v, want UUP RED", signals[2])
	}

	indicators, err := xlsx.Read(blob, SheetIndicators)
	if err != nil {
		t.Fatalf("read indicators sheet: %v", err)
	}
	if len(indicators) != 3 {
		t.Fatalf("indicators sheet has %d rows, want header + 2", len(indicators))
	}
	if indicators[1][0] != "10Y UST (%)" || indicators[1][1] != "4.20" {
		t.Errorf("row 1 = %v, want formatted yield", indicators[1])
	}
	// The NaN tile exports as a single-cell row: excelize trims the
	// trailing empty value cell.
	if indicators[2][0] != "PMI (ISM)" {
		t.Errorf("row 2 = %v, want the PMI label", indicators[2])
	}
	if len(indicators[2]) > 1 && indicators[2][1] != "" {
		t.Errorf("missing value exported as %q, want empty", indicators[2][1])
	}
}
