package macro

import (
	"math"

	"MacroBoard/internal/domain/models"
	"MacroBoard/pkg/config"
)

// ToDecimal normalizes a yield-like value to a decimal fraction. Readings
// above 1 are taken as percentage points and divided by 100. A reading of
// exactly 1.0 percent is indistinguishable from a 1.0 decimal without
// provenance; the heuristic is documented source behavior, not a bug.
func ToDecimal(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x > 1 {
		return x / 100
	}
	return x
}

// CurveBps is the 10s-2s slope in basis points, negative when inverted.
// NaN unless both inputs are present.
func CurveBps(y10d, y2d float64) float64 {
	if math.IsNaN(y10d) || math.IsNaN(y2d) {
		return math.NaN()
	}
	return (y10d - y2d) * 10000
}

// Scalars derives the rule inputs from resolved indicators. Yields come
// out in percentage points, the HY OAS in basis points; NaN propagates.
func Scalars(ind models.IndicatorSet) models.MacroScalars {
	y10d := ToDecimal(ind[models.SeriesY10].Value)
	y2d := ToDecimal(ind[models.SeriesY2].Value)

	return models.MacroScalars{
		Y10Pct:   y10d * 100,
		Y2Pct:    y2d * 100,
		Y3MPct:   ToDecimal(ind[models.SeriesY3M].Value) * 100,
		TIPSPct:  ToDecimal(ind[models.SeriesTIPS].Value) * 100,
		TP10Pct:  ToDecimal(ind[models.SeriesTP10].Value) * 100,
		CurveBps: CurveBps(y10d, y2d),
		DXY:      ind[models.SeriesDXY].Value,
		PMI:      ind[models.SeriesPMI].Value,
		HYOASBps: ind[models.SeriesHYOAS].Value * 100,
		WTI:      ind[models.SeriesWTI].Value,
	}
}

// ComputeTiles builds the display tile row. Always succeeds; tiles with a
// missing input carry NaN and an unknown tone.
func ComputeTiles(s models.MacroScalars, th config.Thresholds) models.TileSet {
	return models.TileSet{
		tile("10Y UST (%)", s.Y10Pct,
			func(v float64) bool { return v/100 < th.Y10GreenMax },
			func(v float64) bool { return v/100 < th.Y10YellowMax }),
		tile("2Y UST (%)", s.Y2Pct, always, always),
		tile("3M Bill (%)", s.Y3MPct, always, always),
		tile("10Y TIPS (%)", s.TIPSPct,
			func(v float64) bool { return v/100 < th.TIPSGreenMax },
			func(v float64) bool { return v/100 < th.TIPSYellowMax }),
		tile("Term Prem (%)", s.TP10Pct,
			func(v float64) bool { return v/100 < th.TP10GreenMax },
			func(v float64) bool { return v/100 < th.TP10YellowMax }),
		tile("Broad $ Index", s.DXY,
			func(v float64) bool { return v <= th.DXYGreenMax },
			func(v float64) bool { return v <= th.DXYYellowMax }),
		tile("PMI (ISM)", s.PMI,
			func(v float64) bool { return v >= th.PMIGreenMin },
			func(v float64) bool { return v >= th.PMIYellowMin }),
		tile("HY OAS (bps)", s.HYOASBps,
			func(v float64) bool { return v <= th.HYOASGreenMaxBps },
			func(v float64) bool { return v <= th.HYOASYellowMaxBps }),
		tile("10s-2s (bps)", s.CurveBps,
			func(v float64) bool { return v >= th.CurveGreenMinBps },
			func(v float64) bool { return v >= th.CurveYellowMinBps }),
		tile("WTI ($)", s.WTI,
			func(v float64) bool { return v >= th.WTIGreenMin },
			func(v float64) bool { return v >= th.WTIYellowMin }),
	}
}

func always(float64) bool { return true }

func tile(label string, v float64, green, yellow func(float64) bool) models.Tile {
	return models.Tile{Label: label, Value: v, Tone: toneFor(v, green, yellow)}
}

// toneFor colors a tile: missing data is unknown, never a false signal.
func toneFor(v float64, green, yellow func(float64) bool) models.Tone {
	if math.IsNaN(v) {
		return models.ToneUnknown
	}
	if green(v) {
		return models.ToneGreen
	}
	if yellow(v) {
		return models.ToneYellow
	}
	return models.ToneRed
}
