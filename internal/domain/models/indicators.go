package models

import "time"

// Series identifiers the dashboard consumes. The FRED ids double as the
// value-column header in the downloaddata CSV variant.
const (
	SeriesY10   = "DGS10"        // 10-year treasury yield
	SeriesY2    = "DGS2"         // 2-year treasury yield
	SeriesY3M   = "DGS3MO"       // 3-month bill
	SeriesTIPS  = "DFII10"       // 10-year TIPS real yield
	SeriesTP10  = "TP10"         // ACM 10-year term premium (NY Fed)
	SeriesDXY   = "DTWEXBGS"     // broad dollar index
	SeriesPMI   = "NAPM"         // ISM PMI composite proxy
	SeriesHYOAS = "BAMLH0A0HYM2" // high-yield OAS
	SeriesWTI   = "DCOILWTICO"   // WTI spot
)

// AllSeries lists every indicator the resolver extracts, in display order.
var AllSeries = []string{
	SeriesY10, SeriesY2, SeriesY3M, SeriesTIPS, SeriesTP10,
	SeriesDXY, SeriesPMI, SeriesHYOAS, SeriesWTI,
}

// IndicatorValue pairs a resolved value with its as-of date. A missing
// series resolves to (NaN, zero time).
type IndicatorValue struct {
	Value float64   `json:"value"`
	Date  time.Time `json:"date"`
}

// IndicatorSet maps series id to its latest resolved value.
type IndicatorSet map[string]IndicatorValue

// MacroScalars are the derived numbers the tile computer and rule table
// operate on. Yields are in percentage points, spreads in basis points.
// Any field may be NaN when the underlying series was unavailable.
type MacroScalars struct {
	Y10Pct   float64
	Y2Pct    float64
	Y3MPct   float64
	TIPSPct  float64
	TP10Pct  float64
	CurveBps float64
	DXY      float64
	PMI      float64
	HYOASBps float64
	WTI      float64
}
