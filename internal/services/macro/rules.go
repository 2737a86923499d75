package macro

import (
	"MacroBoard/internal/domain/models"
	"MacroBoard/pkg/config"
)

// predicate evaluates one rule clause against the derived scalars and the
// configured thresholds. Comparisons against NaN are false, so missing
// data falls through the clause list toward RED instead of crashing.
type predicate func(s models.MacroScalars, th config.Thresholds) bool

type clause struct {
	when predicate
	out  models.Signal
}

type rule struct {
	clauses   []clause
	rationale string
}

// cascade builds the usual GREEN/YELLOW clause pair; RED is the fallback
// applied by Classify when no clause matches.
func cascade(rationale string, green, yellow predicate) rule {
	return rule{
		clauses: []clause{
			{when: green, out: models.SignalGreen},
			{when: yellow, out: models.SignalYellow},
		},
		rationale: rationale,
	}
}

// tickerOrder is the display order of the configured tickers.
var tickerOrder = []string{
	"SPY", "QQQ", "IWM",
	"XLK", "XLC", "XLY", "XLI", "XLB", "XLE", "XOP",
	"XLF", "FAS", "UYG", "BNKU",
	"XLP", "XLU", "XLV", "XLRE",
	"GLD", "SLV", "GDX",
	"TLT", "IEF", "HYG", "LQD",
	"UUP", "EEM",
}

// Tickers returns the configured ticker list in display order.
func Tickers() []string {
	return append([]string(nil), tickerOrder...)
}

// Shared rule bodies. Each combines 1-3 scalar comparisons; the handful
// of literal cutoffs (e.g. the 1.6% real-yield bar for precious metals)
// are part of the rule, deliberately not lifted into configuration.
var (
	broadEquity = cascade(
		"broad risk appetite: expansionary PMI with contained credit spreads and an uninverted curve",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIGreenMin && s.HYOASBps <= th.HYOASGreenMaxBps && s.CurveBps >= th.CurveGreenMinBps
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIYellowMin && s.HYOASBps <= th.HYOASYellowMaxBps
		},
	)

	growthDuration = cascade(
		"long-duration growth: needs expansion and contained long yields",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIGreenMin && s.Y10Pct/100 < th.Y10GreenMax
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIYellowMin && s.Y10Pct/100 < th.Y10YellowMax
		},
	)

	financials = cascade(
		"banks earn the curve; credit stress erodes it",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.CurveBps >= th.CurveGreenMinBps && s.HYOASBps <= th.HYOASGreenMaxBps
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.CurveBps >= th.CurveYellowMinBps && s.HYOASBps <= th.HYOASYellowMaxBps
		},
	)

	// Shared by the three leveraged-financials tickers.
	leveragedFinancials = cascade(
		"levered curve exposure: demands a steep curve, benign credit and growth",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.CurveBps >= th.CurveGreenMinBps && s.HYOASBps <= th.HYOASGreenMaxBps && s.PMI >= th.PMIGreenMin
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.CurveBps >= th.CurveYellowMinBps && s.HYOASBps <= th.HYOASYellowMaxBps
		},
	)

	energy = cascade(
		"energy: global activity, a soft dollar and firm crude",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIGreenMin && s.DXY <= th.DXYGreenMax && s.WTI >= th.WTIGreenMin
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIYellowMin && s.WTI >= th.WTIYellowMin
		},
	)

	oilProducers = cascade(
		"producers: crude price first, dollar second",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.WTI >= th.WTIGreenMin && s.DXY <= th.DXYGreenMax
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.WTI >= th.WTIYellowMin
		},
	)

	cyclicals = cascade(
		"cyclicals: activity up, dollar not a headwind",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIGreenMin && s.DXY <= th.DXYGreenMax
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIYellowMin && s.DXY <= th.DXYYellowMax
		},
	)

	discretionary = cascade(
		"consumer discretionary: growth with calm credit",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIGreenMin && s.HYOASBps <= th.HYOASGreenMaxBps
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIYellowMin
		},
	)

	activitySensitive = cascade(
		"activity-sensitive: tracks the PMI",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIGreenMin
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.PMI >= th.PMIYellowMin
		},
	)

	defensives = cascade(
		"bond proxies: favored while long yields stay low",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.Y10Pct/100 < th.Y10GreenMax
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.Y10Pct/100 < th.Y10YellowMax
		},
	)

	realEstate = cascade(
		"real estate: low long yields and compressed term premium",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.Y10Pct/100 < th.Y10GreenMax && s.TP10Pct/100 < th.TP10GreenMax
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.Y10Pct/100 < th.Y10YellowMax
		},
	)

	// Literal real-yield cutoffs: below 1.6% real is GREEN, below 2.2%
	// YELLOW. Kept as literals to match the hand-authored rule.
	preciousMetals = cascade(
		"precious metals: real yields are the opportunity cost",
		func(s models.MacroScalars, _ config.Thresholds) bool {
			return s.TIPSPct < 1.6
		},
		func(s models.MacroScalars, _ config.Thresholds) bool {
			return s.TIPSPct < 2.2
		},
	)

	duration = cascade(
		"duration: term premium compression is the tailwind",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.TP10Pct/100 < th.TP10GreenMax
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.TP10Pct/100 < th.TP10YellowMax
		},
	)

	highYieldCredit = cascade(
		"high yield: tight spreads with the economy holding up",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.HYOASBps <= th.HYOASGreenMaxBps && s.PMI >= th.PMIYellowMin
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.HYOASBps <= th.HYOASYellowMaxBps
		},
	)

	investmentGrade = cascade(
		"investment grade: spread carry without a yield shock",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.HYOASBps <= th.HYOASGreenMaxBps && s.Y10Pct/100 < th.Y10YellowMax
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.HYOASBps <= th.HYOASYellowMaxBps
		},
	)

	dollarBull = cascade(
		"dollar long: rides broad dollar strength",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.DXY > th.DXYYellowMax
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.DXY > th.DXYGreenMax
		},
	)

	emergingMarkets = cascade(
		"emerging markets: need a soft dollar and global growth",
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.DXY <= th.DXYGreenMax && s.PMI >= th.PMIGreenMin
		},
		func(s models.MacroScalars, th config.Thresholds) bool {
			return s.DXY <= th.DXYYellowMax && s.PMI >= th.PMIYellowMin
		},
	)
)

// ruleTable maps each configured ticker to its rule. Clauses are
// evaluated top to bottom, first match wins; no rule depends on another
// ticker's outcome.
var ruleTable = map[string]rule{
	"SPY": broadEquity,
	"QQQ": growthDuration,
	"IWM": broadEquity,

	"XLK": growthDuration,
	"XLC": activitySensitive,
	"XLY": discretionary,
	"XLI": cyclicals,
	"XLB": cyclicals,
	"XLE": energy,
	"XOP": oilProducers,

	"XLF": financials,
	"FAS": leveragedFinancials,
	"UYG": leveragedFinancials,
	"BNKU": leveragedFinancials,

	"XLP":  defensives,
	"XLU":  defensives,
	"XLV":  defensives,
	"XLRE": realEstate,

	"GLD": preciousMetals,
	"SLV": preciousMetals,
	"GDX": preciousMetals,

	"TLT": duration,
	"IEF": duration,
	"HYG": highYieldCredit,
	"LQD": investmentGrade,

	"UUP": dollarBull,
	"EEM": emergingMarkets,
}
