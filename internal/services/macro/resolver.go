package macro

import (
	"math"
	"sort"

	"MacroBoard/internal/domain/models"
)

// Latest returns the most recent value and its date for a named series.
// A series with no observations resolves to (NaN, zero time); this never
// fails. Ties on the maximum date resolve to the row that sorts last
// (stable order).
func Latest(t *models.Table, name string) models.IndicatorValue {
	var matched []models.Observation
	for _, o := range t.Rows {
		if o.Name == name {
			matched = append(matched, o)
		}
	}
	if len(matched) == 0 {
		return models.IndicatorValue{Value: math.NaN()}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})
	last := matched[len(matched)-1]
	return models.IndicatorValue{Value: last.Value, Date: last.Date}
}

// Resolve extracts the latest value of every known indicator.
func Resolve(t *models.Table) models.IndicatorSet {
	set := make(models.IndicatorSet, len(models.AllSeries))
	for _, name := range models.AllSeries {
		set[name] = Latest(t, name)
	}
	return set
}
