package macro

import (
	"math"
	"testing"
	"time"

	"MacroBoard/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLatestPicksMostRecent(t *testing.T) {
	tbl := &models.Table{Rows: []models.Observation{
		{Date: day(2025, 5, 30), Name: models.SeriesY10, Value: 4.18},
		{Date: day(2025, 6, 2), Name: models.SeriesY10, Value: 4.22},
		{Date: day(2025, 6, 1), Name: models.SeriesY10, Value: 4.20},
		{Date: day(2025, 6, 2), Name: models.SeriesY2, Value: 3.90},
	}}

	got := Latest(tbl, models.SeriesY10)
	if got.Value != 4.22 {
		t.Errorf("latest DGS10 = %v, want 4.22", got.Value)
	}
	if !got.Date.Equal(day(2025, 6, 2)) {
		t.Errorf("latest DGS10 date = %v, want 2025-06-02", got.Date)
	}
}

func TestLatestMissingSeries(t *testing.T) {
	tbl := &models.Table{Rows: []models.Observation{
		{Date: day(2025, 6, 2), Name: models.SeriesY2, Value: 3.90},
	}}

	got := Latest(tbl, models.SeriesWTI)
	if !math.IsNaN(got.Value) {
		t.Errorf("missing series value = %v, want NaN", got.Value)
	}
	if !got.Date.IsZero() {
		t.Errorf("missing series date = %v, want zero", got.Date)
	}
}

func TestLatestDuplicateDateLastWins(t *testing.T) {
	tbl := &models.Table{Rows: []models.Observation{
		{Date: day(2025, 6, 2), Name: models.SeriesPMI, Value: 51.0},
		{Date: day(2025, 6, 2), Name: models.SeriesPMI, Value: 52.0},
	}}

	if got := Latest(tbl, models.SeriesPMI).Value; got != 52.0 {
		t.Errorf("duplicate date resolved to %v, want the later row 52.0", got)
	}
}

func TestResolveCoversAllSeries(t *testing.T) {
	tbl := &models.Table{Rows: []models.Observation{
		{Date: day(2025, 6, 2), Name: models.SeriesY10, Value: 4.22},
	}}

	set := Resolve(tbl)
	if len(set) != len(models.AllSeries) {
		t.Fatalf("resolved %d indicators, want %d", len(set), len(models.AllSeries))
	}
	for _, name := range models.AllSeries {
		iv, ok := set[name]
		if !ok {
			t.Fatalf("indicator %s missing from set", name)
		}
		if name == models.SeriesY10 {
			if iv.Value != 4.22 {
				t.Errorf("%s = %v, want 4.22", name, iv.Value)
			}
			continue
		}
		if !math.IsNaN(iv.Value) {
			t.Errorf("%s = %v, want NaN for absent series", name, iv.Value)
		}
	}
}
