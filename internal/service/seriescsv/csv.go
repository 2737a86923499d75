package seriescsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strings"

	"MacroBoard/internal/domain/models"
	"MacroBoard/pkg/util"
)

// Known date-column spellings across the FRED CSV variants.
const (
	dateColPrimary   = "DATE"
	dateColSecondary = "observation_date"
)

// Parse decodes a CSV body into observations for the given series id.
// The date column is matched by known header spellings, else the first
// column; the value column is the series id header when present, else the
// second column. Unparsable values become NaN and are kept (the merge
// drops them); rows with unparsable dates are dropped here.
func Parse(id string, body []byte) ([]models.Observation, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv for %s has no data rows", id)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("csv for %s has only %d columns", id, len(header))
	}
	dateIdx, valIdx := columnIndexes(id, header)

	obs := make([]models.Observation, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= dateIdx || len(rec) <= valIdx {
			continue
		}
		d, ok := util.ParseDate(rec[dateIdx])
		if !ok {
			continue
		}
		v, ok := util.ParseFloat(rec[valIdx])
		if !ok {
			v = math.NaN()
		}
		obs = append(obs, models.Observation{Date: d, Name: id, Value: v})
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("csv for %s yielded no usable rows", id)
	}
	return obs, nil
}

func columnIndexes(id string, header []string) (dateIdx, valIdx int) {
	dateIdx, valIdx = 0, 1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case dateColPrimary, dateColSecondary:
			dateIdx = i
		case id:
			valIdx = i
		}
	}
	return dateIdx, valIdx
}

// StripPreamble drops explanatory text ahead of the real header row: the
// first non-empty line containing every marker (case-insensitive) becomes
// line one of the result.
func StripPreamble(body []byte, markers ...string) ([]byte, error) {
	var kept []string
	for _, ln := range strings.Split(string(body), "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			kept = append(kept, s)
		}
	}
	for i, ln := range kept {
		low := strings.ToLower(ln)
		found := true
		for _, m := range markers {
			if !strings.Contains(low, strings.ToLower(m)) {
				found = false
				break
			}
		}
		if found {
			return []byte(strings.Join(kept[i:], "\n")), nil
		}
	}
	return nil, fmt.Errorf("header row with markers %v not found", markers)
}
