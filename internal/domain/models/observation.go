package models

import "time"

// Observation is one dated point of a named series.
// Immutable once produced by a fetcher.
type Observation struct {
	Date  time.Time `json:"date"`
	Name  string    `json:"name"`
	Value float64   `json:"value"`
}

// Table is the unified observation table built by a single acquisition
// pass. It is rebuilt from scratch on every refresh and never mutated
// after the merge completes. Rows carry a valid date and value; rows with
// a missing value are dropped at merge time.
type Table struct {
	Rows     []Observation
	Warnings []string // one "<series>: <error>" entry per failed fetch
}
