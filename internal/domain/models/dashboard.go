package models

import "time"

// Dashboard is the complete render model handed to presentation and
// export. Everything in it is recomputed per request.
type Dashboard struct {
	Tiles     TileSet     `json:"tiles"`
	AsOf      time.Time   `json:"as_of"` // date of the latest 10y yield observation
	Signals   []SignalRow `json:"signals"`
	Warnings  []string    `json:"warnings,omitempty"`
	Generated time.Time   `json:"generated"`
}

// DashboardRequest carries render options from the query string.
type DashboardRequest struct {
	Force bool `query:"force"` // bypass the fetch-result cache
}

// ExportRequest carries spreadsheet export options.
type ExportRequest struct {
	Filename string `query:"filename" validate:"omitempty,max=64"`
}
