package models

// Signal is the traffic-light classification of a ticker's macro exposure.
type Signal string

const (
	SignalGreen        Signal = "GREEN"
	SignalYellow       Signal = "YELLOW"
	SignalRed          Signal = "RED"
	SignalUnclassified Signal = "UNCLASSIFIED"
)

// SignalRow is one classified ticker, produced fresh on every render.
type SignalRow struct {
	Ticker    string `json:"ticker"`
	Signal    Signal `json:"signal"`
	Rationale string `json:"rationale"`
}
