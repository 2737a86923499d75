package models

import (
	"encoding/json"
	"math"
)

// Tone is the display bucket of a tile.
type Tone string

const (
	ToneGreen   Tone = "green"
	ToneYellow  Tone = "yellow"
	ToneRed     Tone = "red"
	ToneUnknown Tone = "unknown" // missing input, not a judgment
)

// Tile is a single named display metric. Value is NaN when an input was
// missing; JSON renders that as null.
type Tile struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Tone  Tone    `json:"tone"`
}

// MarshalJSON encodes a missing value as null, since JSON has no NaN.
func (t Tile) MarshalJSON() ([]byte, error) {
	type wire struct {
		Label string   `json:"label"`
		Value *float64 `json:"value"`
		Tone  Tone     `json:"tone"`
	}
	w := wire{Label: t.Label, Tone: t.Tone}
	if !math.IsNaN(t.Value) {
		v := t.Value
		w.Value = &v
	}
	return json.Marshal(w)
}

// TileSet is the ordered tile row handed to presentation.
type TileSet []Tile

// Get returns the tile with the given label, if present.
func (ts TileSet) Get(label string) (Tile, bool) {
	for _, t := range ts {
		if t.Label == label {
			return t, true
		}
	}
	return Tile{}, false
}
