package model

import (
	"fmt"
	"time"
)

// NormalizedDraw canonical draw produced by every adapter + transformer pair
type NormalizedDraw struct {
	DrawDate       time.Time
	DrawLabel      string // YYYY-MM-DD or a source-native draw number
	GameTypeName   LottoType
	ExternalDrawID *string // only sources exposing a native id (Estonian API)
	Results        []DrawResult
}

// DrawResult one payout tier of a draw
type DrawResult struct {
	WinClass         *int    `json:"winClass"`
	WinningNumber    string  `json:"winningNumber"`
	SecWinningNumber *string `json:"secWinningNumber"`
}

// Key dedup key fields of the draw
func (d NormalizedDraw) Key() DrawKey {
	return DrawKey{DrawLabel: d.DrawLabel, GameTypeName: d.GameTypeName, ExternalDrawID: d.ExternalDrawID}
}

// PersistableResults results carrying a non-empty winning number
func (d NormalizedDraw) PersistableResults() []DrawResult {
	out := make([]DrawResult, 0, len(d.Results))
	for _, r := range d.Results {
		if r.WinningNumber == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DrawKey fields used to look up a persisted draw
type DrawKey struct {
	DrawLabel      string
	GameTypeName   LottoType
	ExternalDrawID *string
}

// DateRange inclusive ingestion window
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() || r.To.Before(r.From) {
		return fmt.Errorf("%w: %s - %s", ErrInvalidDateRange, r.From.Format(time.RFC3339), r.To.Format(time.RFC3339))
	}
	return nil
}

// Contains inclusive at both ends
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

func IntPtr(v int) *int { return &v }

func StringPtr(v string) *string { return &v }

// OptionalString nil for the empty string
func OptionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// DrawFilter query filter of the read API
type DrawFilter struct {
	GameTypeName LottoType
	From         *time.Time
	To           *time.Time
}

// DrawView persisted draw with its results
type DrawView struct {
	ID             string       `json:"id"`
	DrawDate       time.Time    `json:"drawDate"`
	DrawLabel      string       `json:"drawLabel"`
	GameTypeName   LottoType    `json:"gameTypeName"`
	ExternalDrawID *string      `json:"externalDrawId,omitempty"`
	Results        []DrawResult `json:"results"`
}
