// Package transform maps per-source draw records to canonical results.
// Every function is pure; date filtering happens in the region strategies.
package transform

import (
	"strconv"
	"strings"
	"time"

	"LottoSync/internal/model"
)

// LabelLayout draw label layout for date-labelled sources
const LabelLayout = "2006-01-02"

// JoinInts comma-joins numbers in draw order
func JoinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// JoinDigits "0912345" -> "0,9,1,2,3,4,5"; non-digits are dropped
func JoinDigits(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			parts = append(parts, string(r))
		}
	}
	return strings.Join(parts, ",")
}

// OptionalInts comma-joined numbers, nil when there are none
func OptionalInts(nums []int) *string {
	if len(nums) == 0 {
		return nil
	}
	s := JoinInts(nums)
	return &s
}

// OptionalInt decimal form of n, nil when absent
func OptionalInt(n *int) *string {
	if n == nil {
		return nil
	}
	s := strconv.Itoa(*n)
	return &s
}

// Single one result row without a win class
func Single(main string, sec *string) []model.DrawResult {
	return []model.DrawResult{{WinningNumber: main, SecWinningNumber: sec}}
}

func tier(class int, main string, sec *string) model.DrawResult {
	return model.DrawResult{WinClass: model.IntPtr(class), WinningNumber: main, SecWinningNumber: sec}
}

// IsInDateRange inclusive at both ends
func IsInDateRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

// Label YYYY-MM-DD of t in UTC
func Label(t time.Time) string {
	return t.UTC().Format(LabelLayout)
}

// NewDraw assembles a normalized draw
func NewDraw(date time.Time, label string, t model.LottoType, results []model.DrawResult) model.NormalizedDraw {
	return model.NormalizedDraw{
		DrawDate:     date,
		DrawLabel:    label,
		GameTypeName: t,
		Results:      results,
	}
}
