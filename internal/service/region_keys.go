package service

import (
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"
)

// LabelLookupKey drawLabel-gameTypeName
func LabelLookupKey(k model.DrawKey) string {
	return k.DrawLabel + "-" + string(k.GameTypeName)
}

// ExternalIDLookupKey externalDrawId-drawLabel-gameTypeName, "null" for a missing id
func ExternalIDLookupKey(k model.DrawKey) string {
	id := "null"
	if k.ExternalDrawID != nil {
		id = *k.ExternalDrawID
	}
	return id + "-" + k.DrawLabel + "-" + string(k.GameTypeName)
}

// normalizeInRange keeps records drawn within [from, to] and normalizes them in source order
func normalizeInRange[T any](items []T, from, to time.Time, date func(T) time.Time, normalize func(T) model.NormalizedDraw) []model.NormalizedDraw {
	out := make([]model.NormalizedDraw, 0, len(items))
	for _, item := range items {
		if !transform.IsInDateRange(date(item), from, to) {
			continue
		}
		out = append(out, normalize(item))
	}
	return out
}
