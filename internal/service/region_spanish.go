package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

// NewSpanishStrategy loteriasyapuestas.es RSS, EuroDreams included
func NewSpanishStrategy(src SpanishFetcher, logger *logrus.Logger) RegionStrategy {
	return RegionStrategy{
		Region: model.RegionSpanish,
		FetchAndTransform: func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			if !src.Supports(t) {
				logger.Warnf("[%s] Unsupported Spanish lottery type", t)
				return nil, nil
			}
			return normalizeInRange(src.Fetch(ctx, t), from, to,
				func(d model.SpanishDraw) time.Time { return d.DrawDate },
				func(d model.SpanishDraw) model.NormalizedDraw {
					return transform.NewDraw(d.DrawDate, d.DrawLabel, t, transform.SpanishResults(d, t))
				}), nil
		},
		BuildLookupKey: LabelLookupKey,
	}
}
