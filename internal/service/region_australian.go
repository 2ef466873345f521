package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

func NewAustralianStrategy(numbers LottoNumbersFetcher, logger *logrus.Logger) RegionStrategy {
	return RegionStrategy{
		Region: model.RegionAustralian,
		FetchAndTransform: func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			if !numbers.Supports(t) {
				logger.Warnf("[%s] Unsupported Australian lottery type", t)
				return nil, nil
			}
			return normalizeInRange(numbers.Fetch(ctx, t), from, to,
				func(d model.LottoNumbersDraw) time.Time { return d.DrawDate },
				func(d model.LottoNumbersDraw) model.NormalizedDraw {
					return transform.NewDraw(d.DrawDate, d.DrawLabel, t, transform.LottoNumbersResults(d))
				}), nil
		},
		BuildLookupKey: LabelLookupKey,
	}
}
