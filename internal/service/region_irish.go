package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

func NewIrishStrategy(src IrishFetcher, logger *logrus.Logger) RegionStrategy {
	return RegionStrategy{
		Region: model.RegionIrish,
		FetchAndTransform: func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			if !src.Supports(t) {
				logger.Warnf("[%s] Unsupported Irish lottery type", t)
				return nil, nil
			}
			return normalizeInRange(src.Fetch(ctx, t), from, to,
				func(d model.IrishDraw) time.Time { return d.DrawDate },
				func(d model.IrishDraw) model.NormalizedDraw {
					return transform.NewDraw(d.DrawDate, d.DrawLabel, t, transform.IrishResults(d))
				}), nil
		},
		BuildLookupKey: LabelLookupKey,
	}
}
