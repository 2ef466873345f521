package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

func NewCanadianStrategy(src CanadianFetcher, logger *logrus.Logger) RegionStrategy {
	return RegionStrategy{
		Region: model.RegionCanadian,
		FetchAndTransform: func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			if !src.Supports(t) {
				logger.Warnf("[%s] Unsupported Canadian lottery type", t)
				return nil, nil
			}
			return normalizeInRange(src.Fetch(ctx, t), from, to,
				func(d model.CanadianDraw) time.Time { return d.DrawDate },
				func(d model.CanadianDraw) model.NormalizedDraw {
					return transform.NewDraw(d.DrawDate, d.DrawLabel, t, transform.CanadianResults(d, t))
				}), nil
		},
		BuildLookupKey: LabelLookupKey,
	}
}
