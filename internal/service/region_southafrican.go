package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

func NewSouthAfricanStrategy(src SouthAfricanFetcher, logger *logrus.Logger) RegionStrategy {
	return RegionStrategy{
		Region: model.RegionSouthAfrican,
		FetchAndTransform: func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			if !src.Supports(t) {
				logger.Warnf("[%s] Unsupported South African lottery type", t)
				return nil, nil
			}
			return normalizeInRange(src.Fetch(ctx, t), from, to,
				func(d model.SouthAfricanDraw) time.Time { return d.DrawDate },
				func(d model.SouthAfricanDraw) model.NormalizedDraw {
					return transform.NewDraw(d.DrawDate, d.DrawLabel, t, transform.SouthAfricanResults(d, t))
				}), nil
		},
		BuildLookupKey: LabelLookupKey,
	}
}
