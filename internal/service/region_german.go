package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

// NewGermanStrategy lotto-hessen.de publishes only the latest draw per game
func NewGermanStrategy(src GermanFetcher, logger *logrus.Logger) RegionStrategy {
	return RegionStrategy{
		Region: model.RegionGerman,
		FetchAndTransform: func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			if !src.Supports(t) {
				logger.Warnf("[%s] Unsupported German lottery type", t)
				return nil, nil
			}
			d := src.Fetch(ctx, t)
			if d == nil {
				return nil, nil
			}
			if !transform.IsInDateRange(d.DrawDate, from, to) {
				logger.Infof("[%s] Draw %s outside date range, skipping", t, d.DrawLabel)
				return nil, nil
			}
			return []model.NormalizedDraw{
				transform.NewDraw(d.DrawDate, d.DrawLabel, t, transform.GermanResults(*d, t)),
			}, nil
		},
		BuildLookupKey: LabelLookupKey,
	}
}
