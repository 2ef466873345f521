package service

import (
	"context"
	"time"

	"LottoSync/internal/adapter/estonia"
	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

// NewEstonianStrategy eestiloto.ee filters by date server side and exposes native draw ids
func NewEstonianStrategy(src EstonianFetcher, logger *logrus.Logger) RegionStrategy {
	return RegionStrategy{
		Region: model.RegionEstonian,
		FetchAndTransform: func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			if !src.Supports(t) {
				logger.Warnf("[%s] Unsupported Estonian lottery type", t)
				return nil, nil
			}
			draws := src.Fetch(ctx, t, from, to)
			out := make([]model.NormalizedDraw, 0, len(draws))
			for _, d := range draws {
				gameType := t
				if d.GameTypeName != "" {
					gameType = estonia.LottoTypeFromAPI(d.GameTypeName)
				}
				nd := transform.NewDraw(d.DrawDate.Time, d.DrawLabel, gameType, transform.EstonianResults(d))
				nd.ExternalDrawID = d.ExternalDrawID
				out = append(out, nd)
			}
			return out, nil
		},
		BuildLookupKey: ExternalIDLookupKey,
	}
}
