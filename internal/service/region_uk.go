package service

import (
	"context"
	"strconv"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

// NewUKStrategy National Lottery CSV exports, uk.lottonumbers.com for the games they lack
func NewUKStrategy(csv UKCSVFetcher, numbers LottoNumbersFetcher, logger *logrus.Logger) RegionStrategy {
	return RegionStrategy{
		Region: model.RegionUK,
		FetchAndTransform: func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			switch {
			case csv.Supports(t):
				return normalizeInRange(csv.Fetch(ctx, t), from, to,
					func(d model.UKCSVDraw) time.Time { return d.DrawDate },
					func(d model.UKCSVDraw) model.NormalizedDraw {
						return transform.NewDraw(d.DrawDate, strconv.Itoa(d.DrawNumber), t, transform.UKCSVResults(d))
					}), nil
			case numbers.Supports(t):
				return normalizeInRange(numbers.Fetch(ctx, t), from, to,
					func(d model.LottoNumbersDraw) time.Time { return d.DrawDate },
					func(d model.LottoNumbersDraw) model.NormalizedDraw {
						return transform.NewDraw(d.DrawDate, d.DrawLabel, t, transform.LottoNumbersResults(d))
					}), nil
			}
			logger.Warnf("[%s] Unsupported UK lottery type", t)
			return nil, nil
		},
		BuildLookupKey: LabelLookupKey,
	}
}
