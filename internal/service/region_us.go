package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

// USStrategy lottonumbers.com pages, or data.ny.gov for the games it publishes
type USStrategy struct {
	numbers  LottoNumbersFetcher
	nygov    NYGovFetcher
	useNYGov bool
	logger   *logrus.Logger
}

func NewUSStrategy(numbers LottoNumbersFetcher, nygov NYGovFetcher, useNYGov bool, logger *logrus.Logger) RegionStrategy {
	s := &USStrategy{numbers: numbers, nygov: nygov, useNYGov: useNYGov, logger: logger}
	return RegionStrategy{
		Region:            model.RegionUS,
		FetchAndTransform: s.fetchAndTransform,
		BuildLookupKey:    LabelLookupKey,
	}
}

func (s *USStrategy) fetchAndTransform(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
	switch t {
	case model.Powerball, model.MegaMillions, model.Cash4Life:
		return s.fromNYGov(ctx, t, from, to), nil
	case model.USPowerball, model.USMegaMillions, model.USCash4Life:
		if s.useNYGov {
			return s.fromNYGov(ctx, t, from, to), nil
		}
	}
	if !s.numbers.Supports(t) {
		s.logger.Warnf("[%s] Unsupported US lottery type", t)
		return nil, nil
	}
	return normalizeInRange(s.numbers.Fetch(ctx, t), from, to,
		func(d model.LottoNumbersDraw) time.Time { return d.DrawDate },
		func(d model.LottoNumbersDraw) model.NormalizedDraw {
			return transform.NewDraw(d.DrawDate, d.DrawLabel, t, transform.LottoNumbersResults(d))
		}), nil
}

// fromNYGov rows are already limited to the window by the query
func (s *USStrategy) fromNYGov(ctx context.Context, t model.LottoType, from, to time.Time) []model.NormalizedDraw {
	rows := s.nygov.Fetch(ctx, t, from, to)
	out := make([]model.NormalizedDraw, 0, len(rows))
	for _, row := range rows {
		date, err := model.ParseFlexTime(row.DrawDate)
		if err != nil {
			s.logger.WithError(err).WithField("lotto_type", t).Warnf("[%s] Skipping row with bad draw_date %q", t, row.DrawDate)
			continue
		}
		results, err := transform.NYGovResults(row, t)
		if err != nil {
			s.logger.WithError(err).WithField("lotto_type", t).Warnf("[%s] Skipping draw %s", t, transform.Label(date))
			continue
		}
		out = append(out, transform.NewDraw(date, transform.Label(date), t, results))
	}
	return out
}
