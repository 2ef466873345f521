package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
	"LottoSync/internal/transform"

	"github.com/sirupsen/logrus"
)

// secondDrawSuffix label suffix of the Loto second draw
const secondDrawSuffix = "/2"

// FrenchStrategy tirage-gagnant.com, latest draw only
type FrenchStrategy struct {
	src    FrenchFetcher
	logger *logrus.Logger
}

func NewFrenchStrategy(src FrenchFetcher, logger *logrus.Logger) RegionStrategy {
	s := &FrenchStrategy{src: src, logger: logger}
	return RegionStrategy{
		Region:            model.RegionFrench,
		FetchAndTransform: s.fetchAndTransform,
		BuildLookupKey:    LabelLookupKey,
	}
}

func (s *FrenchStrategy) fetchAndTransform(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
	switch t {
	case model.FRLoto:
		return s.loto(ctx, from, to), nil
	case model.FRKeno:
		return s.keno(ctx, from, to), nil
	case model.FRJoker:
		return s.joker(ctx, from, to), nil
	}
	s.logger.Warnf("[%s] Unsupported French lottery type", t)
	return nil, nil
}

func (s *FrenchStrategy) inRange(t model.LottoType, date time.Time, label string, from, to time.Time) bool {
	if transform.IsInDateRange(date, from, to) {
		return true
	}
	s.logger.Infof("[%s] Draw %s outside date range, skipping", t, label)
	return false
}

func (s *FrenchStrategy) loto(ctx context.Context, from, to time.Time) []model.NormalizedDraw {
	d := s.src.FetchLoto(ctx)
	if d == nil || !s.inRange(model.FRLoto, d.DrawDate, d.DrawLabel, from, to) {
		return nil
	}
	out := []model.NormalizedDraw{
		transform.NewDraw(d.DrawDate, d.DrawLabel, model.FRLoto, transform.FrenchLotoResults(*d)),
	}
	if len(d.SecondTirageNumbers) > 0 {
		out = append(out, transform.NewDraw(d.DrawDate, d.DrawLabel+secondDrawSuffix, model.FRLoto, transform.FrenchLotoSecondResults(*d)))
	}
	return out
}

func (s *FrenchStrategy) keno(ctx context.Context, from, to time.Time) []model.NormalizedDraw {
	d := s.src.FetchKeno(ctx)
	if d == nil || !s.inRange(model.FRKeno, d.DrawDate, d.DrawLabel, from, to) {
		return nil
	}
	return []model.NormalizedDraw{
		transform.NewDraw(d.DrawDate, d.DrawLabel, model.FRKeno, transform.FrenchKenoResults(*d)),
	}
}

// joker the Keno page is published daily, so it is preferred over Loto
func (s *FrenchStrategy) joker(ctx context.Context, from, to time.Time) []model.NormalizedDraw {
	var (
		date  time.Time
		label string
		joker string
	)
	if k := s.src.FetchKeno(ctx); k != nil && k.JokerNumber != "" {
		date, label, joker = k.DrawDate, k.DrawLabel, k.JokerNumber
	} else if l := s.src.FetchLoto(ctx); l != nil && l.JokerNumber != "" {
		date, label, joker = l.DrawDate, l.DrawLabel, l.JokerNumber
	}
	if joker == "" {
		s.logger.Warnf("[%s] No Joker number found", model.FRJoker)
		return nil
	}
	if !s.inRange(model.FRJoker, date, label, from, to) {
		return nil
	}
	return []model.NormalizedDraw{
		transform.NewDraw(date, label, model.FRJoker, transform.FrenchJokerResults(joker)),
	}
}
