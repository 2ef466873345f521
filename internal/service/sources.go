package service

import (
	"context"
	"time"

	"LottoSync/internal/model"
)

// Fetchers consumed by the region strategies; implemented by the adapter clients

type LottoNumbersFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType) []model.LottoNumbersDraw
}

type CanadianFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType) []model.CanadianDraw
}

type SouthAfricanFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType) []model.SouthAfricanDraw
}

type UKCSVFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType) []model.UKCSVDraw
}

type EstonianFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType, from, to time.Time) []model.EstonianDraw
}

type NYGovFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType, from, to time.Time) []model.NYGovDraw
}

type SpanishFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType) []model.SpanishDraw
}

type IrishFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType) []model.IrishDraw
}

type FrenchFetcher interface {
	FetchLoto(ctx context.Context) *model.FrenchLotoDraw
	FetchKeno(ctx context.Context) *model.FrenchKenoDraw
}

type GermanFetcher interface {
	Supports(t model.LottoType) bool
	Fetch(ctx context.Context, t model.LottoType) *model.GermanDraw
}
