package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"LottoSync/internal/adapter"
	"LottoSync/internal/config"
	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"github.com/sirupsen/logrus"
)

// Dispatcher routes a lottery type to the ingest service of its region
type Dispatcher struct {
	regions  *Regions
	services map[model.Region]*IngestService
	enabled  map[model.LottoType]bool // nil = every configured type
	logger   *logrus.Logger
	now      func() time.Time
}

func NewDispatcher(regions *Regions, services []*IngestService, enabled []model.LottoType, logger *logrus.Logger) *Dispatcher {
	d := &Dispatcher{
		regions:  regions,
		services: make(map[model.Region]*IngestService, len(services)),
		logger:   logger,
		now:      time.Now,
	}
	for _, s := range services {
		d.services[s.Region()] = s
	}
	if len(enabled) > 0 {
		d.enabled = make(map[model.LottoType]bool, len(enabled))
		for _, t := range enabled {
			d.enabled[t] = true
		}
	}
	return d
}

// BuildDispatcher one ingest service per region over the registry's adapters
func BuildDispatcher(cfg *config.Config, reg *adapter.Registry, store interfaces.DrawStore, runs interfaces.RunRecorder,
	metrics interfaces.RunMetrics, logger *logrus.Logger) (*Dispatcher, error) {
	regions, err := NewRegions(cfg.Ingest.HistoryStart)
	if err != nil {
		return nil, err
	}
	var enabled []model.LottoType
	for _, name := range cfg.Ingest.EnabledTypes {
		t, err := model.ParseLottoType(name)
		if err != nil {
			return nil, fmt.Errorf("ingest.enabled_types: %w", err)
		}
		if _, ok := regions.Lookup(t); !ok {
			return nil, fmt.Errorf("ingest.enabled_types %s: %w", t, model.ErrNotConfigured)
		}
		enabled = append(enabled, t)
	}

	strategies := []RegionStrategy{
		NewEstonianStrategy(reg.Estonia, logger),
		NewUSStrategy(reg.USNumbers, reg.NYGov, cfg.Ingest.UseNYGov, logger),
		NewUKStrategy(reg.UKCSV, reg.UKNumbers, logger),
		NewCanadianStrategy(reg.Canada, logger),
		NewAustralianStrategy(reg.AUNumbers, logger),
		NewSouthAfricanStrategy(reg.SouthAfrica, logger),
		NewSpanishStrategy(reg.Spain, logger),
		NewIrishStrategy(reg.Ireland, logger),
		NewFrenchStrategy(reg.France, logger),
		NewGermanStrategy(reg.Germany, logger),
	}
	opts := []IngestOption{
		WithChunkSize(cfg.Ingest.ChunkSize),
		WithWindow(cfg.Ingest.Window()),
		WithRunRecorder(runs),
		WithRunMetrics(metrics),
	}
	services := make([]*IngestService, 0, len(strategies))
	for _, s := range strategies {
		services = append(services, NewIngestService(s, store, logger, opts...))
	}
	return NewDispatcher(regions, services, enabled, logger), nil
}

// Ingest one type; a nil range means the default incremental window
func (d *Dispatcher) Ingest(ctx context.Context, t model.LottoType, rng *model.DateRange) (Summary, error) {
	kind := KindLatest
	if rng != nil {
		kind = KindManual
	}
	return d.ingest(ctx, t, rng, kind)
}

func (d *Dispatcher) ingest(ctx context.Context, t model.LottoType, rng *model.DateRange, kind string) (Summary, error) {
	svc, err := d.serviceFor(t)
	if err != nil {
		d.logger.WithError(err).WithField("lotto_type", t).Warn("Lottery type cannot be ingested")
		return Summary{LottoType: t, Kind: kind}, err
	}
	if rng != nil {
		if err := rng.Validate(); err != nil {
			return Summary{LottoType: t, Kind: kind}, err
		}
	}
	return svc.SaveDraws(ctx, t, rng, kind)
}

func (d *Dispatcher) serviceFor(t model.LottoType) (*IngestService, error) {
	rc, ok := d.regions.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrNotConfigured, t)
	}
	svc, ok := d.services[rc.Region]
	if !ok {
		return nil, fmt.Errorf("%w: no ingest service for region %s", model.ErrNotConfigured, rc.Region)
	}
	return svc, nil
}

// IngestAll every enabled type in table order; failures are logged and the loop continues
func (d *Dispatcher) IngestAll(ctx context.Context) ([]Summary, error) {
	var (
		summaries []Summary
		errs      []error
	)
	for _, t := range d.EnabledTypes() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		sum, err := d.ingest(ctx, t, nil, KindLatest)
		summaries = append(summaries, sum)
		if err != nil {
			d.logger.WithError(err).WithField("lotto_type", t).Error("Ingestion failed")
			errs = append(errs, err)
		}
	}
	return summaries, errors.Join(errs...)
}

// EnabledTypes types ingested by IngestAll and reset, in table order
func (d *Dispatcher) EnabledTypes() []model.LottoType {
	all := d.regions.ConfiguredTypes()
	if d.enabled == nil {
		return all
	}
	out := make([]model.LottoType, 0, len(d.enabled))
	for _, t := range all {
		if d.enabled[t] {
			out = append(out, t)
		}
	}
	// explicitly enabled legacy NY names are not part of ConfiguredTypes
	for _, t := range model.AllLottoTypes() {
		if d.enabled[t] && legacyNYTypes[t] {
			out = append(out, t)
		}
	}
	return out
}

// Restricted reports whether only a subset of the types is enabled
func (d *Dispatcher) Restricted() bool {
	return d.enabled != nil
}

// Lookup region config of t
func (d *Dispatcher) Lookup(t model.LottoType) (RegionConfig, bool) {
	return d.regions.Lookup(t)
}
