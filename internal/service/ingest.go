package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	defaultChunkSize = 500
	defaultWindow    = 24 * time.Hour
)

// Run kinds recorded in ingest_run
const (
	KindLatest = "latest"
	KindManual = "manual"
	KindReset  = "reset"
)

// Run statuses recorded in ingest_run
const (
	StatusOK     = "ok"
	StatusEmpty  = "empty"
	StatusFailed = "failed"
)

// RegionStrategy the source specific half of an ingestion run
type RegionStrategy struct {
	Region model.Region
	// FetchAndTransform normalized draws of t drawn within [from, to]
	FetchAndTransform func(ctx context.Context, t model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error)
	// BuildLookupKey matches persisted draws to fetched ones
	BuildLookupKey func(k model.DrawKey) string
}

// Summary outcome of one run
type Summary struct {
	LottoType       model.LottoType `json:"lottoType"`
	Region          model.Region    `json:"region"`
	Kind            string          `json:"kind"`
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	Status          string          `json:"status"`
	Fetched         int             `json:"fetched"`
	DrawsInserted   int             `json:"drawsInserted"`
	ResultsInserted int             `json:"resultsInserted"`
	ResultsSkipped  int             `json:"resultsSkipped"`
	Took            time.Duration   `json:"took"`
}

// IngestService runs the shared fetch -> transform -> persist flow of one region
type IngestService struct {
	strategy  RegionStrategy
	store     interfaces.DrawStore
	runs      interfaces.RunRecorder
	metrics   interfaces.RunMetrics
	logger    *logrus.Logger
	chunkSize int
	window    time.Duration
	now       func() time.Time
}

type IngestOption func(*IngestService)

func WithChunkSize(n int) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithWindow length of the default [now-window, now] range
func WithWindow(d time.Duration) IngestOption {
	return func(s *IngestService) {
		if d > 0 {
			s.window = d
		}
	}
}

func WithClock(now func() time.Time) IngestOption {
	return func(s *IngestService) { s.now = now }
}

// WithRunRecorder audit every run in ingest_run
func WithRunRecorder(r interfaces.RunRecorder) IngestOption {
	return func(s *IngestService) { s.runs = r }
}

func WithRunMetrics(m interfaces.RunMetrics) IngestOption {
	return func(s *IngestService) { s.metrics = m }
}

func NewIngestService(strategy RegionStrategy, store interfaces.DrawStore, logger *logrus.Logger, opts ...IngestOption) *IngestService {
	s := &IngestService{
		strategy:  strategy,
		store:     store,
		logger:    logger,
		chunkSize: defaultChunkSize,
		window:    defaultWindow,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Region strategy region
func (s *IngestService) Region() model.Region {
	return s.strategy.Region
}

// SaveLatestDraws ingests t over rng, or over the default window when rng is nil
func (s *IngestService) SaveLatestDraws(ctx context.Context, t model.LottoType, rng *model.DateRange) (Summary, error) {
	kind := KindLatest
	if rng != nil {
		kind = KindManual
	}
	return s.SaveDraws(ctx, t, rng, kind)
}

// SaveDraws same as SaveLatestDraws with an explicit run kind
func (s *IngestService) SaveDraws(ctx context.Context, t model.LottoType, rng *model.DateRange, kind string) (Summary, error) {
	started := s.now()
	window := s.determineWindow(rng)
	sum := Summary{
		LottoType: t,
		Region:    s.strategy.Region,
		Kind:      kind,
		From:      window.From,
		To:        window.To,
	}

	s.logger.Infof("[%s] Getting new draws between %s - %s", t,
		window.From.UTC().Format(time.RFC3339), window.To.UTC().Format(time.RFC3339))

	draws, err := s.strategy.FetchAndTransform(ctx, t, window.From, window.To)
	if err != nil {
		err = fmt.Errorf("[%s] fetch draws: %w", t, err)
		s.finish(ctx, &sum, started, err)
		return sum, err
	}
	sum.Fetched = len(draws)
	if len(draws) == 0 {
		s.logger.Infof("[%s] No draws fetched. Closing...", t)
		s.finish(ctx, &sum, started, nil)
		return sum, nil
	}

	draws = s.dropEmptyDraws(t, draws, &sum)
	if len(draws) == 0 {
		s.logger.Infof("[%s] No draws with results. Closing...", t)
		s.finish(ctx, &sum, started, nil)
		return sum, nil
	}

	if err := s.persist(ctx, draws, &sum); err != nil {
		err = fmt.Errorf("[%s] save draws: %w", t, err)
		s.finish(ctx, &sum, started, err)
		return sum, err
	}

	if sum.DrawsInserted > 0 || sum.ResultsInserted > 0 {
		s.logger.Infof("[%s] Inserted %d draws, %d results", t, sum.DrawsInserted, sum.ResultsInserted)
	} else {
		s.logger.Infof("[%s] Already up to date", t)
	}
	s.finish(ctx, &sum, started, nil)
	return sum, nil
}

func (s *IngestService) determineWindow(rng *model.DateRange) model.DateRange {
	if rng != nil {
		return *rng
	}
	now := s.now()
	// opens at UTC midnight, where date-labelled draws are stamped
	start := now.Add(-s.window).UTC()
	return model.DateRange{From: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC), To: now}
}

// dropEmptyDraws removes draws without a single non-empty winning number; they are never written
func (s *IngestService) dropEmptyDraws(t model.LottoType, draws []model.NormalizedDraw, sum *Summary) []model.NormalizedDraw {
	kept := draws[:0:0]
	for _, d := range draws {
		if len(d.PersistableResults()) == 0 {
			s.logger.Debugf("[%s] Draw %s has no results, skipping", t, d.DrawLabel)
			sum.ResultsSkipped += len(d.Results)
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// persist writes draws then results in one READ COMMITTED transaction
func (s *IngestService) persist(ctx context.Context, draws []model.NormalizedDraw, sum *Summary) error {
	tx, err := s.store.Begin(ctx, sql.LevelReadCommitted)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.WithError(rbErr).WithField("lotto_type", sum.LottoType).Error("Rollback failed")
		}
	}()

	rows := make([]*model.Draw, 0, len(draws))
	keys := make([]model.DrawKey, 0, len(draws))
	for _, d := range draws {
		rows = append(rows, model.NewDrawRow(d))
		keys = append(keys, d.Key())
	}
	for _, batch := range chunk(rows, s.chunkSize) {
		inserted, err := tx.UpsertDraws(batch)
		if err != nil {
			return err
		}
		sum.DrawsInserted += len(inserted)
	}

	// same transaction, so rows inserted above are visible
	persisted, err := tx.FindDraws(keys)
	if err != nil {
		return err
	}
	lookup := make(map[string]model.Draw, len(persisted))
	for _, p := range persisted {
		lookup[s.strategy.BuildLookupKey(p.Key())] = p
	}

	var results []*model.DrawResultRow
	for _, d := range draws {
		p, ok := lookup[s.strategy.BuildLookupKey(d.Key())]
		if !ok {
			continue
		}
		persistable := d.PersistableResults()
		sum.ResultsSkipped += len(d.Results) - len(persistable)
		for _, r := range persistable {
			results = append(results, model.NewResultRow(p.ID, r))
		}
	}
	for _, batch := range chunk(results, s.chunkSize) {
		inserted, err := tx.UpsertResults(batch)
		if err != nil {
			return err
		}
		sum.ResultsInserted += len(inserted)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// finish sets the status, then records metrics and the audit row; audit failures are only logged
func (s *IngestService) finish(ctx context.Context, sum *Summary, started time.Time, runErr error) {
	finished := s.now()
	sum.Took = finished.Sub(started)
	switch {
	case runErr != nil:
		sum.Status = StatusFailed
	case sum.Fetched == 0:
		sum.Status = StatusEmpty
	default:
		sum.Status = StatusOK
	}

	if s.metrics != nil {
		s.metrics.RecordRun(sum.LottoType, sum.Status, sum.Fetched, sum.DrawsInserted, sum.ResultsInserted, sum.Took)
	}
	if s.runs == nil {
		return
	}

	stats, err := json.Marshal(map[string]interface{}{
		"fetched":          sum.Fetched,
		"draws_inserted":   sum.DrawsInserted,
		"results_inserted": sum.ResultsInserted,
		"results_skipped":  sum.ResultsSkipped,
		"took_ms":          sum.Took.Milliseconds(),
	})
	if err != nil {
		stats = []byte("{}")
	}
	run := &model.IngestRun{
		LottoType:       sum.LottoType,
		Region:          sum.Region,
		Kind:            sum.Kind,
		DateFrom:        sum.From,
		DateTo:          sum.To,
		Status:          sum.Status,
		DrawsFetched:    sum.Fetched,
		DrawsInserted:   sum.DrawsInserted,
		ResultsInserted: sum.ResultsInserted,
		Stats:           datatypes.JSON(stats),
		StartedAt:       started,
		FinishedAt:      finished,
	}
	if runErr != nil {
		run.Error = model.StringPtr(runErr.Error())
	}
	// the run itself may have been cancelled; the audit row is still written
	if err := s.runs.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		s.logger.WithError(err).WithField("lotto_type", sum.LottoType).Warn("Failed to record ingest run")
	}
}

func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = defaultChunkSize
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		out = append(out, items[start:min(start+size, len(items))])
	}
	return out
}
