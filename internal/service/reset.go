package service

import (
	"context"
	"fmt"
	"time"

	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"github.com/sirupsen/logrus"
)

// ResetService deletes stored draws and re-ingests them from each type's history start
type ResetService struct {
	store      interfaces.DrawStore
	dispatcher *Dispatcher
	logger     *logrus.Logger
	now        func() time.Time
}

func NewResetService(store interfaces.DrawStore, dispatcher *Dispatcher, logger *logrus.Logger) *ResetService {
	return &ResetService{store: store, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// ResetDraws resets the given types, every enabled type when none given. Types are
// re-ingested one after another and the first failure stops the reset; types already
// re-ingested stay in place.
func (r *ResetService) ResetDraws(ctx context.Context, types ...model.LottoType) ([]Summary, error) {
	deleteFilter := types
	if len(types) == 0 {
		types = r.dispatcher.EnabledTypes()
		if r.dispatcher.Restricted() {
			deleteFilter = types
		}
	}
	for _, t := range types {
		if _, ok := r.dispatcher.Lookup(t); !ok {
			return nil, fmt.Errorf("reset %s: %w", t, model.ErrNotConfigured)
		}
	}

	r.logger.Info("Deleting everything and resaving every draw...")
	results, err := r.store.HardDeleteAllResults(ctx, deleteFilter...)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	draws, err := r.store.HardDeleteAllDraws(ctx, deleteFilter...)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	r.logger.WithFields(logrus.Fields{
		"draws_deleted":   draws,
		"results_deleted": results,
	}).Info("Stored draws deleted")

	now := r.now()
	summaries := make([]Summary, 0, len(types))
	for _, t := range types {
		rc, _ := r.dispatcher.Lookup(t)
		rng := model.DateRange{From: rc.HistoryStart, To: now}
		sum, err := r.dispatcher.ingest(ctx, t, &rng, KindReset)
		summaries = append(summaries, sum)
		if err != nil {
			return summaries, fmt.Errorf("reset %s: %w", t, err)
		}
	}

	r.logger.Info("Resetting successful.")
	return summaries, nil
}
