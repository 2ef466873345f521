package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"
)

// fakeStore in-memory DrawStore honouring the unique (draw_label, game_type_name) and result_key indexes
type fakeStore struct {
	mu      sync.Mutex
	draws   map[string]model.Draw
	results map[string]model.DrawResultRow

	levels          []sql.IsolationLevel
	drawBatches     []int
	resultBatches   []int
	commits         int
	rollbacks       int
	failResults     error
	deletedTypes    [][]model.LottoType
	deleteDrawsErr  error
	deletedAllCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		draws:   make(map[string]model.Draw),
		results: make(map[string]model.DrawResultRow),
	}
}

func drawIndexKey(label string, t model.LottoType) string { return label + "|" + string(t) }

func (s *fakeStore) Begin(_ context.Context, level sql.IsolationLevel) (interfaces.DrawTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels = append(s.levels, level)
	return &fakeTx{store: s, draws: map[string]model.Draw{}, results: map[string]model.DrawResultRow{}}, nil
}

func (s *fakeStore) HardDeleteAllDraws(_ context.Context, types ...model.LottoType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteDrawsErr != nil {
		return 0, s.deleteDrawsErr
	}
	s.deletedTypes = append(s.deletedTypes, types)
	var n int64
	for k, d := range s.draws {
		if matchesType(d.GameTypeName, types) {
			delete(s.draws, k)
			n++
		}
	}
	if len(types) == 0 {
		s.deletedAllCalls++
	}
	return n, nil
}

func (s *fakeStore) HardDeleteAllResults(_ context.Context, types ...model.LottoType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID := make(map[string]model.Draw, len(s.draws))
	for _, d := range s.draws {
		byID[d.ID] = d
	}
	var n int64
	for k, r := range s.results {
		if d, ok := byID[r.DrawID]; !ok || matchesType(d.GameTypeName, types) {
			delete(s.results, k)
			n++
		}
	}
	return n, nil
}

func matchesType(t model.LottoType, types []model.LottoType) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

func (s *fakeStore) drawCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.draws)
}

func (s *fakeStore) resultRows() []model.DrawResultRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DrawResultRow, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	return out
}

type fakeTx struct {
	store   *fakeStore
	draws   map[string]model.Draw
	results map[string]model.DrawResultRow
	done    bool
}

func (t *fakeTx) UpsertDraws(rows []*model.Draw) ([]model.Draw, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.drawBatches = append(t.store.drawBatches, len(rows))
	var inserted []model.Draw
	for _, row := range rows {
		key := drawIndexKey(row.DrawLabel, row.GameTypeName)
		if _, ok := t.store.draws[key]; ok {
			continue
		}
		if _, ok := t.draws[key]; ok {
			continue
		}
		t.draws[key] = *row
		inserted = append(inserted, *row)
	}
	return inserted, nil
}

func (t *fakeTx) FindDraws(keys []model.DrawKey) ([]model.Draw, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []model.Draw
	seen := map[string]bool{}
	for _, k := range keys {
		key := drawIndexKey(k.DrawLabel, k.GameTypeName)
		if seen[key] {
			continue
		}
		seen[key] = true
		if d, ok := t.draws[key]; ok {
			out = append(out, d)
		} else if d, ok := t.store.draws[key]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (t *fakeTx) UpsertResults(rows []*model.DrawResultRow) ([]model.DrawResultRow, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.resultBatches = append(t.store.resultBatches, len(rows))
	if t.store.failResults != nil {
		return nil, t.store.failResults
	}
	var inserted []model.DrawResultRow
	for _, row := range rows {
		if _, ok := t.store.results[row.ResultKey]; ok {
			continue
		}
		if _, ok := t.results[row.ResultKey]; ok {
			continue
		}
		t.results[row.ResultKey] = *row
		inserted = append(inserted, *row)
	}
	return inserted, nil
}

func (t *fakeTx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	for k, d := range t.draws {
		t.store.draws[k] = d
	}
	for k, r := range t.results {
		t.store.results[k] = r
	}
	t.store.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	t.store.rollbacks++
	return nil
}

type fakeRuns struct {
	mu   sync.Mutex
	runs []model.IngestRun
}

func (f *fakeRuns) RecordRun(_ context.Context, run *model.IngestRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeRuns) ListRuns(_ context.Context, _ model.LottoType, _ int) ([]model.IngestRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.IngestRun(nil), f.runs...), nil
}

type recordedRun struct {
	t       model.LottoType
	status  string
	fetched int
	draws   int
	results int
}

type fakeRunMetrics struct {
	runs []recordedRun
}

func (f *fakeRunMetrics) RecordRun(t model.LottoType, status string, fetched, draws, results int, _ time.Duration) {
	f.runs = append(f.runs, recordedRun{t, status, fetched, draws, results})
}

// staticStrategy returns the same draws for every call and remembers the requested window
type staticStrategy struct {
	draws []model.NormalizedDraw
	err   error
	from  time.Time
	to    time.Time
	calls int
}

func (s *staticStrategy) strategy(region model.Region, key func(model.DrawKey) string) RegionStrategy {
	return RegionStrategy{
		Region: region,
		FetchAndTransform: func(_ context.Context, _ model.LottoType, from, to time.Time) ([]model.NormalizedDraw, error) {
			s.calls++
			s.from, s.to = from, to
			return s.draws, s.err
		},
		BuildLookupKey: key,
	}
}
