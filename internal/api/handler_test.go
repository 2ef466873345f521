package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LottoSync/internal/metrics"
	"LottoSync/internal/model"
	"LottoSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngester struct {
	gotType  model.LottoType
	gotRange *model.DateRange
	err      error
	allErr   error
}

func (f *fakeIngester) Ingest(_ context.Context, t model.LottoType, rng *model.DateRange) (service.Summary, error) {
	f.gotType, f.gotRange = t, rng
	if f.err != nil {
		return service.Summary{LottoType: t, Status: service.StatusFailed}, f.err
	}
	return service.Summary{LottoType: t, Status: service.StatusOK, DrawsInserted: 2}, nil
}

func (f *fakeIngester) IngestAll(context.Context) ([]service.Summary, error) {
	return []service.Summary{{LottoType: model.UKLotto, Status: service.StatusOK}}, f.allErr
}

type fakeResetter struct {
	got []model.LottoType
}

func (f *fakeResetter) ResetDraws(_ context.Context, types ...model.LottoType) ([]service.Summary, error) {
	f.got = types
	return nil, nil
}

type fakeReader struct {
	filter         model.DrawFilter
	page, pageSize int
}

func (f *fakeReader) ListDraws(_ context.Context, filter model.DrawFilter, page, pageSize int) ([]model.DrawView, int64, error) {
	f.filter, f.page, f.pageSize = filter, page, pageSize
	return []model.DrawView{{ID: "d1", DrawLabel: "2025-01-04", GameTypeName: model.UKLotto, Results: []model.DrawResult{}}}, 1, nil
}

type fakeRuns struct {
	gotType  model.LottoType
	gotLimit int
}

func (f *fakeRuns) RecordRun(context.Context, *model.IngestRun) error { return nil }

func (f *fakeRuns) ListRuns(_ context.Context, t model.LottoType, limit int) ([]model.IngestRun, error) {
	f.gotType, f.gotLimit = t, limit
	return []model.IngestRun{{ID: "r1", LottoType: t}}, nil
}

type fakeCatalog struct{}

func (fakeCatalog) EnabledTypes() []model.LottoType { return []model.LottoType{model.UKLotto} }

func (fakeCatalog) Lookup(model.LottoType) (service.RegionConfig, bool) {
	return service.RegionConfig{Region: model.RegionUK, ScheduleKey: "ukLottoInterval"}, true
}

type fakeSources struct{}

func (fakeSources) SourcesFor(model.LottoType) []string { return []string{"uk_csv"} }

type harness struct {
	router   *gin.Engine
	ingester *fakeIngester
	resetter *fakeResetter
	reader   *fakeReader
	runs     *fakeRuns
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := &harness{
		ingester: &fakeIngester{},
		resetter: &fakeResetter{},
		reader:   &fakeReader{},
		runs:     &fakeRuns{},
	}
	sync := NewSyncHandler(h.ingester, h.resetter, logger)
	sync.now = func() time.Time { return time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC) }
	draws := NewDrawHandler(h.reader, h.runs, fakeCatalog{}, fakeSources{}, logger)
	h.router = NewRouter(gin.TestMode, sync, draws, metrics.NewManager())
	return h
}

func (h *harness) do(t *testing.T, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestSyncLotteryDefaultWindow(t *testing.T) {
	h := newHarness(t)
	rec, body := h.do(t, http.MethodPost, "/sync/lottery/UK_LOTTO")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.UKLotto, h.ingester.gotType)
	assert.Nil(t, h.ingester.gotRange)
	assert.EqualValues(t, 2, body["drawsInserted"])
}

func TestSyncLotteryDateOnlyRange(t *testing.T) {
	h := newHarness(t)
	rec, _ := h.do(t, http.MethodPost, "/sync/lottery/UK_LOTTO?from=2025-01-01&to=2025-01-31")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, h.ingester.gotRange)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), h.ingester.gotRange.From)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), h.ingester.gotRange.To)
}

func TestSyncLotteryFromOnlyRunsToNow(t *testing.T) {
	h := newHarness(t)
	rec, _ := h.do(t, http.MethodPost, "/sync/lottery/UK_LOTTO?from=2025-01-20T00:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC), h.ingester.gotRange.To)
}

func TestSyncLotteryBadInput(t *testing.T) {
	h := newHarness(t)
	for _, target := range []string{
		"/sync/lottery/NOT_A_GAME",
		"/sync/lottery/UK_LOTTO?from=yesterday",
		"/sync/lottery/UK_LOTTO?to=2025-01-01",
		"/sync/lottery/UK_LOTTO?from=2025-02-01&to=2025-01-01",
	} {
		rec, body := h.do(t, http.MethodPost, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.NotEmpty(t, body["error"], target)
	}
}

func TestSyncLotteryErrorStatus(t *testing.T) {
	h := newHarness(t)
	h.ingester.err = fmt.Errorf("%w: EST_BINGO", model.ErrNotConfigured)
	rec, _ := h.do(t, http.MethodPost, "/sync/lottery/UK_LOTTO")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h.ingester.err = errors.New("connection refused")
	rec, body := h.do(t, http.MethodPost, "/sync/lottery/UK_LOTTO")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "connection refused", body["error"])
}

func TestSyncAll(t *testing.T) {
	h := newHarness(t)
	rec, body := h.do(t, http.MethodPost, "/sync/all")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["summaries"], 1)

	h.ingester.allErr = errors.New("US_POWERBALL: boom")
	rec, body = h.do(t, http.MethodPost, "/sync/all")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, body["summaries"], 1, "partial summaries are still returned")
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	rec, _ := h.do(t, http.MethodPost, "/sync/reset?types=UK_LOTTO,%20EST_KENO")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []model.LottoType{model.UKLotto, model.EstKeno}, h.resetter.got)

	rec, _ = h.do(t, http.MethodPost, "/sync/reset?types=UK_LOTTO,BOGUS")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDraws(t *testing.T) {
	h := newHarness(t)
	rec, body := h.do(t, http.MethodGet, "/api/draws?type=UK_LOTTO&from=2025-01-01&page=2&page_size=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.UKLotto, h.reader.filter.GameTypeName)
	require.NotNil(t, h.reader.filter.From)
	assert.Nil(t, h.reader.filter.To)
	assert.Equal(t, 2, h.reader.page)
	assert.Equal(t, 5, h.reader.pageSize)
	assert.EqualValues(t, 1, body["total"])
	assert.Len(t, body["list"], 1)

	rec, _ = h.do(t, http.MethodGet, "/api/draws?type=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRuns(t *testing.T) {
	h := newHarness(t)
	rec, _ := h.do(t, http.MethodGet, "/api/runs?type=EST_KENO&limit=10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.EstKeno, h.runs.gotType)
	assert.Equal(t, 10, h.runs.gotLimit)
}

func TestListLotteryTypes(t *testing.T) {
	h := newHarness(t)
	rec, body := h.do(t, http.MethodGet, "/api/lottery-types")
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["list"].([]any)
	require.Len(t, list, 1)
	entry := list[0].(map[string]any)
	assert.Equal(t, "UK_LOTTO", entry["type"])
	assert.Equal(t, "ukLottoInterval", entry["scheduleKey"])
	assert.Equal(t, []any{"uk_csv"}, entry["sources"])
}
