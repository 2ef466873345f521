package lottonumbers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"LottoSync/internal/config"
	"LottoSync/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usPage = `<html><body>
<div class="result"><h3>Saturday, December 28, 2024</h3>
<ul class="balls"><li>1</li><li>2</li><li>3</li><li>4</li><li>5</li><li class="powerball">6</li></ul></div>
<div class="result"><h3>Wednesday, January 1, 2025</h3>
<ul class="balls"><li>5</li><li>12</li><li>19</li><li>34</li><li>41</li><li class="powerball">8</li></ul></div>
<div class="result"><h3>Monday, December 30, 2024</h3>
<ul class="balls"><li>9</li><li>10</li></ul></div>
</body></html>`

type fakeMetrics struct{ failures int }

func (f *fakeMetrics) FetchFailed(string, model.LottoType) { f.failures++ }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUSClientFetch(t *testing.T) {
	var hits int32
	srv := newTestServer(t, http.StatusOK, usPage, &hits)
	client := NewUSClient(config.SourceConfig{BaseURL: srv.URL, CacheTTL: 60}, quietLogger(), nil)

	got := client.Fetch(context.Background(), model.USPowerball)
	want := []model.LottoNumbersDraw{
		{DrawDate: utcDay(2024, 12, 28), DrawLabel: "2024-12-28", MainNumbers: []int{1, 2, 3, 4, 5}, SupplementaryNumbers: []int{6}},
		{DrawDate: utcDay(2025, 1, 1), DrawLabel: "2025-01-01", MainNumbers: []int{5, 12, 19, 34, 41}, SupplementaryNumbers: []int{8}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("draws mismatch (-want +got):\n%s", diff)
	}

	client.Fetch(context.Background(), model.USPowerball)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second fetch served from cache")
}

func TestClientFetchFailure(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, "boom", nil)
	metrics := &fakeMetrics{}
	client := NewUSClient(config.SourceConfig{BaseURL: srv.URL, CacheTTL: 60}, quietLogger(), metrics)

	assert.Empty(t, client.Fetch(context.Background(), model.USMegaMillions))
	assert.Equal(t, 1, metrics.failures)
}

func TestClientUnknownType(t *testing.T) {
	client := NewUSClient(config.SourceConfig{BaseURL: "http://127.0.0.1:1", CacheTTL: 60}, quietLogger(), nil)
	assert.False(t, client.Supports(model.AUPowerball))
	assert.Empty(t, client.Fetch(context.Background(), model.AUPowerball))
}

func TestParseDrawsRawDigitFallback(t *testing.T) {
	page := `<div><p>January 3, 2025</p><p>Numbers: 7 - 14 - 21 - 28 - 35 Bonus 9</p></div>`
	ep := Endpoint{MainCount: 5, SupplementaryCount: 1}

	got := ParseDraws(page, ep, FindMonthDayDates, DefaultExtractors, quietLogger())
	require.Len(t, got, 1)
	assert.Equal(t, []int{7, 14, 21, 28, 35}, got[0].MainNumbers)
	assert.Equal(t, []int{9}, got[0].SupplementaryNumbers)
}

func TestParseDrawsNoSupplementary(t *testing.T) {
	page := `<h3>Monday 6 January 2025</h3><ul><li>4</li><li>8</li><li>15</li></ul>`
	got := ParseDraws(page, auEndpoints[model.AUCash3], FindDayMonthDates, DefaultExtractors, quietLogger())
	require.Len(t, got, 1)
	assert.Equal(t, "2025-01-06", got[0].DrawLabel)
	assert.Equal(t, []int{4, 8, 15}, got[0].MainNumbers)
	assert.Nil(t, got[0].SupplementaryNumbers)
}

func TestFindDates(t *testing.T) {
	us := FindMonthDayDates(`Draw of january 15, 2026 and March 2 2026`)
	require.Len(t, us, 2)
	assert.Equal(t, "2026-01-15", us[0].Label)
	assert.Equal(t, "2026-03-02", us[1].Label)

	uk := FindDayMonthDates(`Saturday 3 May 2025`)
	require.Len(t, uk, 1)
	assert.Equal(t, utcDay(2025, 5, 3), uk[0].Date)
}

func TestParseSouthAfricanLotto(t *testing.T) {
	page := `<div class="draw"><h3>Saturday 4 January 2025</h3>
<ul class="lotto-main"><li>3</li><li>11</li><li>17</li><li>25</li><li>38</li><li>50</li><li class="bonus">44</li></ul>
<ul class="plus-1"><li>2</li><li>9</li><li>14</li><li>27</li><li>33</li><li>41</li><li class="bonus">6</li></ul>
<ul class="plus-2"><li>1</li><li>8</li><li>19</li><li>22</li><li>36</li><li>48</li><li class="bonus">12</li></ul>
</div>`

	got := ParseSouthAfricanDraws(page, zaEndpoints[model.ZALotto], zaPlusPools[model.ZALotto], quietLogger())
	want := []model.SouthAfricanDraw{{
		DrawDate:           utcDay(2025, 1, 4),
		DrawLabel:          "2025-01-04",
		MainNumbers:        []int{3, 11, 17, 25, 38, 50},
		Supplementary:      []int{44},
		Plus1:              []int{2, 9, 14, 27, 33, 41},
		Plus1Supplementary: []int{6},
		Plus2:              []int{1, 8, 19, 22, 36, 48},
		Plus2Supplementary: []int{12},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("draws mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSouthAfricanDailyLottoFallback(t *testing.T) {
	page := `<h3>Tuesday 7 January 2025</h3><div><li>4</li><li>8</li><li>15</li><li>16</li><li>23</li></div>`
	got := ParseSouthAfricanDraws(page, zaEndpoints[model.ZADailyLotto], 0, quietLogger())
	require.Len(t, got, 1)
	assert.Equal(t, []int{4, 8, 15, 16, 23}, got[0].MainNumbers)
	assert.Nil(t, got[0].Plus1)
}

func TestParseCanadianLottario(t *testing.T) {
	page := `<html><body><div class="resultsItem"><div class="date">Saturday January 11 2025</div>
<ul class="balls"><li>1</li><li>7</li><li>13</li><li>22</li><li>31</li><li>44</li><li class="bonus">9</li></ul>
<div class="addon">Early Bird: <ul><li>3</li><li>12</li><li>20</li><li>40</li></ul>
Encore: <ul><li>0</li><li>1</li><li>2</li><li>3</li><li>4</li><li>5</li><li>6</li></ul></div>
</div></body></html>`

	got := ParseCanadianDraws(page, model.CALottario, caEndpoints[model.CALottario], quietLogger())
	require.Len(t, got, 1)
	d := got[0]
	assert.Equal(t, "2025-01-11", d.DrawLabel)
	assert.Equal(t, []int{1, 7, 13, 22, 31, 44}, d.MainNumbers)
	require.NotNil(t, d.Bonus)
	assert.Equal(t, 9, *d.Bonus)
	assert.Equal(t, []int{3, 12, 20, 40}, d.EarlyBird)
	assert.Equal(t, "0123456", d.Encore)
}

func TestParseCanadianDailyGrandSectionFallback(t *testing.T) {
	page := `<p>January 9, 2025</p><p><span>2</span><span>14</span><span>20</span><span>33</span><span>45</span><span>4</span></p>`
	got := ParseCanadianDraws(page, model.CADailyGrand, caEndpoints[model.CADailyGrand], quietLogger())
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Bonus)
	require.NotNil(t, got[0].Grand)
	assert.Equal(t, 4, *got[0].Grand)
}

func TestLeadingInt(t *testing.T) {
	n, ok := leadingInt("12abc")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = leadingInt("abc")
	assert.False(t, ok)
}
