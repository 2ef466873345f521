package estonia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"LottoSync/internal/config"
	"LottoSync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSite struct {
	tokenHits int32
	pages     []string
	forms     []map[string]string
}

func (f *fakeSite) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(resultsPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.tokenHits, 1)
		http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "abc", MaxAge: 600, Path: "/"})
		_, _ = io.WriteString(w, `<html><body><form><input type="hidden" name="csrfToken" value="tok-1"></form></body></html>`)
	})
	mux.HandleFunc(drawsPath, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form := map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		f.forms = append(f.forms, form)

		var idx int
		_, _ = fmt.Sscanf(r.PostForm.Get("pageIndex"), "%d", &idx)
		w.Header().Set("Content-Type", "application/json")
		if idx < 1 || idx > len(f.pages) {
			_, _ = io.WriteString(w, `{"drawCount":3,"draws":[]}`)
			return
		}
		_, _ = io.WriteString(w, f.pages[idx-1])
	})
	return mux
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestClientPaginates(t *testing.T) {
	site := &fakeSite{pages: []string{
		`{"drawCount":3,"draws":[
			{"gameTypeName":"KENO","drawLabel":"9002","drawDate":"2025-01-02T14:15:00","externalDrawId":"e-9002","results":[{"winClass":null,"winningNumber":"1,2,3","secWinningNumber":null}]},
			{"gameTypeName":"KENO","drawLabel":"9001","drawDate":1735740900000,"externalDrawId":null,"results":[]}]}`,
		`{"drawCount":3,"draws":[
			{"gameTypeName":"KENO","drawLabel":"9000","drawDate":"2025-01-01","results":[]}]}`,
	}}
	srv := httptest.NewServer(site.handler(t))
	defer srv.Close()

	client := NewClient(config.SourceConfig{BaseURL: srv.URL, CacheTTL: 60}, quietLogger(), nil)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 2, 23, 0, 0, 0, time.UTC)

	draws := client.Fetch(context.Background(), model.EstKeno, from, to)
	require.Len(t, draws, 3)
	assert.Equal(t, "9002", draws[0].DrawLabel)
	require.NotNil(t, draws[0].ExternalDrawID)
	assert.Equal(t, "e-9002", *draws[0].ExternalDrawID)
	assert.Nil(t, draws[1].ExternalDrawID)

	require.Len(t, site.forms, 2)
	first := site.forms[0]
	assert.Equal(t, "KENO", first["gameTypes"])
	assert.Equal(t, "01.01.2025", first["dateFrom"])
	assert.Equal(t, "02.01.2025", first["dateTo"])
	assert.Equal(t, "1", first["pageIndex"])
	assert.Equal(t, "drawDate_desc", first["orderBy"])
	assert.Equal(t, "true", first["sortLabelNumeric"])
	assert.Equal(t, "tok-1", first["csrfToken"])
	assert.Equal(t, "2", site.forms[1]["pageIndex"])
}

func TestClientStopsOnEmptyPage(t *testing.T) {
	site := &fakeSite{pages: []string{
		`{"drawCount":10,"draws":[{"gameTypeName":"BINGO","drawLabel":"1","drawDate":"2025-01-01","results":[]}]}`,
	}}
	srv := httptest.NewServer(site.handler(t))
	defer srv.Close()

	client := NewClient(config.SourceConfig{BaseURL: srv.URL, CacheTTL: 60}, quietLogger(), nil)
	draws := client.Fetch(context.Background(), model.EstBingo, time.Now().Add(-24*time.Hour), time.Now())
	assert.Len(t, draws, 1)
	assert.Len(t, site.forms, 2)
}

func TestTokenCachedForSession(t *testing.T) {
	site := &fakeSite{}
	srv := httptest.NewServer(site.handler(t))
	defer srv.Close()

	client := NewClient(config.SourceConfig{BaseURL: srv.URL, CacheTTL: 60}, quietLogger(), nil)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	client.tokens.now = func() time.Time { return now }

	tok, err := client.tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	now = now.Add(5 * time.Minute)
	_, err = client.tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&site.tokenHits), "token reused within cookie max-age")

	now = now.Add(10 * time.Minute)
	_, err = client.tokens.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&site.tokenHits), "token refreshed after max-age")
}

func TestUnknownTypeIsEmpty(t *testing.T) {
	client := NewClient(config.SourceConfig{BaseURL: "http://127.0.0.1:1", CacheTTL: 60}, quietLogger(), nil)
	assert.Empty(t, client.Fetch(context.Background(), model.FRLoto, time.Now(), time.Now()))
}

func TestLottoTypeFromAPI(t *testing.T) {
	assert.Equal(t, model.Eurojackpot, LottoTypeFromAPI("EURO"))
	assert.Equal(t, model.EstJokker, LottoTypeFromAPI("JOKKER"))
	assert.Equal(t, model.LottoType("LOTTO"), LottoTypeFromAPI("LOTTO"))
}
