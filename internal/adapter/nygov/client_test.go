package nygov

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"LottoSync/internal/config"
	"LottoSync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClause(t *testing.T) {
	from := time.Date(2025, 1, 1, 22, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "draw_date >= '2025-01-01' AND draw_date <= '2025-01-31'", WhereClause(from, to))
	assert.Equal(t, "", WhereClause(time.Time{}, time.Time{}))
}

func TestClientFetch(t *testing.T) {
	var query url.Values
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"draw_date":"2025-01-04T00:00:00.000","winning_numbers":"01 14 20 46 51 26","multiplier":"2"}]`)
	}))
	defer srv.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := NewClient(config.SourceConfig{BaseURL: srv.URL, CacheTTL: 60}, logger, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := client.Fetch(context.Background(), model.Powerball, from, from.AddDate(0, 0, 7))
	require.Len(t, rows, 1)
	assert.Equal(t, "01 14 20 46 51 26", rows[0].WinningNumbers)

	assert.Equal(t, "/resource/d6yy-54nr.json", path)
	assert.Equal(t, "draw_date DESC", query.Get("$order"))
	assert.Equal(t, "10000", query.Get("$limit"))
	assert.Equal(t, "draw_date >= '2025-01-01' AND draw_date <= '2025-01-08'", query.Get("$where"))
}
