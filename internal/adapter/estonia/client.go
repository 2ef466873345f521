// Package estonia talks to the eestiloto.ee draw statistics endpoint.
package estonia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"LottoSync/internal/config"
	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"
	"LottoSync/internal/utils/httpclient"
	"LottoSync/internal/utils/ttlcache"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	drawsPath      = "/app/ajaxDrawStatistic"
	formDateLayout = "02.01.2006"
)

var toAPIGameType = map[model.LottoType]string{
	model.EstKeno:     "KENO",
	model.EstJokker:   "JOKKER",
	model.EstBingo:    "BINGO",
	model.Vikinglotto: "VIKINGLOTTO",
	model.Eurojackpot: "EURO",
}

var fromAPIGameType = map[string]model.LottoType{
	"KENO":        model.EstKeno,
	"JOKKER":      model.EstJokker,
	"BINGO":       model.EstBingo,
	"VIKINGLOTTO": model.Vikinglotto,
	"EURO":        model.Eurojackpot,
}

// LottoTypeFromAPI maps an API game name back to a lottery type; unknown names pass through
func LottoTypeFromAPI(name string) model.LottoType {
	if t, ok := fromAPIGameType[name]; ok {
		return t
	}
	return model.LottoType(name)
}

// Client eestiloto.ee session + draw statistics
type Client struct {
	http    *resty.Client
	tokens  *TokenSource
	logger  *logrus.Logger
	metrics interfaces.FetchMetrics
	origin  string
	cache   *ttlcache.Cache[string, []model.EstonianDraw]
}

func NewClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *Client {
	rc := httpclient.NewHTTPClient(cfg, logger, httpclient.WithCookieJar())
	return &Client{
		http:    rc,
		tokens:  NewTokenSource(rc),
		logger:  logger,
		metrics: metrics,
		origin:  strings.TrimRight(cfg.BaseURL, "/"),
		cache:   ttlcache.New[string, []model.EstonianDraw](cfg.CacheTTLDuration()),
	}
}

func (c *Client) Supports(t model.LottoType) bool {
	_, ok := toAPIGameType[t]
	return ok
}

// Fetch every draw of the type between from and to (API side filtering);
// failures are logged and yield an empty slice
func (c *Client) Fetch(ctx context.Context, t model.LottoType, from, to time.Time) []model.EstonianDraw {
	gameType, ok := toAPIGameType[t]
	if !ok {
		c.logger.Warnf("[%s] Unknown lottery type for this client", t)
		return nil
	}

	key := fmt.Sprintf("%s|%s|%s", gameType, from.Format(formDateLayout), to.Format(formDateLayout))
	draws, err := c.cache.GetOrLoad(key, func() ([]model.EstonianDraw, error) {
		return c.fetchAll(ctx, gameType, from, to)
	})
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source":     config.SourceEestiLoto,
			"lotto_type": t,
		}).Errorf("[%s] Could not fetch lotto draws. Issue on eestiloto.ee side.", gameType)
		if c.metrics != nil {
			c.metrics.FetchFailed(config.SourceEestiLoto, t)
		}
		return nil
	}
	return draws
}

// fetchAll pages until drawCount draws are collected or a page comes back empty
func (c *Client) fetchAll(ctx context.Context, gameType string, from, to time.Time) ([]model.EstonianDraw, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("csrf token: %w", err)
	}

	first, err := c.fetchPage(ctx, gameType, from, to, 1, token)
	if err != nil {
		return nil, err
	}
	all := first.Draws
	if len(all) == 0 {
		return nil, nil
	}
	for page := 2; len(all) < first.DrawCount; page++ {
		next, err := c.fetchPage(ctx, gameType, from, to, page, token)
		if err != nil {
			return nil, err
		}
		if len(next.Draws) == 0 {
			break
		}
		all = append(all, next.Draws...)
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, gameType string, from, to time.Time, page int, token string) (*model.EstonianDrawsResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(c.ajaxHeaders()).
		SetFormData(map[string]string{
			"gameTypes":        gameType,
			"dateFrom":         from.Format(formDateLayout),
			"dateTo":           to.Format(formDateLayout),
			"drawLabelFrom":    "",
			"drawLabelTo":      "",
			"pageIndex":        strconv.Itoa(page),
			"orderBy":          "drawDate_desc",
			"sortLabelNumeric": "true",
			"csrfToken":        token,
		}).
		Post(drawsPath)
	if err != nil {
		return nil, fmt.Errorf("post draw statistic page %d: %w", page, err)
	}
	if resp.StatusCode() == http.StatusForbidden || resp.StatusCode() == http.StatusUnauthorized {
		c.tokens.Invalidate()
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("post draw statistic page %d: unexpected status %d", page, resp.StatusCode())
	}

	var out model.EstonianDrawsResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode draw statistic page %d: %w", page, err)
	}
	return &out, nil
}

// ajaxHeaders the headers the results page's own XHR sends
func (c *Client) ajaxHeaders() map[string]string {
	return map[string]string{
		"accept":             "*/*",
		"accept-language":    "et-EE,et;q=0.9,en-US;q=0.8,en;q=0.7",
		"content-type":       "application/x-www-form-urlencoded; charset=UTF-8",
		"origin":             c.origin,
		"priority":           "u=1, i",
		"referer":            c.origin + resultsPath,
		"sec-ch-ua":          `"Chromium";v="136", "Google Chrome";v="136", "Not.A/Brand";v="99"`,
		"sec-ch-ua-mobile":   "?0",
		"sec-ch-ua-platform": `"macOS"`,
		"sec-fetch-dest":     "empty",
		"sec-fetch-mode":     "cors",
		"sec-fetch-site":     "same-origin",
		"x-requested-with":   "XMLHttpRequest",
	}
}
