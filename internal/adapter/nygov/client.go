// Package nygov queries the data.ny.gov SODA datasets of the multi-state lotteries.
package nygov

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

const maxRows = 10000

// dataset resource ids
var resources = map[model.LottoType]string{
	model.Powerball:      "d6yy-54nr",
	model.MegaMillions:   "5xaw-6ayf",
	model.Cash4Life:      "kwxv-fwze",
	model.USPowerball:    "d6yy-54nr",
	model.USMegaMillions: "5xaw-6ayf",
	model.USCash4Life:    "kwxv-fwze",
}

// Client data.ny.gov
type Client struct {
	http    *resty.Client
	logger  *logrus.Logger
	metrics interfaces.FetchMetrics
	cache   *ttlcache.Cache[string, []model.NYGovDraw]
}

func NewClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *Client {
	return &Client{
		http:    httpclient.NewHTTPClient(cfg, logger, httpclient.WithHeaders(httpclient.JSONHeaders)),
		logger:  logger,
		metrics: metrics,
		cache:   ttlcache.New[string, []model.NYGovDraw](cfg.CacheTTLDuration()),
	}
}

func (c *Client) Supports(t model.LottoType) bool {
	_, ok := resources[t]
	return ok
}

// Fetch rows drawn between from and to (by calendar day, newest first); failures yield an empty slice
func (c *Client) Fetch(ctx context.Context, t model.LottoType, from, to time.Time) []model.NYGovDraw {
	id, ok := resources[t]
	if !ok {
		c.logger.Warnf("[%s] Unknown lottery type for this client", t)
		return nil
	}

	where := WhereClause(from, to)
	draws, err := c.cache.GetOrLoad(id+"|"+where, func() ([]model.NYGovDraw, error) {
		params := map[string]string{
			"$order": "draw_date DESC",
			"$limit": strconv.Itoa(maxRows),
		}
		if where != "" {
			params["$where"] = where
		}
		resp, err := c.http.R().SetContext(ctx).SetQueryParams(params).Get(fmt.Sprintf("/resource/%s.json", id))
		if err != nil {
			return nil, fmt.Errorf("query dataset %s: %w", id, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("query dataset %s: unexpected status %d", id, resp.StatusCode())
		}
		var rows []model.NYGovDraw
		if err := json.Unmarshal(resp.Body(), &rows); err != nil {
			return nil, fmt.Errorf("decode dataset %s: %w", id, err)
		}
		return rows, nil
	})
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source":     config.SourceNYGov,
			"lotto_type": t,
		}).Errorf("Failed to fetch data from data.ny.gov: %s", id)
		if c.metrics != nil {
			c.metrics.FetchFailed(config.SourceNYGov, t)
		}
		return nil
	}
	return draws
}

// WhereClause SoQL date filter on whole UTC days; zero bounds are left open
func WhereClause(from, to time.Time) string {
	var clauses []string
	if !from.IsZero() {
		clauses = append(clauses, fmt.Sprintf("draw_date >= '%s'", from.UTC().Format("2006-01-02")))
	}
	if !to.IsZero() {
		clauses = append(clauses, fmt.Sprintf("draw_date <= '%s'", to.UTC().Format("2006-01-02")))
	}
	return strings.Join(clauses, " AND ")
}
