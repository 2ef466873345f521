// Package germany reads the latest draws from the lotto-hessen.de JSON service.
package germany

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	basePath   = "/spielinformationen/gewinnzahlen/"
	dateLayout = "02.01.2006"
)

var endpoints = map[model.LottoType]string{
	model.DELotto6aus49: "lotto",
	model.DEKeno:        "keno",
	model.DESpiel77:     "spiel77",
	model.DESuper6:      "super6",
}

// response Zahl is a number array (6aus49, Keno) or a digit string (Spiel 77, Super 6)
type response struct {
	Datum     string          `json:"Datum"`
	Ziehung   string          `json:"Ziehung"`
	Superzahl *int            `json:"Superzahl"`
	Zahl      json.RawMessage `json:"Zahl"`
}

// Client lotto-hessen.de, latest draw only
type Client struct {
	http    *resty.Client
	logger  *logrus.Logger
	metrics interfaces.FetchMetrics
	cache   *ttlcache.Cache[model.LottoType, *model.GermanDraw]
}

func NewClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *Client {
	return &Client{
		http:    httpclient.NewHTTPClient(cfg, logger, httpclient.WithHeaders(httpclient.JSONHeaders)),
		logger:  logger,
		metrics: metrics,
		cache:   ttlcache.New[model.LottoType, *model.GermanDraw](cfg.CacheTTLDuration()),
	}
}

func (c *Client) Supports(t model.LottoType) bool {
	_, ok := endpoints[t]
	return ok
}

// Fetch latest draw of the type, nil on failure
func (c *Client) Fetch(ctx context.Context, t model.LottoType) *model.GermanDraw {
	endpoint, ok := endpoints[t]
	if !ok {
		c.logger.Warnf("[%s] Unknown lottery type for this client", t)
		return nil
	}

	draw, err := c.cache.GetOrLoad(t, func() (*model.GermanDraw, error) {
		resp, err := c.http.R().SetContext(ctx).Get(basePath + endpoint)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", endpoint, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("request %s: unexpected status %d", endpoint, resp.StatusCode())
		}
		return ParseDraw(resp.Body())
	})
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source":     config.SourceLottoHessen,
			"lotto_type": t,
		}).Errorf("[%s] Failed to fetch draw", t)
		if c.metrics != nil {
			c.metrics.FetchFailed(config.SourceLottoHessen, t)
		}
		return nil
	}
	return draw
}

// ParseDraw decodes one gewinnzahlen response; the draw date is UTC midnight
func ParseDraw(body []byte) (*model.GermanDraw, error) {
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(r.Datum))
	if err != nil {
		return nil, fmt.Errorf("parse Datum %q: %w", r.Datum, err)
	}

	d := &model.GermanDraw{
		DrawDate:  date,
		DrawLabel: date.Format("2006-01-02"),
		Superzahl: r.Superzahl,
	}
	zahl := bytes.TrimSpace(r.Zahl)
	switch {
	case len(zahl) == 0 || bytes.Equal(zahl, []byte("null")):
		return nil, errors.New("missing Zahl")
	case zahl[0] == '[':
		if err := json.Unmarshal(zahl, &d.Numbers); err != nil {
			return nil, fmt.Errorf("decode Zahl numbers: %w", err)
		}
	case zahl[0] == '"':
		if err := json.Unmarshal(zahl, &d.Digits); err != nil {
			return nil, fmt.Errorf("decode Zahl digits: %w", err)
		}
	default:
		// bare number: keep every digit
		d.Digits = string(zahl)
		if _, err := strconv.ParseUint(d.Digits, 10, 64); err != nil {
			return nil, fmt.Errorf("decode Zahl %s: %w", zahl, err)
		}
	}
	return d, nil
}
