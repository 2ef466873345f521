// Package uk reads the National Lottery draw-history CSV exports.
package uk

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
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

const dateLayout = "02-Jan-2006"

// Layout column positions of one game's CSV
type Layout struct {
	Game       string // URL slug
	MainCount  int    // balls start at column 1
	Secondary  int    // columns directly after the balls
	DrawNumber int    // column index of DrawNumber
}

var layouts = map[model.LottoType]Layout{
	// DrawDate,Ball 1..5,Lucky Star 1,Lucky Star 2,UK Millionaire Maker,European Millionaire Maker,DrawNumber
	model.Euromillions: {Game: "euromillions", MainCount: 5, Secondary: 2, DrawNumber: 10},
	// DrawDate,Ball 1..6,Bonus Ball,Ball Set,Machine,Raffles,DrawNumber
	model.UKLotto: {Game: "lotto", MainCount: 6, Secondary: 1, DrawNumber: 11},
	// DrawDate,Ball 1..5,Thunderball,Ball Set,Machine,DrawNumber
	model.UKThunderball: {Game: "thunderball", MainCount: 5, Secondary: 1, DrawNumber: 9},
	// DrawDate,Ball 1..5,Life Ball,Ball Set,Machine,DrawNumber
	model.UKSetForLife: {Game: "set-for-life", MainCount: 5, Secondary: 1, DrawNumber: 9},
	// DrawDate,Ball 1..6,Ball Set,Machine,DrawNumber
	model.UKHotPicks: {Game: "lotto-hotpicks", MainCount: 6, DrawNumber: 9},
}

// Client National Lottery CSV downloads
type Client struct {
	http    *resty.Client
	logger  *logrus.Logger
	metrics interfaces.FetchMetrics
	cache   *ttlcache.Cache[model.LottoType, []model.UKCSVDraw]
}

func NewClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *Client {
	return &Client{
		http: httpclient.NewHTTPClient(cfg, logger, httpclient.WithHeaders(map[string]string{
			"Accept": "text/csv,text/plain,*/*",
		})),
		logger:  logger,
		metrics: metrics,
		cache:   ttlcache.New[model.LottoType, []model.UKCSVDraw](cfg.CacheTTLDuration()),
	}
}

// Supports reports whether the type has a CSV export
func (c *Client) Supports(t model.LottoType) bool {
	_, ok := layouts[t]
	return ok
}

// Fetch every row of the game's draw history; failures are logged and yield an empty slice
func (c *Client) Fetch(ctx context.Context, t model.LottoType) []model.UKCSVDraw {
	layout, ok := layouts[t]
	if !ok {
		c.logger.Warnf("[%s] Unknown lottery type for this client", t)
		return nil
	}

	draws, err := c.cache.GetOrLoad(t, func() ([]model.UKCSVDraw, error) {
		resp, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/results/%s/draw-history/csv", layout.Game))
		if err != nil {
			return nil, fmt.Errorf("download csv: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("download csv: unexpected status %d", resp.StatusCode())
		}
		return ParseCSV(strings.NewReader(resp.String()), layout, c.logger.WithField("lotto_type", t))
	})
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source":     config.SourceUKCSV,
			"lotto_type": t,
		}).Error("fetch draw history failed")
		if c.metrics != nil {
			c.metrics.FetchFailed(config.SourceUKCSV, t)
		}
		return nil
	}
	c.logger.Infof("[%s] Found %d draws", t, len(draws))
	return draws
}

// ParseCSV skips the header; rows that fail to parse are logged and skipped
func ParseCSV(r io.Reader, layout Layout, log logrus.FieldLogger) ([]model.UKCSVDraw, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var draws []model.UKCSVDraw
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithError(err).WithField("line", line).Warn("unreadable csv row, skipping")
			continue
		}
		d, err := parseRow(rec, layout)
		if err != nil {
			log.WithError(err).WithField("line", line).Warn("invalid csv row, skipping")
			continue
		}
		draws = append(draws, d)
	}
	return draws, nil
}

func parseRow(rec []string, layout Layout) (model.UKCSVDraw, error) {
	if len(rec) <= layout.DrawNumber {
		return model.UKCSVDraw{}, fmt.Errorf("row has %d columns, want %d", len(rec), layout.DrawNumber+1)
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(rec[0]))
	if err != nil {
		return model.UKCSVDraw{}, fmt.Errorf("parse draw date: %w", err)
	}
	main, err := columns(rec, 1, layout.MainCount)
	if err != nil {
		return model.UKCSVDraw{}, err
	}
	sec, err := columns(rec, 1+layout.MainCount, layout.Secondary)
	if err != nil {
		return model.UKCSVDraw{}, err
	}
	drawNumber, err := strconv.Atoi(strings.TrimSpace(rec[layout.DrawNumber]))
	if err != nil {
		return model.UKCSVDraw{}, fmt.Errorf("parse draw number: %w", err)
	}
	return model.UKCSVDraw{DrawDate: date, DrawNumber: drawNumber, MainNumbers: main, Secondary: sec}, nil
}

func columns(rec []string, start, n int) ([]int, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]int, 0, n)
	for i := start; i < start+n; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(rec[i]))
		if err != nil {
			return nil, fmt.Errorf("parse column %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
