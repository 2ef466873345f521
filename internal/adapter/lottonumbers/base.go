// Package lottonumbers scrapes the lottonumbers.com site family (US, UK, AU, CA, ZA).
// Every regional site shares one page layout: a list of draw dates, each followed by its balls.
package lottonumbers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"LottoSync/internal/config"
	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"
	"LottoSync/internal/utils/httpclient"
	"LottoSync/internal/utils/ttlcache"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// sectionWindow max bytes of HTML scanned after a date match
const sectionWindow = 3000

// Endpoint one results page and its ball layout
type Endpoint struct {
	Path               string
	MainCount          int
	SupplementaryCount int
}

// Need numbers required for a complete draw
func (e Endpoint) Need() int { return e.MainCount + e.SupplementaryCount }

// PageParser turns a normalized results page into source records
type PageParser[T any] func(t model.LottoType, ep Endpoint, page string) []T

// Client fetch + parse + cache for one regional site
type Client[T any] struct {
	source    string
	http      *resty.Client
	logger    *logrus.Logger
	metrics   interfaces.FetchMetrics
	endpoints map[model.LottoType]Endpoint
	parse     PageParser[T]
	cache     *ttlcache.Cache[model.LottoType, []T]
}

func newClient[T any](source string, cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics,
	endpoints map[model.LottoType]Endpoint, parse PageParser[T]) *Client[T] {
	return &Client[T]{
		source:    source,
		http:      httpclient.NewHTTPClient(cfg, logger, httpclient.WithHeaders(httpclient.HTMLHeaders)),
		logger:    logger,
		metrics:   metrics,
		endpoints: endpoints,
		parse:     parse,
		cache:     ttlcache.New[model.LottoType, []T](cfg.CacheTTLDuration()),
	}
}

// Supports reports whether the site publishes the type
func (c *Client[T]) Supports(t model.LottoType) bool {
	_, ok := c.endpoints[t]
	return ok
}

// Fetch draws of one lottery type; failures are logged and yield an empty slice
func (c *Client[T]) Fetch(ctx context.Context, t model.LottoType) []T {
	ep, ok := c.endpoints[t]
	if !ok {
		c.logger.Warnf("[%s] Unknown lottery type for this client", t)
		return nil
	}

	draws, err := c.cache.GetOrLoad(t, func() ([]T, error) {
		page, err := c.fetchPage(ctx, ep.Path)
		if err != nil {
			return nil, err
		}
		return c.parse(t, ep, page), nil
	})
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source":     c.source,
			"lotto_type": t,
			"path":       ep.Path,
		}).Error("fetch results page failed")
		if c.metrics != nil {
			c.metrics.FetchFailed(c.source, t)
		}
		return nil
	}
	c.logger.Infof("[%s] Found %d draws", t, len(draws))
	return draws
}

// fetchPage GETs a page and returns goquery's normalized HTML
func (c *Client[T]) fetchPage(ctx context.Context, path string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).SetDoNotParseResponse(true).Get(path)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", path, err)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	page, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	return page, nil
}

// Section HTML of one draw: from its date to the next date (capped at sectionWindow)
type Section struct {
	Date DateMatch
	HTML string
}

// Sections splits a page at every date match
func Sections(page string, find DateFinder) []Section {
	matches := find(page)
	out := make([]Section, 0, len(matches))
	for i, m := range matches {
		end := m.Index + sectionWindow
		if i+1 < len(matches) && matches[i+1].Index < end {
			end = matches[i+1].Index
		}
		if end > len(page) {
			end = len(page)
		}
		out = append(out, Section{Date: m, HTML: page[m.Index:end]})
	}
	return out
}

// Doc section parsed as an HTML fragment
func (s Section) Doc() *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.HTML))
	if err != nil {
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

// AfterDateText visible text following the date
func (s Section) AfterDateText() string {
	offset := s.Date.End - s.Date.Index
	if offset < 0 || offset > len(s.HTML) {
		offset = 0
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.HTML[offset:]))
	if err != nil {
		return ""
	}
	return doc.Text()
}

// dedupeByLabel keeps the first record per label and sorts ascending by date
func dedupeByLabel[T any](items []T, key func(T) (string, time.Time)) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		label, _ := key(it)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		_, di := key(out[i])
		_, dj := key(out[j])
		return di.Before(dj)
	})
	return out
}

// splitPools first main numbers, then the next supp numbers
func splitPools(nums []int, main, supp int) ([]int, []int) {
	m := append([]int(nil), nums[:main]...)
	if supp == 0 {
		return m, nil
	}
	return m, append([]int(nil), nums[main:main+supp]...)
}
