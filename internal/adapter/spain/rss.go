// Package spain reads the loteriasyapuestas.es result RSS feeds.
package spain

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
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
	"golang.org/x/net/html"
)

// Game feed slug and the main-number count a valid item carries
type Game struct {
	Slug      string
	MainCount int
}

var games = map[model.LottoType]Game{
	model.ESLaPrimitiva: {Slug: "la-primitiva", MainCount: 6},
	model.ESBonoloto:    {Slug: "bonoloto", MainCount: 6},
	model.ESElGordo:     {Slug: "gordo-primitiva", MainCount: 5},
	model.Eurodreams:    {Slug: "eurodreams", MainCount: 6},
}

var (
	itemPattern           = regexp.MustCompile(`<item>([\s\S]*?)</item>`)
	mainNumbersPattern    = regexp.MustCompile(`<b>([\d\s-]+)</b>`)
	numberSplitPattern    = regexp.MustCompile(`\s*-\s*`)
	complementarioPattern = regexp.MustCompile(`Complementario:\s*<b>C\((\d+)\)</b>`)
	reintegroPattern      = regexp.MustCompile(`Reintegro:\s*<b>R\((\d+)\)</b>`)
	claveReintegroPattern = regexp.MustCompile(`(?i)clave.*?<b>R\((\d+)\)</b>`)
	suenoPattern          = regexp.MustCompile(`(?i)Sueño:\s*<b>(\d+)</b>`)
)

var pubDateLayouts = []string{time.RFC1123Z, time.RFC1123, "Mon, 2 Jan 2006 15:04:05 -0700", "Mon, 2 Jan 2006 15:04:05 MST"}

// Item one RSS entry
type Item struct {
	Title       string
	PubDate     string
	Description string
	Link        string
}

// Client loteriasyapuestas.es RSS feeds
type Client struct {
	http    *resty.Client
	logger  *logrus.Logger
	metrics interfaces.FetchMetrics
	cache   *ttlcache.Cache[model.LottoType, []model.SpanishDraw]
}

func NewClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *Client {
	return &Client{
		http: httpclient.NewHTTPClient(cfg, logger, httpclient.WithHeaders(map[string]string{
			"Accept": "application/rss+xml, application/xml, text/xml",
		})),
		logger:  logger,
		metrics: metrics,
		cache:   ttlcache.New[model.LottoType, []model.SpanishDraw](cfg.CacheTTLDuration()),
	}
}

func (c *Client) Supports(t model.LottoType) bool {
	_, ok := games[t]
	return ok
}

// Fetch draws published in the game's feed; failures are logged and yield an empty slice
func (c *Client) Fetch(ctx context.Context, t model.LottoType) []model.SpanishDraw {
	game, ok := games[t]
	if !ok {
		c.logger.Warnf("[%s] Unknown lottery type for this client", t)
		return nil
	}

	draws, err := c.cache.GetOrLoad(t, func() ([]model.SpanishDraw, error) {
		resp, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/es/%s/resultados/.formatoRSS", game.Slug))
		if err != nil {
			return nil, fmt.Errorf("fetch rss %s: %w", game.Slug, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("fetch rss %s: unexpected status %d", game.Slug, resp.StatusCode())
		}
		return ParseDraws(ParseItems(resp.String()), t, c.logger.WithField("lotto_type", t)), nil
	})
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source":     config.SourceLoterias,
			"lotto_type": t,
		}).Error("Failed to fetch Spanish lottery RSS")
		if c.metrics != nil {
			c.metrics.FetchFailed(config.SourceLoterias, t)
		}
		return nil
	}
	c.logger.Infof("[%s] Found %d draws", t, len(draws))
	return draws
}

// ParseItems items with a title, pubDate and description
func ParseItems(xml string) []Item {
	var items []Item
	for _, m := range itemPattern.FindAllStringSubmatch(xml, -1) {
		it := Item{
			Title:       extractTag(m[1], "title"),
			PubDate:     extractTag(m[1], "pubDate"),
			Description: extractTag(m[1], "description"),
			Link:        extractTag(m[1], "link"),
		}
		if it.Title == "" || it.PubDate == "" || it.Description == "" {
			continue
		}
		items = append(items, it)
	}
	return items
}

// extractTag CDATA content first, then plain (entity-escaped) content
func extractTag(xml, tag string) string {
	open, end := "<"+tag+">", "</"+tag+">"
	start := strings.Index(xml, open)
	if start < 0 {
		return ""
	}
	rest := xml[start+len(open):]
	stop := strings.Index(rest, end)
	if stop < 0 {
		return ""
	}
	body := strings.TrimSpace(rest[:stop])
	if strings.HasPrefix(body, "<![CDATA[") && strings.HasSuffix(body, "]]>") {
		return strings.TrimSpace(body[len("<![CDATA[") : len(body)-len("]]>")])
	}
	return strings.TrimSpace(html.UnescapeString(body))
}

// ParseDraws items whose description carries the expected number of main numbers
func ParseDraws(items []Item, t model.LottoType, log logrus.FieldLogger) []model.SpanishDraw {
	game := games[t]
	var draws []model.SpanishDraw
	for _, it := range items {
		date, err := parsePubDate(it.PubDate)
		if err != nil {
			log.WithError(err).WithField("title", it.Title).Warn("unparseable pubDate, skipping")
			continue
		}
		d := parseDescription(it.Description, t)
		if len(d.MainNumbers) != game.MainCount {
			log.Infof("Skipping invalid %s draw: %s", t, it.Title)
			continue
		}
		d.DrawDate = date
		d.DrawLabel = date.Format("2006-01-02")
		d.Title = it.Title
		draws = append(draws, d)
	}
	return draws
}

func parseDescription(desc string, t model.LottoType) model.SpanishDraw {
	var d model.SpanishDraw
	if m := mainNumbersPattern.FindStringSubmatch(desc); m != nil {
		for _, part := range numberSplitPattern.Split(strings.TrimSpace(m[1]), -1) {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				d.MainNumbers = append(d.MainNumbers, n)
			}
		}
	}
	switch t {
	case model.ESLaPrimitiva, model.ESBonoloto:
		d.Complementario = submatchInt(complementarioPattern, desc)
		d.Reintegro = submatchInt(reintegroPattern, desc)
	case model.ESElGordo:
		d.Reintegro = submatchInt(claveReintegroPattern, desc)
	case model.Eurodreams:
		d.Sueno = submatchInt(suenoPattern, desc)
	}
	return d
}

func submatchInt(re *regexp.Regexp, s string) *int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// parsePubDate RFC 1123 variants, returned in UTC
func parsePubDate(s string) (time.Time, error) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported pubDate %q", s)
}
