// Package france scrapes the latest Loto and Keno results from tirage-gagnant.com.
package france

import (
	"context"
	"errors"
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

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	lotoPath = "/loto/"
	kenoPath = "/keno/"
	// results are published after the 19:00 (UTC) draw
	drawHour = 19
)

var frenchHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "fr-FR,fr;q=0.9,en;q=0.8",
}

var frenchMonths = map[string]time.Month{
	"janvier": time.January, "février": time.February, "fevrier": time.February,
	"mars": time.March, "avril": time.April, "mai": time.May, "juin": time.June,
	"juillet": time.July, "août": time.August, "aout": time.August,
	"septembre": time.September, "octobre": time.October, "novembre": time.November,
	"décembre": time.December, "decembre": time.December,
}

var (
	slashDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	textDatePattern  = regexp.MustCompile(`(\d{1,2})\s+(\p{L}+)\s+(\d{4})`)
	jokerPrefix      = regexp.MustCompile(`(?is).*Joker\+?\s*`)
	jokerRawPattern  = regexp.MustCompile(`(?i)Joker\+?®?\s*</span>\s*([\d\s]{7,})`)
	whitespace       = regexp.MustCompile(`\s`)
	singleDigit      = regexp.MustCompile(`^\d$`)
)

var errNoJoker = errors.New("no joker number on page")

// Client tirage-gagnant.com; each page only carries the latest draw
type Client struct {
	http      *resty.Client
	logger    *logrus.Logger
	metrics   interfaces.FetchMetrics
	lotoCache *ttlcache.Cache[string, *model.FrenchLotoDraw]
	kenoCache *ttlcache.Cache[string, *model.FrenchKenoDraw]
}

func NewClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *Client {
	return &Client{
		http:      httpclient.NewHTTPClient(cfg, logger, httpclient.WithHeaders(frenchHeaders)),
		logger:    logger,
		metrics:   metrics,
		lotoCache: ttlcache.New[string, *model.FrenchLotoDraw](cfg.CacheTTLDuration()),
		kenoCache: ttlcache.New[string, *model.FrenchKenoDraw](cfg.CacheTTLDuration()),
	}
}

func (c *Client) Supports(t model.LottoType) bool {
	return t == model.FRLoto || t == model.FRJoker || t == model.FRKeno
}

// FetchLoto latest Loto draw, nil on failure
func (c *Client) FetchLoto(ctx context.Context) *model.FrenchLotoDraw {
	draw, err := c.lotoCache.GetOrLoad(lotoPath, func() (*model.FrenchLotoDraw, error) {
		doc, raw, err := c.fetchPage(ctx, lotoPath)
		if err != nil {
			return nil, err
		}
		return ParseLotoPage(doc, raw)
	})
	if err != nil {
		c.fail(err, model.FRLoto, "Failed to fetch Loto draws")
		return nil
	}
	return draw
}

// FetchKeno latest Keno draw, nil on failure
func (c *Client) FetchKeno(ctx context.Context) *model.FrenchKenoDraw {
	draw, err := c.kenoCache.GetOrLoad(kenoPath, func() (*model.FrenchKenoDraw, error) {
		doc, raw, err := c.fetchPage(ctx, kenoPath)
		if err != nil {
			return nil, err
		}
		return ParseKenoPage(doc, raw)
	})
	if err != nil {
		c.fail(err, model.FRKeno, "Failed to fetch Keno draws")
		return nil
	}
	return draw
}

func (c *Client) fail(err error, t model.LottoType, msg string) {
	c.logger.WithError(err).WithFields(logrus.Fields{
		"source":     config.SourceTirageGagnant,
		"lotto_type": t,
	}).Errorf("[%s] %s", t, msg)
	if c.metrics != nil {
		c.metrics.FetchFailed(config.SourceTirageGagnant, t)
	}
}

func (c *Client) fetchPage(ctx context.Context, path string) (*goquery.Document, string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, "", fmt.Errorf("request %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, "", fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode())
	}
	raw := resp.String()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, raw, nil
}

// ParseLotoPage main numbers from p.num (not .numbis), chance from p.chance, second draw from p.num.numbis
func ParseLotoPage(doc *goquery.Document, raw string) (*model.FrenchLotoDraw, error) {
	dateText := strings.TrimSpace(doc.Find("span.date_full").First().Text())
	if dateText == "" {
		dateText = strings.TrimSpace(doc.Find("span.date_min").First().Text())
	}
	if dateText == "" {
		dateText = doc.Find("p.date").First().Text()
	}
	date, err := ParseFrenchDate(dateText)
	if err != nil {
		return nil, err
	}

	main := numbers(doc.Find("p.num").Not(".numbis"), 1, 49)
	if len(main) < 5 {
		return nil, fmt.Errorf("expected at least 5 Loto numbers, got %d", len(main))
	}
	chance, _ := leadingInt(strings.TrimSpace(doc.Find("p.chance").First().Text()))
	if chance < 1 || chance > 10 {
		return nil, fmt.Errorf("chance number out of range: %d", chance)
	}

	d := &model.FrenchLotoDraw{
		DrawDate:     date,
		DrawLabel:    date.Format("2006-01-02"),
		MainNumbers:  main[:5],
		ChanceNumber: chance,
	}
	if second := numbers(doc.Find("p.num.numbis"), 1, 49); len(second) == 5 {
		d.SecondTirageNumbers = second
	}
	if joker, err := ParseJoker(doc, raw); err == nil {
		d.JokerNumber = joker
	}
	return d, nil
}

// ParseKenoPage 20 numbers when published, otherwise the 16 of the current format
func ParseKenoPage(doc *goquery.Document, raw string) (*model.FrenchKenoDraw, error) {
	date, err := ParseFrenchDate(doc.Find("p.date").First().Text())
	if err != nil {
		return nil, err
	}
	nums := numbers(doc.Find("#resultat_keno_tirage p.num"), 1, 70)
	if len(nums) < 16 {
		return nil, fmt.Errorf("expected at least 16 Keno numbers, got %d", len(nums))
	}
	if len(nums) >= 20 {
		nums = nums[:20]
	} else {
		nums = nums[:16]
	}

	d := &model.FrenchKenoDraw{
		DrawDate:  date,
		DrawLabel: date.Format("2006-01-02"),
		Numbers:   nums,
	}
	if joker, err := ParseJoker(doc, raw); err == nil {
		d.JokerNumber = joker
	}
	return d, nil
}

// ParseJoker 7 raw digits, leading zeros kept
func ParseJoker(doc *goquery.Document, raw string) (string, error) {
	blocs := doc.Find("span.jokerbloc")
	if blocs.Length() >= 7 {
		var digits []string
		blocs.Each(func(_ int, s *goquery.Selection) {
			if d := strings.TrimSpace(s.Text()); singleDigit.MatchString(d) {
				digits = append(digits, d)
			}
		})
		if len(digits) == 7 {
			return strings.Join(digits, ""), nil
		}
	}

	if box := doc.Find("div.joker, p.joker").First(); box.Length() > 0 {
		rest := whitespace.ReplaceAllString(jokerPrefix.ReplaceAllString(box.Text(), ""), "")
		if len(rest) >= 7 && allDigits(rest[:7]) {
			return rest[:7], nil
		}
	}

	if m := jokerRawPattern.FindStringSubmatch(raw); m != nil {
		digits := whitespace.ReplaceAllString(m[1], "")
		if len(digits) >= 7 && allDigits(digits) {
			return digits[:7], nil
		}
	}
	return "", errNoJoker
}

// ParseFrenchDate "13/01/2026" or "lundi 13 janvier 2026", at the 19:00 UTC draw time
func ParseFrenchDate(text string) (time.Time, error) {
	if m := slashDatePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), day, drawHour, 0, 0, 0, time.UTC), nil
		}
	}
	if m := textDatePattern.FindStringSubmatch(text); m != nil {
		if month, ok := frenchMonths[strings.ToLower(m[2])]; ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			return time.Date(year, month, day, drawHour, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse French date from %q", strings.TrimSpace(text))
}

func numbers(sel *goquery.Selection, min, max int) []int {
	var out []int
	sel.Each(func(_ int, s *goquery.Selection) {
		if n, ok := leadingInt(strings.TrimSpace(s.Text())); ok && n >= min && n <= max {
			out = append(out, n)
		}
	})
	return out
}

func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
