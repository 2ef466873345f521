// Package ireland reads lottery.ie result history pages (Next.js page data).
package ireland

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"LottoSync/internal/config"
	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"
	"LottoSync/internal/utils/httpclient"
	"LottoSync/internal/utils/ttlcache"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// standardGame selects draw.standard instead of an add-on game
const standardGame = -1

const (
	mainCount  = 6
	bonusCount = 1
)

var errNoNextData = errors.New("__NEXT_DATA__ script not found")

// Game history page, game source within each draw, and the valid number range
type Game struct {
	Path   string
	Source int // standardGame or addonGames index
	Max    int
}

var games = map[model.LottoType]Game{
	model.IELotto:            {Path: "/results/lotto/history", Source: standardGame, Max: 47},
	model.IELottoPlus1:       {Path: "/results/lotto/history", Source: 0, Max: 47},
	model.IELottoPlus2:       {Path: "/results/lotto/history", Source: 1, Max: 47},
	model.IEDailyMillion:     {Path: "/results/daily-million/history", Source: standardGame, Max: 39},
	model.IEDailyMillionPlus: {Path: "/results/daily-million/history", Source: 0, Max: 39},
}

type grid struct {
	Standard   [][]int `json:"standard"`
	Additional [][]int `json:"additional"`
}

type gameData struct {
	GameTitle string   `json:"gameTitle"`
	DrawDates []string `json:"drawDates"`
	Grids     []grid   `json:"grids"`
}

type drawItem struct {
	Standard   *gameData  `json:"standard"`
	AddonGames []gameData `json:"addonGames"`
}

type nextData struct {
	Props struct {
		PageProps struct {
			List []drawItem `json:"list"`
		} `json:"pageProps"`
	} `json:"props"`
}

// Client lottery.ie; one page fetch serves the main game and its Plus games
type Client struct {
	http    *resty.Client
	logger  *logrus.Logger
	metrics interfaces.FetchMetrics
	cache   *ttlcache.Cache[string, []drawItem]
}

func NewClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *Client {
	return &Client{
		http:    httpclient.NewHTTPClient(cfg, logger, httpclient.WithHeaders(httpclient.HTMLHeaders)),
		logger:  logger,
		metrics: metrics,
		cache:   ttlcache.New[string, []drawItem](cfg.CacheTTLDuration()),
	}
}

func (c *Client) Supports(t model.LottoType) bool {
	_, ok := games[t]
	return ok
}

// Fetch draws of the type sorted ascending; failures are logged and yield an empty slice
func (c *Client) Fetch(ctx context.Context, t model.LottoType) []model.IrishDraw {
	game, ok := games[t]
	if !ok {
		c.logger.Warnf("[%s] Unknown lottery type for this client", t)
		return nil
	}

	list, err := c.cache.GetOrLoad(game.Path, func() ([]drawItem, error) {
		c.logger.Infof("[%s] Fetching from %s...", t, game.Path)
		return c.fetchList(ctx, game.Path)
	})
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source":     config.SourceLotteryIE,
			"lotto_type": t,
		}).Errorf("[%s] Failed to fetch Irish draws", t)
		if c.metrics != nil {
			c.metrics.FetchFailed(config.SourceLotteryIE, t)
		}
		return nil
	}
	draws := parseList(list, game, c.logger.WithField("lotto_type", t))
	c.logger.Infof("[%s] Found %d draws", t, len(draws))
	return draws
}

func (c *Client) fetchList(ctx context.Context, path string) ([]drawItem, error) {
	resp, err := c.http.R().SetContext(ctx).SetDoNotParseResponse(true).Get(path)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return parseNextData(doc)
}

// parseNextData draw list embedded in the #__NEXT_DATA__ script
func parseNextData(doc *goquery.Document) ([]drawItem, error) {
	script := strings.TrimSpace(doc.Find("#__NEXT_DATA__").First().Text())
	if script == "" {
		return nil, errNoNextData
	}
	var data nextData
	if err := json.Unmarshal([]byte(script), &data); err != nil {
		return nil, fmt.Errorf("decode __NEXT_DATA__: %w", err)
	}
	if data.Props.PageProps.List == nil {
		return nil, errors.New("draw list missing from page data")
	}
	return data.Props.PageProps.List, nil
}

func parseList(list []drawItem, game Game, log logrus.FieldLogger) []model.IrishDraw {
	var out []model.IrishDraw
	for _, item := range list {
		if item.Standard == nil || len(item.Standard.DrawDates) == 0 {
			log.Debug("draw missing date, skipping")
			continue
		}
		date, err := model.ParseFlexTime(item.Standard.DrawDates[0])
		if err != nil {
			log.WithError(err).Debug("draw date unparseable, skipping")
			continue
		}
		label := date.Format("2006-01-02")
		entry := log.WithField("draw_label", label)

		var data *gameData
		if game.Source == standardGame {
			data = item.Standard
		} else if game.Source < len(item.AddonGames) {
			data = &item.AddonGames[game.Source]
		}
		if data == nil || len(data.Grids) == 0 {
			entry.Debug("draw missing game data, skipping")
			continue
		}

		g := data.Grids[0]
		if len(g.Standard) == 0 || len(g.Standard[0]) != mainCount {
			entry.Debug("invalid main numbers, skipping")
			continue
		}
		if len(g.Additional) == 0 || len(g.Additional[0]) != bonusCount {
			entry.Debug("invalid bonus number, skipping")
			continue
		}
		main, bonus := g.Standard[0], g.Additional[0][0]
		if !inRange(main, game.Max) || bonus < 1 || bonus > game.Max {
			entry.Debugf("numbers out of range 1-%d, skipping", game.Max)
			continue
		}

		out = append(out, model.IrishDraw{
			DrawDate:    date,
			DrawLabel:   label,
			MainNumbers: append([]int(nil), main...),
			BonusNumber: bonus,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DrawDate.Before(out[j].DrawDate) })
	return out
}

func inRange(nums []int, max int) bool {
	for _, n := range nums {
		if n < 1 || n > max {
			return false
		}
	}
	return true
}
