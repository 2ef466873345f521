package lottonumbers

import (
	"time"

	"LottoSync/internal/config"
	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// SouthAfricanClient za.lottonumbers.com
type SouthAfricanClient = Client[model.SouthAfricanDraw]

var zaEndpoints = map[model.LottoType]Endpoint{
	model.ZADailyLotto: {Path: "/daily-lotto/results", MainCount: 5},
	model.ZALotto:      {Path: "/lotto/results", MainCount: 6, SupplementaryCount: 1},
	model.ZAPowerball:  {Path: "/powerball/results", MainCount: 5, SupplementaryCount: 1},
}

// plus games printed under the main draw
var zaPlusPools = map[model.LottoType]int{
	model.ZALotto:     2,
	model.ZAPowerball: 1,
}

// NewSouthAfricanClient za.lottonumbers.com, day-month dates
func NewSouthAfricanClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *SouthAfricanClient {
	return newClient(config.SourceLottoNumbersZA, cfg, logger, metrics, zaEndpoints,
		func(t model.LottoType, ep Endpoint, page string) []model.SouthAfricanDraw {
			return ParseSouthAfricanDraws(page, ep, zaPlusPools[t], logger.WithField("lotto_type", t))
		})
}

// ParseSouthAfricanDraws main pool from ul.lotto-main (or the first ul.balls), plus pools from their own lists
func ParseSouthAfricanDraws(page string, ep Endpoint, plusPools int, log logrus.FieldLogger) []model.SouthAfricanDraw {
	need := ep.Need()
	var draws []model.SouthAfricanDraw
	for _, s := range Sections(page, FindDayMonthDates) {
		doc := s.Doc()

		mainList := doc.Find("ul.lotto-main").First()
		if mainList.Length() == 0 {
			mainList = doc.Find("ul.balls").First()
		}
		nums := numbersIn(mainList.Find("li"), 0, 99)
		if len(nums) < need {
			nums = numbersIn(doc.Find("li"), 0, 99)
		}
		if len(nums) < need {
			log.WithField("draw_label", s.Date.Label).Debugf("section has %d numbers, want %d, skipping", len(nums), need)
			continue
		}

		d := model.SouthAfricanDraw{DrawDate: s.Date.Date, DrawLabel: s.Date.Label}
		d.MainNumbers, d.Supplementary = splitPools(nums, ep.MainCount, ep.SupplementaryCount)
		if plusPools >= 1 {
			d.Plus1, d.Plus1Supplementary = plusPool(doc.Find("ul.plus-1, ul.pb-plus").First(), ep)
		}
		if plusPools >= 2 {
			d.Plus2, d.Plus2Supplementary = plusPool(doc.Find("ul.plus-2").First(), ep)
		}
		draws = append(draws, d)
	}
	return dedupeByLabel(draws, func(d model.SouthAfricanDraw) (string, time.Time) { return d.DrawLabel, d.DrawDate })
}

// plusPool a complete plus game or nothing
func plusPool(list *goquery.Selection, ep Endpoint) ([]int, []int) {
	if list.Length() == 0 {
		return nil, nil
	}
	nums := numbersIn(list.Find("li"), 0, 99)
	if len(nums) < ep.Need() {
		return nil, nil
	}
	return splitPools(nums, ep.MainCount, ep.SupplementaryCount)
}
