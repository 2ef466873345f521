package lottonumbers

import (
	"time"

	"LottoSync/internal/config"
	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"github.com/sirupsen/logrus"
)

// DrawClient US, UK and AU sites: a main pool plus an optional supplementary pool
type DrawClient = Client[model.LottoNumbersDraw]

var usEndpoints = map[model.LottoType]Endpoint{
	model.USPowerball:    {Path: "/powerball/numbers", MainCount: 5, SupplementaryCount: 1},
	model.USMegaMillions: {Path: "/mega-millions/numbers", MainCount: 5, SupplementaryCount: 1},
	model.USCash4Life:    {Path: "/cash-4-life/numbers", MainCount: 5, SupplementaryCount: 1},
	model.USLottoAmerica: {Path: "/lotto-america/numbers", MainCount: 5, SupplementaryCount: 1},
	model.USLuckyForLife: {Path: "/lucky-for-life/numbers", MainCount: 5, SupplementaryCount: 1},
	model.USCASuperLotto: {Path: "/california-superlotto/numbers", MainCount: 5, SupplementaryCount: 1},
	model.USNYLotto:      {Path: "/new-york-lotto/numbers", MainCount: 6, SupplementaryCount: 1},
	model.USTXLotto:      {Path: "/lotto-texas/numbers", MainCount: 6},
}

var ukEndpoints = map[model.LottoType]Endpoint{
	model.UKEuromillions: {Path: "/euromillions/results", MainCount: 5, SupplementaryCount: 2},
	model.UK49sLunchtime: {Path: "/uk49s-lunchtime/results", MainCount: 6, SupplementaryCount: 1},
	model.UK49sTeatime:   {Path: "/uk49s-teatime/results", MainCount: 6, SupplementaryCount: 1},
}

var auEndpoints = map[model.LottoType]Endpoint{
	model.AUPowerball:       {Path: "/powerball/results", MainCount: 7, SupplementaryCount: 1},
	model.AUSaturdayLotto:   {Path: "/saturday-lotto/results", MainCount: 6, SupplementaryCount: 2},
	model.AUOzLotto:         {Path: "/oz-lotto/results", MainCount: 7, SupplementaryCount: 3},
	model.AUSetForLife:      {Path: "/set-for-life/results", MainCount: 7, SupplementaryCount: 2},
	model.AUWeekdayWindfall: {Path: "/weekday-windfall/results", MainCount: 6, SupplementaryCount: 2},
	model.AUCash3:           {Path: "/cash-3/results", MainCount: 3},
	model.AUSuper66:         {Path: "/super66/results", MainCount: 6},
	model.AULottoStrike:     {Path: "/lotto-strike/results", MainCount: 4},
}

// NewUSClient www.lottonumbers.com, "January 2, 2025" dates
func NewUSClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *DrawClient {
	return newClient(config.SourceLottoNumbersUS, cfg, logger, metrics, usEndpoints, drawParser(FindMonthDayDates, logger))
}

// NewUKClient uk.lottonumbers.com, "Thursday 2 January 2025" dates
func NewUKClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *DrawClient {
	return newClient(config.SourceLottoNumbersUK, cfg, logger, metrics, ukEndpoints, drawParser(FindDayMonthDates, logger))
}

// NewAUClient au.lottonumbers.com
func NewAUClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *DrawClient {
	return newClient(config.SourceLottoNumbersAU, cfg, logger, metrics, auEndpoints, drawParser(FindDayMonthDates, logger))
}

func drawParser(find DateFinder, logger *logrus.Logger) PageParser[model.LottoNumbersDraw] {
	return func(t model.LottoType, ep Endpoint, page string) []model.LottoNumbersDraw {
		return ParseDraws(page, ep, find, DefaultExtractors, logger.WithField("lotto_type", t))
	}
}

// ParseDraws one draw per date section holding at least main+supp numbers
func ParseDraws(page string, ep Endpoint, find DateFinder, extractors []Extractor, log logrus.FieldLogger) []model.LottoNumbersDraw {
	need := ep.Need()
	var draws []model.LottoNumbersDraw
	for _, s := range Sections(page, find) {
		nums := FirstMatching(s.Doc(), s, need, extractors)
		if len(nums) < need {
			log.WithField("draw_label", s.Date.Label).Debugf("section has %d numbers, want %d, skipping", len(nums), need)
			continue
		}
		if len(nums) > need {
			log.WithField("draw_label", s.Date.Label).Debugf("discarding %d extra numbers", len(nums)-need)
		}
		main, supp := splitPools(nums, ep.MainCount, ep.SupplementaryCount)
		draws = append(draws, model.LottoNumbersDraw{
			DrawDate:             s.Date.Date,
			DrawLabel:            s.Date.Label,
			MainNumbers:          main,
			SupplementaryNumbers: supp,
		})
	}
	return dedupeByLabel(draws, func(d model.LottoNumbersDraw) (string, time.Time) { return d.DrawLabel, d.DrawDate })
}
