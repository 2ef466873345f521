package lottonumbers

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"LottoSync/internal/config"
	"LottoSync/internal/interfaces"
	"LottoSync/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// CanadianClient ca.lottonumbers.com
type CanadianClient = Client[model.CanadianDraw]

// canadianExtra optional add-on game printed inside a draw block
type canadianExtra int

const (
	extraEarlyBird canadianExtra = iota
	extraEncore
	extraExtra
	extraTag
)

// SupplementaryCount is the bonus (or Daily Grand "grand number") ball
var caEndpoints = map[model.LottoType]Endpoint{
	model.CALottoMax:   {Path: "/lotto-max/numbers", MainCount: 7, SupplementaryCount: 1},
	model.CALotto649:   {Path: "/lotto-649/numbers", MainCount: 6, SupplementaryCount: 1},
	model.CADailyGrand: {Path: "/daily-grand/numbers", MainCount: 5, SupplementaryCount: 1},
	model.CALottario:   {Path: "/ontario/lottario/numbers", MainCount: 6, SupplementaryCount: 1},
	model.CABC49:       {Path: "/british-columbia/lotto-49/numbers", MainCount: 6, SupplementaryCount: 1},
	model.CAQuebec49:   {Path: "/quebec/lotto-49/numbers", MainCount: 6, SupplementaryCount: 1},
	model.CAAtlantic49: {Path: "/atlantic/lotto-49/numbers", MainCount: 6, SupplementaryCount: 1},
}

var caExtras = map[model.LottoType][]canadianExtra{
	model.CALottario:   {extraEarlyBird, extraEncore},
	model.CABC49:       {extraExtra},
	model.CAQuebec49:   {extraExtra},
	model.CAAtlantic49: {extraTag},
}

const canadianBlockSelector = "div.resultsItem, div.resultsitem, div.result-item, article.draw, .draw-result"

var canadianExtractors = []Extractor{
	ElementNumbers("span", 1, 99),
	ElementNumbers("li", 1, 99),
	StarNumbers,
}

var (
	earlyBirdPattern    = regexp.MustCompile(`(?i)Early\s*Bird:?\s*([\s\S]*?)(?:Encore:|$)`)
	earlyBirdNumPattern = regexp.MustCompile(`(?:\*\s*)?(\d+)`)
	encoreSplitPattern  = regexp.MustCompile(`(?i)Encore:?\s*`)
	extraSplitPattern   = regexp.MustCompile(`(?i)Extra:?\s*`)
	tagSplitPattern     = regexp.MustCompile(`(?i)Tag:?\s*`)
	liDigitPattern      = regexp.MustCompile(`<li[^>]*>\s*(\d)\s*</li>`)
	liNumberPattern     = regexp.MustCompile(`<li[^>]*>\s*(\d+)\s*</li>`)
)

// NewCanadianClient ca.lottonumbers.com, US date format plus per-game add-ons
func NewCanadianClient(cfg config.SourceConfig, logger *logrus.Logger, metrics interfaces.FetchMetrics) *CanadianClient {
	return newClient(config.SourceLottoNumbersCA, cfg, logger, metrics, caEndpoints,
		func(t model.LottoType, ep Endpoint, page string) []model.CanadianDraw {
			return ParseCanadianDraws(page, t, ep, logger.WithField("lotto_type", t))
		})
}

// ParseCanadianDraws reads result blocks, falling back to date sections when the page has none
func ParseCanadianDraws(page string, t model.LottoType, ep Endpoint, log logrus.FieldLogger) []model.CanadianDraw {
	sections := canadianBlocks(page)
	if len(sections) == 0 {
		sections = Sections(page, FindMonthDayDates)
	}

	need := ep.Need()
	var draws []model.CanadianDraw
	for _, s := range sections {
		nums := FirstMatching(s.Doc(), s, need, canadianExtractors)
		if len(nums) < need {
			log.WithField("draw_label", s.Date.Label).Debugf("block has %d numbers, want %d, skipping", len(nums), need)
			continue
		}
		d := model.CanadianDraw{
			DrawDate:    s.Date.Date,
			DrawLabel:   s.Date.Label,
			MainNumbers: append([]int(nil), nums[:ep.MainCount]...),
		}
		if t == model.CADailyGrand {
			d.Grand = model.IntPtr(nums[ep.MainCount])
		} else {
			d.Bonus = model.IntPtr(nums[ep.MainCount])
		}
		for _, extra := range caExtras[t] {
			applyExtra(&d, extra, s.HTML)
		}
		draws = append(draws, d)
	}
	return dedupeByLabel(draws, func(d model.CanadianDraw) (string, time.Time) { return d.DrawLabel, d.DrawDate })
}

// canadianBlocks result containers whose text carries a "Weekday Month D YYYY" date
func canadianBlocks(page string) []Section {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil
	}
	var out []Section
	doc.Find(canadianBlockSelector).Each(func(_ int, block *goquery.Selection) {
		date, ok := matchWeekdayMonthDay(block.Text())
		if !ok {
			return
		}
		blockHTML, err := goquery.OuterHtml(block)
		if err != nil {
			return
		}
		label := date.Format("2006-01-02")
		out = append(out, Section{Date: DateMatch{Date: date, Label: label}, HTML: blockHTML})
	})
	return out
}

func applyExtra(d *model.CanadianDraw, extra canadianExtra, blockHTML string) {
	switch extra {
	case extraEarlyBird:
		m := earlyBirdPattern.FindStringSubmatch(blockHTML)
		if m == nil {
			return
		}
		nums := submatchInts(earlyBirdNumPattern, m[1], -1)
		if len(nums) >= 4 {
			d.EarlyBird = nums[:4]
		}
	case extraEncore:
		digits := submatchStrings(liDigitPattern, after(encoreSplitPattern, blockHTML), 7)
		if len(digits) == 7 {
			d.Encore = strings.Join(digits, "")
		}
	case extraExtra:
		if nums := submatchInts(liNumberPattern, after(extraSplitPattern, blockHTML), 7); len(nums) > 0 {
			d.Extra = nums
		}
	case extraTag:
		digits := submatchStrings(liDigitPattern, after(tagSplitPattern, blockHTML), 6)
		if len(digits) == 6 {
			d.Tag = strings.Join(digits, "")
		}
	}
}

// after text following the first match of re, empty when absent
func after(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[1]:]
}

func submatchStrings(re *regexp.Regexp, s string, n int) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, n) {
		out = append(out, m[1])
	}
	return out
}

func submatchInts(re *regexp.Regexp, s string, n int) []int {
	var out []int
	for _, m := range re.FindAllStringSubmatch(s, n) {
		if v, err := strconv.Atoi(m[1]); err == nil {
			out = append(out, v)
		}
	}
	return out
}
