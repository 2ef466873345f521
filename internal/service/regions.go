package service

import (
	"fmt"
	"strings"
	"time"

	"LottoSync/internal/model"
)

// RegionConfig routing and history of one lottery type
type RegionConfig struct {
	Region       model.Region `json:"region"`
	HistoryStart time.Time    `json:"historyStart"`
	ScheduleKey  string       `json:"scheduleKey"` // cron interval key used by the external scheduler
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(fmt.Sprintf("bad history start %q: %v", s, err))
	}
	return t
}

var (
	usStart      = at("2019-12-01T00:00:00")
	defaultStart = at("2020-12-01T00:00:00")
)

// regionTable legacy Estonian aliases (BINGO, JOKKER, KENO, EURO) are intentionally absent
var regionTable = map[model.LottoType]RegionConfig{
	model.Eurojackpot: {model.RegionEstonian, at("2021-05-28T22:00:00"), "euroJackpotInterval"},
	model.Vikinglotto: {model.RegionEstonian, at("2021-05-26T20:00:00"), "vikingLottoInterval"},
	model.EstBingo:    {model.RegionEstonian, at("2021-05-26T18:30:00"), "bingoLottoInterval"},
	model.EstJokker:   {model.RegionEstonian, at("2023-01-03T18:35:00"), "jokkerLottoInterval"},
	model.EstKeno:     {model.RegionEstonian, at("2021-05-25T14:15:00"), "kenoLottoInterval"},

	model.USPowerball:    {model.RegionUS, usStart, "powerballInterval"},
	model.USMegaMillions: {model.RegionUS, usStart, "megaMillionsInterval"},
	model.USCash4Life:    {model.RegionUS, usStart, "cash4LifeInterval"},
	model.USLottoAmerica: {model.RegionUS, usStart, "lottoAmericaInterval"},
	model.USLuckyForLife: {model.RegionUS, usStart, "luckyForLifeInterval"},
	model.USCASuperLotto: {model.RegionUS, usStart, "caSuperLottoInterval"},
	model.USNYLotto:      {model.RegionUS, usStart, "nyLottoInterval"},
	model.USTXLotto:      {model.RegionUS, usStart, "txLottoInterval"},
	model.Powerball:      {model.RegionUS, usStart, "legacyPowerballInterval"},
	model.MegaMillions:   {model.RegionUS, usStart, "legacyMegaMillionsInterval"},
	model.Cash4Life:      {model.RegionUS, usStart, "legacyCash4LifeInterval"},

	model.Euromillions:   {model.RegionUK, defaultStart, "euroMillionsInterval"},
	model.UKLotto:        {model.RegionUK, defaultStart, "ukLottoInterval"},
	model.UKThunderball:  {model.RegionUK, defaultStart, "ukThunderballInterval"},
	model.UKSetForLife:   {model.RegionUK, defaultStart, "ukSetForLifeInterval"},
	model.UKHotPicks:     {model.RegionUK, defaultStart, "ukHotPicksInterval"},
	model.UKEuromillions: {model.RegionUK, defaultStart, "ukEuroMillionsInterval"},
	model.UK49sLunchtime: {model.RegionUK, defaultStart, "uk49sLunchtimeInterval"},
	model.UK49sTeatime:   {model.RegionUK, defaultStart, "uk49sTeatimeInterval"},

	model.ESLaPrimitiva: {model.RegionSpanish, defaultStart, "esLaPrimitivaInterval"},
	model.ESBonoloto:    {model.RegionSpanish, defaultStart, "esBonolotoInterval"},
	model.ESElGordo:     {model.RegionSpanish, defaultStart, "esElGordoInterval"},
	model.Eurodreams:    {model.RegionSpanish, at("2023-11-06T00:00:00"), "euroDreamsInterval"},

	model.IELotto:            {model.RegionIrish, defaultStart, "ieLottoInterval"},
	model.IELottoPlus1:       {model.RegionIrish, defaultStart, "ieLottoPlus1Interval"},
	model.IELottoPlus2:       {model.RegionIrish, defaultStart, "ieLottoPlus2Interval"},
	model.IEDailyMillion:     {model.RegionIrish, defaultStart, "ieDailyMillionInterval"},
	model.IEDailyMillionPlus: {model.RegionIrish, defaultStart, "ieDailyMillionPlusInterval"},

	model.AUPowerball:       {model.RegionAustralian, defaultStart, "auPowerballInterval"},
	model.AUSaturdayLotto:   {model.RegionAustralian, defaultStart, "auSaturdayLottoInterval"},
	model.AUOzLotto:         {model.RegionAustralian, defaultStart, "auOzLottoInterval"},
	model.AUSetForLife:      {model.RegionAustralian, defaultStart, "auSetForLifeInterval"},
	model.AUWeekdayWindfall: {model.RegionAustralian, defaultStart, "auWeekdayWindfallInterval"},
	model.AUCash3:           {model.RegionAustralian, defaultStart, "auCash3Interval"},
	model.AUSuper66:         {model.RegionAustralian, defaultStart, "auSuper66Interval"},
	model.AULottoStrike:     {model.RegionAustralian, defaultStart, "auLottoStrikeInterval"},

	model.CALottoMax:   {model.RegionCanadian, defaultStart, "caLottoMaxInterval"},
	model.CALotto649:   {model.RegionCanadian, defaultStart, "caLotto649Interval"},
	model.CADailyGrand: {model.RegionCanadian, defaultStart, "caDailyGrandInterval"},
	model.CALottario:   {model.RegionCanadian, defaultStart, "caLottarioInterval"},
	model.CABC49:       {model.RegionCanadian, defaultStart, "caBC49Interval"},
	model.CAQuebec49:   {model.RegionCanadian, defaultStart, "caQuebec49Interval"},
	model.CAAtlantic49: {model.RegionCanadian, defaultStart, "caAtlantic49Interval"},

	model.ZADailyLotto: {model.RegionSouthAfrican, defaultStart, "zaDailyLottoInterval"},
	model.ZALotto:      {model.RegionSouthAfrican, defaultStart, "zaLottoInterval"},
	model.ZAPowerball:  {model.RegionSouthAfrican, defaultStart, "zaPowerballInterval"},

	model.FRLoto:  {model.RegionFrench, defaultStart, "frLotoInterval"},
	model.FRJoker: {model.RegionFrench, defaultStart, "frJokerInterval"},
	model.FRKeno:  {model.RegionFrench, defaultStart, "frKenoInterval"},

	model.DELotto6aus49: {model.RegionGerman, defaultStart, "deLotto6aus49Interval"},
	model.DEKeno:        {model.RegionGerman, defaultStart, "deKenoInterval"},
	model.DESpiel77:     {model.RegionGerman, defaultStart, "deSpiel77Interval"},
	model.DESuper6:      {model.RegionGerman, defaultStart, "deSuper6Interval"},
}

// legacyNYTypes only ingested when explicitly requested; the US_* names cover the same games
var legacyNYTypes = map[model.LottoType]bool{
	model.Powerball:    true,
	model.MegaMillions: true,
	model.Cash4Life:    true,
}

// Regions region table with history start overrides (region or type name -> RFC3339 / YYYY-MM-DD)
type Regions struct {
	table map[model.LottoType]RegionConfig
}

func NewRegions(overrides map[string]string) (*Regions, error) {
	table := make(map[model.LottoType]RegionConfig, len(regionTable))
	for t, rc := range regionTable {
		table[t] = rc
	}
	for key, value := range overrides {
		start, err := parseStart(value)
		if err != nil {
			return nil, fmt.Errorf("history start %s: %w", key, err)
		}
		matched := false
		for t, rc := range table {
			if strings.EqualFold(string(rc.Region), key) || strings.EqualFold(string(t), key) {
				rc.HistoryStart = start
				table[t] = rc
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("history start %s: %w", key, model.ErrUnknownLottoType)
		}
	}
	// type overrides win over region overrides
	for key, value := range overrides {
		t, err := model.ParseLottoType(key)
		if err != nil {
			continue
		}
		if rc, ok := table[t]; ok {
			rc.HistoryStart, _ = parseStart(value)
			table[t] = rc
		}
	}
	return &Regions{table: table}, nil
}

// Lookup region config of t
func (r *Regions) Lookup(t model.LottoType) (RegionConfig, bool) {
	rc, ok := r.table[t]
	return rc, ok
}

// ConfiguredTypes every routed type in declaration order, legacy NY names excluded
func (r *Regions) ConfiguredTypes() []model.LottoType {
	var out []model.LottoType
	for _, t := range model.AllLottoTypes() {
		if _, ok := r.table[t]; ok && !legacyNYTypes[t] {
			out = append(out, t)
		}
	}
	return out
}

func parseStart(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", model.ErrInvalidDateRange, s)
}
