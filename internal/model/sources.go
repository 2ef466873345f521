package model

import "time"

// LottoNumbersDraw parsed draw from the lottonumbers.com page family (US/UK/AU)
type LottoNumbersDraw struct {
	DrawDate             time.Time
	DrawLabel            string
	MainNumbers          []int
	SupplementaryNumbers []int
}

// CanadianDraw parsed draw from ca.lottonumbers.com
type CanadianDraw struct {
	DrawDate    time.Time
	DrawLabel   string
	MainNumbers []int
	Bonus       *int
	Grand       *int // Daily Grand "grand number"
	EarlyBird   []int
	Encore      string // 7 digits, leading zeros kept
	Extra       []int
	Tag         string // 6 digits, leading zeros kept
}

// SouthAfricanDraw parsed draw from za.lottonumbers.com
type SouthAfricanDraw struct {
	DrawDate           time.Time
	DrawLabel          string
	MainNumbers        []int
	Supplementary      []int
	Plus1              []int // Lotto Plus 1 / Powerball Plus
	Plus1Supplementary []int
	Plus2              []int
	Plus2Supplementary []int
}

// UKCSVDraw row of a National Lottery draw-history CSV
type UKCSVDraw struct {
	DrawDate    time.Time
	DrawNumber  int
	MainNumbers []int
	Secondary   []int // lucky stars / bonus ball / thunderball / life ball
}

// SpanishDraw item of a loteriasyapuestas.es RSS feed
type SpanishDraw struct {
	DrawDate       time.Time
	DrawLabel      string
	Title          string
	MainNumbers    []int
	Complementario *int
	Reintegro      *int
	Sueno          *int // EuroDreams "Sueño"
}

// EstonianDrawsResponse ajaxDrawStatistic response body
type EstonianDrawsResponse struct {
	DrawCount int            `json:"drawCount"`
	Draws     []EstonianDraw `json:"draws"`
}

// EstonianDraw draw as returned by eestiloto.ee
type EstonianDraw struct {
	GameTypeName   string           `json:"gameTypeName"`
	DrawLabel      string           `json:"drawLabel"`
	DrawDate       FlexTime         `json:"drawDate"`
	ExternalDrawID *string          `json:"externalDrawId"`
	Results        []EstonianResult `json:"results"`
}

type EstonianResult struct {
	WinClass         *int    `json:"winClass"`
	WinningNumber    *string `json:"winningNumber"`
	SecWinningNumber *string `json:"secWinningNumber"`
}

// IrishDraw parsed draw from lottery.ie
type IrishDraw struct {
	DrawDate    time.Time
	DrawLabel   string
	MainNumbers []int
	BonusNumber int
}

// FrenchLotoDraw latest Loto draw from tirage-gagnant.com
type FrenchLotoDraw struct {
	DrawDate            time.Time
	DrawLabel           string
	MainNumbers         []int
	ChanceNumber        int
	SecondTirageNumbers []int
	JokerNumber         string
}

// FrenchKenoDraw latest Keno draw from tirage-gagnant.com
type FrenchKenoDraw struct {
	DrawDate    time.Time
	DrawLabel   string
	Numbers     []int
	JokerNumber string
}

// GermanDraw latest draw from lotto-hessen.de
type GermanDraw struct {
	DrawDate  time.Time
	DrawLabel string
	Numbers   []int  // 6aus49 / Keno
	Digits    string // Spiel 77 / Super 6
	Superzahl *int
}

// NYGovDraw row of a data.ny.gov lottery dataset
type NYGovDraw struct {
	DrawDate       string `json:"draw_date"`
	WinningNumbers string `json:"winning_numbers"`
	MegaBall       string `json:"mega_ball,omitempty"`
	CashBall       string `json:"cash_ball,omitempty"`
	Multiplier     string `json:"multiplier,omitempty"`
}
