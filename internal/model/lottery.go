package model

import (
	"fmt"
	"strings"
)

// LottoType canonical lottery identifier (one per jurisdiction + game)
type LottoType string

const (
	// Estonian
	EstBingo  LottoType = "EST_BINGO"
	EstKeno   LottoType = "EST_KENO"
	EstJokker LottoType = "EST_JOKKER"

	// Shared
	Eurojackpot  LottoType = "EUROJACKPOT"
	Vikinglotto  LottoType = "VIKINGLOTTO"
	Euromillions LottoType = "EUROMILLIONS"
	Eurodreams   LottoType = "EURODREAMS"

	// US
	USPowerball    LottoType = "US_POWERBALL"
	USMegaMillions LottoType = "US_MEGA_MILLIONS"
	USCash4Life    LottoType = "US_CASH4LIFE"
	USLottoAmerica LottoType = "US_LOTTO_AMERICA"
	USLuckyForLife LottoType = "US_LUCKY_FOR_LIFE"
	USCASuperLotto LottoType = "US_CA_SUPERLOTTO"
	USNYLotto      LottoType = "US_NY_LOTTO"
	USTXLotto      LottoType = "US_TX_LOTTO"

	// UK
	UKLotto        LottoType = "UK_LOTTO"
	UKThunderball  LottoType = "UK_THUNDERBALL"
	UKSetForLife   LottoType = "UK_SET_FOR_LIFE"
	UKHotPicks     LottoType = "UK_HOT_PICKS"
	UKEuromillions LottoType = "UK_EUROMILLIONS"
	UK49sLunchtime LottoType = "UK_49S_LUNCHTIME"
	UK49sTeatime   LottoType = "UK_49S_TEATIME"

	// Ireland
	IELotto            LottoType = "IE_LOTTO"
	IELottoPlus1       LottoType = "IE_LOTTO_PLUS_1"
	IELottoPlus2       LottoType = "IE_LOTTO_PLUS_2"
	IEDailyMillion     LottoType = "IE_DAILY_MILLION"
	IEDailyMillionPlus LottoType = "IE_DAILY_MILLION_PLUS"

	// Spain
	ESLaPrimitiva LottoType = "ES_LA_PRIMITIVA"
	ESBonoloto    LottoType = "ES_BONOLOTO"
	ESElGordo     LottoType = "ES_EL_GORDO"

	// Australia
	AUPowerball       LottoType = "AU_POWERBALL"
	AUSaturdayLotto   LottoType = "AU_SATURDAY_LOTTO"
	AUOzLotto         LottoType = "AU_OZ_LOTTO"
	AUSetForLife      LottoType = "AU_SET_FOR_LIFE"
	AUWeekdayWindfall LottoType = "AU_WEEKDAY_WINDFALL"
	AUCash3           LottoType = "AU_CASH_3"
	AUSuper66         LottoType = "AU_SUPER_66"
	AULottoStrike     LottoType = "AU_LOTTO_STRIKE"

	// Canada
	CALottoMax   LottoType = "CA_LOTTO_MAX"
	CALotto649   LottoType = "CA_LOTTO_649"
	CADailyGrand LottoType = "CA_DAILY_GRAND"
	CALottario   LottoType = "CA_LOTTARIO"
	CABC49       LottoType = "CA_BC_49"
	CAQuebec49   LottoType = "CA_QUEBEC_49"
	CAAtlantic49 LottoType = "CA_ATLANTIC_49"

	// South Africa
	ZADailyLotto LottoType = "ZA_DAILY_LOTTO"
	ZALotto      LottoType = "ZA_LOTTO"
	ZAPowerball  LottoType = "ZA_POWERBALL"

	// France
	FRLoto  LottoType = "FR_LOTO"
	FRJoker LottoType = "FR_JOKER"
	FRKeno  LottoType = "FR_KENO"

	// Germany
	DELotto6aus49 LottoType = "DE_LOTTO_6AUS49"
	DEKeno        LottoType = "DE_KENO"
	DESpiel77     LottoType = "DE_SPIEL77"
	DESuper6      LottoType = "DE_SUPER6"

	// Legacy names still published by the NY open data portal
	Powerball    LottoType = "POWERBALL"
	MegaMillions LottoType = "MEGA_MILLIONS"
	Cash4Life    LottoType = "CASH4LIFE"

	// Legacy Estonian aliases, kept so stored rows still parse
	Bingo  LottoType = "BINGO"
	Jokker LottoType = "JOKKER"
	Keno   LottoType = "KENO"
	Euro   LottoType = "EURO"
)

// allLottoTypes every known type in declaration order
var allLottoTypes = []LottoType{
	EstBingo, EstKeno, EstJokker,
	Eurojackpot, Vikinglotto, Euromillions, Eurodreams,
	USPowerball, USMegaMillions, USCash4Life, USLottoAmerica, USLuckyForLife, USCASuperLotto, USNYLotto, USTXLotto,
	UKLotto, UKThunderball, UKSetForLife, UKHotPicks, UKEuromillions, UK49sLunchtime, UK49sTeatime,
	IELotto, IELottoPlus1, IELottoPlus2, IEDailyMillion, IEDailyMillionPlus,
	ESLaPrimitiva, ESBonoloto, ESElGordo,
	AUPowerball, AUSaturdayLotto, AUOzLotto, AUSetForLife, AUWeekdayWindfall, AUCash3, AUSuper66, AULottoStrike,
	CALottoMax, CALotto649, CADailyGrand, CALottario, CABC49, CAQuebec49, CAAtlantic49,
	ZADailyLotto, ZALotto, ZAPowerball,
	FRLoto, FRJoker, FRKeno,
	DELotto6aus49, DEKeno, DESpiel77, DESuper6,
	Powerball, MegaMillions, Cash4Life,
	Bingo, Jokker, Keno, Euro,
}

// AllLottoTypes returns a copy of every known lottery type
func AllLottoTypes() []LottoType {
	out := make([]LottoType, len(allLottoTypes))
	copy(out, allLottoTypes)
	return out
}

func (t LottoType) String() string { return string(t) }

// ParseLottoType resolves user input (case-insensitive, '-' tolerated) to a known type
func ParseLottoType(s string) (LottoType, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, t := range allLottoTypes {
		if string(t) == norm {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLottoType, s)
}

// Region ingestion region; one orchestrator strategy per region
type Region string

const (
	RegionEstonian     Region = "estonian"
	RegionUS           Region = "us"
	RegionUK           Region = "uk"
	RegionCanadian     Region = "canadian"
	RegionAustralian   Region = "australian"
	RegionSouthAfrican Region = "southafrican"
	RegionSpanish      Region = "spanish"
	RegionIrish        Region = "irish"
	RegionFrench       Region = "french"
	RegionGerman       Region = "german"
)
