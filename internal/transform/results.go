package transform

import (
	"fmt"
	"strconv"
	"strings"

	"LottoSync/internal/model"
)

// LottoNumbersResults US, UK and AU pages: main numbers + supplementary pool
func LottoNumbersResults(d model.LottoNumbersDraw) []model.DrawResult {
	return Single(JoinInts(d.MainNumbers), OptionalInts(d.SupplementaryNumbers))
}

// UKCSVResults National Lottery CSV row; Hot Picks has no secondary pool
func UKCSVResults(d model.UKCSVDraw) []model.DrawResult {
	return Single(JoinInts(d.MainNumbers), OptionalInts(d.Secondary))
}

// CanadianResults per game payout layout
func CanadianResults(d model.CanadianDraw, t model.LottoType) []model.DrawResult {
	main := JoinInts(d.MainNumbers)
	switch t {
	case model.CALottoMax, model.CALotto649:
		return Single(main, OptionalInt(d.Bonus))
	case model.CADailyGrand:
		return Single(main, OptionalInt(d.Grand))
	case model.CALottario:
		out := []model.DrawResult{tier(1, main, OptionalInt(d.Bonus))}
		if len(d.EarlyBird) > 0 {
			out = append(out, tier(2, JoinInts(d.EarlyBird), nil))
		}
		if d.Encore != "" {
			out = append(out, tier(3, JoinDigits(d.Encore), nil))
		}
		return out
	case model.CABC49, model.CAQuebec49:
		out := []model.DrawResult{tier(1, main, OptionalInt(d.Bonus))}
		if len(d.Extra) > 0 {
			out = append(out, tier(2, JoinInts(d.Extra), nil))
		}
		return out
	case model.CAAtlantic49:
		out := []model.DrawResult{tier(1, main, OptionalInt(d.Bonus))}
		if d.Tag != "" {
			out = append(out, tier(2, JoinDigits(d.Tag), nil))
		}
		return out
	}
	return nil
}

// SouthAfricanResults Daily Lotto is a single row; Lotto and Powerball carry Plus tiers
func SouthAfricanResults(d model.SouthAfricanDraw, t model.LottoType) []model.DrawResult {
	switch t {
	case model.ZADailyLotto:
		return Single(JoinInts(d.MainNumbers), nil)
	case model.ZALotto:
		out := []model.DrawResult{tier(1, JoinInts(d.MainNumbers), OptionalInts(d.Supplementary))}
		if len(d.Plus1) > 0 {
			out = append(out, tier(2, JoinInts(d.Plus1), OptionalInts(d.Plus1Supplementary)))
		}
		if len(d.Plus2) > 0 {
			out = append(out, tier(3, JoinInts(d.Plus2), OptionalInts(d.Plus2Supplementary)))
		}
		return out
	case model.ZAPowerball:
		out := []model.DrawResult{tier(1, JoinInts(d.MainNumbers), OptionalInts(d.Supplementary))}
		if len(d.Plus1) > 0 {
			out = append(out, tier(2, JoinInts(d.Plus1), OptionalInts(d.Plus1Supplementary)))
		}
		return out
	}
	return nil
}

// SpanishResults Primitiva/Bonoloto split the reintegro into its own tier
func SpanishResults(d model.SpanishDraw, t model.LottoType) []model.DrawResult {
	main := JoinInts(d.MainNumbers)
	switch t {
	case model.ESLaPrimitiva, model.ESBonoloto:
		out := []model.DrawResult{tier(1, main, OptionalInt(d.Complementario))}
		if d.Reintegro != nil {
			out = append(out, tier(2, strconv.Itoa(*d.Reintegro), nil))
		}
		return out
	case model.ESElGordo:
		return Single(main, OptionalInt(d.Reintegro))
	case model.Eurodreams:
		return Single(main, OptionalInt(d.Sueno))
	}
	return nil
}

func IrishResults(d model.IrishDraw) []model.DrawResult {
	return Single(JoinInts(d.MainNumbers), model.StringPtr(strconv.Itoa(d.BonusNumber)))
}

func FrenchLotoResults(d model.FrenchLotoDraw) []model.DrawResult {
	return Single(JoinInts(d.MainNumbers), model.StringPtr(strconv.Itoa(d.ChanceNumber)))
}

// FrenchLotoSecondResults second tirage, empty when it was not drawn
func FrenchLotoSecondResults(d model.FrenchLotoDraw) []model.DrawResult {
	if len(d.SecondTirageNumbers) == 0 {
		return nil
	}
	return Single(JoinInts(d.SecondTirageNumbers), nil)
}

// FrenchJokerResults 7-digit Joker+ as comma-joined digits
func FrenchJokerResults(joker string) []model.DrawResult {
	digits := JoinDigits(joker)
	if digits == "" {
		return nil
	}
	return Single(digits, nil)
}

func FrenchKenoResults(d model.FrenchKenoDraw) []model.DrawResult {
	return Single(JoinInts(d.Numbers), nil)
}

// GermanResults number games keep draw order, Spiel 77 / Super 6 are positional digits
func GermanResults(d model.GermanDraw, t model.LottoType) []model.DrawResult {
	switch t {
	case model.DELotto6aus49:
		return Single(JoinInts(d.Numbers), OptionalInt(d.Superzahl))
	case model.DEKeno:
		return Single(JoinInts(d.Numbers), nil)
	case model.DESpiel77, model.DESuper6:
		return Single(JoinDigits(d.Digits), nil)
	}
	return nil
}

// NYGovResults data.ny.gov rows; leading zeros of "01 14 20" are stripped
func NYGovResults(d model.NYGovDraw, t model.LottoType) ([]model.DrawResult, error) {
	nums, err := spaceSeparated(d.WinningNumbers)
	if err != nil {
		return nil, err
	}
	switch t {
	case model.Powerball, model.USPowerball:
		if len(nums) < 6 {
			return nil, fmt.Errorf("powerball row has %d numbers, want 6", len(nums))
		}
		return Single(JoinInts(nums[:5]), model.StringPtr(strconv.Itoa(nums[5]))), nil
	case model.MegaMillions, model.USMegaMillions:
		return Single(JoinInts(nums), trimmedBall(d.MegaBall)), nil
	case model.Cash4Life, model.USCash4Life:
		return Single(JoinInts(nums), trimmedBall(d.CashBall)), nil
	}
	return nil, fmt.Errorf("%w: %s", model.ErrUnknownLottoType, t)
}

// EstonianResults API results are already normalized
func EstonianResults(d model.EstonianDraw) []model.DrawResult {
	out := make([]model.DrawResult, 0, len(d.Results))
	for _, r := range d.Results {
		res := model.DrawResult{WinClass: r.WinClass, SecWinningNumber: r.SecWinningNumber}
		if r.WinningNumber != nil {
			res.WinningNumber = *r.WinningNumber
		}
		out = append(out, res)
	}
	return out
}

func spaceSeparated(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("parse number %q: %w", f, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func trimmedBall(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return model.StringPtr(strconv.Itoa(n))
	}
	return &s
}
