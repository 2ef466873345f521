package service

import (
	"context"
	"testing"
	"time"

	"LottoSync/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeNumbers struct {
	types map[model.LottoType]bool
	draws []model.LottoNumbersDraw
	calls int
}

func (f *fakeNumbers) Supports(t model.LottoType) bool { return f.types[t] }

func (f *fakeNumbers) Fetch(context.Context, model.LottoType) []model.LottoNumbersDraw {
	f.calls++
	return f.draws
}

type fakeNYGov struct {
	rows  []model.NYGovDraw
	calls int
}

func (f *fakeNYGov) Supports(model.LottoType) bool { return true }

func (f *fakeNYGov) Fetch(context.Context, model.LottoType, time.Time, time.Time) []model.NYGovDraw {
	f.calls++
	return f.rows
}

type fakeSouthAfrica struct{ draws []model.SouthAfricanDraw }

func (f *fakeSouthAfrica) Supports(t model.LottoType) bool { return t == model.ZALotto }

func (f *fakeSouthAfrica) Fetch(context.Context, model.LottoType) []model.SouthAfricanDraw {
	return f.draws
}

type fakeUKCSV struct{ draws []model.UKCSVDraw }

func (f *fakeUKCSV) Supports(t model.LottoType) bool { return t == model.UKLotto }

func (f *fakeUKCSV) Fetch(context.Context, model.LottoType) []model.UKCSVDraw { return f.draws }

type fakeEstonia struct{ draws []model.EstonianDraw }

func (f *fakeEstonia) Supports(t model.LottoType) bool { return t == model.Eurojackpot }

func (f *fakeEstonia) Fetch(context.Context, model.LottoType, time.Time, time.Time) []model.EstonianDraw {
	return f.draws
}

type fakeFrench struct {
	loto *model.FrenchLotoDraw
	keno *model.FrenchKenoDraw
}

func (f *fakeFrench) FetchLoto(context.Context) *model.FrenchLotoDraw { return f.loto }
func (f *fakeFrench) FetchKeno(context.Context) *model.FrenchKenoDraw { return f.keno }

func TestUSScenarioPersistsOneDrawOneResult(t *testing.T) {
	store := newFakeStore()
	logger, _ := newTestLogger()
	numbers := &fakeNumbers{
		types: map[model.LottoType]bool{model.USPowerball: true},
		draws: []model.LottoNumbersDraw{{
			DrawDate:             day("2025-01-02"),
			DrawLabel:            "2025-01-02",
			MainNumbers:          []int{5, 12, 19, 34, 41},
			SupplementaryNumbers: []int{8},
		}},
	}
	svc := NewIngestService(NewUSStrategy(numbers, &fakeNYGov{}, false, logger), store, logger, WithClock(clock))

	sum, err := svc.SaveLatestDraws(context.Background(), model.USPowerball, &model.DateRange{From: day("2025-01-01"), To: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.DrawsInserted)
	assert.Equal(t, 1, store.drawCount())
	rows := store.resultRows()
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].WinClass)
	assert.Equal(t, "5,12,19,34,41", rows[0].WinningNumber)
	require.NotNil(t, rows[0].SecWinningNumber)
	assert.Equal(t, "8", *rows[0].SecWinningNumber)
}

func TestDefaultWindowKeepsPreviousDayMidnightDraw(t *testing.T) {
	store := newFakeStore()
	logger, _ := newTestLogger()
	numbers := &fakeNumbers{
		types: map[model.LottoType]bool{model.USPowerball: true},
		draws: []model.LottoNumbersDraw{
			{DrawDate: day("2025-01-01"), DrawLabel: "2025-01-01", MainNumbers: []int{1, 2, 3, 4, 5}, SupplementaryNumbers: []int{6}},
			{DrawDate: day("2025-01-02"), DrawLabel: "2025-01-02", MainNumbers: []int{5, 12, 19, 34, 41}, SupplementaryNumbers: []int{8}},
		},
	}
	svc := NewIngestService(NewUSStrategy(numbers, &fakeNYGov{}, false, logger), store, logger, WithClock(clock))

	sum, err := svc.SaveLatestDraws(context.Background(), model.USPowerball, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.DrawsInserted, "only the 2025-01-02 draw falls in the default window")
	rows := store.resultRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "5,12,19,34,41", rows[0].WinningNumber)
}

func TestSouthAfricanScenarioThreeTiers(t *testing.T) {
	store := newFakeStore()
	logger, _ := newTestLogger()
	src := &fakeSouthAfrica{draws: []model.SouthAfricanDraw{{
		DrawDate:           day("2025-01-01"),
		DrawLabel:          "2025-01-01",
		MainNumbers:        []int{1, 2, 3, 4, 5, 6},
		Supplementary:      []int{7},
		Plus1:              []int{8, 9, 10, 11, 12, 13},
		Plus1Supplementary: []int{14},
		Plus2:              []int{15, 16, 17, 18, 19, 20},
		Plus2Supplementary: []int{21},
	}}}
	svc := NewIngestService(NewSouthAfricanStrategy(src, logger), store, logger, WithClock(clock))

	sum, err := svc.SaveLatestDraws(context.Background(), model.ZALotto, &model.DateRange{From: day("2025-01-01"), To: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.DrawsInserted)
	assert.Equal(t, 3, sum.ResultsInserted)

	classes := map[int]string{}
	for _, r := range store.resultRows() {
		require.NotNil(t, r.WinClass)
		classes[*r.WinClass] = r.WinningNumber
	}
	assert.Equal(t, map[int]string{1: "1,2,3,4,5,6", 2: "8,9,10,11,12,13", 3: "15,16,17,18,19,20"}, classes)
}

func TestDateRangeFilteringIsInclusive(t *testing.T) {
	logger, _ := newTestLogger()
	numbers := &fakeNumbers{
		types: map[model.LottoType]bool{model.AUOzLotto: true},
		draws: []model.LottoNumbersDraw{
			{DrawDate: day("2024-01-01"), DrawLabel: "2024-01-01", MainNumbers: []int{1}},
			{DrawDate: day("2024-01-15"), DrawLabel: "2024-01-15", MainNumbers: []int{2}},
			{DrawDate: day("2024-02-01"), DrawLabel: "2024-02-01", MainNumbers: []int{3}},
		},
	}
	strategy := NewAustralianStrategy(numbers, logger)

	draws, err := strategy.FetchAndTransform(context.Background(), model.AUOzLotto, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	var labels []string
	for _, d := range draws {
		labels = append(labels, d.DrawLabel)
	}
	assert.Equal(t, []string{"2024-01-01", "2024-01-15"}, labels)
}

func TestUSRoutesLegacyTypesToNYGov(t *testing.T) {
	logger, _ := newTestLogger()
	numbers := &fakeNumbers{types: map[model.LottoType]bool{model.USPowerball: true}}
	ny := &fakeNYGov{rows: []model.NYGovDraw{{DrawDate: "2025-01-04T00:00:00.000", WinningNumbers: "01 14 20 46 51 26"}}}

	draws, err := NewUSStrategy(numbers, ny, false, logger).FetchAndTransform(context.Background(), model.Powerball, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	want := []model.NormalizedDraw{{
		DrawDate:     day("2025-01-04"),
		DrawLabel:    "2025-01-04",
		GameTypeName: model.Powerball,
		Results:      []model.DrawResult{{WinningNumber: "1,14,20,46,51", SecWinningNumber: model.StringPtr("26")}},
	}}
	if diff := cmp.Diff(want, draws); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, numbers.calls)

	_, err = NewUSStrategy(numbers, ny, true, logger).FetchAndTransform(context.Background(), model.USPowerball, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	assert.Equal(t, 2, ny.calls)
	assert.Zero(t, numbers.calls)
}

func TestUnsupportedTypeYieldsNothing(t *testing.T) {
	logger, hook := newTestLogger()
	numbers := &fakeNumbers{types: map[model.LottoType]bool{}}

	draws, err := NewUSStrategy(numbers, &fakeNYGov{}, false, logger).FetchAndTransform(context.Background(), model.USTXLotto, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	assert.Empty(t, draws)
	assert.Contains(t, messages(hook), "[US_TX_LOTTO] Unsupported US lottery type")
}

func TestUKCSVUsesDrawNumberLabel(t *testing.T) {
	logger, _ := newTestLogger()
	csv := &fakeUKCSV{draws: []model.UKCSVDraw{{DrawDate: day("2025-01-04"), DrawNumber: 3040, MainNumbers: []int{1, 2, 3, 4, 5, 6}, Secondary: []int{7}}}}
	numbers := &fakeNumbers{types: map[model.LottoType]bool{model.UK49sTeatime: true}}

	draws, err := NewUKStrategy(csv, numbers, logger).FetchAndTransform(context.Background(), model.UKLotto, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, "3040", draws[0].DrawLabel)
	assert.Equal(t, model.StringPtr("7"), draws[0].Results[0].SecWinningNumber)
	assert.Zero(t, numbers.calls)

	_, err = NewUKStrategy(csv, numbers, logger).FetchAndTransform(context.Background(), model.UK49sTeatime, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	assert.Equal(t, 1, numbers.calls)
}

func TestEstonianMapsAPIGameNames(t *testing.T) {
	logger, _ := newTestLogger()
	src := &fakeEstonia{draws: []model.EstonianDraw{{
		GameTypeName:   "EURO",
		DrawLabel:      "812",
		DrawDate:       model.FlexTime{Time: day("2025-01-03")},
		ExternalDrawID: model.StringPtr("99"),
		Results:        []model.EstonianResult{{WinningNumber: model.StringPtr("1,2,3,4,5"), SecWinningNumber: model.StringPtr("6,7")}},
	}}}

	draws, err := NewEstonianStrategy(src, logger).FetchAndTransform(context.Background(), model.Eurojackpot, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, model.Eurojackpot, draws[0].GameTypeName)
	assert.Equal(t, model.StringPtr("99"), draws[0].ExternalDrawID)
	assert.Equal(t, "99-812-EUROJACKPOT", ExternalIDLookupKey(draws[0].Key()))
}

func TestFrenchLotoEmitsSecondDraw(t *testing.T) {
	logger, _ := newTestLogger()
	src := &fakeFrench{loto: &model.FrenchLotoDraw{
		DrawDate:            time.Date(2025, 1, 4, 19, 0, 0, 0, time.UTC),
		DrawLabel:           "2025-01-04",
		MainNumbers:         []int{1, 2, 3, 4, 5},
		ChanceNumber:        6,
		SecondTirageNumbers: []int{7, 8, 9, 10, 11},
	}}
	strategy := NewFrenchStrategy(src, logger)

	draws, err := strategy.FetchAndTransform(context.Background(), model.FRLoto, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	require.Len(t, draws, 2)
	assert.Equal(t, "2025-01-04", draws[0].DrawLabel)
	assert.Equal(t, "2025-01-04/2", draws[1].DrawLabel)
	assert.Nil(t, draws[1].Results[0].SecWinningNumber)
}

func TestFrenchOutsideRangeIsSkipped(t *testing.T) {
	logger, hook := newTestLogger()
	src := &fakeFrench{keno: &model.FrenchKenoDraw{DrawDate: day("2024-12-01"), DrawLabel: "2024-12-01", Numbers: []int{1, 2}}}

	draws, err := NewFrenchStrategy(src, logger).FetchAndTransform(context.Background(), model.FRKeno, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	assert.Empty(t, draws)
	assert.Contains(t, messages(hook), "[FR_KENO] Draw 2024-12-01 outside date range, skipping")
}

func TestFrenchJokerPrefersKeno(t *testing.T) {
	logger, hook := newTestLogger()
	src := &fakeFrench{
		keno: &model.FrenchKenoDraw{DrawDate: day("2025-01-04"), DrawLabel: "2025-01-04", JokerNumber: "0301645"},
		loto: &model.FrenchLotoDraw{DrawDate: day("2025-01-03"), DrawLabel: "2025-01-03", JokerNumber: "1111111"},
	}
	strategy := NewFrenchStrategy(src, logger)

	draws, err := strategy.FetchAndTransform(context.Background(), model.FRJoker, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, "2025-01-04", draws[0].DrawLabel)
	assert.Equal(t, "0,3,0,1,6,4,5", draws[0].Results[0].WinningNumber)

	src.keno.JokerNumber = ""
	draws, err = strategy.FetchAndTransform(context.Background(), model.FRJoker, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, "2025-01-03", draws[0].DrawLabel)

	src.loto = nil
	draws, err = strategy.FetchAndTransform(context.Background(), model.FRJoker, day("2025-01-01"), day("2025-01-05"))
	require.NoError(t, err)
	assert.Empty(t, draws)
	assert.Contains(t, messages(hook), "[FR_JOKER] No Joker number found")
}
