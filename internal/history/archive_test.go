package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/yield-advisor/internal/model"
)

func rec(year int, yield float64) model.HistoricalYieldRecord {
	return model.HistoricalYieldRecord{
		Year:            year,
		CropID:          "wheat",
		DistrictID:      "Gaya",
		Season:          model.SeasonRabi,
		YieldPerHectare: yield,
		AreaHectares:    5000,
	}
}

func TestCompare_NoMatch(t *testing.T) {
	a := NewArchive([]model.HistoricalYieldRecord{rec(2024, 3000)}, fixedNow)

	got := a.Compare("rice", "Gaya", model.SeasonRabi)
	assert.Equal(t, model.HistoricalComparison{AvgYield5yr: 0, Trend: model.TrendStable, Percentile: 50}, got)

	got = a.Compare("wheat", "gaya", model.SeasonRabi)
	assert.Equal(t, 50, got.Percentile, "district match is exact")
}

func TestCompare_Increasing(t *testing.T) {
	records := []model.HistoricalYieldRecord{
		rec(2016, 1000), rec(2017, 1000), rec(2018, 1000), rec(2019, 1000), rec(2020, 1000),
		rec(2021, 2000), rec(2022, 2000), rec(2023, 3000), rec(2024, 3000), rec(2025, 3000),
	}
	got := NewArchive(records, fixedNow).Compare("wheat", "Gaya", model.SeasonRabi)

	// Recent window is 2021-2025: mean 2600.
	assert.InDelta(t, 2600, got.AvgYield5yr, 0.001)
	// Newer half (2025, 2024) = 3000; older half (2023, 2022, 2021) = 2333.
	assert.Equal(t, model.TrendIncreasing, got.Trend)
	// 2600 is >= 7 of 10 yields.
	assert.Equal(t, 70, got.Percentile)
}

func TestCompare_Decreasing(t *testing.T) {
	records := []model.HistoricalYieldRecord{
		rec(2021, 3000), rec(2022, 3000), rec(2023, 3000), rec(2024, 2000), rec(2025, 2000),
	}
	got := NewArchive(records, fixedNow).Compare("wheat", "Gaya", model.SeasonRabi)
	assert.Equal(t, model.TrendDecreasing, got.Trend)
	assert.InDelta(t, 2600, got.AvgYield5yr, 0.001)
	assert.Equal(t, 40, got.Percentile)
}

func TestCompare_StableWithinThreshold(t *testing.T) {
	records := []model.HistoricalYieldRecord{
		rec(2021, 3000), rec(2022, 3000), rec(2023, 3000), rec(2024, 3100), rec(2025, 3100),
	}
	got := NewArchive(records, fixedNow).Compare("wheat", "Gaya", model.SeasonRabi)
	assert.Equal(t, model.TrendStable, got.Trend)
}

func TestCompare_TooFewPointsIsStable(t *testing.T) {
	records := []model.HistoricalYieldRecord{rec(2024, 1000), rec(2025, 5000)}
	got := NewArchive(records, fixedNow).Compare("wheat", "Gaya", model.SeasonRabi)
	assert.Equal(t, model.TrendStable, got.Trend)
	assert.InDelta(t, 3000, got.AvgYield5yr, 0.001)
	assert.Equal(t, 50, got.Percentile)
}

func TestCompare_OnlyOldRecords(t *testing.T) {
	records := []model.HistoricalYieldRecord{rec(2010, 1000), rec(2011, 1200)}
	got := NewArchive(records, fixedNow).Compare("wheat", "Gaya", model.SeasonRabi)
	assert.Equal(t, neutralComparison, got)
}

func TestCompare_GeneratedHistory(t *testing.T) {
	ref := newTestReference(t)
	a := NewArchive(NewGenerator(ref, NewSource(1), fixedNow).Generate(), fixedNow)

	got := a.Compare("wheat", "Gaya", model.SeasonRabi)
	assert.Greater(t, got.AvgYield5yr, 0.0)
	assert.GreaterOrEqual(t, got.Percentile, 0)
	assert.LessOrEqual(t, got.Percentile, 100)
	assert.Contains(t, []model.Trend{model.TrendIncreasing, model.TrendDecreasing, model.TrendStable}, got.Trend)
	assert.Len(t, a.Match("wheat", "Gaya", model.SeasonRabi), 10)
}

func TestArchive_RecordsIsCopy(t *testing.T) {
	a := NewArchive([]model.HistoricalYieldRecord{rec(2024, 3000)}, fixedNow)
	r := a.Records()
	r[0].YieldPerHectare = 1
	assert.InDelta(t, 3000, a.Records()[0].YieldPerHectare, 0.001)
	assert.Equal(t, 1, a.Len())
}
