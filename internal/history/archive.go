package history

import (
	"math"
	"slices"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/sells-group/yield-advisor/internal/model"
)

const (
	recentYears    = 5
	trendThreshold = 0.05
	minTrendPoints = 3
)

// neutralComparison is reported when no history matches a request.
var neutralComparison = model.HistoricalComparison{
	AvgYield5yr: 0,
	Trend:       model.TrendStable,
	Percentile:  50,
}

// Archive is an immutable, in-memory collection of historical records.
type Archive struct {
	records []model.HistoricalYieldRecord
	now     time.Time
}

// NewArchive wraps records. now fixes the current year for the recent window.
func NewArchive(records []model.HistoricalYieldRecord, now time.Time) *Archive {
	return &Archive{records: slices.Clone(records), now: now}
}

// Len returns the number of records.
func (a *Archive) Len() int {
	return len(a.records)
}

// Records returns a copy of every record.
func (a *Archive) Records() []model.HistoricalYieldRecord {
	return slices.Clone(a.records)
}

// Match returns records with exactly this crop, district, and season.
func (a *Archive) Match(cropID, districtID string, season model.Season) []model.HistoricalYieldRecord {
	var out []model.HistoricalYieldRecord
	for _, r := range a.records {
		if r.CropID == cropID && r.DistrictID == districtID && r.Season == season {
			out = append(out, r)
		}
	}
	return out
}

// Compare summarizes the last five years of matching history: mean yield,
// trend direction, and where that mean sits among all matching yields.
// No matching records yields {0, stable, 50}.
func (a *Archive) Compare(cropID, districtID string, season model.Season) model.HistoricalComparison {
	matching := a.Match(cropID, districtID, season)
	if len(matching) == 0 {
		return neutralComparison
	}

	cutoff := a.now.Year() - recentYears
	var recent []model.HistoricalYieldRecord
	for _, r := range matching {
		if r.Year >= cutoff {
			recent = append(recent, r)
		}
	}
	if len(recent) == 0 {
		return neutralComparison
	}

	// Newest first so the first half of the slice is the newer half.
	slices.SortStableFunc(recent, func(x, y model.HistoricalYieldRecord) int {
		return y.Year - x.Year
	})

	mean, _ := stats.Mean(yields(recent))
	avg := math.Round(mean)

	return model.HistoricalComparison{
		AvgYield5yr: avg,
		Trend:       trend(recent),
		Percentile:  percentileRank(yields(matching), avg),
	}
}

// trend compares the newer half of a newest-first slice against the older half.
func trend(newestFirst []model.HistoricalYieldRecord) model.Trend {
	if len(newestFirst) < minTrendPoints {
		return model.TrendStable
	}
	half := len(newestFirst) / 2
	newer, _ := stats.Mean(yields(newestFirst[:half]))
	older, _ := stats.Mean(yields(newestFirst[half:]))
	if older == 0 {
		return model.TrendStable
	}

	change := (newer - older) / older
	switch {
	case change > trendThreshold:
		return model.TrendIncreasing
	case change < -trendThreshold:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

// percentileRank is the share of values at or below v, as a 0-100 integer.
func percentileRank(values []float64, v float64) int {
	if len(values) == 0 {
		return 50
	}
	var below int
	for _, x := range values {
		if x <= v {
			below++
		}
	}
	return int(math.Round(float64(below) / float64(len(values)) * 100))
}

func yields(records []model.HistoricalYieldRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.YieldPerHectare
	}
	return out
}
