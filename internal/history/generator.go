// Package history synthesizes a decade of plausible yield records and compares
// predictions against them. The records are simulated, not observed: without a
// fixed seed every engine instance sees different history.
package history

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sells-group/yield-advisor/internal/model"
	"github.com/sells-group/yield-advisor/internal/reference"
)

const (
	// WindowYears is how many years of history are generated before the current year.
	WindowYears = 10

	yearlyImprovement = 0.02
	kharifMultiplier  = 1.1
	rabiMultiplier    = 0.9
	minAreaHectares   = 1000
	areaSpreadHectare = 9000
)

// NewSource returns a seeded PCG source, or a time-seeded one when seed is 0.
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		return rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Generator produces HistoricalYieldRecords from the reference tables.
type Generator struct {
	ref *reference.Store
	src rand.Source
	now time.Time
}

// NewGenerator creates a generator. now fixes the current year; src drives
// every random draw.
func NewGenerator(ref *reference.Store, src rand.Source, now time.Time) *Generator {
	return &Generator{ref: ref, src: src, now: now}
}

// Generate returns one record per (year, crop, district, season) over the
// WindowYears preceding the current year, ordered by year, then crop, then
// district, then season.
func (g *Generator) Generate() []model.HistoricalYieldRecord {
	current := g.now.Year()
	start := current - WindowYears

	randomFactor := distuv.Uniform{Min: 0.8, Max: 1.2, Src: g.src}
	areaSpread := distuv.Uniform{Min: 0, Max: areaSpreadHectare, Src: g.src}

	crops := g.ref.CropIDs()
	districts := g.ref.DistrictIDs()
	records := make([]model.HistoricalYieldRecord, 0, WindowYears*len(crops)*len(districts)*len(model.Seasons))

	for year := start; year < current; year++ {
		yearTrend := 1 + float64(year-start)*yearlyImprovement
		for _, cropID := range crops {
			crop, err := g.ref.CropProfile(cropID)
			if err != nil {
				continue
			}
			for _, districtID := range districts {
				district, ok := g.ref.DistrictProfile(districtID)
				if !ok {
					continue
				}
				baseYield := (crop.AvgYield + district.AvgYield) / 2
				for _, season := range model.Seasons {
					yield := baseYield * seasonMultiplier(season) * yearTrend * randomFactor.Rand()
					records = append(records, model.HistoricalYieldRecord{
						Year:            year,
						CropID:          crop.CropID,
						DistrictID:      district.DistrictID,
						Season:          season,
						YieldPerHectare: math.Round(yield),
						AreaHectares:    math.Round(minAreaHectares + areaSpread.Rand()),
					})
				}
			}
		}
	}

	zap.L().Debug("history: records generated",
		zap.Int("records", len(records)),
		zap.Int("from_year", start),
		zap.Int("to_year", current-1),
	)
	return records
}

func seasonMultiplier(s model.Season) float64 {
	if s == model.SeasonKharif {
		return kharifMultiplier
	}
	return rabiMultiplier
}
