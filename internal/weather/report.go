package weather

import (
	"context"
	"slices"

	"github.com/sells-group/yield-advisor/internal/model"
	"github.com/sells-group/yield-advisor/internal/reference"
)

// ImpactReport bundles an impact analysis with the agronomic indices computed
// from the same series.
type ImpactReport struct {
	District           string                     `json:"district"`
	Crop               string                     `json:"crop"`
	Source             model.WeatherSource        `json:"source"`
	Impact             *model.WeatherImpactResult `json:"impact"`
	GrowingDegreeDays  float64                    `json:"growing_degree_days"`
	Evapotranspiration []float64                  `json:"evapotranspiration"`
}

// Assess loads the district series, orders it newest first, and analyzes the
// most recent AnalysisWindow observations for cropID. GDD and
// evapotranspiration cover the same window as the impact analysis.
func Assess(ctx context.Context, p *Provider, a *Analyzer, district, cropID string) (*ImpactReport, error) {
	obs, source := p.LoadWeatherData(ctx, district)
	slices.SortStableFunc(obs, func(x, y model.WeatherObservation) int {
		return y.Date.Compare(x.Date)
	})

	impact, err := a.AnalyzeWeatherImpact(cropID, obs)
	if err != nil {
		return nil, err
	}
	window := obs[:min(len(obs), AnalysisWindow)]
	gdd, err := a.CalculateGrowingDegreeDays(cropID, window, DefaultBaseTempC)
	if err != nil {
		return nil, err
	}

	return &ImpactReport{
		District:           district,
		Crop:               reference.NormalizeCropID(cropID),
		Source:             source,
		Impact:             impact,
		GrowingDegreeDays:  gdd,
		Evapotranspiration: GetEvapotranspiration(window),
	}, nil
}
