package weather

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/yield-advisor/internal/model"
	"github.com/sells-group/yield-advisor/internal/reference"
)

// AnalysisWindow is how many leading observations are scored. Callers order
// the series; the analyzer does not sort.
const AnalysisWindow = 30

const (
	heatStressDayLimit = 5
	coldStressDayLimit = 3
	riskLimit          = 50

	droughtRiskHigh = 80
	droughtRiskLow  = 20
	floodRiskHigh   = 70
	floodRiskLow    = 10

	monthsPerYear = 12
)

// Analyzer scores a weather series against a crop's requirements.
type Analyzer struct {
	ref *reference.Store
}

// NewAnalyzer creates an Analyzer over the reference store's weather
// requirements.
func NewAnalyzer(ref *reference.Store) *Analyzer {
	return &Analyzer{ref: ref}
}

// AnalyzeWeatherImpact counts stress days, scores drought and flood risk and
// emits recommendations for the first AnalysisWindow observations. It returns
// *reference.UnsupportedCropError for a crop with no weather requirement.
func (a *Analyzer) AnalyzeWeatherImpact(cropID string, obs []model.WeatherObservation) (*model.WeatherImpactResult, error) {
	req, err := a.ref.WeatherRequirement(cropID)
	if err != nil {
		return nil, err
	}

	window := obs[:min(len(obs), AnalysisWindow)]
	th := req.StressThresholds

	var (
		stress        model.StressAnalysis
		growth        model.GrowthConditions
		totalRainfall float64
		floodDay      bool
	)
	for _, o := range window {
		hot := o.TempMaxC > th.HeatStress
		cold := o.TempMinC < th.ColdStress
		optimal := o.TempAvgC >= req.OptimalTempRange[0] && o.TempAvgC <= req.OptimalTempRange[1]

		if hot {
			stress.HeatStressDays++
		}
		if cold {
			stress.ColdStressDays++
		}
		if optimal {
			growth.OptimalTemperatureDays++
			if !hot && !cold {
				growth.FavorableDays++
			}
		}
		if o.RainfallMm > th.FloodRisk {
			floodDay = true
		}
		totalRainfall += o.RainfallMm
	}

	stress.DroughtRisk = droughtRiskLow
	if totalRainfall < th.DroughtStress {
		stress.DroughtRisk = droughtRiskHigh
	}
	stress.FloodRisk = floodRiskLow
	if floodDay {
		stress.FloodRisk = floodRiskHigh
	}
	monthlyNeed := req.WaterRequirement / monthsPerYear
	growth.AdequateRainfall = totalRainfall >= monthlyNeed

	result := &model.WeatherImpactResult{
		StressAnalysis:   stress,
		GrowthConditions: growth,
		Recommendations:  recommend(req, stress, growth, totalRainfall, monthlyNeed),
	}

	zap.L().Debug("weather: impact analyzed",
		zap.String("crop", req.CropID),
		zap.Int("window", len(window)),
		zap.Int("heat_stress_days", stress.HeatStressDays),
		zap.Int("cold_stress_days", stress.ColdStressDays),
		zap.Float64("rainfall_mm", totalRainfall),
	)
	return result, nil
}

func recommend(req model.CropWeatherRequirement, s model.StressAnalysis, g model.GrowthConditions, rainfall, monthlyNeed float64) []string {
	th := req.StressThresholds
	var recs []string
	if s.HeatStressDays > heatStressDayLimit {
		recs = append(recs, fmt.Sprintf(
			"Heat stress on %d days above %.0f°C: irrigate in early morning or evening and mulch to keep the root zone cool",
			s.HeatStressDays, th.HeatStress))
	}
	if s.ColdStressDays > coldStressDayLimit {
		recs = append(recs, fmt.Sprintf(
			"Cold stress on %d nights below %.0f°C: use light evening irrigation or straw cover to protect young plants",
			s.ColdStressDays, th.ColdStress))
	}
	if s.DroughtRisk > riskLimit {
		recs = append(recs, fmt.Sprintf(
			"High drought risk: plan supplemental irrigation, especially during %s",
			criticalPeriod(req)))
	}
	if s.FloodRisk > riskLimit {
		recs = append(recs,
			"Flood risk from heavy rainfall: clear drainage channels and hold fertilizer until the field drains")
	}
	if !g.AdequateRainfall {
		recs = append(recs, fmt.Sprintf(
			"Rainfall of %.0f mm is below the %.0f mm %s needs per month: supplement with irrigation",
			rainfall, monthlyNeed, req.CropID))
	}
	if len(recs) == 0 {
		recs = append(recs, fmt.Sprintf(
			"Weather conditions are favorable for %s: continue regular crop management", req.CropID))
	}
	return recs
}

func criticalPeriod(req model.CropWeatherRequirement) string {
	if len(req.CriticalPeriods) == 0 {
		return "critical growth stages"
	}
	return req.CriticalPeriods[0]
}
