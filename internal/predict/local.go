package predict

import (
	"math"

	"github.com/sells-group/yield-advisor/internal/model"
)

const (
	// typicalYield normalizes district averages (kg/ha).
	typicalYield = 3000.0

	yearlyTrend = 0.02

	kharifBase = 1.1
	rabiBase   = 0.9

	topCropSuitability   = 1.2
	otherCropSuitability = 0.9

	minRegional = 0.7
	maxRegional = 1.3

	kharifSeasonal = 1.1
	rabiSeasonal   = 0.95

	intervalWidth = 0.15
)

type localEstimate struct {
	predictedYield float64
	interval       model.ConfidenceInterval
	factors        model.Factors
}

// computeLocal derives the prediction from the reference tables alone.
func computeLocal(req model.PredictionRequest, crop model.CropProfile, district model.DistrictProfile, hasDistrict bool, currentYear int) localEstimate {
	base := crop.AvgYield
	if hasDistrict {
		base *= district.AvgYield / typicalYield
	}
	if req.Season == model.SeasonKharif {
		base *= kharifBase
	} else {
		base *= rabiBase
	}
	base *= 1 + float64(req.Year-currentYear)*yearlyTrend

	suitability := cropSuitability(crop, district, hasDistrict)
	regional := regionalPerformance(district, hasDistrict)
	seasonal := seasonalFactor(req.Season)
	area := areaEfficiency(req.AreaHectares)

	predicted := math.Round(base * suitability * regional * seasonal * area)
	predicted = clamp(predicted, crop.MinYield, crop.MaxYield)

	variability := (crop.MaxYield - crop.MinYield) / crop.AvgYield
	margin := predicted * variability * intervalWidth

	return localEstimate{
		predictedYield: predicted,
		interval: model.ConfidenceInterval{
			Lower: math.Round(math.Max(crop.MinYield, predicted-margin)),
			Upper: math.Round(math.Min(crop.MaxYield, predicted+margin)),
		},
		factors: model.Factors{
			CropSuitability:     round2(suitability),
			RegionalPerformance: round2(regional),
			SeasonalFactors:     round2(seasonal),
			AreaEfficiency:      round2(area),
		},
	}
}

func cropSuitability(crop model.CropProfile, district model.DistrictProfile, hasDistrict bool) float64 {
	switch {
	case !hasDistrict:
		return 1.0
	case district.GrowsTopCrop(crop.CropID):
		return topCropSuitability
	default:
		return otherCropSuitability
	}
}

func regionalPerformance(district model.DistrictProfile, hasDistrict bool) float64 {
	if !hasDistrict {
		return 1.0
	}
	return clamp(district.AvgYield/typicalYield, minRegional, maxRegional)
}

func seasonalFactor(s model.Season) float64 {
	if s == model.SeasonKharif {
		return kharifSeasonal
	}
	return rabiSeasonal
}

// areaEfficiency checks the larger threshold first.
func areaEfficiency(hectares float64) float64 {
	switch {
	case hectares > 50:
		return 1.1
	case hectares > 10:
		return 1.05
	case hectares < 2:
		return 0.95
	default:
		return 1.0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
