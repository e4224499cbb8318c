package weather

import (
	"math"

	"github.com/sells-group/yield-advisor/internal/model"
)

// DefaultBaseTempC is the growing degree day base temperature.
const DefaultBaseTempC = 10.0

// CalculateGrowingDegreeDays sums max(0, (tempMax+tempMin)/2 - baseTemp) over
// every observation. TempAvgC is not used. Unknown crops fail with
// *reference.UnsupportedCropError.
func (a *Analyzer) CalculateGrowingDegreeDays(cropID string, obs []model.WeatherObservation, baseTemp float64) (float64, error) {
	if _, err := a.ref.WeatherRequirement(cropID); err != nil {
		return 0, err
	}
	var gdd float64
	for _, o := range obs {
		gdd += math.Max(0, (o.TempMaxC+o.TempMinC)/2-baseTemp)
	}
	return gdd, nil
}

// GetEvapotranspiration estimates daily reference evapotranspiration (mm/day)
// per observation with a humidity-adjusted Hargreaves form. Negative results
// are floored at 0.
func GetEvapotranspiration(obs []model.WeatherObservation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = evapotranspiration(o)
	}
	return out
}

func evapotranspiration(o model.WeatherObservation) float64 {
	et := 0.0023 * (o.TempAvgC + 17.8) *
		math.Sqrt(math.Abs(o.TempMaxC-o.TempMinC)) *
		(o.SolarRadiation / 2.45) *
		(1 - o.HumidityPercent/100)
	return math.Max(0, et)
}
