package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/yield-advisor/internal/model"
	"github.com/sells-group/yield-advisor/internal/reference"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func newRef(t *testing.T) *reference.Store {
	t.Helper()
	ref, err := reference.New(reference.Options{})
	require.NoError(t, err)
	return ref
}

// uniform returns n identical observations.
func uniform(n int, tmax, tmin, rain float64) []model.WeatherObservation {
	obs := make([]model.WeatherObservation, n)
	for i := range obs {
		obs[i] = model.WeatherObservation{
			District:        "Patna",
			Date:            fixedNow.AddDate(0, 0, -i),
			TempMaxC:        tmax,
			TempMinC:        tmin,
			TempAvgC:        (tmax + tmin) / 2,
			RainfallMm:      rain,
			HumidityPercent: 60,
			SolarRadiation:  18,
		}
	}
	return obs
}
