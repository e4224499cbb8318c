package weather

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/yield-advisor/internal/model"
	"github.com/sells-group/yield-advisor/internal/reference"
)

func TestCalculateGrowingDegreeDays(t *testing.T) {
	a := NewAnalyzer(newRef(t))
	obs := []model.WeatherObservation{
		{TempMaxC: 30, TempMinC: 20},
		{TempMaxC: 14, TempMinC: 6},
		{TempMaxC: 8, TempMinC: 0},
		{TempMaxC: 25, TempMinC: 10},
	}

	gdd, err := a.CalculateGrowingDegreeDays("rice", obs, DefaultBaseTempC)
	require.NoError(t, err)
	assert.InDelta(t, 22.5, gdd, 1e-9)

	gdd, err = a.CalculateGrowingDegreeDays("rice", obs, 5)
	require.NoError(t, err)
	assert.InDelta(t, 37.5, gdd, 1e-9)
}

func TestCalculateGrowingDegreeDays_UsesMaxMinMidpoint(t *testing.T) {
	a := NewAnalyzer(newRef(t))
	obs := []model.WeatherObservation{
		{TempMaxC: 30, TempMinC: 20, TempAvgC: 12},
		{TempMaxC: 12, TempMinC: 4, TempAvgC: 25},
	}

	gdd, err := a.CalculateGrowingDegreeDays("rice", obs, DefaultBaseTempC)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, gdd, 1e-9)
}

func TestCalculateGrowingDegreeDays_UnsupportedCrop(t *testing.T) {
	a := NewAnalyzer(newRef(t))

	_, err := a.CalculateGrowingDegreeDays("unknown_crop_xyz", nil, DefaultBaseTempC)
	assert.True(t, errors.Is(err, reference.ErrUnsupportedCrop))
}

func TestGetEvapotranspiration(t *testing.T) {
	obs := []model.WeatherObservation{
		{TempMaxC: 32, TempMinC: 18, TempAvgC: 25, SolarRadiation: 20, HumidityPercent: 60},
		{TempMaxC: 35, TempMinC: 25, TempAvgC: 30, SolarRadiation: 18, HumidityPercent: 100},
		{TempMaxC: 35, TempMinC: 25, TempAvgC: 30, SolarRadiation: 18, HumidityPercent: 120},
	}

	et := GetEvapotranspiration(obs)
	require.Len(t, et, 3)
	assert.InDelta(t, 1.2027, et[0], 1e-4)
	assert.InDelta(t, 0, et[1], 1e-12)
	assert.Equal(t, 0.0, et[2], "negative estimates are floored")
	assert.Empty(t, GetEvapotranspiration(nil))
}
