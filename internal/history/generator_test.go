package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/yield-advisor/internal/model"
	"github.com/sells-group/yield-advisor/internal/reference"
)

var fixedNow = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

func newTestReference(t *testing.T) *reference.Store {
	t.Helper()
	ref, err := reference.New(reference.Options{})
	require.NoError(t, err)
	return ref
}

func TestGenerate_CoversEveryCombination(t *testing.T) {
	ref := newTestReference(t)
	records := NewGenerator(ref, NewSource(42), fixedNow).Generate()

	// 10 years x 5 crops x 5 districts x 2 seasons.
	require.Len(t, records, 500)
	assert.Equal(t, 2016, records[0].Year)
	assert.Equal(t, 2025, records[len(records)-1].Year)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Year, 2016)
		assert.Less(t, r.Year, 2026)
		assert.GreaterOrEqual(t, r.AreaHectares, 1000.0)
		assert.LessOrEqual(t, r.AreaHectares, 10000.0)
	}
}

func TestGenerate_YieldBounds(t *testing.T) {
	ref := newTestReference(t)
	records := NewGenerator(ref, NewSource(7), fixedNow).Generate()

	for _, r := range records {
		crop, err := ref.CropProfile(r.CropID)
		require.NoError(t, err)
		district, ok := ref.DistrictProfile(r.DistrictID)
		require.True(t, ok)

		base := (crop.AvgYield + district.AvgYield) / 2
		yearTrend := 1 + float64(r.Year-2016)*0.02
		mult := 0.9
		if r.Season == model.SeasonKharif {
			mult = 1.1
		}
		lo := base * mult * yearTrend * 0.8
		hi := base * mult * yearTrend * 1.2
		assert.GreaterOrEqual(t, r.YieldPerHectare, lo-1, "%+v", r)
		assert.LessOrEqual(t, r.YieldPerHectare, hi+1, "%+v", r)
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	ref := newTestReference(t)
	a := NewGenerator(ref, NewSource(99), fixedNow).Generate()
	b := NewGenerator(ref, NewSource(99), fixedNow).Generate()
	assert.Equal(t, a, b)

	c := NewGenerator(ref, NewSource(100), fixedNow).Generate()
	assert.NotEqual(t, a, c)
}

func TestNewSource_Unseeded(t *testing.T) {
	assert.NotNil(t, NewSource(0))
}
