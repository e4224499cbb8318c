package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeason(t *testing.T) {
	tests := []struct {
		in   string
		want Season
	}{
		{"kharif", SeasonKharif},
		{"Kharif", SeasonKharif},
		{" RABI ", SeasonRabi},
	}
	for _, tt := range tests {
		got, err := ParseSeason(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseSeason_Unknown(t *testing.T) {
	_, err := ParseSeason("zaid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown season")
}

func TestDistrictProfile_GrowsTopCrop(t *testing.T) {
	d := DistrictProfile{DistrictID: "Gaya", TopCrops: []string{"rice", "wheat"}}
	assert.True(t, d.GrowsTopCrop("wheat"))
	assert.True(t, d.GrowsTopCrop("Wheat"))
	assert.False(t, d.GrowsTopCrop("jute"))
}
