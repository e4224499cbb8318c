// Package model defines the data types exchanged between the prediction
// engine, the weather analyzer, and the UI.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Season is a cropping season.
type Season string

const (
	SeasonKharif Season = "kharif" // monsoon crop, sown Jun-Jul
	SeasonRabi   Season = "rabi"   // winter crop, sown Oct-Dec
)

// Seasons lists every supported season in generation order.
var Seasons = []Season{SeasonKharif, SeasonRabi}

// ParseSeason converts a user-supplied season name. Matching is case-insensitive.
func ParseSeason(s string) (Season, error) {
	switch Season(strings.ToLower(strings.TrimSpace(s))) {
	case SeasonKharif:
		return SeasonKharif, nil
	case SeasonRabi:
		return SeasonRabi, nil
	default:
		return "", eris.Errorf("model: unknown season %q", s)
	}
}

// CropProfile holds yield statistics for a crop in kg/ha.
type CropProfile struct {
	CropID            string   `json:"crop_id" yaml:"crop_id"`
	AvgYield          float64  `json:"avg_yield" yaml:"avg_yield"`
	MinYield          float64  `json:"min_yield" yaml:"min_yield"`
	MaxYield          float64  `json:"max_yield" yaml:"max_yield"`
	OptimalConditions []string `json:"optimal_conditions" yaml:"optimal_conditions"`
}

// DistrictProfile holds regional performance statistics for a district.
type DistrictProfile struct {
	DistrictID  string   `json:"district_id" yaml:"district_id"`
	AvgYield    float64  `json:"avg_yield" yaml:"avg_yield"`
	TopCrops    []string `json:"top_crops" yaml:"top_crops"`
	ClimateZone string   `json:"climate_zone" yaml:"climate_zone"`
}

// GrowsTopCrop reports whether cropID is one of the district's top crops.
func (d DistrictProfile) GrowsTopCrop(cropID string) bool {
	for _, c := range d.TopCrops {
		if strings.EqualFold(c, cropID) {
			return true
		}
	}
	return false
}

// HistoricalYieldRecord is one synthesized season of yield history.
type HistoricalYieldRecord struct {
	Year            int     `json:"year"`
	CropID          string  `json:"crop_id"`
	DistrictID      string  `json:"district_id"`
	Season          Season  `json:"season"`
	YieldPerHectare float64 `json:"yield_per_hectare"`
	AreaHectares    float64 `json:"area_hectares"`
}
