package model

import "time"

// WeatherSource identifies where a weather series came from.
type WeatherSource string

const (
	WeatherSourceCSV       WeatherSource = "csv"
	WeatherSourceSynthetic WeatherSource = "synthetic"
)

// WeatherObservation is one day (or one CSV row) of weather for a district.
// Temperatures are in °C, rainfall in mm, solar radiation in MJ/m²/day.
type WeatherObservation struct {
	District        string    `json:"district"`
	Date            time.Time `json:"date"`
	TempMaxC        float64   `json:"temp_max_c"`
	TempMinC        float64   `json:"temp_min_c"`
	TempAvgC        float64   `json:"temp_avg_c"`
	RainfallMm      float64   `json:"rainfall_mm"`
	HumidityPercent float64   `json:"humidity_percent"`
	SolarRadiation  float64   `json:"solar_radiation"`
}

// WeatherForecast is a synthetic forward-looking day.
type WeatherForecast struct {
	District        string    `json:"district"`
	Date            time.Time `json:"date"`
	TempMaxC        float64   `json:"temp_max_c"`
	TempMinC        float64   `json:"temp_min_c"`
	RainfallMm      float64   `json:"rainfall_mm"`
	HumidityPercent float64   `json:"humidity_percent"`
	Condition       string    `json:"condition"`
}

// StressThresholds are the limits past which a crop suffers.
type StressThresholds struct {
	HeatStress    float64 `json:"heat_stress" yaml:"heat_stress"`       // max temp, °C
	ColdStress    float64 `json:"cold_stress" yaml:"cold_stress"`       // min temp, °C
	DroughtStress float64 `json:"drought_stress" yaml:"drought_stress"` // 30-day rainfall floor, mm
	FloodRisk     float64 `json:"flood_risk" yaml:"flood_risk"`         // single-day rainfall, mm
}

// CropWeatherRequirement describes the climate a crop needs.
type CropWeatherRequirement struct {
	CropID           string           `json:"crop_id" yaml:"crop_id"`
	OptimalTempRange [2]float64       `json:"optimal_temp_range" yaml:"optimal_temp_range"`
	WaterRequirement float64          `json:"water_requirement" yaml:"water_requirement"` // mm per year
	CriticalPeriods  []string         `json:"critical_periods" yaml:"critical_periods"`
	StressThresholds StressThresholds `json:"stress_thresholds" yaml:"stress_thresholds"`
}

// StressAnalysis counts stress days and scores risks over the analysis window.
type StressAnalysis struct {
	HeatStressDays int `json:"heat_stress_days"`
	ColdStressDays int `json:"cold_stress_days"`
	DroughtRisk    int `json:"drought_risk"`
	FloodRisk      int `json:"flood_risk"`
}

// GrowthConditions summarizes favorable conditions over the analysis window.
type GrowthConditions struct {
	FavorableDays          int  `json:"favorable_days"`
	OptimalTemperatureDays int  `json:"optimal_temperature_days"`
	AdequateRainfall       bool `json:"adequate_rainfall"`
}

// WeatherImpactResult is the analyzer's answer for a crop and weather series.
type WeatherImpactResult struct {
	StressAnalysis   StressAnalysis   `json:"stress_analysis"`
	GrowthConditions GrowthConditions `json:"growth_conditions"`
	Recommendations  []string         `json:"recommendations"`
}
