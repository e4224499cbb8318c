package model

// PredictionSource identifies which stage produced the headline numbers of a
// prediction.
type PredictionSource string

const (
	SourceRemote PredictionSource = "remote"
	SourceLocal  PredictionSource = "local"
)

// Trend is the direction of recent historical yields.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// PredictionRequest asks for a yield estimate. A zero Year means the current
// calendar year.
type PredictionRequest struct {
	CropID          string   `json:"crop" validate:"required"`
	DistrictID      string   `json:"district" validate:"required"`
	Season          Season   `json:"season" validate:"required,oneof=kharif rabi"`
	AreaHectares    float64  `json:"area_hectares" validate:"gt=0"`
	Year            int      `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
	HistoricalYield *float64 `json:"historical_yield,omitempty" validate:"omitempty,gte=0"`
}

// ConfidenceInterval bounds a predicted yield.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Factors are the multiplicative adjustments applied to the base yield,
// rounded to two decimals for reporting.
type Factors struct {
	CropSuitability     float64 `json:"crop_suitability"`
	RegionalPerformance float64 `json:"regional_performance"`
	SeasonalFactors     float64 `json:"seasonal_factors"`
	AreaEfficiency      float64 `json:"area_efficiency"`
}

// HistoricalComparison summarizes how a prediction relates to past seasons.
type HistoricalComparison struct {
	AvgYield5yr float64 `json:"avg_yield_5yr"`
	Trend       Trend   `json:"trend"`
	Percentile  int     `json:"percentile"`
}

// PredictionResult is the engine's answer to a PredictionRequest.
type PredictionResult struct {
	PredictedYield       float64              `json:"predicted_yield"`
	ConfidenceInterval   ConfidenceInterval   `json:"confidence_interval"`
	Factors              Factors              `json:"factors"`
	Recommendations      []string             `json:"recommendations"`
	HistoricalComparison HistoricalComparison `json:"historical_comparison"`
	Source               PredictionSource     `json:"source"`
}

// CropPrediction pairs a crop with its prediction for side-by-side comparison.
type CropPrediction struct {
	Crop       string            `json:"crop"`
	Prediction *PredictionResult `json:"prediction"`
}
