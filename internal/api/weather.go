package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/yield-advisor/internal/model"
	"github.com/sells-group/yield-advisor/internal/weather"
)

const maxForecastDays = 30

type seriesResponse struct {
	District     string                     `json:"district"`
	Source       model.WeatherSource        `json:"source"`
	Observations []model.WeatherObservation `json:"observations"`
}

type forecastResponse struct {
	District string                  `json:"district"`
	Forecast []model.WeatherForecast `json:"forecast"`
}

func (h *handlers) weatherSeries(w http.ResponseWriter, r *http.Request) {
	district := chi.URLParam(r, "district")
	obs, src := h.Weather.LoadWeatherData(r.Context(), district)
	respondJSON(w, http.StatusOK, seriesResponse{District: district, Source: src, Observations: obs})
}

func (h *handlers) weatherForecast(w http.ResponseWriter, r *http.Request) {
	district := chi.URLParam(r, "district")

	days := weather.DefaultForecastDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxForecastDays {
			respondError(w, http.StatusBadRequest, "days must be an integer between 1 and "+strconv.Itoa(maxForecastDays))
			return
		}
		days = n
	}

	respondJSON(w, http.StatusOK, forecastResponse{
		District: district,
		Forecast: h.Weather.GetWeatherForecast(district, days),
	})
}

func (h *handlers) weatherImpact(w http.ResponseWriter, r *http.Request) {
	crop := r.URL.Query().Get("crop")
	if crop == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "invalid request",
			Fields: map[string]string{"crop": "is required"},
		})
		return
	}

	report, err := weather.Assess(r.Context(), h.Weather, h.Analyzer, chi.URLParam(r, "district"), crop)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
