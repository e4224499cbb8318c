// Package api exposes the prediction engine and weather analysis as a JSON
// HTTP API for the advisory UI.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/yield-advisor/internal/metrics"
	"github.com/sells-group/yield-advisor/internal/predict"
	"github.com/sells-group/yield-advisor/internal/reference"
	"github.com/sells-group/yield-advisor/internal/weather"
)

const maxBodyBytes = 1 << 20

// Deps are the services behind the API.
type Deps struct {
	Reference *reference.Store
	Engine    *predict.Engine
	Weather   *weather.Provider
	Analyzer  *weather.Analyzer
	// AllowedOrigins feeds the CORS policy. Empty allows none.
	AllowedOrigins []string
}

type handlers struct {
	Deps
}

// NewRouter builds the API router.
func NewRouter(d Deps) http.Handler {
	h := &handlers{Deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(metrics.Middleware)
	r.Use(requestLogger)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/crops", h.listCrops)
		r.Get("/districts", h.listDistricts)
		r.Get("/districts/{district}/compare", h.compareCrops)

		r.Route("/predictions", func(r chi.Router) {
			r.Post("/", h.predict)
			r.Post("/batch", h.predictBatch)
		})

		r.Route("/weather/{district}", func(r chi.Router) {
			r.Get("/", h.weatherSeries)
			r.Get("/forecast", h.weatherForecast)
			r.Get("/impact", h.weatherImpact)
		})
	})

	return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
