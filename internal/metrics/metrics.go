// Package metrics exposes Prometheus collectors for prediction and weather
// source selection and for the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names.
const (
	LabelSource = "source"
	LabelReason = "reason"
	LabelMethod = "method"
	LabelRoute  = "route"
	LabelStatus = "status"
)

// Prediction metrics
var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yield_predictions_total",
			Help: "Yield predictions served, by the stage that produced them",
		},
		[]string{LabelSource},
	)

	RemoteFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yield_remote_fallbacks_total",
			Help: "Remote prediction attempts that fell back to local computation",
		},
		[]string{LabelReason},
	)

	RemoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "yield_remote_request_duration_seconds",
			Help:    "Latency of remote prediction attempts",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Weather metrics
var (
	WeatherLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_series_loads_total",
			Help: "Weather series loads, by where the data came from",
		},
		[]string{LabelSource},
	)

	WeatherCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_cache_hits_total",
			Help: "Weather series served from the in-memory cache",
		},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelRoute},
	)
)
