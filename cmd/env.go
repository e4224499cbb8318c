package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/yield-advisor/internal/config"
	"github.com/sells-group/yield-advisor/internal/fetcher"
	"github.com/sells-group/yield-advisor/internal/history"
	"github.com/sells-group/yield-advisor/internal/predict"
	"github.com/sells-group/yield-advisor/internal/reference"
	"github.com/sells-group/yield-advisor/internal/resilience"
	"github.com/sells-group/yield-advisor/internal/weather"
	"github.com/sells-group/yield-advisor/pkg/yieldapi"
)

// advisorEnv holds the services built once per process and shared by every
// command and the HTTP server.
type advisorEnv struct {
	Reference *reference.Store
	Engine    *predict.Engine
	Weather   *weather.Provider
	Analyzer  *weather.Analyzer
}

// initEnv builds the reference store, synthetic history, prediction engine
// and weather services from c.
func initEnv(c *config.Config, now time.Time) (*advisorEnv, error) {
	ref, err := reference.New(reference.Options{
		Path:               c.Reference.Path,
		NormalizeDistricts: c.Reference.NormalizeDistricts,
	})
	if err != nil {
		return nil, err
	}

	records := history.NewGenerator(ref, history.NewSource(c.History.Seed), now).Generate()
	archive := history.NewArchive(records, now)

	var remote yieldapi.Client
	if c.Prediction.BaseURL != "" {
		remote = yieldapi.NewClient(c.Prediction.BaseURL, yieldapi.WithTimeout(c.Prediction.RemoteTimeout))
	} else {
		zap.L().Info("remote prediction disabled, using local model only")
	}
	breaker := resilience.NewBreaker(resilience.Config{
		Name:             "prediction-api",
		FailureThreshold: c.Prediction.BreakerFailures,
		ResetTimeout:     c.Prediction.BreakerReset,
	})

	engine := predict.New(ref, archive, remote, breaker, predict.Options{
		RemoteTimeout: c.Prediction.RemoteTimeout,
		MaxConcurrent: c.Batch.MaxConcurrent,
	})

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Timeout:    c.Weather.FetchTimeout,
		RatePerSec: c.Weather.RatePerSec,
	})
	provider := weather.NewProvider(f, history.NewSource(c.History.Seed), weather.ProviderOptions{
		CSVURL:       c.Weather.CSVURL,
		FetchTimeout: c.Weather.FetchTimeout,
		CacheSize:    c.Weather.CacheSize,
		CacheTTL:     c.Weather.CacheTTL,
	})

	zap.L().Debug("environment initialized",
		zap.Int("history_records", archive.Len()),
		zap.Bool("remote_enabled", remote != nil),
		zap.Bool("weather_csv", c.Weather.CSVURL != ""),
	)

	return &advisorEnv{
		Reference: ref,
		Engine:    engine,
		Weather:   provider,
		Analyzer:  weather.NewAnalyzer(ref),
	}, nil
}
