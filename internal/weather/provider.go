// Package weather loads and synthesizes district weather series and scores
// their impact on crops.
package weather

import (
	"context"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/yield-advisor/internal/fetcher"
	"github.com/sells-group/yield-advisor/internal/metrics"
	"github.com/sells-group/yield-advisor/internal/model"
)

// DefaultForecastDays is used when a forecast is requested without a length.
const DefaultForecastDays = 7

// CSV column order: year, month, district, temp_max, temp_min, temp_avg,
// rainfall, humidity, solar.
const (
	colYear = iota
	colMonth
	colDistrict
	colTempMax
	colTempMin
	colTempAvg
	colRainfall
	colHumidity
	colSolar
	csvColumns
)

// ProviderOptions configures a Provider.
type ProviderOptions struct {
	// CSVURL is the weather CSV resource. Empty skips straight to synthesis.
	CSVURL       string
	FetchTimeout time.Duration
	CacheSize    int
	CacheTTL     time.Duration
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

type series struct {
	observations []model.WeatherObservation
	source       model.WeatherSource
}

// Provider serves weather observations per district, preferring the CSV
// resource and synthesizing a seasonal series when it is unavailable.
type Provider struct {
	fetch fetcher.Fetcher
	synth *synthesizer
	opts  ProviderOptions
	cache *expirable.LRU[string, series]
}

// NewProvider creates a Provider. src drives synthetic draws.
func NewProvider(f fetcher.Fetcher, src rand.Source, opts ProviderOptions) *Provider {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Provider{
		fetch: f,
		synth: newSynthesizer(src),
		opts:  opts,
		cache: expirable.NewLRU[string, series](opts.CacheSize, nil, opts.CacheTTL),
	}
}

// LoadWeatherData returns the observation series for a district and where it
// came from. It never fails: fetch or parse problems, or a CSV with no rows
// for the district, fall back to a synthetic series. A blank district never
// reads the CSV and is always synthesized. The returned slice is
// owned by the caller.
func (p *Provider) LoadWeatherData(ctx context.Context, district string) ([]model.WeatherObservation, model.WeatherSource) {
	if s, ok := p.cache.Get(district); ok {
		metrics.WeatherCacheHitsTotal.Inc()
		return slices.Clone(s.observations), s.source
	}

	s := series{source: model.WeatherSourceCSV}
	obs, err := p.loadCSV(ctx, district)
	switch {
	case err != nil:
		zap.L().Warn("weather: csv load failed, synthesizing",
			zap.String("district", district),
			zap.Error(err),
		)
		s.observations = p.synth.observations(district, p.opts.Now())
		s.source = model.WeatherSourceSynthetic
	default:
		s.observations = obs
	}

	metrics.WeatherLoadsTotal.WithLabelValues(string(s.source)).Inc()
	zap.L().Debug("weather: series loaded",
		zap.String("district", district),
		zap.String("source", string(s.source)),
		zap.Int("observations", len(s.observations)),
	)

	p.cache.Add(district, s)
	return slices.Clone(s.observations), s.source
}

// GetWeatherForecast returns a synthetic forecast starting tomorrow. days <= 0
// means DefaultForecastDays.
func (p *Provider) GetWeatherForecast(district string, days int) []model.WeatherForecast {
	if days <= 0 {
		days = DefaultForecastDays
	}
	return p.synth.forecast(district, p.opts.Now(), days)
}

// Purge drops every cached series.
func (p *Provider) Purge() {
	p.cache.Purge()
}

func (p *Provider) loadCSV(ctx context.Context, district string) ([]model.WeatherObservation, error) {
	if p.opts.CSVURL == "" || p.fetch == nil {
		return nil, eris.New("weather: no csv source configured")
	}
	// An empty district would match every row.
	if strings.TrimSpace(district) == "" {
		return nil, eris.New("weather: empty district")
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.FetchTimeout)
	defer cancel()

	body, err := p.fetch.Download(ctx, p.opts.CSVURL)
	if err != nil {
		return nil, eris.Wrap(err, "weather: download csv")
	}
	defer body.Close() //nolint

	var out []model.WeatherObservation
	err = fetcher.EachCSVRow(ctx, body, fetcher.CSVOptions{HasHeader: true, TrimSpace: true}, func(line int, row []string) error {
		if len(row) < csvColumns {
			return eris.Errorf("weather: csv line %d: want %d columns, got %d", line, csvColumns, len(row))
		}
		if !strings.Contains(row[colDistrict], district) {
			return nil
		}
		o, err := parseRow(row)
		if err != nil {
			return eris.Wrapf(err, "weather: csv line %d", line)
		}
		out = append(out, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, eris.Errorf("weather: csv has no rows for district %q", district)
	}
	return out, nil
}

func parseRow(row []string) (model.WeatherObservation, error) {
	year, err := strconv.Atoi(row[colYear])
	if err != nil {
		return model.WeatherObservation{}, eris.Wrap(err, "parse year")
	}
	month, err := strconv.Atoi(row[colMonth])
	if err != nil {
		return model.WeatherObservation{}, eris.Wrap(err, "parse month")
	}
	if month < 1 || month > 12 {
		return model.WeatherObservation{}, eris.Errorf("month %d out of range", month)
	}

	var vals [colSolar - colTempMax + 1]float64
	for i := range vals {
		col := colTempMax + i
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return model.WeatherObservation{}, eris.Wrapf(err, "parse column %d", col)
		}
		vals[i] = v
	}

	return model.WeatherObservation{
		District:        row[colDistrict],
		Date:            time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		TempMaxC:        vals[colTempMax-colTempMax],
		TempMinC:        vals[colTempMin-colTempMax],
		TempAvgC:        vals[colTempAvg-colTempMax],
		RainfallMm:      vals[colRainfall-colTempMax],
		HumidityPercent: vals[colHumidity-colTempMax],
		SolarRadiation:  vals[colSolar-colTempMax],
	}, nil
}
