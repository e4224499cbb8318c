package weather

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/yield-advisor/internal/fetcher"
	"github.com/sells-group/yield-advisor/internal/model"
)

const sampleCSV = `year,month,district,temp_max,temp_min,temp_avg,rainfall,humidity,solar
2024,1,Patna,24.5,9.1,16.8,4.2,62,14.5
2024,1,Gaya,25.0,10.2,17.6,3.1,58,15.0
2024,7,Patna Sadar,34.2,26.0,30.1,310.5,88,16.2
`

type fakeFetcher struct {
	body  string
	err   error
	calls atomic.Int32
}

func (f *fakeFetcher) Download(context.Context, string) (io.ReadCloser, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func newTestProvider(f fetcher.Fetcher, url string) *Provider {
	return NewProvider(f, rand.NewPCG(1, 1), ProviderOptions{
		CSVURL:   url,
		CacheTTL: time.Hour,
		Now:      func() time.Time { return fixedNow },
	})
}

func TestLoadWeatherData_CSVFilteredByDistrict(t *testing.T) {
	f := &fakeFetcher{body: sampleCSV}
	p := newTestProvider(f, "https://example.com/weather.csv")

	obs, src := p.LoadWeatherData(context.Background(), "Patna")

	assert.Equal(t, model.WeatherSourceCSV, src)
	require.Len(t, obs, 2)
	assert.Equal(t, "Patna", obs[0].District)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), obs[0].Date)
	assert.InDelta(t, 24.5, obs[0].TempMaxC, 1e-9)
	assert.InDelta(t, 9.1, obs[0].TempMinC, 1e-9)
	assert.InDelta(t, 16.8, obs[0].TempAvgC, 1e-9)
	assert.InDelta(t, 4.2, obs[0].RainfallMm, 1e-9)
	assert.InDelta(t, 62, obs[0].HumidityPercent, 1e-9)
	assert.InDelta(t, 14.5, obs[0].SolarRadiation, 1e-9)
	assert.Equal(t, "Patna Sadar", obs[1].District)
	assert.InDelta(t, 310.5, obs[1].RainfallMm, 1e-9)
}

func TestLoadWeatherData_FallbacksToSynthetic(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
	}{
		{"download error", &fakeFetcher{err: errors.New("connection refused")}},
		{"no matching rows", &fakeFetcher{body: "year,month,district,temp_max,temp_min,temp_avg,rainfall,humidity,solar\n2024,1,Gaya,1,1,1,1,1,1\n"}},
		{"malformed number", &fakeFetcher{body: "year,month,district,temp_max,temp_min,temp_avg,rainfall,humidity,solar\n2024,1,Patna,hot,1,1,1,1,1\n"}},
		{"short row", &fakeFetcher{body: "year,month,district\n2024,1,Patna\n"}},
		{"bad month", &fakeFetcher{body: "year,month,district,temp_max,temp_min,temp_avg,rainfall,humidity,solar\n2024,13,Patna,1,1,1,1,1,1\n"}},
		{"empty body", &fakeFetcher{body: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(tt.fetcher, "https://example.com/weather.csv")
			obs, src := p.LoadWeatherData(context.Background(), "Patna")

			assert.Equal(t, model.WeatherSourceSynthetic, src)
			assert.Len(t, obs, HistoryDays)
			assert.Equal(t, int32(1), tt.fetcher.calls.Load())
		})
	}
}

func TestLoadWeatherData_NoURLSkipsFetch(t *testing.T) {
	f := &fakeFetcher{body: sampleCSV}
	p := newTestProvider(f, "")

	obs, src := p.LoadWeatherData(context.Background(), "Patna")

	assert.Equal(t, model.WeatherSourceSynthetic, src)
	assert.Len(t, obs, HistoryDays)
	assert.Equal(t, int32(0), f.calls.Load())
}

func TestLoadWeatherData_BlankDistrictSkipsCSV(t *testing.T) {
	for _, district := range []string{"", "   "} {
		f := &fakeFetcher{body: sampleCSV}
		p := newTestProvider(f, "https://example.com/weather.csv")

		obs, src := p.LoadWeatherData(context.Background(), district)

		assert.Equal(t, model.WeatherSourceSynthetic, src, "district %q", district)
		assert.Len(t, obs, HistoryDays)
		assert.Equal(t, int32(0), f.calls.Load(), "district %q", district)
	}
}

func TestLoadWeatherData_Cached(t *testing.T) {
	f := &fakeFetcher{body: sampleCSV}
	p := newTestProvider(f, "https://example.com/weather.csv")

	first, _ := p.LoadWeatherData(context.Background(), "Patna")
	first[0].TempMaxC = -100

	second, src := p.LoadWeatherData(context.Background(), "Patna")
	assert.Equal(t, model.WeatherSourceCSV, src)
	assert.InDelta(t, 24.5, second[0].TempMaxC, 1e-9, "cached series must not be shared")
	assert.Equal(t, int32(1), f.calls.Load())

	p.Purge()
	p.LoadWeatherData(context.Background(), "Patna")
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestLoadWeatherData_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, sampleCSV) //nolint
	}))
	defer srv.Close()

	p := newTestProvider(fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}), srv.URL)
	obs, src := p.LoadWeatherData(context.Background(), "Gaya")

	assert.Equal(t, model.WeatherSourceCSV, src)
	require.Len(t, obs, 1)
	assert.Equal(t, "Gaya", obs[0].District)
}

func TestLoadWeatherData_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}), srv.URL)
	obs, src := p.LoadWeatherData(context.Background(), "Patna")

	assert.Equal(t, model.WeatherSourceSynthetic, src)
	assert.Len(t, obs, HistoryDays)
}

func TestGetWeatherForecast_DefaultDays(t *testing.T) {
	p := newTestProvider(nil, "")

	assert.Len(t, p.GetWeatherForecast("Patna", 0), DefaultForecastDays)
	assert.Len(t, p.GetWeatherForecast("Patna", -3), DefaultForecastDays)
	fc := p.GetWeatherForecast("Patna", 3)
	require.Len(t, fc, 3)
	assert.Equal(t, "Patna", fc[0].District)
	assert.Equal(t, 16, fc[0].Date.Day())
}
