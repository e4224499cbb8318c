package yieldapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredict_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "wheat", body["crop"])
		assert.Equal(t, "Gaya", body["district"])
		assert.Equal(t, "rabi", body["season"])
		assert.InDelta(t, 5.0, body["area_hectares"], 0.001)
		assert.InDelta(t, 2026.0, body["year"], 0.001)
		assert.Contains(t, body, "historical_yield")
		assert.Nil(t, body["historical_yield"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predicted_yield": 3350, "confidence_interval": {"lower": 3100, "upper": 3600}, "model": "rf"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	got, err := client.Predict(context.Background(), PredictRequest{
		Crop: "wheat", District: "Gaya", Season: "rabi", AreaHectares: 5, Year: 2026,
	})
	require.NoError(t, err)
	assert.InDelta(t, 3350, got.PredictedYield, 0.001)
	assert.Equal(t, Interval{Lower: 3100, Upper: 3600}, got.ConfidenceInterval)
}

func TestPredict_HistoricalYieldSent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, 2900.0, body["historical_yield"], 0.001)
		w.Write([]byte(`{"predicted_yield": 1, "confidence_interval": {"lower": 0, "upper": 2}}`))
	}))
	defer srv.Close()

	hy := 2900.0
	_, err := NewClient(srv.URL).Predict(context.Background(), PredictRequest{Crop: "rice", HistoricalYield: &hy})
	require.NoError(t, err)
}

func TestPredict_StatusError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`overloaded`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Predict(context.Background(), PredictRequest{Crop: "rice"})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.HTTPStatus())
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(1), calls.Load(), "no retries")
}

func TestPredict_MissingFields(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"confidence_interval": {"lower": 1, "upper": 2}}`,
		`{"predicted_yield": 3000}`,
		`{}`,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		_, err := NewClient(srv.URL).Predict(context.Background(), PredictRequest{Crop: "rice"})
		srv.Close()
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
	}
}

func TestPredict_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Predict(context.Background(), PredictRequest{Crop: "rice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestPredict_ContextTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL).Predict(ctx, PredictRequest{Crop: "rice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPredict_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, WithTimeout(time.Second)).Predict(context.Background(), PredictRequest{Crop: "rice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post predict")
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c := NewClient("http://example.invalid", WithHTTPClient(hc)).(*httpClient)
	assert.Same(t, hc, c.http)
	assert.Equal(t, "http://example.invalid", c.baseURL)
}
