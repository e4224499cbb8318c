// Package yieldapi is a client for the remote yield prediction backend.
package yieldapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// ErrMalformedResponse is returned when a 2xx response lacks the fields
// required to use it as a prediction.
var ErrMalformedResponse = eris.New("yieldapi: response missing predicted_yield or confidence_interval")

// Client defines the remote prediction operations.
type Client interface {
	// Predict posts a request to {baseURL}/predict. A single attempt is made.
	Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error)
}

// PredictRequest is the wire form of a prediction request.
type PredictRequest struct {
	Crop            string   `json:"crop"`
	District        string   `json:"district"`
	Season          string   `json:"season"`
	AreaHectares    float64  `json:"area_hectares"`
	Year            int      `json:"year"`
	HistoricalYield *float64 `json:"historical_yield"`
}

// Interval is the wire form of a confidence interval.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PredictResponse is the subset of the backend response the engine uses.
type PredictResponse struct {
	PredictedYield     float64  `json:"predicted_yield"`
	ConfidenceInterval Interval `json:"confidence_interval"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("yieldapi: unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireResponse keeps required fields as pointers so absence is detectable.
type wireResponse struct {
	PredictedYield     *float64  `json:"predicted_yield"`
	ConfidenceInterval *Interval `json:"confidence_interval"`
}

func (c *httpClient) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "yieldapi: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "yieldapi: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "yieldapi: post predict")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, eris.Wrap(err, "yieldapi: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, eris.Wrap(err, "yieldapi: decode response")
	}
	if wire.PredictedYield == nil || wire.ConfidenceInterval == nil {
		return nil, ErrMalformedResponse
	}

	return &PredictResponse{
		PredictedYield:     *wire.PredictedYield,
		ConfidenceInterval: *wire.ConfidenceInterval,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
