// Package predict estimates crop yields. The backend prediction service is
// tried first; when it is unavailable the estimate is computed locally from
// the reference tables. Factors, recommendations and the historical
// comparison are always computed locally.
package predict

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/yield-advisor/internal/history"
	"github.com/sells-group/yield-advisor/internal/metrics"
	"github.com/sells-group/yield-advisor/internal/model"
	"github.com/sells-group/yield-advisor/internal/reference"
	"github.com/sells-group/yield-advisor/internal/resilience"
	"github.com/sells-group/yield-advisor/pkg/yieldapi"
)

// Options tunes an Engine. Zero values select defaults.
type Options struct {
	// RemoteTimeout bounds a single remote attempt. Default: 5s.
	RemoteTimeout time.Duration
	// MaxConcurrent bounds parallel predictions in batch calls. Default: 8.
	MaxConcurrent int
	// Now overrides the clock used for the current year. Default: time.Now.
	Now func() time.Time
}

// Engine produces yield predictions. It is immutable after construction and
// safe for concurrent use.
type Engine struct {
	ref      *reference.Store
	archive  *history.Archive
	remote   yieldapi.Client
	breaker  *resilience.Breaker
	validate *validator.Validate
	opts     Options
}

// New creates an Engine. A nil remote disables the remote stage. A nil
// breaker is replaced by one with default settings.
func New(ref *reference.Store, archive *history.Archive, remote yieldapi.Client, breaker *resilience.Breaker, opts Options) *Engine {
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = 5 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 8
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if breaker == nil {
		breaker = resilience.NewBreaker(resilience.Config{Name: "prediction-api"})
	}
	return &Engine{
		ref:      ref,
		archive:  archive,
		remote:   remote,
		breaker:  breaker,
		validate: newValidator(),
		opts:     opts,
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// PredictYield returns a prediction for req. Invalid requests fail with
// validator.ValidationErrors; unknown crops fail with
// *reference.UnsupportedCropError. Remote failures are never returned.
func (e *Engine) PredictYield(ctx context.Context, req model.PredictionRequest) (*model.PredictionResult, error) {
	if s, err := model.ParseSeason(string(req.Season)); err == nil {
		req.Season = s
	}
	if err := e.validate.Struct(req); err != nil {
		return nil, err
	}

	crop, err := e.ref.CropProfile(req.CropID)
	if err != nil {
		return nil, err
	}
	req.CropID = crop.CropID

	currentYear := e.opts.Now().Year()
	if req.Year == 0 {
		req.Year = currentYear
	}

	district, hasDistrict := e.ref.DistrictProfile(req.DistrictID)
	districtID := req.DistrictID
	if hasDistrict {
		districtID = district.DistrictID
	}

	log := zap.L().With(
		zap.String("trace_id", uuid.NewString()),
		zap.String("crop", crop.CropID),
		zap.String("district", req.DistrictID),
		zap.String("season", string(req.Season)),
	)
	if !hasDistrict {
		log.Debug("predict: unknown district, using neutral regional factors")
	}

	local := computeLocal(req, crop, district, hasDistrict, currentYear)

	result := &model.PredictionResult{
		PredictedYield:       local.predictedYield,
		ConfidenceInterval:   local.interval,
		Factors:              local.factors,
		Recommendations:      recommendations(crop, req.Season, local.factors),
		HistoricalComparison: e.archive.Compare(crop.CropID, districtID, req.Season),
		Source:               model.SourceLocal,
	}

	if remote, ok := e.tryRemote(ctx, req, log); ok {
		result.PredictedYield = remote.PredictedYield
		result.ConfidenceInterval = model.ConfidenceInterval{
			Lower: remote.ConfidenceInterval.Lower,
			Upper: remote.ConfidenceInterval.Upper,
		}
		result.Source = model.SourceRemote
	}

	metrics.PredictionsTotal.WithLabelValues(string(result.Source)).Inc()
	log.Debug("predict: yield predicted",
		zap.String("source", string(result.Source)),
		zap.Float64("predicted_yield", result.PredictedYield),
	)
	return result, nil
}

// tryRemote asks the backend for an estimate. It reports false, after
// logging and counting the reason, whenever the remote stage cannot be used.
func (e *Engine) tryRemote(ctx context.Context, req model.PredictionRequest, log *zap.Logger) (*yieldapi.PredictResponse, bool) {
	if e.remote == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.RemoteTimeout)
	defer cancel()

	start := time.Now()
	resp, err := resilience.Do(ctx, e.breaker, func(ctx context.Context) (*yieldapi.PredictResponse, error) {
		return e.remote.Predict(ctx, yieldapi.PredictRequest{
			Crop:            req.CropID,
			District:        req.DistrictID,
			Season:          string(req.Season),
			AreaHectares:    req.AreaHectares,
			Year:            req.Year,
			HistoricalYield: req.HistoricalYield,
		})
	})
	if !errors.Is(err, resilience.ErrOpen) {
		metrics.RemoteDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		reason := resilience.Classify(err)
		metrics.RemoteFallbacksTotal.WithLabelValues(string(reason)).Inc()
		log.Warn("predict: remote prediction unavailable, computing locally",
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
		return nil, false
	}
	return resp, true
}
