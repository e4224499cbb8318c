package predict

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/yield-advisor/internal/model"
)

// PredictMultipleScenarios predicts every request concurrently. Results keep
// the order of reqs. The first failing request cancels the rest and its error
// is returned.
func (e *Engine) PredictMultipleScenarios(ctx context.Context, reqs []model.PredictionRequest) ([]*model.PredictionResult, error) {
	results := make([]*model.PredictionResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.MaxConcurrent)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := e.PredictYield(gctx, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CompareCrops predicts every known crop for one district and season, sorted
// by predicted yield, highest first. Ties keep crop order.
func (e *Engine) CompareCrops(ctx context.Context, districtID string, season model.Season, areaHectares float64, year int) ([]model.CropPrediction, error) {
	crops := e.ref.CropIDs()
	reqs := make([]model.PredictionRequest, len(crops))
	for i, c := range crops {
		reqs[i] = model.PredictionRequest{
			CropID:       c,
			DistrictID:   districtID,
			Season:       season,
			AreaHectares: areaHectares,
			Year:         year,
		}
	}

	results, err := e.PredictMultipleScenarios(ctx, reqs)
	if err != nil {
		return nil, err
	}

	out := make([]model.CropPrediction, len(crops))
	for i, c := range crops {
		out[i] = model.CropPrediction{Crop: c, Prediction: results[i]}
	}
	slices.SortStableFunc(out, func(a, b model.CropPrediction) int {
		return cmp.Compare(b.Prediction.PredictedYield, a.Prediction.PredictedYield)
	})
	return out, nil
}
