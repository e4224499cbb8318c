package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/yield-advisor/internal/model"
)

const maxBatchRequests = 100

type batchRequest struct {
	Requests []model.PredictionRequest `json:"requests"`
}

type batchResponse struct {
	Results []*model.PredictionResult `json:"results"`
}

func (h *handlers) listCrops(w http.ResponseWriter, _ *http.Request) {
	ids := h.Reference.CropIDs()
	crops := make([]model.CropProfile, 0, len(ids))
	for _, id := range ids {
		c, err := h.Reference.CropProfile(id)
		if err != nil {
			continue
		}
		crops = append(crops, c)
	}
	respondJSON(w, http.StatusOK, crops)
}

func (h *handlers) listDistricts(w http.ResponseWriter, _ *http.Request) {
	ids := h.Reference.DistrictIDs()
	districts := make([]model.DistrictProfile, 0, len(ids))
	for _, id := range ids {
		if d, ok := h.Reference.DistrictProfile(id); ok {
			districts = append(districts, d)
		}
	}
	respondJSON(w, http.StatusOK, districts)
}

func (h *handlers) predict(w http.ResponseWriter, r *http.Request) {
	var req model.PredictionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.Engine.PredictYield(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handlers) predictBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	switch {
	case len(req.Requests) == 0:
		respondError(w, http.StatusBadRequest, "requests must not be empty")
		return
	case len(req.Requests) > maxBatchRequests:
		respondError(w, http.StatusBadRequest, "too many requests in batch (max "+strconv.Itoa(maxBatchRequests)+")")
		return
	}

	results, err := h.Engine.PredictMultipleScenarios(r.Context(), req.Requests)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, batchResponse{Results: results})
}

func (h *handlers) compareCrops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	season, err := model.ParseSeason(q.Get("season"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "invalid request",
			Fields: map[string]string{"season": "must be one of: kharif rabi"},
		})
		return
	}

	area := 1.0
	if v := q.Get("area"); v != "" {
		area, err = strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "area must be a number")
			return
		}
	}
	year := 0
	if v := q.Get("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
	}

	out, err := h.Engine.CompareCrops(r.Context(), chi.URLParam(r, "district"), season, area, year)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}
