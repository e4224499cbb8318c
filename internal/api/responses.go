package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sells-group/yield-advisor/internal/reference"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps engine and analyzer errors to status codes.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	var unsupported *reference.UnsupportedCropError
	switch {
	case errors.As(err, &verrs):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "invalid request",
			Fields: fieldErrors(verrs),
		})
	case errors.As(err, &unsupported):
		respondError(w, http.StatusUnprocessableEntity, unsupported.Error())
	default:
		zap.L().Error("api: request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			out[e.Field()] = "is required"
		case "oneof":
			out[e.Field()] = fmt.Sprintf("must be one of: %s", e.Param())
		case "gt":
			out[e.Field()] = fmt.Sprintf("must be greater than %s", e.Param())
		case "gte":
			out[e.Field()] = fmt.Sprintf("must be at least %s", e.Param())
		case "lte":
			out[e.Field()] = fmt.Sprintf("must be at most %s", e.Param())
		default:
			out[e.Field()] = "is invalid"
		}
	}
	return out
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
