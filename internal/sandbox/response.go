package sandbox

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/pkg/model"
)

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// respondJSON writes a plain JSON body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondPage writes the pagination envelope every list endpoint returns.
func respondPage[T any](w http.ResponseWriter, items []T, total, page, size int) {
	respondJSON(w, http.StatusOK, model.NewPage(items, total, page, size))
}

// errorEnvelope matches what the console client decodes on non-2xx responses.
type errorEnvelope struct {
	Error *model.APIError `json:"error"`
}

// respondError writes a structured error with the HTTP status derived from
// its code.
func respondError(w http.ResponseWriter, apiErr *model.APIError) {
	respondJSON(w, statusFor(apiErr.Code), errorEnvelope{Error: apiErr})
}

func statusFor(code model.ErrorCode) int {
	switch code {
	case model.ErrValidation:
		return http.StatusBadRequest
	case model.ErrNotFound:
		return http.StatusNotFound
	case model.ErrConflict:
		return http.StatusConflict
	case model.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondStoreError maps storage failures: APIErrors pass through with their
// own status, anything else is a 500.
func respondStoreError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr)
		return
	}
	respondError(w, &model.APIError{Code: model.ErrInternal, Message: err.Error()})
}
