package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string                `json:"error"`
	Details []validate.FieldError `json:"details,omitempty"`
}

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst and validates it.
// Malformed JSON is a 400, an oversized body a 413, and a failed check a
// *validate.Error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return &apiError{status: http.StatusRequestEntityTooLarge, msg: "Request body too large", err: err}
		}
		return &apiError{status: http.StatusBadRequest, msg: "Invalid request body", err: err}
	}
	return validate.Struct(dst)
}

// parsePagination reads ?page= and ?limit=. Values that are missing or not
// integers fall back to the defaults; the rest is clamped by
// domain.NewPaginationParams.
func parsePagination(r *http.Request, defaultLimit int) domain.PaginationParams {
	q := r.URL.Query()

	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		page = nil
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		limit = nil
	}
	return domain.NewPaginationParams(page, limit, defaultLimit)
}
