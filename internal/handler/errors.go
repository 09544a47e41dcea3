package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// handlerFunc is an http.HandlerFunc that reports failure by returning an
// error instead of writing it. Server.wrap turns the error into a response.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// apiError carries the status and client-facing message chosen by a handler.
// err is the underlying cause; it is logged for 5xx responses, never sent.
type apiError struct {
	status int
	msg    string
	err    error
}

func (e *apiError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *apiError) Unwrap() error { return e.err }

// notFound replaces domain.ErrNotFound with a 404 naming what was missing.
// Other errors pass through unchanged.
func notFound(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return &apiError{status: http.StatusNotFound, msg: msg, err: err}
	}
	return err
}

// wrap is the error boundary for every API handler.
func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *validate.Error
		aerr *apiError
	)
	switch {
	case errors.As(err, &verr):
		body := errorBody{Error: "Validation failed"}
		if s.dev {
			body.Details = verr.Fields
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.As(err, &aerr):
		if aerr.status >= http.StatusInternalServerError {
			s.logError(r, err)
		}
		writeJSON(w, aerr.status, errorBody{Error: aerr.msg})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Validation failed"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: "Conflict"})
	case errors.Is(err, domain.ErrEmailDelivery):
		s.logError(r, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to send email"})
	default:
		s.logError(r, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
	}
}

// logError records a server-side failure with enough context to find the
// request. Missing configuration is logged as its own condition.
func (s *Server) logError(r *http.Request, err error) {
	msg := "request failed"
	if errors.Is(err, domain.ErrConfiguration) {
		msg = "configuration error"
	}
	route := ""
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		route = rctx.RoutePattern()
	}
	s.log.ErrorContext(r.Context(), msg,
		"error", err,
		"route", route,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)
}
