package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but is not owned by the caller.
// The two cases are deliberately indistinguishable so ownership is never leaked.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a shape or business rule check
// (e.g. missing title, end date before start date).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule,
// such as registering an email that is already taken.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials or a bearer token are rejected.
// Handlers should map this to HTTP 401 with a generic message.
var ErrUnauthorized = errors.New("unauthorized")

// ErrEmailDelivery wraps failures from the transactional email provider.
// It is kept separate from data-layer failures so a share that updated the
// trip but failed to notify can be reported as a partial success.
var ErrEmailDelivery = errors.New("email delivery failed")

// ErrConfiguration is returned when a required runtime setting is missing
// (e.g. no SMTP relay configured). It is logged as its own condition.
var ErrConfiguration = errors.New("configuration error")
