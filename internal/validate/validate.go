// Package validate holds the request schemas accepted by the API and checks
// them with go-playground/validator. Every failure is reported as an *Error
// that unwraps to domain.ErrValidation.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tripshare/tripshare/backend/internal/domain"
)

// FieldError describes one rejected field. Path uses the JSON field names,
// e.g. "segments[0].type".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is a validation failure with per-field details.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Path + ": " + f.Message
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match validation failures with errors.Is(err, domain.ErrValidation).
func (e *Error) Unwrap() error { return domain.ErrValidation }

// Fail builds an *Error for a single field. Services use it for rules that
// struct tags cannot express, such as comparing two dates.
func Fail(path, message string) *Error {
	return &Error{Fields: []FieldError{{Path: path, Message: message}}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate.Struct: %w", err)
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Path: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath drops the root struct name from the namespace:
// "TripInput.segments[0].type" becomes "segments[0].type".
func fieldPath(fe validator.FieldError) string {
	_, rest, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return rest
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must have at least " + fe.Param() + " items"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must have at most " + fe.Param() + " items"
	}
	return "is invalid"
}
