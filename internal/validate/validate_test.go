package validate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

func strPtr(s string) *string { return &s }

// requireFieldError asserts that err is a *validate.Error reporting path.
func requireFieldError(t *testing.T, err error, path string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *validate.Error
	require.True(t, errors.As(err, &verr), "expected *validate.Error, got %T", err)
	var paths []string
	for _, f := range verr.Fields {
		paths = append(paths, f.Path)
		assert.NotEmpty(t, f.Message)
	}
	assert.Contains(t, paths, path)
}

func TestRegisterInput(t *testing.T) {
	valid := validate.RegisterInput{Email: "a@x.com", Password: "secret1", Name: "A"}
	require.NoError(t, validate.Struct(valid))

	bad := valid
	bad.Email = "not-an-email"
	requireFieldError(t, validate.Struct(bad), "email")

	bad = valid
	bad.Password = "12345"
	requireFieldError(t, validate.Struct(bad), "password")

	bad = valid
	bad.Name = ""
	requireFieldError(t, validate.Struct(bad), "name")
}

func TestLoginInput(t *testing.T) {
	require.NoError(t, validate.Struct(validate.LoginInput{Email: "a@x.com", Password: "x"}))
	requireFieldError(t, validate.Struct(validate.LoginInput{Email: "a@x.com"}), "password")
	requireFieldError(t, validate.Struct(validate.LoginInput{Email: "nope", Password: "x"}), "email")
}

func TestProfileInput(t *testing.T) {
	require.NoError(t, validate.Struct(validate.ProfileInput{}), "all fields optional")
	require.NoError(t, validate.Struct(validate.ProfileInput{Name: strPtr("B"), Bio: strPtr("hi")}))

	requireFieldError(t, validate.Struct(validate.ProfileInput{Name: strPtr("")}), "name")
	requireFieldError(t, validate.Struct(validate.ProfileInput{Bio: strPtr(strings.Repeat("b", 501))}), "bio")
}

func TestMessageInput(t *testing.T) {
	valid := validate.MessageInput{RecipientID: "6f1c2a52-8a8e-4f3c-9a52-0b8f8f6d8a11", Content: "hello"}
	require.NoError(t, validate.Struct(valid))

	bad := valid
	bad.RecipientID = "42"
	requireFieldError(t, validate.Struct(bad), "recipientId")

	bad = valid
	bad.Content = ""
	requireFieldError(t, validate.Struct(bad), "content")

	bad = valid
	bad.Content = strings.Repeat("a", domain.MaxMessageLength+1)
	requireFieldError(t, validate.Struct(bad), "content")

	ok := valid
	ok.Content = strings.Repeat("a", domain.MaxMessageLength)
	require.NoError(t, validate.Struct(ok))
}

func TestTripInput(t *testing.T) {
	valid := validate.TripInput{Title: "Japan", Destination: "Tokyo", StartDate: "2025-04-01"}
	require.NoError(t, validate.Struct(valid))

	tests := []struct {
		name   string
		mutate func(*validate.TripInput)
		path   string
	}{
		{"missing title", func(in *validate.TripInput) { in.Title = "" }, "title"},
		{"missing destination", func(in *validate.TripInput) { in.Destination = "" }, "destination"},
		{"missing start date", func(in *validate.TripInput) { in.StartDate = "" }, "startDate"},
		{"malformed start date", func(in *validate.TripInput) { in.StartDate = "April 1st" }, "startDate"},
		{"malformed end date", func(in *validate.TripInput) { in.EndDate = "2025-13-40" }, "endDate"},
		{"unknown status", func(in *validate.TripInput) { in.Status = "cancelled" }, "status"},
		{"shared visibility is not a status value", func(in *validate.TripInput) { in.Visibility = "shared" }, "visibility"},
		{"bad segment type", func(in *validate.TripInput) {
			in.Segments = []domain.Segment{{Type: domain.SegmentFlight}, {Type: "boat"}}
		}, "segments[1].type"},
		{"bad share id", func(in *validate.TripInput) { in.SharedWith = []string{"bob"} }, "sharedWith[0]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			requireFieldError(t, validate.Struct(in), tc.path)
		})
	}
}

func TestTripInput_AcceptsAllOptionalFields(t *testing.T) {
	price := 120.0
	in := validate.TripInput{
		Title:          "Japan",
		Destination:    "Tokyo",
		StartDate:      "2025-04-01",
		EndDate:        "2025-04-10",
		Status:         "taken",
		Visibility:     "public",
		TripImages:     []string{"a.jpg"},
		Airlines:       []domain.Airline{{Name: "JAL"}},
		Accommodations: []domain.Accommodation{{Name: "Ryokan"}},
		Segments:       []domain.Segment{{Type: domain.SegmentTransport, Price: &price}},
		SharedWith:     []string{"6f1c2a52-8a8e-4f3c-9a52-0b8f8f6d8a11"},
	}
	require.NoError(t, validate.Struct(in))
}

func TestTripUpdateInput(t *testing.T) {
	require.NoError(t, validate.Struct(validate.TripUpdateInput{}), "empty patch is valid")
	require.NoError(t, validate.Struct(validate.TripUpdateInput{Title: strPtr("Kyoto")}))

	requireFieldError(t, validate.Struct(validate.TripUpdateInput{Title: strPtr("")}), "title")
	requireFieldError(t, validate.Struct(validate.TripUpdateInput{Status: strPtr("done")}), "status")
	requireFieldError(t, validate.Struct(validate.TripUpdateInput{EndDate: strPtr("tomorrow")}), "endDate")
}

func TestShareInput(t *testing.T) {
	require.NoError(t, validate.Struct(validate.ShareInput{Email: "friend@x.com"}))
	requireFieldError(t, validate.Struct(validate.ShareInput{Email: "friend"}), "email")
}

func TestFail(t *testing.T) {
	err := validate.Fail("endDate", "must not be before startDate")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "validation error: endDate: must not be before startDate", err.Error())
}
