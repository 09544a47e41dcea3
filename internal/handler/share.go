package handler

import (
	"errors"
	"net/http"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/middleware"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// shareTrip handles POST /api/trips/{id}/share.
// A registered recipient is added to the trip and notified; anyone else gets
// an invitation. When the share went through but the email did not, the 500
// says so, so the client does not retry a share that already happened.
func (s *Server) shareTrip(w http.ResponseWriter, r *http.Request) error {
	id, err := tripIDParam(r)
	if err != nil {
		return err
	}
	var in validate.ShareInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}

	out, err := s.shares.ShareByEmail(r.Context(), middleware.UserID(r.Context()), id, in.Email)
	switch {
	case errors.Is(err, domain.ErrEmailDelivery) && out.Shared:
		return &apiError{status: http.StatusInternalServerError,
			msg: "Trip shared, but the notification email could not be sent", err: err}
	case errors.Is(err, domain.ErrEmailDelivery):
		return &apiError{status: http.StatusInternalServerError,
			msg: "Failed to send invitation email", err: err}
	case err != nil:
		return notFound(err, "Trip not found")
	}

	msg := "Invitation sent to " + in.Email
	if out.RecipientExists {
		msg = "Trip shared with " + in.Email
	}
	writeJSON(w, http.StatusOK, successBody{Success: true, Message: msg})
	return nil
}
