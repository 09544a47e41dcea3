package handler

import (
	"net/http"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/middleware"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

type userEnvelope struct {
	User userResponse `json:"user"`
}

// getMe handles GET /api/users/me.
func (s *Server) getMe(w http.ResponseWriter, r *http.Request) error {
	user, err := s.users.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		return notFound(err, "User not found")
	}
	writeJSON(w, http.StatusOK, userEnvelope{User: userToResponse(user)})
	return nil
}

// updateMe handles PUT /api/users/me. Only name and bio can change.
func (s *Server) updateMe(w http.ResponseWriter, r *http.Request) error {
	var in validate.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}

	user, err := s.users.UpdateProfile(r.Context(), middleware.UserID(r.Context()),
		domain.ProfilePatch{Name: in.Name, Bio: in.Bio})
	if err != nil {
		return notFound(err, "User not found")
	}
	writeJSON(w, http.StatusOK, userEnvelope{User: userToResponse(user)})
	return nil
}

// heartbeat handles POST /api/users/heartbeat.
func (s *Server) heartbeat(w http.ResponseWriter, r *http.Request) error {
	if err := s.users.Heartbeat(r.Context(), middleware.UserID(r.Context())); err != nil {
		return notFound(err, "User not found")
	}
	writeJSON(w, http.StatusOK, successBody{Success: true})
	return nil
}

// listOnline handles GET /api/users/online.
func (s *Server) listOnline(w http.ResponseWriter, r *http.Request) error {
	users, err := s.users.Online(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string][]userResponse{"users": usersToResponse(users)})
	return nil
}
