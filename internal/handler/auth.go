package handler

import (
	"errors"
	"net/http"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/service"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func sessionToResponse(s service.Session) sessionResponse {
	return sessionResponse{User: userToResponse(s.User), Token: s.Token}
}

// register handles POST /api/auth/register.
func (s *Server) register(w http.ResponseWriter, r *http.Request) error {
	var in validate.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}

	sess, err := s.auth.Register(r.Context(), in.Email, in.Password, in.Name)
	if errors.Is(err, domain.ErrConflict) {
		return &apiError{status: http.StatusConflict, msg: "User already exists", err: err}
	}
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, sessionToResponse(sess))
	return nil
}

// login handles POST /api/auth/login. Unknown email and wrong password get
// the same response.
func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	var in validate.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}

	sess, err := s.auth.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, domain.ErrUnauthorized) {
		return &apiError{status: http.StatusUnauthorized, msg: "Invalid email or password", err: err}
	}
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, sessionToResponse(sess))
	return nil
}
