// Package service contains the business logic for the trip sharing API.
// Services enforce business rules and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/auth"
	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/repo"
)

// TokenIssuer signs bearer tokens. *auth.Tokens implements it.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// Session is a user plus a freshly issued bearer token.
type Session struct {
	User  domain.User
	Token string
}

// AuthService registers users and logs them in.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

// WithClock replaces the time source used for last-active stamps. Tests only.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Register creates an account and issues its first token.
// Returns domain.ErrConflict if the email is already registered, including
// when a concurrent registration wins the race to insert.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (Session, error) {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return Session{}, fmt.Errorf("service.AuthService.Register: email already registered: %w", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{Email: email, PasswordHash: hash, Name: name})
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return s.session(user, "service.AuthService.Register")
}

// Login checks the credentials and marks the user online.
// Unknown email and wrong password both return domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		auth.VerifyNoUser(password)
		return Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	now := s.now()
	if err := s.users.TouchActivity(ctx, user.ID, now); err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	user.LastActive = &now
	user.IsOnline = true

	return s.session(user, "service.AuthService.Login")
}

func (s *AuthService) session(user domain.User, op string) (Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return Session{User: user, Token: token}, nil
}
