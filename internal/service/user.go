package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/repo"
)

// UserService implements the profile and presence operations.
type UserService struct {
	users repo.UserRepo
	now   func() time.Time
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users, now: time.Now}
}

// WithClock replaces the time source used for heartbeats and the online cutoff.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

// Me returns the caller's own record. Returns domain.ErrNotFound if the
// account was removed after the token was issued.
func (s *UserService) Me(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Me: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial name/bio update. An empty patch is a read.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error) {
	if patch == (domain.ProfilePatch{}) {
		return s.Me(ctx, id)
	}
	user, err := s.users.UpdateProfile(ctx, id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return user, nil
}

// Heartbeat records that the caller is still active.
func (s *UserService) Heartbeat(ctx context.Context, id uuid.UUID) error {
	if err := s.users.TouchActivity(ctx, id, s.now()); err != nil {
		return fmt.Errorf("service.UserService.Heartbeat: %w", err)
	}
	return nil
}

// Online lists the other users seen within domain.OnlineWindow.
// Always returns a non-nil slice.
func (s *UserService) Online(ctx context.Context, callerID uuid.UUID) ([]domain.User, error) {
	users, err := s.users.ListOnline(ctx, callerID, s.now().Add(-domain.OnlineWindow))
	if err != nil {
		return nil, fmt.Errorf("service.UserService.Online: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}
