package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/repo"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// TripService implements business logic for Trip operations.
// Every method takes the caller's id; trips owned by anyone else are
// reported as domain.ErrNotFound.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create fills in defaults and persists a new trip owned by ownerID.
//   - EndDate defaults to StartDate.
//   - Status defaults to future, Visibility to private.
//
// Returns domain.ErrValidation if EndDate is before StartDate.
func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	trip.UserID = ownerID
	if trip.EndDate.IsZero() {
		trip.EndDate = trip.StartDate
	}
	if trip.Status == "" {
		trip.Status = domain.TripStatusFuture
	}
	if trip.Visibility == "" {
		trip.Visibility = domain.VisibilityPrivate
	}
	if err := checkDates(trip.StartDate, trip.EndDate); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// Get returns a trip owned by ownerID.
func (s *TripService) Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetOwned(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// ListMine returns one page of the caller's own trips, newest first.
func (s *TripService) ListMine(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	page, err := s.repo.ListByOwner(ctx, ownerID, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.ListMine: %w", err)
	}
	return nonNilPage(page), nil
}

// ListPublic returns one page of trips anyone may read.
func (s *TripService) ListPublic(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	page, err := s.repo.ListPublic(ctx, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.ListPublic: %w", err)
	}
	return nonNilPage(page), nil
}

// ListShared returns one page of trips other users shared with userID.
func (s *TripService) ListShared(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	page, err := s.repo.ListSharedWith(ctx, userID, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.ListShared: %w", err)
	}
	return nonNilPage(page), nil
}

// Update applies a partial patch to an owned trip.
// When only one of the dates changes, the other side of the date check comes
// from the stored trip.
func (s *TripService) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	if patch.IsEmpty() {
		return s.Get(ctx, ownerID, id)
	}
	if patch.StartDate != nil || patch.EndDate != nil {
		start, end := patch.StartDate, patch.EndDate
		if start == nil || end == nil {
			stored, err := s.repo.GetOwned(ctx, ownerID, id)
			if err != nil {
				return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
			}
			if start == nil {
				start = &stored.StartDate
			}
			if end == nil {
				end = &stored.EndDate
			}
		}
		if err := checkDates(*start, *end); err != nil {
			return domain.Trip{}, err
		}
	}

	result, err := s.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an owned trip.
func (s *TripService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

func checkDates(start, end time.Time) error {
	if end.Before(start) {
		return validate.Fail("endDate", "must not be before startDate")
	}
	return nil
}

func nonNilPage(p domain.Page[domain.Trip]) domain.Page[domain.Trip] {
	if p.Items == nil {
		p.Items = []domain.Trip{}
	}
	return p
}
