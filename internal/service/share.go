package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/mailer"
	"github.com/tripshare/tripshare/backend/internal/repo"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// Notifier sends the two sharing emails. *mailer.Mailer implements it.
type Notifier interface {
	SendInvitation(ctx context.Context, inv mailer.Invitation) error
	SendTripShared(ctx context.Context, n mailer.TripShared) error
}

// ShareOutcome reports what ShareByEmail did before it returned.
// Shared is true once the recipient is on the trip's share list, so a caller
// seeing Shared together with domain.ErrEmailDelivery knows the share itself
// went through.
type ShareOutcome struct {
	RecipientExists bool
	Shared          bool
}

// ShareService shares trips with other people by email address.
type ShareService struct {
	trips repo.TripRepo
	users repo.UserRepo
	mail  Notifier
}

// NewShareService constructs a ShareService.
func NewShareService(trips repo.TripRepo, users repo.UserRepo, mail Notifier) *ShareService {
	return &ShareService{trips: trips, users: users, mail: mail}
}

// ShareByEmail shares an owned trip with whoever owns email.
//   - Registered recipient: added to the share list (idempotent), then notified.
//   - Unknown address: sent a signup invitation; the trip is not modified.
//
// Returns domain.ErrNotFound if the trip is not owned by ownerID and
// domain.ErrEmailDelivery if only the email step failed.
func (s *ShareService) ShareByEmail(ctx context.Context, ownerID, tripID uuid.UUID, email string) (ShareOutcome, error) {
	var out ShareOutcome

	trip, err := s.trips.GetOwned(ctx, ownerID, tripID)
	if err != nil {
		return out, fmt.Errorf("service.ShareService.ShareByEmail: %w", err)
	}
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return out, fmt.Errorf("service.ShareService.ShareByEmail: owner: %w", err)
	}

	recipient, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		err = s.mail.SendInvitation(ctx, mailer.Invitation{
			To:              email,
			SenderName:      owner.Name,
			TripID:          trip.ID,
			TripTitle:       trip.Title,
			TripDestination: trip.Destination,
		})
		if err != nil {
			return out, fmt.Errorf("service.ShareService.ShareByEmail: %w", err)
		}
		return out, nil
	case err != nil:
		return out, fmt.Errorf("service.ShareService.ShareByEmail: recipient: %w", err)
	}

	out.RecipientExists = true
	if recipient.ID == ownerID {
		return out, validate.Fail("email", "cannot share a trip with yourself")
	}
	if !trip.IsSharedWith(recipient.ID) {
		if err := s.trips.AddSharedWith(ctx, ownerID, trip.ID, recipient.ID); err != nil {
			return out, fmt.Errorf("service.ShareService.ShareByEmail: %w", err)
		}
	}
	out.Shared = true

	err = s.mail.SendTripShared(ctx, mailer.TripShared{
		To:              recipient.Email,
		RecipientName:   recipient.Name,
		SenderName:      owner.Name,
		TripID:          trip.ID,
		TripTitle:       trip.Title,
		TripDestination: trip.Destination,
	})
	if err != nil {
		return out, fmt.Errorf("service.ShareService.ShareByEmail: %w", err)
	}
	return out, nil
}
