package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/mailer"
	"github.com/tripshare/tripshare/backend/internal/repo"
	"github.com/tripshare/tripshare/backend/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. Calling an unset one panics, which flags an unexpected
// repo call.

type mockTripRepo struct {
	create         func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getOwned       func(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)
	listByOwner    func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	listPublic     func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	listSharedWith func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update         func(ctx context.Context, ownerID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete         func(ctx context.Context, ownerID, id uuid.UUID) error
	addSharedWith  func(ctx context.Context, ownerID, id, recipientID uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	return m.getOwned(ctx, ownerID, id)
}
func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listByOwner(ctx, ownerID, p)
}
func (m *mockTripRepo) ListPublic(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listPublic(ctx, p)
}
func (m *mockTripRepo) ListSharedWith(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listSharedWith(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, ownerID, id, patch)
}
func (m *mockTripRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}
func (m *mockTripRepo) AddSharedWith(ctx context.Context, ownerID, id, recipientID uuid.UUID) error {
	return m.addSharedWith(ctx, ownerID, id, recipientID)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockUserRepo struct {
	create        func(ctx context.Context, user domain.User) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail    func(ctx context.Context, email string) (domain.User, error)
	updateProfile func(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error)
	touchActivity func(ctx context.Context, id uuid.UUID, at time.Time) error
	listOnline    func(ctx context.Context, excludeID uuid.UUID, since time.Time) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error) {
	return m.updateProfile(ctx, id, patch)
}
func (m *mockUserRepo) TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.touchActivity(ctx, id, at)
}
func (m *mockUserRepo) ListOnline(ctx context.Context, excludeID uuid.UUID, since time.Time) ([]domain.User, error) {
	return m.listOnline(ctx, excludeID, since)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockMessageRepo struct {
	create       func(ctx context.Context, msg domain.Message) (domain.Message, error)
	conversation func(ctx context.Context, a, b uuid.UUID) ([]domain.Message, error)
	markRead     func(ctx context.Context, senderID, recipientID uuid.UUID) (int64, error)
}

func (m *mockMessageRepo) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	return m.create(ctx, msg)
}
func (m *mockMessageRepo) Conversation(ctx context.Context, a, b uuid.UUID) ([]domain.Message, error) {
	return m.conversation(ctx, a, b)
}
func (m *mockMessageRepo) MarkRead(ctx context.Context, senderID, recipientID uuid.UUID) (int64, error) {
	return m.markRead(ctx, senderID, recipientID)
}

var _ repo.MessageRepo = (*mockMessageRepo)(nil)

// fakeNotifier records what was sent and returns err for every send.
type fakeNotifier struct {
	invitations []mailer.Invitation
	shared      []mailer.TripShared
	err         error
}

func (f *fakeNotifier) SendInvitation(_ context.Context, inv mailer.Invitation) error {
	f.invitations = append(f.invitations, inv)
	return f.err
}
func (f *fakeNotifier) SendTripShared(_ context.Context, n mailer.TripShared) error {
	f.shared = append(f.shared, n)
	return f.err
}

var _ service.Notifier = (*fakeNotifier)(nil)

type fakeTokens struct {
	err error
}

func (f fakeTokens) Issue(userID uuid.UUID, email string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + email, nil
}

var _ service.TokenIssuer = fakeTokens{}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
