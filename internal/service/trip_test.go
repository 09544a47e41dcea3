package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		Title:       "Japan",
		Destination: "Tokyo",
		StartDate:   date(2025, 4, 1),
	}
}

// echoRepo returns whatever Create or Update receives, for tests that only
// care about defaults and validation.
func echoRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, _, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
			return domain.Trip{ID: id}, nil
		},
	}
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_AppliesDefaults(t *testing.T) {
	owner := uuid.New()
	svc := service.NewTripService(echoRepo())

	got, err := svc.Create(context.Background(), owner, validTrip())

	require.NoError(t, err)
	assert.Equal(t, owner, got.UserID)
	assert.Equal(t, date(2025, 4, 1), got.EndDate)
	assert.Equal(t, domain.TripStatusFuture, got.Status)
	assert.Equal(t, domain.VisibilityPrivate, got.Visibility)
}

func TestTripService_Create_KeepsExplicitValues(t *testing.T) {
	svc := service.NewTripService(echoRepo())
	trip := validTrip()
	trip.EndDate = date(2025, 4, 10)
	trip.Status = domain.TripStatusTaken
	trip.Visibility = domain.VisibilityPublic

	got, err := svc.Create(context.Background(), uuid.New(), trip)

	require.NoError(t, err)
	assert.Equal(t, date(2025, 4, 10), got.EndDate)
	assert.Equal(t, domain.TripStatusTaken, got.Status)
	assert.Equal(t, domain.VisibilityPublic, got.Visibility)
}

func TestTripService_Create_EndDateBeforeStartDate(t *testing.T) {
	svc := service.NewTripService(echoRepo())
	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), uuid.New(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}

	_, err := service.NewTripService(r).Create(context.Background(), uuid.New(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

// ---- Get / List ------------------------------------------------------------

func TestTripService_Get_NotOwned(t *testing.T) {
	r := &mockTripRepo{
		getOwned: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	_, err := service.NewTripService(r).Get(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Lists_NeverNil(t *testing.T) {
	empty := domain.Page[domain.Trip]{}
	r := &mockTripRepo{
		listByOwner: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) (domain.Page[domain.Trip], error) {
			return empty, nil
		},
		listPublic: func(_ context.Context, _ domain.PaginationParams) (domain.Page[domain.Trip], error) {
			return empty, nil
		},
		listSharedWith: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) (domain.Page[domain.Trip], error) {
			return empty, nil
		},
	}
	svc := service.NewTripService(r)
	ctx := context.Background()
	p := domain.PaginationParams{Page: 1, Limit: 20}

	mine, err := svc.ListMine(ctx, uuid.New(), p)
	require.NoError(t, err)
	public, err := svc.ListPublic(ctx, p)
	require.NoError(t, err)
	shared, err := svc.ListShared(ctx, uuid.New(), p)
	require.NoError(t, err)

	assert.NotNil(t, mine.Items)
	assert.NotNil(t, public.Items)
	assert.NotNil(t, shared.Items)
}

func TestTripService_ListMine_PassesParams(t *testing.T) {
	owner := uuid.New()
	p := domain.PaginationParams{Page: 3, Limit: 10}
	r := &mockTripRepo{
		listByOwner: func(_ context.Context, gotOwner uuid.UUID, gotP domain.PaginationParams) (domain.Page[domain.Trip], error) {
			assert.Equal(t, owner, gotOwner)
			assert.Equal(t, p, gotP)
			return domain.Page[domain.Trip]{Items: []domain.Trip{validTrip()}, Total: 21}, nil
		},
	}

	got, err := service.NewTripService(r).ListMine(context.Background(), owner, p)

	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, int64(21), got.Total)
}

// ---- Update ----------------------------------------------------------------

func TestTripService_Update_NoDatesSkipsLookup(t *testing.T) {
	title := "Kyoto"
	// getOwned is unset: calling it would panic.
	_, err := service.NewTripService(echoRepo()).Update(context.Background(), uuid.New(), uuid.New(), domain.TripPatch{Title: &title})

	assert.NoError(t, err)
}

func TestTripService_Update_BothDatesChecked(t *testing.T) {
	start, end := date(2025, 5, 10), date(2025, 5, 1)

	_, err := service.NewTripService(echoRepo()).Update(context.Background(), uuid.New(), uuid.New(),
		domain.TripPatch{StartDate: &start, EndDate: &end})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_EndDateCheckedAgainstStoredStart(t *testing.T) {
	stored := validTrip()
	stored.EndDate = date(2025, 4, 5)
	r := echoRepo()
	r.getOwned = func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) { return stored, nil }
	svc := service.NewTripService(r)

	before := date(2025, 3, 31)
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), domain.TripPatch{EndDate: &before})
	assert.ErrorIs(t, err, domain.ErrValidation)

	after := date(2025, 4, 20)
	_, err = svc.Update(context.Background(), uuid.New(), uuid.New(), domain.TripPatch{EndDate: &after})
	assert.NoError(t, err)
}

func TestTripService_Update_StartDateCheckedAgainstStoredEnd(t *testing.T) {
	stored := validTrip()
	stored.EndDate = date(2025, 4, 5)
	r := echoRepo()
	r.getOwned = func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) { return stored, nil }

	late := date(2025, 4, 6)
	_, err := service.NewTripService(r).Update(context.Background(), uuid.New(), uuid.New(), domain.TripPatch{StartDate: &late})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_EmptyPatchReadsWithoutWriting(t *testing.T) {
	stored := validTrip()
	stored.ID = uuid.New()
	r := &mockTripRepo{
		getOwned: func(_ context.Context, _, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, stored.ID, id)
			return stored, nil
		},
		// update is unset: calling it would panic.
	}

	got, err := service.NewTripService(r).Update(context.Background(), uuid.New(), stored.ID, domain.TripPatch{})

	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestTripService_Update_NotOwned(t *testing.T) {
	r := &mockTripRepo{
		getOwned: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := service.NewTripService(r).Update(context.Background(), uuid.New(), uuid.New(), domain.TripPatch{StartDate: &start})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_NotOwned(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	err := service.NewTripService(r).Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
