package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/repo"
)

// createUser inserts a user with a unique email so tests can own trips and
// exchange messages.
func createUser(t *testing.T, users repo.UserRepo, name string) domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), domain.User{
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixt",
		Name:         name,
	})
	require.NoError(t, err)
	return u
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// tripFixture returns a trip owned by ownerID with every field populated.
// Callers can override individual fields after calling this function.
func tripFixture(ownerID uuid.UUID) domain.Trip {
	price := 850.0
	return domain.Trip{
		UserID:         ownerID,
		Title:          "Japan",
		Destination:    "Tokyo",
		StartDate:      date(2025, 4, 1),
		EndDate:        date(2025, 4, 12),
		Status:         domain.TripStatusFuture,
		Visibility:     domain.VisibilityPrivate,
		Description:    "Cherry blossom season",
		CoverPhoto:     "covers/tokyo.jpg",
		TripImages:     []string{"img/1.jpg", "img/2.jpg"},
		Weather:        "mild",
		OverallComment: "",
		Airlines:       []domain.Airline{{Name: "JAL", FlightNumber: "JL5"}},
		Accommodations: []domain.Accommodation{{Name: "Park Hyatt", CheckIn: "2025-04-01"}},
		Segments:       []domain.Segment{{Type: domain.SegmentFlight, From: "SFO", To: "HND", Price: &price}},
		SharedWith:     []uuid.UUID{},
	}
}
