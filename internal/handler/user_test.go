package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/handler"
)

func TestGetMe(t *testing.T) {
	svc := &mockUsers{
		me: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			assert.Equal(t, testCaller, id)
			return domain.User{ID: id, Email: "caller@example.com", Name: "Cal"}, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Users: svc}), http.MethodGet, "/api/users/me", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, testCaller.String(), user["id"])
	assert.Equal(t, "Cal", user["name"])
}

func TestGetMe_Missing(t *testing.T) {
	svc := &mockUsers{
		me: func(_ context.Context, _ uuid.UUID) (domain.User, error) { return domain.User{}, domain.ErrNotFound },
	}

	rec := do(t, newHTTPHandler(handler.Deps{Users: svc}), http.MethodGet, "/api/users/me", "", true)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}

func TestUpdateMe_OnlyPresentFields(t *testing.T) {
	svc := &mockUsers{
		updateProfile: func(_ context.Context, _ uuid.UUID, p domain.ProfilePatch) (domain.User, error) {
			assert.Nil(t, p.Name)
			require.NotNil(t, p.Bio)
			return domain.User{ID: testCaller, Name: "Cal", Bio: *p.Bio}, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Users: svc}), http.MethodPut, "/api/users/me", `{"bio":"hi"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", decode(t, rec)["user"].(map[string]any)["bio"])
}

func TestUpdateMe_EmptyName(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Users: &mockUsers{}}), http.MethodPut, "/api/users/me", `{"name":""}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHeartbeat(t *testing.T) {
	called := false
	svc := &mockUsers{
		heartbeat: func(_ context.Context, id uuid.UUID) error {
			called = id == testCaller
			return nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Users: svc}), http.MethodPost, "/api/users/heartbeat", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.True(t, called)
}

func TestListOnline(t *testing.T) {
	seen := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	svc := &mockUsers{
		online: func(_ context.Context, _ uuid.UUID) ([]domain.User, error) {
			return []domain.User{{ID: uuid.New(), Name: "Bo", IsOnline: true, LastActive: &seen}}, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Users: svc}), http.MethodGet, "/api/users/online", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	users := decode(t, rec)["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "2025-04-01T09:00:00Z", users[0].(map[string]any)["lastActive"])
}

func TestListOnline_EmptyIsArray(t *testing.T) {
	svc := &mockUsers{
		online: func(_ context.Context, _ uuid.UUID) ([]domain.User, error) { return []domain.User{}, nil },
	}

	rec := do(t, newHTTPHandler(handler.Deps{Users: svc}), http.MethodGet, "/api/users/online", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":[]}`, rec.Body.String())
}
