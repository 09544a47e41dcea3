package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripshare/tripshare/backend/internal/auth"
	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/handler"
	"github.com/tripshare/tripshare/backend/internal/service"
)

// ---- mock servicers --------------------------------------------------------
// Function-field doubles: set only the methods a test needs.

type mockAuth struct {
	register func(ctx context.Context, email, password, name string) (service.Session, error)
	login    func(ctx context.Context, email, password string) (service.Session, error)
}

func (m *mockAuth) Register(ctx context.Context, email, password, name string) (service.Session, error) {
	return m.register(ctx, email, password, name)
}
func (m *mockAuth) Login(ctx context.Context, email, password string) (service.Session, error) {
	return m.login(ctx, email, password)
}

var _ handler.AuthServicer = (*mockAuth)(nil)

type mockUsers struct {
	me            func(ctx context.Context, id uuid.UUID) (domain.User, error)
	updateProfile func(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error)
	heartbeat     func(ctx context.Context, id uuid.UUID) error
	online        func(ctx context.Context, callerID uuid.UUID) ([]domain.User, error)
}

func (m *mockUsers) Me(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.me(ctx, id)
}
func (m *mockUsers) UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error) {
	return m.updateProfile(ctx, id, patch)
}
func (m *mockUsers) Heartbeat(ctx context.Context, id uuid.UUID) error {
	return m.heartbeat(ctx, id)
}
func (m *mockUsers) Online(ctx context.Context, callerID uuid.UUID) ([]domain.User, error) {
	return m.online(ctx, callerID)
}

var _ handler.UserServicer = (*mockUsers)(nil)

type mockMessages struct {
	send         func(ctx context.Context, senderID, recipientID uuid.UUID, content string) (domain.Message, error)
	conversation func(ctx context.Context, callerID, otherID uuid.UUID) ([]domain.Message, error)
}

func (m *mockMessages) Send(ctx context.Context, senderID, recipientID uuid.UUID, content string) (domain.Message, error) {
	return m.send(ctx, senderID, recipientID, content)
}
func (m *mockMessages) Conversation(ctx context.Context, callerID, otherID uuid.UUID) ([]domain.Message, error) {
	return m.conversation(ctx, callerID, otherID)
}

var _ handler.MessageServicer = (*mockMessages)(nil)

type mockTrips struct {
	create     func(ctx context.Context, ownerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	get        func(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)
	listMine   func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	listPublic func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	listShared func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update     func(ctx context.Context, ownerID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete     func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockTrips) Create(ctx context.Context, ownerID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, ownerID, trip)
}
func (m *mockTrips) Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, ownerID, id)
}
func (m *mockTrips) ListMine(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listMine(ctx, ownerID, p)
}
func (m *mockTrips) ListPublic(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listPublic(ctx, p)
}
func (m *mockTrips) ListShared(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listShared(ctx, userID, p)
}
func (m *mockTrips) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, ownerID, id, patch)
}
func (m *mockTrips) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

var _ handler.TripServicer = (*mockTrips)(nil)

type mockShares struct {
	shareByEmail func(ctx context.Context, ownerID, tripID uuid.UUID, email string) (service.ShareOutcome, error)
}

func (m *mockShares) ShareByEmail(ctx context.Context, ownerID, tripID uuid.UUID, email string) (service.ShareOutcome, error) {
	return m.shareByEmail(ctx, ownerID, tripID, email)
}

var _ handler.ShareServicer = (*mockShares)(nil)

type mockExport struct {
	export func(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExport) Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, ownerID)
}

var _ handler.ExportServicer = (*mockExport)(nil)

// ---- helpers ---------------------------------------------------------------

const testSecret = "handler-test-secret"

// testCaller is the user every authenticated test request acts as.
var testCaller = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// newHTTPHandler wires a Server with the given deps and the test token secret.
func newHTTPHandler(d handler.Deps) http.Handler {
	d.Tokens = auth.NewTokens(testSecret)
	return handler.NewServer(d).Routes()
}

// do sends a request with an optional JSON body. When authed is true the
// request carries a valid token for testCaller.
func do(t *testing.T, h http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := auth.NewTokens(testSecret).Issue(testCaller, "caller@example.com")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the response body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
