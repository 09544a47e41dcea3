// Package handler implements the HTTP handlers for the trip sharing API.
// All handlers are methods on Server. They are split into domain-specific
// files (auth.go, trip.go, etc.) but share the same Server struct so they can
// reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/middleware"
	"github.com/tripshare/tripshare/backend/internal/service"
	"github.com/tripshare/tripshare/backend/spec"
)

// The servicer interfaces are defined here, in the consumer package, so
// handler tests can inject hand-written mocks without a database.

// AuthServicer registers and logs in users.
type AuthServicer interface {
	Register(ctx context.Context, email, password, name string) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
}

// UserServicer covers profile and presence.
type UserServicer interface {
	Me(ctx context.Context, id uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error)
	Heartbeat(ctx context.Context, id uuid.UUID) error
	Online(ctx context.Context, callerID uuid.UUID) ([]domain.User, error)
}

// MessageServicer covers direct messages.
type MessageServicer interface {
	Send(ctx context.Context, senderID, recipientID uuid.UUID, content string) (domain.Message, error)
	Conversation(ctx context.Context, callerID, otherID uuid.UUID) ([]domain.Message, error)
}

// TripServicer defines the trip operations, all scoped to the caller.
type TripServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)
	ListMine(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	ListPublic(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	ListShared(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ShareServicer shares trips by email.
type ShareServicer interface {
	ShareByEmail(ctx context.Context, ownerID, tripID uuid.UUID, email string) (service.ShareOutcome, error)
}

// ExportServicer flattens the caller's trips for download.
type ExportServicer interface {
	Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error)
}

// Deps holds everything the Server needs. Handlers whose servicer is nil are
// still routed; tests set only the ones they exercise.
type Deps struct {
	Auth     AuthServicer
	Users    UserServicer
	Messages MessageServicer
	Trips    TripServicer
	Shares   ShareServicer
	Export   ExportServicer
	Tokens   middleware.TokenVerifier
	Logger   *slog.Logger

	// Development adds validation details to 400 responses.
	Development bool
}

// Server serves the API.
type Server struct {
	auth     AuthServicer
	users    UserServicer
	messages MessageServicer
	trips    TripServicer
	shares   ShareServicer
	export   ExportServicer
	tokens   middleware.TokenVerifier
	log      *slog.Logger
	dev      bool
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		auth:     d.Auth,
		users:    d.Users,
		messages: d.Messages,
		trips:    d.Trips,
		shares:   d.Shares,
		export:   d.Export,
		tokens:   d.Tokens,
		log:      log,
		dev:      d.Development,
	}
}

// Routes returns the router for every endpoint. Cross-cutting middleware
// (request id, logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", serveSpec)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.wrap(s.register))
		r.Post("/auth/login", s.wrap(s.login))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.tokens))

			r.Get("/users/me", s.wrap(s.getMe))
			r.Put("/users/me", s.wrap(s.updateMe))
			r.Post("/users/heartbeat", s.wrap(s.heartbeat))
			r.Get("/users/online", s.wrap(s.listOnline))

			r.Post("/messages", s.wrap(s.sendMessage))
			r.Get("/messages/{userId}", s.wrap(s.getConversation))

			r.Post("/trips", s.wrap(s.createTrip))
			r.Get("/trips", s.wrap(s.listTrips))
			r.Get("/trips/public", s.wrap(s.listPublicTrips))
			r.Get("/trips/shared", s.wrap(s.listSharedTrips))
			r.Get("/trips/export", s.wrap(s.exportTrips))
			r.Get("/trips/{id}", s.wrap(s.getTrip))
			r.Put("/trips/{id}", s.wrap(s.updateTrip))
			r.Delete("/trips/{id}", s.wrap(s.deleteTrip))
			r.Post("/trips/{id}/share", s.wrap(s.shareTrip))
		})
	})
	return r
}

// getHealth handles GET /healthz.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serveSpec handles GET /openapi.yaml.
func serveSpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
