package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/middleware"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

type tripEnvelope struct {
	Trip tripResponse `json:"trip"`
}

// createTrip handles POST /api/trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) error {
	var in validate.TripInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	trip, err := tripFromInput(in)
	if err != nil {
		return err
	}

	created, err := s.trips.Create(r.Context(), middleware.UserID(r.Context()), trip)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, tripEnvelope{Trip: tripToResponse(created)})
	return nil
}

// listTrips handles GET /api/trips: the caller's own trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) error {
	p := parsePagination(r, domain.DefaultPageLimit)
	page, err := s.trips.ListMine(r.Context(), middleware.UserID(r.Context()), p)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, tripPageToResponse(page, p))
	return nil
}

// listPublicTrips handles GET /api/trips/public.
func (s *Server) listPublicTrips(w http.ResponseWriter, r *http.Request) error {
	p := parsePagination(r, domain.DefaultPageLimit)
	page, err := s.trips.ListPublic(r.Context(), p)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, tripPageToResponse(page, p))
	return nil
}

// listSharedTrips handles GET /api/trips/shared: trips others shared with the caller.
func (s *Server) listSharedTrips(w http.ResponseWriter, r *http.Request) error {
	p := parsePagination(r, domain.DefaultPageLimit)
	page, err := s.trips.ListShared(r.Context(), middleware.UserID(r.Context()), p)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, tripPageToResponse(page, p))
	return nil
}

// getTrip handles GET /api/trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) error {
	id, err := tripIDParam(r)
	if err != nil {
		return err
	}
	trip, err := s.trips.Get(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		return notFound(err, "Trip not found")
	}
	writeJSON(w, http.StatusOK, tripEnvelope{Trip: tripToResponse(trip)})
	return nil
}

// updateTrip handles PUT /api/trips/{id}. Only fields present in the body change.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) error {
	id, err := tripIDParam(r)
	if err != nil {
		return err
	}
	var in validate.TripUpdateInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	patch, err := patchFromInput(in)
	if err != nil {
		return err
	}

	trip, err := s.trips.Update(r.Context(), middleware.UserID(r.Context()), id, patch)
	if err != nil {
		return notFound(err, "Trip not found")
	}
	writeJSON(w, http.StatusOK, tripEnvelope{Trip: tripToResponse(trip)})
	return nil
}

// deleteTrip handles DELETE /api/trips/{id}.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) error {
	id, err := tripIDParam(r)
	if err != nil {
		return err
	}
	if err := s.trips.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		return notFound(err, "Trip not found")
	}
	writeJSON(w, http.StatusOK, successBody{Success: true})
	return nil
}

// tripIDParam binds the {id} path segment. A malformed id cannot name an
// owned trip, so it is a 404 like any other miss.
func tripIDParam(r *http.Request) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return uuid.Nil, &apiError{status: http.StatusNotFound, msg: "Trip not found", err: err}
	}
	return id, nil
}

// tripFromInput converts a validated create body. Dates and ids were already
// checked by tags; a parse failure here is still reported as a 400.
func tripFromInput(in validate.TripInput) (domain.Trip, error) {
	start, err := parseDate("startDate", in.StartDate)
	if err != nil {
		return domain.Trip{}, err
	}
	var end time.Time
	if in.EndDate != "" {
		if end, err = parseDate("endDate", in.EndDate); err != nil {
			return domain.Trip{}, err
		}
	}
	shared, err := parseUUIDs(in.SharedWith)
	if err != nil {
		return domain.Trip{}, err
	}

	return domain.Trip{
		Title:          in.Title,
		Destination:    in.Destination,
		StartDate:      start,
		EndDate:        end,
		Status:         domain.TripStatus(in.Status),
		Visibility:     domain.Visibility(in.Visibility),
		Description:    in.Description,
		CoverPhoto:     in.CoverPhoto,
		TripImages:     in.TripImages,
		Weather:        in.Weather,
		OverallComment: in.OverallComment,
		Airlines:       in.Airlines,
		Accommodations: in.Accommodations,
		Segments:       in.Segments,
		SharedWith:     shared,
	}, nil
}

// patchFromInput converts a validated update body field by field.
func patchFromInput(in validate.TripUpdateInput) (domain.TripPatch, error) {
	p := domain.TripPatch{
		Title:          in.Title,
		Destination:    in.Destination,
		Description:    in.Description,
		CoverPhoto:     in.CoverPhoto,
		TripImages:     in.TripImages,
		Weather:        in.Weather,
		OverallComment: in.OverallComment,
		Airlines:       in.Airlines,
		Accommodations: in.Accommodations,
		Segments:       in.Segments,
	}
	if in.StartDate != nil {
		d, err := parseDate("startDate", *in.StartDate)
		if err != nil {
			return domain.TripPatch{}, err
		}
		p.StartDate = &d
	}
	if in.EndDate != nil {
		d, err := parseDate("endDate", *in.EndDate)
		if err != nil {
			return domain.TripPatch{}, err
		}
		p.EndDate = &d
	}
	if in.Status != nil {
		st := domain.TripStatus(*in.Status)
		p.Status = &st
	}
	if in.Visibility != nil {
		v := domain.Visibility(*in.Visibility)
		p.Visibility = &v
	}
	if in.SharedWith != nil {
		ids, err := parseUUIDs(*in.SharedWith)
		if err != nil {
			return domain.TripPatch{}, err
		}
		p.SharedWith = &ids
	}
	return p, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(validate.DateLayout, s)
	if err != nil {
		return time.Time{}, validate.Fail(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func parseUUIDs(in []string) ([]uuid.UUID, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]uuid.UUID, len(in))
	for i, s := range in {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, validate.Fail("sharedWith", "must contain valid UUIDs")
		}
		out[i] = id
	}
	return out, nil
}
