package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripshare/tripshare/backend/internal/domain"
)

// userResponse is the public view of a user. The password hash never leaves
// the server.
type userResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Bio        string     `json:"bio"`
	LastActive *time.Time `json:"lastActive"`
	IsOnline   bool       `json:"isOnline"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Bio:        u.Bio,
		LastActive: u.LastActive,
		IsOnline:   u.IsOnline,
		CreatedAt:  u.CreatedAt,
	}
}

func usersToResponse(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = userToResponse(u)
	}
	return out
}

type messageResponse struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"senderId"`
	RecipientID uuid.UUID `json:"recipientId"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

func messageToResponse(m domain.Message) messageResponse {
	return messageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}

// tripResponse is the wire form of a trip. Dates are "YYYY-MM-DD".
type tripResponse struct {
	ID             uuid.UUID              `json:"id"`
	UserID         uuid.UUID              `json:"userId"`
	OwnerName      string                 `json:"ownerName,omitempty"`
	Title          string                 `json:"title"`
	Destination    string                 `json:"destination"`
	StartDate      openapi_types.Date     `json:"startDate"`
	EndDate        openapi_types.Date     `json:"endDate"`
	Status         domain.TripStatus      `json:"status"`
	Visibility     domain.Visibility      `json:"visibility"`
	Description    string                 `json:"description"`
	CoverPhoto     string                 `json:"coverPhoto"`
	TripImages     []string               `json:"tripImages"`
	Weather        string                 `json:"weather"`
	OverallComment string                 `json:"overallComment"`
	Airlines       []domain.Airline       `json:"airlines"`
	Accommodations []domain.Accommodation `json:"accommodations"`
	Segments       []domain.Segment       `json:"segments"`
	SharedWith     []uuid.UUID            `json:"sharedWith"`
	TotalCost      float64                `json:"totalCost"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		OwnerName:      t.OwnerName,
		Title:          t.Title,
		Destination:    t.Destination,
		StartDate:      openapi_types.Date{Time: t.StartDate},
		EndDate:        openapi_types.Date{Time: t.EndDate},
		Status:         t.Status,
		Visibility:     t.Visibility,
		Description:    t.Description,
		CoverPhoto:     t.CoverPhoto,
		TripImages:     orEmpty(t.TripImages),
		Weather:        t.Weather,
		OverallComment: t.OverallComment,
		Airlines:       orEmpty(t.Airlines),
		Accommodations: orEmpty(t.Accommodations),
		Segments:       orEmpty(t.Segments),
		SharedWith:     orEmpty(t.SharedWith),
		TotalCost:      t.TotalCost(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// tripListResponse is the envelope of every trip listing.
type tripListResponse struct {
	Trips      []tripResponse  `json:"trips"`
	Pagination domain.PageMeta `json:"pagination"`
}

func tripPageToResponse(page domain.Page[domain.Trip], p domain.PaginationParams) tripListResponse {
	trips := make([]tripResponse, len(page.Items))
	for i, t := range page.Items {
		trips[i] = tripToResponse(t)
	}
	return tripListResponse{Trips: trips, Pagination: domain.NewPageMeta(p, page.Total)}
}

// orEmpty keeps arrays as [] rather than null on the wire.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
