package validate

import "github.com/tripshare/tripshare/backend/internal/domain"

// DateLayout is the wire format of trip dates.
const DateLayout = "2006-01-02"

// RegisterInput is the body of POST /api/auth/register.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1"`
}

// LoginInput is the body of POST /api/auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// ProfileInput is the body of PUT /api/users/me. Absent fields are left unchanged.
type ProfileInput struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
	Bio  *string `json:"bio" validate:"omitempty,max=500"`
}

// MessageInput is the body of POST /api/messages.
type MessageInput struct {
	RecipientID string `json:"recipientId" validate:"required,uuid"`
	Content     string `json:"content" validate:"required,min=1,max=1000"`
}

// ShareInput is the body of POST /api/trips/{id}/share.
type ShareInput struct {
	Email string `json:"email" validate:"required,email"`
}

// TripInput is the body of POST /api/trips.
// EndDate, Status and Visibility are defaulted by the service when empty.
type TripInput struct {
	Title          string                 `json:"title" validate:"required,min=1"`
	Destination    string                 `json:"destination" validate:"required,min=1"`
	StartDate      string                 `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate        string                 `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status         string                 `json:"status" validate:"omitempty,oneof=future taken"`
	Visibility     string                 `json:"visibility" validate:"omitempty,oneof=public private"`
	Description    string                 `json:"description"`
	CoverPhoto     string                 `json:"coverPhoto"`
	TripImages     []string               `json:"tripImages"`
	Weather        string                 `json:"weather"`
	OverallComment string                 `json:"overallComment"`
	Airlines       []domain.Airline       `json:"airlines"`
	Accommodations []domain.Accommodation `json:"accommodations"`
	Segments       []domain.Segment       `json:"segments" validate:"omitempty,dive"`
	SharedWith     []string               `json:"sharedWith" validate:"omitempty,dive,uuid"`
}

// TripUpdateInput is the body of PUT /api/trips/{id}. Every field is optional;
// only the fields present in the JSON body are applied.
type TripUpdateInput struct {
	Title          *string                 `json:"title" validate:"omitempty,min=1"`
	Destination    *string                 `json:"destination" validate:"omitempty,min=1"`
	StartDate      *string                 `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string                 `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status         *string                 `json:"status" validate:"omitempty,oneof=future taken"`
	Visibility     *string                 `json:"visibility" validate:"omitempty,oneof=public private"`
	Description    *string                 `json:"description"`
	CoverPhoto     *string                 `json:"coverPhoto"`
	TripImages     *[]string               `json:"tripImages"`
	Weather        *string                 `json:"weather"`
	OverallComment *string                 `json:"overallComment"`
	Airlines       *[]domain.Airline       `json:"airlines"`
	Accommodations *[]domain.Accommodation `json:"accommodations"`
	Segments       *[]domain.Segment       `json:"segments" validate:"omitempty,dive"`
	SharedWith     *[]string               `json:"sharedWith" validate:"omitempty,dive,uuid"`
}
