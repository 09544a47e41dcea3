// Package domain contains the core data types for the trip sharing API.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus records whether a trip is still planned or already taken.
type TripStatus string

const (
	TripStatusFuture TripStatus = "future"
	TripStatusTaken  TripStatus = "taken"
)

// Visibility controls who besides the owner can read a trip.
// Sharing with specific users is tracked separately in Trip.SharedWith.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// SegmentType is the kind of an itinerary line item.
type SegmentType string

const (
	SegmentFlight        SegmentType = "flight"
	SegmentHotel         SegmentType = "hotel"
	SegmentAccommodation SegmentType = "accommodation"
	SegmentTransport     SegmentType = "transport"
)

// Airline is a flight booked for a trip. Stored as an element of a jsonb array.
type Airline struct {
	Name          string `json:"name"`
	FlightNumber  string `json:"flightNumber,omitempty"`
	Departure     string `json:"departure,omitempty"`
	Arrival       string `json:"arrival,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Accommodation is a place to stay during a trip.
type Accommodation struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Segment is one itinerary line item. Price is nil when unknown.
type Segment struct {
	Type    SegmentType `json:"type" validate:"omitempty,oneof=flight hotel accommodation transport"`
	Title   string      `json:"title,omitempty"`
	From    string      `json:"from,omitempty"`
	To      string      `json:"to,omitempty"`
	Date    string      `json:"date,omitempty"`
	Details string      `json:"details,omitempty"`
	Price   *float64    `json:"price,omitempty"`
}

// Trip is the top-level aggregate: everything a user records about one journey.
// StartDate and EndDate are calendar dates (UTC midnight).
type Trip struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Title          string
	Destination    string
	StartDate      time.Time
	EndDate        time.Time
	Status         TripStatus
	Visibility     Visibility
	Description    string
	CoverPhoto     string
	TripImages     []string
	Weather        string
	OverallComment string
	Airlines       []Airline
	Accommodations []Accommodation
	Segments       []Segment
	SharedWith     []uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// OwnerName is the owner's display name. Only populated by the public and
	// shared-with-me listings, which join the users table.
	OwnerName string
}

// TotalCost sums the prices of all segments that carry one.
func (t Trip) TotalCost() float64 {
	var total float64
	for _, s := range t.Segments {
		if s.Price != nil {
			total += *s.Price
		}
	}
	return total
}

// IsSharedWith reports whether userID is on the trip's share list.
func (t Trip) IsSharedWith(userID uuid.UUID) bool {
	for _, id := range t.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// TripPatch is a partial update. A nil field is left untouched; a non-nil
// field overwrites the stored value (including with an empty value).
type TripPatch struct {
	Title          *string
	Destination    *string
	StartDate      *time.Time
	EndDate        *time.Time
	Status         *TripStatus
	Visibility     *Visibility
	Description    *string
	CoverPhoto     *string
	TripImages     *[]string
	Weather        *string
	OverallComment *string
	Airlines       *[]Airline
	Accommodations *[]Accommodation
	Segments       *[]Segment
	SharedWith     *[]uuid.UUID
}

// IsEmpty reports whether the patch changes nothing.
func (p TripPatch) IsEmpty() bool {
	return p == TripPatch{}
}
