package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExportRow is one line of an itinerary export.
// It is a flat, denormalized view: one row per segment, with trip fields
// repeated for every segment on that trip. Trips with no segments yield one
// row with zero values for all segment fields.
type ExportRow struct {
	// Trip fields, repeated for every segment of the trip.
	TripID      uuid.UUID
	TripTitle   string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Status      TripStatus
	Visibility  Visibility

	// Segment fields, zero when the trip has no segments.
	SegmentType  SegmentType
	SegmentTitle string
	From         string
	To           string
	Date         string
	Price        *float64
}
