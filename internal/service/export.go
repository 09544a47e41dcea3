package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/repo"
)

// ExportService flattens a user's trips into itinerary rows.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided TripRepo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per segment across all of ownerID's trips,
// newest trip first. Trips with no segments contribute one row with empty
// segment fields. Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}
	p := domain.PaginationParams{Page: 1, Limit: domain.MaxPageLimit}
	for {
		page, err := s.trips.ListByOwner(ctx, ownerID, p)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		for _, t := range page.Items {
			rows = append(rows, exportRows(t)...)
		}
		if !domain.NewPageMeta(p, page.Total).HasMore || len(page.Items) == 0 {
			return rows, nil
		}
		p.Page++
	}
}

func exportRows(t domain.Trip) []domain.ExportRow {
	base := domain.ExportRow{
		TripID:      t.ID,
		TripTitle:   t.Title,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Status:      t.Status,
		Visibility:  t.Visibility,
	}
	if len(t.Segments) == 0 {
		return []domain.ExportRow{base}
	}

	out := make([]domain.ExportRow, 0, len(t.Segments))
	for _, seg := range t.Segments {
		row := base
		row.SegmentType = seg.Type
		row.SegmentTitle = seg.Title
		row.From = seg.From
		row.To = seg.To
		row.Date = seg.Date
		row.Price = seg.Price
		out = append(out, row)
	}
	return out
}
