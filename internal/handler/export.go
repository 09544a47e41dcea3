package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/middleware"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "destination", "start_date", "end_date", "status", "visibility",
	"segment_type", "segment_title", "from", "to", "segment_date", "price",
}

// exportRow is the JSON form of domain.ExportRow. Empty segment fields are omitted.
type exportRow struct {
	TripID       uuid.UUID          `json:"tripId"`
	TripTitle    string             `json:"tripTitle"`
	Destination  string             `json:"destination"`
	StartDate    openapi_types.Date `json:"startDate"`
	EndDate      openapi_types.Date `json:"endDate"`
	Status       domain.TripStatus  `json:"status"`
	Visibility   domain.Visibility  `json:"visibility"`
	SegmentType  domain.SegmentType `json:"segmentType,omitempty"`
	SegmentTitle string             `json:"segmentTitle,omitempty"`
	From         string             `json:"from,omitempty"`
	To           string             `json:"to,omitempty"`
	Date         string             `json:"date,omitempty"`
	Price        *float64           `json:"price,omitempty"`
}

// exportTrips handles GET /api/trips/export: the caller's itinerary as a
// flat table. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) exportTrips(w http.ResponseWriter, r *http.Request) error {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		return validate.Fail("format", "must be csv or json")
	}
	if format != nil && *format != "csv" && *format != "json" {
		return validate.Fail("format", "must be csv or json")
	}

	rows, err := s.export.Export(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		return err
	}

	if format != nil && *format == "csv" {
		return writeCSV(w, rows)
	}
	out := make([]exportRow, len(rows))
	for i, row := range rows {
		out[i] = rowToJSON(row)
	}
	writeJSON(w, http.StatusOK, map[string][]exportRow{"rows": out})
	return nil
}

func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(rowToCSVRecord(row))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func rowToJSON(r domain.ExportRow) exportRow {
	return exportRow{
		TripID:       r.TripID,
		TripTitle:    r.TripTitle,
		Destination:  r.Destination,
		StartDate:    openapi_types.Date{Time: r.StartDate},
		EndDate:      openapi_types.Date{Time: r.EndDate},
		Status:       r.Status,
		Visibility:   r.Visibility,
		SegmentType:  r.SegmentType,
		SegmentTitle: r.SegmentTitle,
		From:         r.From,
		To:           r.To,
		Date:         r.Date,
		Price:        r.Price,
	}
}

// rowToCSVRecord encodes a row as a flat string slice. A missing price is empty.
func rowToCSVRecord(r domain.ExportRow) []string {
	price := ""
	if r.Price != nil {
		price = strconv.FormatFloat(*r.Price, 'f', 2, 64)
	}
	return []string{
		r.TripID.String(), r.TripTitle, r.Destination,
		r.StartDate.Format(validate.DateLayout), r.EndDate.Format(validate.DateLayout),
		string(r.Status), string(r.Visibility),
		string(r.SegmentType), r.SegmentTitle, r.From, r.To, r.Date, price,
	}
}
