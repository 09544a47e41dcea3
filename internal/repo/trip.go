package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripshare/tripshare/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// Every read or write that is not a public/shared listing is scoped by owner:
// a trip owned by someone else behaves exactly like a missing trip.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetOwned retrieves a trip by id if it belongs to ownerID.
	// Returns domain.ErrNotFound otherwise.
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns one page of the owner's trips, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)

	// ListPublic returns one page of public trips, newest first, with OwnerName set.
	ListPublic(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)

	// ListSharedWith returns one page of trips whose share list contains userID,
	// newest first, with OwnerName set.
	ListSharedWith(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)

	// Update applies the fields present in patch to an owned trip, stamps
	// updated_at, and returns the updated record.
	// Returns domain.ErrNotFound if no owned trip matches.
	Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)

	// Delete removes an owned trip. Returns domain.ErrNotFound if none matched.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// AddSharedWith appends recipientID to an owned trip's share list in a single
	// statement. Idempotent: an id already on the list is not added twice.
	// Returns domain.ErrNotFound if no owned trip matches.
	AddSharedWith(ctx context.Context, ownerID, id, recipientID uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns lists every trips column, qualified with the alias t.
const tripColumns = `t.id, t.user_id, t.title, t.destination, t.start_date, t.end_date,
	t.status, t.visibility, t.description, t.cover_photo, t.trip_images, t.weather,
	t.overall_comment, t.airlines, t.accommodations, t.segments, t.shared_with,
	t.created_at, t.updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips AS t (user_id, title, destination, start_date, end_date, status,
			visibility, description, cover_photo, trip_images, weather, overall_comment,
			airlines, accommodations, segments, shared_with)
		VALUES (@user_id, @title, @destination, @start_date, @end_date, @status,
			@visibility, @description, @cover_photo, @trip_images, @weather, @overall_comment,
			@airlines, @accommodations, @segments, @shared_with)
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	result, err := r.queryOne(ctx, q, args)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetOwned retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips t WHERE t.id = @id AND t.user_id = @owner_id`

	result, err := r.queryOne(ctx, q, pgx.NamedArgs{"id": pgUUID(id), "owner_id": pgUUID(ownerID)})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetOwned: %w", err)
	}
	return result, nil
}

// ListByOwner returns the owner's trips ordered by created_at descending.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	page, err := r.listPaged(ctx, "t.user_id = @user_id", pgx.NamedArgs{"user_id": pgUUID(ownerID)}, false, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	return page, nil
}

// ListPublic returns public trips ordered by created_at descending.
func (r *pgTripRepo) ListPublic(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	page, err := r.listPaged(ctx, "t.visibility = 'public'", pgx.NamedArgs{}, true, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("repo.TripRepo.ListPublic: %w", err)
	}
	return page, nil
}

// ListSharedWith returns trips shared with userID ordered by created_at descending.
func (r *pgTripRepo) ListSharedWith(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	page, err := r.listPaged(ctx, "@user_id = ANY(t.shared_with)", pgx.NamedArgs{"user_id": pgUUID(userID)}, true, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("repo.TripRepo.ListSharedWith: %w", err)
	}
	return page, nil
}

// listPaged counts the rows matching where and fetches one page of them.
// where is a fixed SQL fragment chosen by the caller, never user input.
func (r *pgTripRepo) listPaged(ctx context.Context, where string, args pgx.NamedArgs, withOwner bool, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	var total int64
	countQ := `SELECT count(*) FROM trips t WHERE ` + where
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("count: %w", err)
	}

	selectQ := `SELECT ` + tripColumns + ` FROM trips t WHERE ` + where
	if withOwner {
		selectQ = `SELECT ` + tripColumns + `, u.name AS owner_name
			FROM trips t JOIN users u ON u.id = t.user_id
			WHERE ` + where
	}
	selectQ += ` ORDER BY t.created_at DESC, t.id LIMIT @limit OFFSET @offset`

	pageArgs := pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()}
	for k, v := range args {
		pageArgs[k] = v
	}

	rows, err := r.db.Query(ctx, selectQ, pageArgs)
	if err != nil {
		return domain.Page[domain.Trip]{}, err
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[tripRow])
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("scan: %w", err)
	}

	trips := make([]domain.Trip, 0, len(collected))
	for _, row := range collected {
		t, err := row.toDomain()
		if err != nil {
			return domain.Page[domain.Trip]{}, err
		}
		trips = append(trips, t)
	}
	return domain.Page[domain.Trip]{Items: trips, Total: total}, nil
}

// Update applies a partial patch. Only the fields present in the patch are
// written; updated_at is always refreshed.
func (r *pgTripRepo) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	set, args, err := patchAssignments(patch)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	args["id"] = pgUUID(id)
	args["owner_id"] = pgUUID(ownerID)

	q := `UPDATE trips AS t SET ` + strings.Join(set, ", ") + `
		WHERE t.id = @id AND t.user_id = @owner_id
		RETURNING ` + tripColumns

	result, err := r.queryOne(ctx, q, args)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes an owned trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": pgUUID(id), "owner_id": pgUUID(ownerID)})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// AddSharedWith appends the recipient unless already present. The membership
// check and the append happen in one statement, so concurrent shares of the
// same trip cannot lose an append or add a duplicate.
func (r *pgTripRepo) AddSharedWith(ctx context.Context, ownerID, id, recipientID uuid.UUID) error {
	const q = `
		UPDATE trips
		SET shared_with = CASE
		        WHEN @recipient = ANY(shared_with) THEN shared_with
		        ELSE array_append(shared_with, @recipient)
		    END,
		    updated_at = CASE
		        WHEN @recipient = ANY(shared_with) THEN updated_at
		        ELSE now()
		    END
		WHERE id = @id AND user_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":        pgUUID(id),
		"owner_id":  pgUUID(ownerID),
		"recipient": pgUUID(recipientID),
	})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.AddSharedWith: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.AddSharedWith: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) queryOne(ctx context.Context, q string, args pgx.NamedArgs) (domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return domain.Trip{}, mapError(err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[tripRow])
	if err != nil {
		return domain.Trip{}, mapError(err)
	}
	return row.toDomain()
}

// ---- snake_case row mapping --------------------------------------------------

// tripRow is the storage shape of a trip. Its db tags are the column names;
// RowToStructByNameLax matches them against the result set, so OwnerName is
// only filled by queries that select owner_name.
type tripRow struct {
	ID             pgtype.UUID   `db:"id"`
	UserID         pgtype.UUID   `db:"user_id"`
	Title          string        `db:"title"`
	Destination    string        `db:"destination"`
	StartDate      pgtype.Date   `db:"start_date"`
	EndDate        pgtype.Date   `db:"end_date"`
	Status         string        `db:"status"`
	Visibility     string        `db:"visibility"`
	Description    string        `db:"description"`
	CoverPhoto     string        `db:"cover_photo"`
	TripImages     []string      `db:"trip_images"`
	Weather        string        `db:"weather"`
	OverallComment string        `db:"overall_comment"`
	Airlines       []byte        `db:"airlines"`
	Accommodations []byte        `db:"accommodations"`
	Segments       []byte        `db:"segments"`
	SharedWith     []pgtype.UUID `db:"shared_with"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
	OwnerName      string        `db:"owner_name"`
}

// toDomain maps every column of a stored trip onto domain.Trip.
func (row tripRow) toDomain() (domain.Trip, error) {
	t := domain.Trip{
		ID:             fromPgUUID(row.ID),
		UserID:         fromPgUUID(row.UserID),
		Title:          row.Title,
		Destination:    row.Destination,
		StartDate:      row.StartDate.Time,
		EndDate:        row.EndDate.Time,
		Status:         domain.TripStatus(row.Status),
		Visibility:     domain.Visibility(row.Visibility),
		Description:    row.Description,
		CoverPhoto:     row.CoverPhoto,
		TripImages:     nonNil(row.TripImages),
		Weather:        row.Weather,
		OverallComment: row.OverallComment,
		SharedWith:     make([]uuid.UUID, 0, len(row.SharedWith)),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		OwnerName:      row.OwnerName,
	}
	for _, id := range row.SharedWith {
		t.SharedWith = append(t.SharedWith, fromPgUUID(id))
	}
	if err := decodeJSONArray(row.Airlines, &t.Airlines); err != nil {
		return domain.Trip{}, fmt.Errorf("decode airlines: %w", err)
	}
	if err := decodeJSONArray(row.Accommodations, &t.Accommodations); err != nil {
		return domain.Trip{}, fmt.Errorf("decode accommodations: %w", err)
	}
	if err := decodeJSONArray(row.Segments, &t.Segments); err != nil {
		return domain.Trip{}, fmt.Errorf("decode segments: %w", err)
	}
	return t, nil
}

// tripArgs maps every writable field of trip onto its column name.
func tripArgs(trip domain.Trip) (pgx.NamedArgs, error) {
	airlines, err := encodeJSONArray(trip.Airlines)
	if err != nil {
		return nil, fmt.Errorf("encode airlines: %w", err)
	}
	accommodations, err := encodeJSONArray(trip.Accommodations)
	if err != nil {
		return nil, fmt.Errorf("encode accommodations: %w", err)
	}
	segments, err := encodeJSONArray(trip.Segments)
	if err != nil {
		return nil, fmt.Errorf("encode segments: %w", err)
	}
	return pgx.NamedArgs{
		"user_id":         pgUUID(trip.UserID),
		"title":           trip.Title,
		"destination":     trip.Destination,
		"start_date":      pgDate(trip.StartDate),
		"end_date":        pgDate(trip.EndDate),
		"status":          string(trip.Status),
		"visibility":      string(trip.Visibility),
		"description":     trip.Description,
		"cover_photo":     trip.CoverPhoto,
		"trip_images":     nonNil(trip.TripImages),
		"weather":         trip.Weather,
		"overall_comment": trip.OverallComment,
		"airlines":        airlines,
		"accommodations":  accommodations,
		"segments":        segments,
		"shared_with":     pgUUIDs(trip.SharedWith),
	}, nil
}

// patchAssignments returns one "column = @column" clause per field present in
// the patch, plus the updated_at stamp, and the matching named args.
func patchAssignments(p domain.TripPatch) ([]string, pgx.NamedArgs, error) {
	set := make([]string, 0, 16)
	args := pgx.NamedArgs{}
	add := func(column string, value any) {
		set = append(set, column+" = @"+column)
		args[column] = value
	}

	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Destination != nil {
		add("destination", *p.Destination)
	}
	if p.StartDate != nil {
		add("start_date", pgDate(*p.StartDate))
	}
	if p.EndDate != nil {
		add("end_date", pgDate(*p.EndDate))
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.Visibility != nil {
		add("visibility", string(*p.Visibility))
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.CoverPhoto != nil {
		add("cover_photo", *p.CoverPhoto)
	}
	if p.TripImages != nil {
		add("trip_images", nonNil(*p.TripImages))
	}
	if p.Weather != nil {
		add("weather", *p.Weather)
	}
	if p.OverallComment != nil {
		add("overall_comment", *p.OverallComment)
	}
	if p.Airlines != nil {
		v, err := encodeJSONArray(*p.Airlines)
		if err != nil {
			return nil, nil, fmt.Errorf("encode airlines: %w", err)
		}
		add("airlines", v)
	}
	if p.Accommodations != nil {
		v, err := encodeJSONArray(*p.Accommodations)
		if err != nil {
			return nil, nil, fmt.Errorf("encode accommodations: %w", err)
		}
		add("accommodations", v)
	}
	if p.Segments != nil {
		v, err := encodeJSONArray(*p.Segments)
		if err != nil {
			return nil, nil, fmt.Errorf("encode segments: %w", err)
		}
		add("segments", v)
	}
	if p.SharedWith != nil {
		add("shared_with", pgUUIDs(*p.SharedWith))
	}

	set = append(set, "updated_at = now()")
	return set, args, nil
}

func pgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}

func pgUUIDs(ids []uuid.UUID) []pgtype.UUID {
	out := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		out[i] = pgUUID(id)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// encodeJSONArray renders a slice as JSON text for a jsonb column.
// A nil slice becomes "[]" so the column never holds JSON null.
func encodeJSONArray[T any](items []T) (string, error) {
	b, err := json.Marshal(nonNil(items))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSONArray[T any](raw []byte, dst *[]T) error {
	*dst = []T{}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
