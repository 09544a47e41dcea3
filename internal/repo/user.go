package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripshare/tripshare/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a new user. Returns domain.ErrConflict if the email is taken.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user has that id.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail matches the email exactly as stored.
	// Returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateProfile applies the present fields of patch and returns the updated user.
	UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error)

	// TouchActivity sets last_active to at and marks the user online.
	TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error

	// ListOnline returns users other than excludeID that are flagged online and
	// were active at or after since, ordered by name.
	ListOnline(ctx context.Context, excludeID uuid.UUID, since time.Time) ([]domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, email, password_hash, name, bio, last_active, is_online, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (email, password_hash, name, bio)
		VALUES (@email, @password_hash, @name, @bio)
		RETURNING ` + userColumns

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"name":          user.Name,
		"bio":           user.Bio,
	}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": pgUUID(id)}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (domain.User, error) {
	set := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": pgUUID(id)}
	if patch.Name != nil {
		set = append(set, "name = @name")
		args["name"] = *patch.Name
	}
	if patch.Bio != nil {
		set = append(set, "bio = @bio")
		args["bio"] = *patch.Bio
	}

	q := `UPDATE users SET ` + strings.Join(set, ", ") + ` WHERE id = @id RETURNING ` + userColumns

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.UpdateProfile: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) TouchActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	const q = `UPDATE users SET last_active = @at, is_online = TRUE WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": pgUUID(id), "at": at})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.TouchActivity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.TouchActivity: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgUserRepo) ListOnline(ctx context.Context, excludeID uuid.UUID, since time.Time) ([]domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id <> @exclude_id
		  AND is_online
		  AND last_active >= @since
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"exclude_id": pgUUID(excludeID), "since": since})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListOnline: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UserRepo.ListOnline: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListOnline: rows: %w", err)
	}
	return users, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanUser to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanUser maps a single row selected with userColumns into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u          domain.User
		id         pgtype.UUID
		lastActive pgtype.Timestamptz
	)
	err := s.Scan(&id, &u.Email, &u.PasswordHash, &u.Name, &u.Bio, &lastActive, &u.IsOnline, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapError(err)
	}
	u.ID = fromPgUUID(id)
	if lastActive.Valid {
		la := lastActive.Time
		u.LastActive = &la
	}
	return u, nil
}
