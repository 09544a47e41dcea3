package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripshare/tripshare/backend/internal/domain"
)

// MessageRepo defines the persistence operations for direct messages.
type MessageRepo interface {
	// Create inserts a message and returns it with id and created_at set.
	Create(ctx context.Context, msg domain.Message) (domain.Message, error)

	// Conversation returns every message exchanged between a and b in either
	// direction, oldest first.
	Conversation(ctx context.Context, a, b uuid.UUID) ([]domain.Message, error)

	// MarkRead flags every unread message from senderID to recipientID as read
	// and returns how many rows changed.
	MarkRead(ctx context.Context, senderID, recipientID uuid.UUID) (int64, error)
}

// pgMessageRepo is the Postgres implementation of MessageRepo.
type pgMessageRepo struct {
	db db
}

// NewMessageRepo constructs a MessageRepo backed by the provided db connection.
func NewMessageRepo(db db) MessageRepo {
	return &pgMessageRepo{db: db}
}

const messageColumns = `id, sender_id, recipient_id, content, read, created_at`

func (r *pgMessageRepo) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	const q = `
		INSERT INTO messages (sender_id, recipient_id, content)
		VALUES (@sender_id, @recipient_id, @content)
		RETURNING ` + messageColumns

	result, err := scanMessage(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"sender_id":    pgUUID(msg.SenderID),
		"recipient_id": pgUUID(msg.RecipientID),
		"content":      msg.Content,
	}))
	if err != nil {
		return domain.Message{}, fmt.Errorf("repo.MessageRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMessageRepo) Conversation(ctx context.Context, a, b uuid.UUID) ([]domain.Message, error) {
	const q = `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE (sender_id = @a AND recipient_id = @b)
		   OR (sender_id = @b AND recipient_id = @a)
		ORDER BY created_at ASC, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"a": pgUUID(a), "b": pgUUID(b)})
	if err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.Conversation: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MessageRepo.Conversation: scan: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.Conversation: rows: %w", err)
	}
	return msgs, nil
}

func (r *pgMessageRepo) MarkRead(ctx context.Context, senderID, recipientID uuid.UUID) (int64, error) {
	const q = `
		UPDATE messages SET read = TRUE
		WHERE sender_id = @sender_id AND recipient_id = @recipient_id AND NOT read`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"sender_id":    pgUUID(senderID),
		"recipient_id": pgUUID(recipientID),
	})
	if err != nil {
		return 0, fmt.Errorf("repo.MessageRepo.MarkRead: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMessage(s scanner) (domain.Message, error) {
	var m domain.Message
	var id, sender, recipient pgtype.UUID
	if err := s.Scan(&id, &sender, &recipient, &m.Content, &m.Read, &m.CreatedAt); err != nil {
		return domain.Message{}, mapError(err)
	}
	m.ID = fromPgUUID(id)
	m.SenderID = fromPgUUID(sender)
	m.RecipientID = fromPgUUID(recipient)
	return m, nil
}
