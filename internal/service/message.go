package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/domain"
	"github.com/tripshare/tripshare/backend/internal/repo"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// MessageService implements direct messaging between users.
type MessageService struct {
	messages repo.MessageRepo
	users    repo.UserRepo
}

// NewMessageService constructs a MessageService.
func NewMessageService(messages repo.MessageRepo, users repo.UserRepo) *MessageService {
	return &MessageService{messages: messages, users: users}
}

// Send stores a message from senderID to recipientID.
// Returns domain.ErrValidation for empty or oversized content and
// domain.ErrNotFound if the recipient does not exist.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uuid.UUID, content string) (domain.Message, error) {
	if content == "" {
		return domain.Message{}, validate.Fail("content", "is required")
	}
	if utf8.RuneCountInString(content) > domain.MaxMessageLength {
		return domain.Message{}, validate.Fail("content", fmt.Sprintf("must be at most %d characters", domain.MaxMessageLength))
	}

	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Message{}, fmt.Errorf("service.MessageService.Send: recipient: %w", err)
		}
		return domain.Message{}, fmt.Errorf("service.MessageService.Send: %w", err)
	}

	msg, err := s.messages.Create(ctx, domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("service.MessageService.Send: %w", err)
	}
	return msg, nil
}

// Conversation returns the messages between callerID and otherID, oldest
// first, then marks the ones otherID sent to the caller as read. The returned
// slice already reflects the new read state. Always non-nil.
func (s *MessageService) Conversation(ctx context.Context, callerID, otherID uuid.UUID) ([]domain.Message, error) {
	msgs, err := s.messages.Conversation(ctx, callerID, otherID)
	if err != nil {
		return nil, fmt.Errorf("service.MessageService.Conversation: %w", err)
	}
	if _, err := s.messages.MarkRead(ctx, otherID, callerID); err != nil {
		return nil, fmt.Errorf("service.MessageService.Conversation: mark read: %w", err)
	}

	if msgs == nil {
		return []domain.Message{}, nil
	}
	for i := range msgs {
		if msgs[i].SenderID == otherID && msgs[i].RecipientID == callerID {
			msgs[i].Read = true
		}
	}
	return msgs, nil
}
