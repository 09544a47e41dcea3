package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLength is the longest message body accepted, in characters.
const MaxMessageLength = 1000

// Message is a direct message between two users. Read flips to true when the
// recipient fetches the conversation.
type Message struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	Read        bool
	CreatedAt   time.Time
}
