package domain

import (
	"time"

	"github.com/google/uuid"
)

// OnlineWindow is how recently a user must have sent a heartbeat to be
// listed as online.
const OnlineWindow = 5 * time.Minute

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Bio          string
	LastActive   *time.Time
	IsOnline     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfilePatch is a partial update of the fields a user may edit themselves.
type ProfilePatch struct {
	Name *string
	Bio  *string
}
