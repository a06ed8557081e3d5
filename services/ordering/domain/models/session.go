package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of an ordering session.
type SessionStatus string

const (
	// SessionActive accepts joins and cart mutations.
	SessionActive SessionStatus = "active"
	// SessionClosed is terminal. Closed sessions keep their PIN reserved and
	// remain readable (cart, receipt) but reject joins and mutations.
	SessionClosed SessionStatus = "closed"
)

// Session is the shared ordering context ("the table's tab"): a group of
// members identified by a short PIN, each with their own cart.
type Session struct {
	ID        uuid.UUID
	Pin       Pin
	Name      SessionName
	CreatedBy uuid.UUID
	Status    SessionStatus
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// NewSession constructs an active Session with a generated ID and current
// timestamp. The PIN is drawn by the caller so it can be re-drawn on conflict.
func NewSession(name SessionName, pin Pin, createdBy uuid.UUID) *Session {
	return &Session{
		ID:        uuid.New(),
		Pin:       pin,
		Name:      name,
		CreatedBy: createdBy,
		Status:    SessionActive,
		CreatedAt: time.Now().UTC(),
	}
}

// Active reports whether the session still accepts joins and cart mutations.
func (s *Session) Active() bool {
	return s.Status == SessionActive
}

// Membership links a user to a session. Its existence is what authorizes
// cart operations for that (session, user) pair; it carries no other payload.
type Membership struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
	JoinedAt  time.Time
}
