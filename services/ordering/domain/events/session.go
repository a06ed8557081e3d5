package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for session lifecycle events.
const (
	TopicSessionCreated = "session.created"
	TopicSessionClosed  = "session.closed"
)

// SessionCreatedEvent is published after a new ordering session is persisted.
// The worker warms the PIN lookup cache from it.
type SessionCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	SessionID  uuid.UUID `json:"session_id"`
	Pin        string    `json:"pin"`
	Name       string    `json:"name"`
	CreatedBy  uuid.UUID `json:"created_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SessionClosedEvent is published when a session transitions to closed,
// whether by the creator or by the auto-close workflow. The worker evicts
// the PIN cache entry.
type SessionClosedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	SessionID  uuid.UUID `json:"session_id"`
	Pin        string    `json:"pin"`
	OccurredAt time.Time `json:"occurred_at"`
}
