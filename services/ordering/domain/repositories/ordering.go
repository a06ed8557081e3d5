package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

// SessionRepository is the persistence interface for ordering sessions.
// The domain layer owns this interface; infrastructure implements it.
type SessionRepository interface {
	// Create persists a new session together with the creator's membership,
	// atomically. A unique violation on the PIN index is returned as
	// domain.ErrPinTaken so the caller can re-draw.
	Create(ctx context.Context, session *models.Session) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)

	// GetByPin looks up a session by exact PIN match.
	GetByPin(ctx context.Context, pin models.Pin) (*models.Session, error)

	// Close transitions an active session to closed. Closing an already
	// closed session reports alreadyClosed = true and no error.
	Close(ctx context.Context, id uuid.UUID) (alreadyClosed bool, err error)

	// CloseIdle closes every active session created before cutoff and
	// returns the PINs of the sessions it closed.
	CloseIdle(ctx context.Context, cutoff time.Time) ([]models.Pin, error)
}

// MembershipRepository manages the user↔session join relation.
type MembershipRepository interface {
	// Join inserts a membership; joining a session the user already belongs
	// to is a no-op success. The store checks the session's status at insert
	// time and returns ErrSessionClosed when it is no longer active, so a
	// close racing the caller's own status check cannot admit a member.
	Join(ctx context.Context, sessionID, userID uuid.UUID) error

	// Leave deletes the user's cart lines for the session and the membership
	// itself in one atomic unit. Reports removed = false when there was no
	// membership (no-op success).
	Leave(ctx context.Context, sessionID, userID uuid.UUID) (removed bool, err error)

	Exists(ctx context.Context, sessionID, userID uuid.UUID) (bool, error)

	// CurrentSession returns the active session the user joined most
	// recently, or nil when the user belongs to no active session.
	CurrentSession(ctx context.Context, userID uuid.UUID) (*models.Session, error)
}

// CartRepository mutates and reads per-(session, user, item) cart lines.
// All mutations are atomic per triple; membership is enforced at the store
// level so a racing leave always wins over a late add.
type CartRepository interface {
	// Upsert adds delta to the line's quantity, creating the line at
	// quantity=delta if absent. Returns domain.ErrMembershipNotFound when
	// the (session, user) pair is not a member.
	Upsert(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, delta int) error

	// Decrement subtracts delta from the line's quantity, deleting the line
	// when the result would be zero or less. Returns
	// domain.ErrCartLineNotFound when no line matches.
	Decrement(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, delta int) error

	// SetQuantity replaces the line's quantity absolutely; quantity must be
	// positive. Returns domain.ErrCartLineNotFound when no line matches.
	SetQuantity(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, quantity int) error

	// DeleteLine removes the line if present. Missing lines report
	// domain.ErrCartLineNotFound.
	DeleteLine(ctx context.Context, sessionID, userID, menuItemID uuid.UUID) error

	// UserEntries loads one user's cart lines joined with catalog data,
	// ordered by added time then item name.
	UserEntries(ctx context.Context, sessionID, userID uuid.UUID) ([]models.CartEntry, error)

	// SessionEntries loads every current member's cart lines joined with
	// catalog data and member display names, for receipt generation.
	SessionEntries(ctx context.Context, sessionID uuid.UUID) ([]models.CartEntry, error)
}

// MenuRepository reads the catalog. The ordering core never writes it.
type MenuRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	List(ctx context.Context) ([]models.MenuItem, error)
}
