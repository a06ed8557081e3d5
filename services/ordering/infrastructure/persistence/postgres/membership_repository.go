package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/tabshare/pkg/database"
	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

// MembershipRepository implements repositories.MembershipRepository against PostgreSQL.
type MembershipRepository struct {
	db *database.Database
}

// NewMembershipRepository returns a MembershipRepository backed by the given pool.
func NewMembershipRepository(db *database.Database) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Join inserts the membership row, sourcing the insert from the session row
// itself so a close landing between the caller's status check and this
// statement cannot admit a member: a non-active session yields no source row
// and the insert affects nothing. Rejoining stays idempotent — the conflict
// target is the (session_id, user_id) primary key and the DO UPDATE
// reassigns the existing join time, leaving cart state untouched while still
// counting the row as affected.
func (r *MembershipRepository) Join(ctx context.Context, sessionID, userID uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO session_members (session_id, user_id, joined_at)
		 SELECT id, $2, $3 FROM order_sessions WHERE id = $1 AND status = 'active'
		 ON CONFLICT (session_id, user_id) DO UPDATE SET joined_at = session_members.joined_at`,
		sessionID, userID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return orderingdomain.ErrSessionClosed
	}
	return nil
}

// Leave removes the membership; the ON DELETE CASCADE on cart_lines deletes
// the user's lines for this session in the same statement, so the two can
// never diverge. Reports removed=false when there was nothing to remove.
func (r *MembershipRepository) Leave(ctx context.Context, sessionID, userID uuid.UUID) (bool, error) {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM session_members WHERE session_id = $1 AND user_id = $2`,
		sessionID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// Exists reports whether the user is a member of the session.
func (r *MembershipRepository) Exists(ctx context.Context, sessionID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM session_members WHERE session_id = $1 AND user_id = $2
		 )`,
		sessionID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

// CurrentSession returns the active session the user joined most recently,
// or nil when the user belongs to no active session. When a user belongs to
// several active sessions, the most recent join wins.
func (r *MembershipRepository) CurrentSession(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	var (
		s        models.Session
		pin      string
		name     string
		status   string
		closedAt sql.NullTime
	)
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT s.id, s.pin, s.name, s.created_by, s.status, s.created_at, s.closed_at
		 FROM session_members sm
		 JOIN order_sessions s ON s.id = sm.session_id
		 WHERE sm.user_id = $1 AND s.status = $2
		 ORDER BY sm.joined_at DESC
		 LIMIT 1`,
		userID, string(models.SessionActive),
	).Scan(&s.ID, &pin, &name, &s.CreatedBy, &status, &s.CreatedAt, &closedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query current session: %w", err)
	}
	s.Pin = models.Pin(pin)
	s.Name = models.SessionName(name)
	s.Status = models.SessionStatus(status)
	if closedAt.Valid {
		t := closedAt.Time
		s.ClosedAt = &t
	}
	return &s, nil
}
