package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/tabshare/pkg/database"
	"github.com/ghuser/tabshare/pkg/events"
	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	domainevents "github.com/ghuser/tabshare/services/ordering/domain/events"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

const pgUniqueViolation = "23505"

// SessionRepository implements repositories.SessionRepository against PostgreSQL.
type SessionRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSessionRepository returns a SessionRepository backed by the given pool
// and event bus. The bus publishes session lifecycle events on the same
// transaction as the write (outbox pattern).
func NewSessionRepository(db *database.Database, bus *events.EventBus) *SessionRepository {
	return &SessionRepository{db: db, bus: bus}
}

// Create persists a new session and the creator's membership atomically and
// publishes SessionCreatedEvent within the same transaction.
// A unique violation on the PIN index maps to domain.ErrPinTaken; the service
// layer re-draws and retries. There is deliberately no pre-check of the PIN:
// the unique index is the only authoritative guard under concurrency.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_sessions (id, pin, name, created_by, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			session.ID, session.Pin.String(), session.Name.String(),
			session.CreatedBy, string(session.Status), session.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return orderingdomain.ErrPinTaken
			}
			return fmt.Errorf("insert session: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_members (session_id, user_id, joined_at)
			 VALUES ($1, $2, $3)`,
			session.ID, session.CreatedBy, session.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert creator membership: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, session); err != nil {
				return fmt.Errorf("publish session created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a session by ID. Returns ErrSessionNotFound if not found.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return r.scanOne(r.db.DB().QueryRowContext(ctx,
		sessionColumns+` WHERE id = $1`, id,
	))
}

// GetByPin retrieves a session by exact PIN match.
func (r *SessionRepository) GetByPin(ctx context.Context, pin models.Pin) (*models.Session, error) {
	return r.scanOne(r.db.DB().QueryRowContext(ctx,
		sessionColumns+` WHERE pin = $1`, pin.String(),
	))
}

// Close transitions an active session to closed and publishes
// SessionClosedEvent in the same transaction. Closing an already closed
// session is an idempotent no-op.
func (r *SessionRepository) Close(ctx context.Context, id uuid.UUID) (bool, error) {
	alreadyClosed := false
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var pin string
		err := tx.QueryRowContext(ctx,
			`UPDATE order_sessions
			 SET status = $2, closed_at = $3
			 WHERE id = $1 AND status = $4
			 RETURNING pin`,
			id, string(models.SessionClosed), time.Now().UTC(), string(models.SessionActive),
		).Scan(&pin)
		if errors.Is(err, sql.ErrNoRows) {
			// Either absent or already closed; distinguish for the caller.
			var status string
			err := tx.QueryRowContext(ctx,
				`SELECT status FROM order_sessions WHERE id = $1`, id,
			).Scan(&status)
			if errors.Is(err, sql.ErrNoRows) {
				return orderingdomain.ErrSessionNotFound
			}
			if err != nil {
				return fmt.Errorf("query session status: %w", err)
			}
			alreadyClosed = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("close session: %w", err)
		}

		if r.bus != nil {
			if err := r.publishClosed(tx, id, pin); err != nil {
				return fmt.Errorf("publish session closed: %w", err)
			}
		}
		return nil
	})
	return alreadyClosed, err
}

// CloseIdle closes every active session created before cutoff and returns
// the PINs of the sessions it closed. Used by the auto-close workflow.
func (r *SessionRepository) CloseIdle(ctx context.Context, cutoff time.Time) ([]models.Pin, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`UPDATE order_sessions
		 SET status = $1, closed_at = $2
		 WHERE status = $3 AND created_at < $4
		 RETURNING pin`,
		string(models.SessionClosed), time.Now().UTC(), string(models.SessionActive), cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("close idle sessions: %w", err)
	}
	defer rows.Close()

	var pins []models.Pin
	for rows.Next() {
		var pin string
		if err := rows.Scan(&pin); err != nil {
			return nil, fmt.Errorf("scan pin: %w", err)
		}
		pins = append(pins, models.Pin(pin))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate closed sessions: %w", err)
	}
	return pins, nil
}

const sessionColumns = `SELECT id, pin, name, created_by, status, created_at, closed_at FROM order_sessions`

func (r *SessionRepository) scanOne(row *sql.Row) (*models.Session, error) {
	var (
		s        models.Session
		pin      string
		name     string
		status   string
		closedAt sql.NullTime
	)
	err := row.Scan(&s.ID, &pin, &name, &s.CreatedBy, &status, &s.CreatedAt, &closedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, orderingdomain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
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

func (r *SessionRepository) publishCreated(tx *sql.Tx, session *models.Session) error {
	event := domainevents.SessionCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		SessionID:  session.ID,
		Pin:        session.Pin.String(),
		Name:       session.Name.String(),
		CreatedBy:  session.CreatedBy,
		OccurredAt: session.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicSessionCreated, event, event.EventID)
}

func (r *SessionRepository) publishClosed(tx *sql.Tx, sessionID uuid.UUID, pin string) error {
	event := domainevents.SessionClosedEvent{
		EventID:    uuid.New(),
		Version:    1,
		SessionID:  sessionID,
		Pin:        pin,
		OccurredAt: time.Now().UTC(),
	}
	return r.publish(tx, domainevents.TopicSessionClosed, event, event.EventID)
}

func (r *SessionRepository) publish(tx *sql.Tx, topic string, event any, eventID uuid.UUID) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}
