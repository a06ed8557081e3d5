package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tabshare/pkg/database"
	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

const pgForeignKeyViolation = "23503"

// CartRepository implements repositories.CartRepository against PostgreSQL.
//
// The cart_lines table has its primary key on (session_id, user_id,
// menu_item_id) and a composite foreign key on (session_id, user_id) into
// session_members. The PK makes upserts atomic per triple; the FK makes a
// racing leave win deterministically — an insert landing after the
// membership is gone fails with a foreign-key violation, which maps to
// ErrMembershipNotFound here.
type CartRepository struct {
	db *database.Database
}

// NewCartRepository returns a CartRepository backed by the given pool.
func NewCartRepository(db *database.Database) *CartRepository {
	return &CartRepository{db: db}
}

// Upsert adds delta to the line's quantity, creating the line at
// quantity=delta when absent. One conditional statement, no read-then-write:
// concurrent adds on the same triple serialize on the row and never lose an
// update.
func (r *CartRepository) Upsert(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, delta int) error {
	_, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO cart_lines (id, session_id, user_id, menu_item_id, quantity, added_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id, user_id, menu_item_id)
		 DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity`,
		uuid.New(), sessionID, userID, menuItemID, delta, time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			if pgErr.ConstraintName == "cart_lines_menu_item_id_fkey" {
				return orderingdomain.ErrMenuItemNotFound
			}
			return orderingdomain.ErrMembershipNotFound
		}
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

// Decrement subtracts delta from the line, deleting it when the result would
// be zero or less. The row is locked for the duration of the transaction so
// concurrent removes on the same triple serialize.
func (r *CartRepository) Decrement(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, delta int) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var quantity int
		err := tx.QueryRowContext(ctx,
			`SELECT quantity FROM cart_lines
			 WHERE session_id = $1 AND user_id = $2 AND menu_item_id = $3
			 FOR UPDATE`,
			sessionID, userID, menuItemID,
		).Scan(&quantity)
		if errors.Is(err, sql.ErrNoRows) {
			return orderingdomain.ErrCartLineNotFound
		}
		if err != nil {
			return fmt.Errorf("lock cart line: %w", err)
		}

		if quantity-delta <= 0 {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM cart_lines
				 WHERE session_id = $1 AND user_id = $2 AND menu_item_id = $3`,
				sessionID, userID, menuItemID,
			)
			if err != nil {
				return fmt.Errorf("delete cart line: %w", err)
			}
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE cart_lines SET quantity = quantity - $4
			 WHERE session_id = $1 AND user_id = $2 AND menu_item_id = $3`,
			sessionID, userID, menuItemID, delta,
		)
		if err != nil {
			return fmt.Errorf("decrement cart line: %w", err)
		}
		return nil
	})
}

// SetQuantity replaces the line's quantity absolutely. Callers handle the
// quantity ≤ 0 case by deleting instead (see CartService.SetQuantity).
func (r *CartRepository) SetQuantity(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, quantity int) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE cart_lines SET quantity = $4
		 WHERE session_id = $1 AND user_id = $2 AND menu_item_id = $3`,
		sessionID, userID, menuItemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("set cart line quantity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return orderingdomain.ErrCartLineNotFound
	}
	return nil
}

// DeleteLine removes the line entirely.
func (r *CartRepository) DeleteLine(ctx context.Context, sessionID, userID, menuItemID uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM cart_lines
		 WHERE session_id = $1 AND user_id = $2 AND menu_item_id = $3`,
		sessionID, userID, menuItemID,
	)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return orderingdomain.ErrCartLineNotFound
	}
	return nil
}

// UserEntries loads one user's cart joined with the catalog, ordered by when
// each line was first added, then item name.
func (r *CartRepository) UserEntries(ctx context.Context, sessionID, userID uuid.UUID) ([]models.CartEntry, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT c.user_id, c.menu_item_id, m.name, m.price, c.quantity, c.added_at
		 FROM cart_lines c
		 JOIN menu_items m ON m.id = c.menu_item_id
		 WHERE c.session_id = $1 AND c.user_id = $2
		 ORDER BY c.added_at, m.name`,
		sessionID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows, false)
}

// SessionEntries loads every current member's cart lines with catalog data
// and member display names, ordered by member name so receipt grouping is
// stable. Lines belonging to users who already left are gone with their
// membership, so the join over session_members is the current-member set.
func (r *CartRepository) SessionEntries(ctx context.Context, sessionID uuid.UUID) ([]models.CartEntry, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT c.user_id, u.name, c.menu_item_id, m.name, m.price, c.quantity, c.added_at
		 FROM session_members sm
		 JOIN cart_lines c ON c.session_id = sm.session_id AND c.user_id = sm.user_id
		 JOIN menu_items m ON m.id = c.menu_item_id
		 JOIN users u ON u.id = c.user_id
		 WHERE sm.session_id = $1
		 ORDER BY u.name, c.user_id, c.added_at, m.name`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session cart lines: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows, true)
}

func scanEntries(rows *sql.Rows, withUserName bool) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	for rows.Next() {
		var (
			e     models.CartEntry
			price string
		)
		var err error
		if withUserName {
			err = rows.Scan(&e.UserID, &e.UserName, &e.MenuItemID, &e.ItemName, &price, &e.Quantity, &e.AddedAt)
		} else {
			err = rows.Scan(&e.UserID, &e.MenuItemID, &e.ItemName, &price, &e.Quantity, &e.AddedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("scan cart entry: %w", err)
		}
		e.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart entries: %w", err)
	}
	return entries, nil
}
