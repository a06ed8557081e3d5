package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tabshare/pkg/database"
	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

// MenuRepository is the read-only catalog. Seed data lives in migrations.
type MenuRepository struct {
	db *database.Database
}

func NewMenuRepository(db *database.Database) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuColumns = `id, name, description, price, category`

func (r *MenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, orderingdomain.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	var (
		item  models.MenuItem
		price string
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &price, &item.Category); err != nil {
		return nil, err
	}
	var err error
	item.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	return &item, nil
}
