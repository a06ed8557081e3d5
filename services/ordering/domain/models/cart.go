package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one user's quantity of one menu item within one session.
// At most one line exists per (session, user, item) triple; quantity is
// always positive — a line that would reach zero is deleted instead.
type CartLine struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	UserID     uuid.UUID
	MenuItemID uuid.UUID
	Quantity   int
	AddedAt    time.Time
}

// CartEntry is a cart line joined with its catalog data, as loaded by the
// cart repository. Input to snapshot and receipt building.
type CartEntry struct {
	UserID     uuid.UUID
	UserName   string
	MenuItemID uuid.UUID
	ItemName   string
	Price      decimal.Decimal
	Quantity   int
	AddedAt    time.Time
}

// CartSnapshotLine is one priced line in a user's cart view.
type CartSnapshotLine struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// CartSnapshot is one user's full cart within a session, with totals.
// It is computed on read and never persisted.
type CartSnapshot struct {
	SessionID uuid.UUID          `json:"session_id"`
	UserID    uuid.UUID          `json:"user_id"`
	Lines     []CartSnapshotLine `json:"items"`
	Total     decimal.Decimal    `json:"total"`
}
