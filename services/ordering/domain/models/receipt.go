package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptLine is one member's quantity of one item, priced.
type ReceiptLine struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// MemberShare is one member's part of the receipt. Members with no cart
// lines do not appear on the receipt at all.
type MemberShare struct {
	UserID   uuid.UUID       `json:"user_id"`
	Name     string          `json:"name"`
	Lines    []ReceiptLine   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Receipt is the consolidated per-member breakdown for a session. It is a
// snapshot computed from current cart lines and catalog prices — nothing on
// it is cached or persisted, so regenerating always reflects the latest state.
type Receipt struct {
	SessionName string          `json:"session_name"`
	Pin         Pin             `json:"pin"`
	GeneratedAt time.Time       `json:"generated_at"`
	Members     []MemberShare   `json:"members"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}
