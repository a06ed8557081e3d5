package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a catalog entry. The ordering core only ever reads the catalog;
// rows are seeded by migrations and never written by cart operations.
type MenuItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal // non-negative
	Category    string
}
