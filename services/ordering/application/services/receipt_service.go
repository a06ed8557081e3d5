package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/tabshare/services/ordering/domain/models"
	"github.com/ghuser/tabshare/services/ordering/domain/repositories"
	domainsvcs "github.com/ghuser/tabshare/services/ordering/domain/services"
)

// ReceiptService aggregates a whole session's carts into one receipt.
// Receipts are computed on demand and never persisted.
type ReceiptService struct {
	sessions repositories.SessionRepository
	carts    repositories.CartRepository

	// now is swappable in tests for a stable GeneratedAt.
	now func() time.Time
}

// NewReceiptService returns a ReceiptService wired with the given repositories.
func NewReceiptService(sessions repositories.SessionRepository, carts repositories.CartRepository) *ReceiptService {
	return &ReceiptService{sessions: sessions, carts: carts, now: time.Now}
}

// Generate builds the session's receipt: one share per member holding cart
// lines, each with its subtotal, plus the grand total. Members with empty
// carts are omitted; a session with no lines at all yields ErrReceiptEmpty.
func (s *ReceiptService) Generate(ctx context.Context, sessionID uuid.UUID) (*models.Receipt, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.carts.SessionEntries(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session cart lines: %w", err)
	}

	return domainsvcs.BuildReceipt(session, entries, s.now().UTC())
}
