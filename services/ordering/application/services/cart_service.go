package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
	"github.com/ghuser/tabshare/services/ordering/domain/repositories"
	domainsvcs "github.com/ghuser/tabshare/services/ordering/domain/services"
)

// CartService mutates and reads per-member carts. Every mutation requires an
// active session and returns the caller's fresh cart snapshot; reads work on
// closed sessions too so a finished tab stays inspectable.
type CartService struct {
	sessions repositories.SessionRepository
	carts    repositories.CartRepository
	menu     repositories.MenuRepository
}

// NewCartService returns a CartService wired with the given repositories.
func NewCartService(sessions repositories.SessionRepository, carts repositories.CartRepository, menu repositories.MenuRepository) *CartService {
	return &CartService{sessions: sessions, carts: carts, menu: menu}
}

// AddItem adds delta units of a catalog item to the user's cart, creating the
// line if absent. The catalog is strictly read-only: an unknown item fails
// with ErrMenuItemNotFound and never creates catalog rows. Membership is
// enforced at the store level, so an add racing a leave loses cleanly.
func (s *CartService) AddItem(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, delta int) (*models.CartSnapshot, error) {
	if delta < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", orderingdomain.ErrInvalidQuantity)
	}
	if err := s.requireActive(ctx, sessionID); err != nil {
		return nil, err
	}
	if _, err := s.menu.GetByID(ctx, menuItemID); err != nil {
		return nil, err
	}

	if err := s.carts.Upsert(ctx, sessionID, userID, menuItemID, delta); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, userID)
}

// RemoveItem subtracts delta units from the user's cart line. A quantity that
// would reach zero or below deletes the line entirely; removing an item that
// is not in the cart fails with ErrCartLineNotFound.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, delta int) (*models.CartSnapshot, error) {
	if delta < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", orderingdomain.ErrInvalidQuantity)
	}
	if err := s.requireActive(ctx, sessionID); err != nil {
		return nil, err
	}

	if err := s.carts.Decrement(ctx, sessionID, userID, menuItemID, delta); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, userID)
}

// SetQuantity replaces the line's quantity absolutely. A target of zero or
// less deletes the line, so "set to 0" and "remove everything" coincide.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, userID, menuItemID uuid.UUID, quantity int) (*models.CartSnapshot, error) {
	if err := s.requireActive(ctx, sessionID); err != nil {
		return nil, err
	}

	var err error
	if quantity <= 0 {
		err = s.carts.DeleteLine(ctx, sessionID, userID, menuItemID)
	} else {
		err = s.carts.SetQuantity(ctx, sessionID, userID, menuItemID, quantity)
	}
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, userID)
}

// GetCart returns the user's current cart with per-line and overall totals.
// Works on closed sessions; totals are always recomputed from stored lines
// and catalog prices.
func (s *CartService) GetCart(ctx context.Context, sessionID, userID uuid.UUID) (*models.CartSnapshot, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, sessionID, userID)
}

func (s *CartService) requireActive(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.Active() {
		return orderingdomain.ErrSessionClosed
	}
	return nil
}

func (s *CartService) snapshot(ctx context.Context, sessionID, userID uuid.UUID) (*models.CartSnapshot, error) {
	entries, err := s.carts.UserEntries(ctx, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	snap := domainsvcs.BuildCartSnapshot(sessionID, userID, entries)
	return &snap, nil
}
