package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
	"github.com/ghuser/tabshare/services/ordering/domain/repositories"
)

// MembershipService manages who belongs to which session. Joins resolve the
// session through SessionService so the PIN cache serves the hot path.
type MembershipService struct {
	sessions *SessionService
	repo     repositories.MembershipRepository
}

// NewMembershipService returns a MembershipService wired with the session
// service and membership repository.
func NewMembershipService(sessions *SessionService, repo repositories.MembershipRepository) *MembershipService {
	return &MembershipService{sessions: sessions, repo: repo}
}

// Join adds the user to the session identified by pin. Joining a session the
// user already belongs to succeeds without touching existing cart state.
func (s *MembershipService) Join(ctx context.Context, pin string, userID uuid.UUID) (*models.Session, error) {
	session, err := s.sessions.FindByPin(ctx, pin)
	if err != nil {
		return nil, err
	}
	if !session.Active() {
		return nil, orderingdomain.ErrSessionClosed
	}

	if err := s.repo.Join(ctx, session.ID, userID); err != nil {
		return nil, fmt.Errorf("join session: %w", err)
	}
	return session, nil
}

// Leave removes the user's membership and, with it, all of the user's cart
// lines for that session, atomically. Leaving a session the user is not part
// of is a no-op success, so the operation is safe to retry.
func (s *MembershipService) Leave(ctx context.Context, sessionID, userID uuid.UUID) error {
	if _, err := s.repo.Leave(ctx, sessionID, userID); err != nil {
		return fmt.Errorf("leave session: %w", err)
	}
	return nil
}

// CurrentSession returns the active session the user joined most recently,
// or nil when the user belongs to no active session.
func (s *MembershipService) CurrentSession(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	return s.repo.CurrentSession(ctx, userID)
}
