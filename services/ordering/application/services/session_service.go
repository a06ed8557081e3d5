package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/tabshare/pkg/cache"
	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
	"github.com/ghuser/tabshare/services/ordering/domain/repositories"
)

// maxPinAttempts bounds how many times Create re-draws a PIN after a unique
// violation before giving up. With 10,000 possible PINs, hitting the bound
// means the PIN space is effectively exhausted.
const maxPinAttempts = 5

// SessionService orchestrates the session lifecycle: create with a random
// PIN, look up by PIN, and close. Event publishing happens in the repository
// layer (outbox pattern); PIN lookups are served from Redis cache when
// available.
type SessionService struct {
	repo  repositories.SessionRepository
	cache *pkgcache.SessionCache

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSessionService returns a SessionService wired with the given repository,
// cache, and PIN randomness source.
func NewSessionService(repo repositories.SessionRepository, sessionCache *pkgcache.SessionCache, rng *rand.Rand) *SessionService {
	return &SessionService{repo: repo, cache: sessionCache, rng: rng}
}

// Create validates the name, draws a random 4-digit PIN and persists the
// session together with the creator's membership. There is no PIN pre-check:
// the store's unique index is the only guard, and a conflicting draw is
// simply retried with a fresh PIN.
func (s *SessionService) Create(ctx context.Context, creatorID uuid.UUID, name string) (*models.Session, error) {
	sessionName, err := models.NewSessionName(name)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxPinAttempts; attempt++ {
		session := models.NewSession(sessionName, s.drawPin(), creatorID)
		err = s.repo.Create(ctx, session)
		if errors.Is(err, orderingdomain.ErrPinTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		return session, nil
	}
	return nil, fmt.Errorf("create session: no free pin after %d attempts: %w", maxPinAttempts, err)
}

// FindByPin retrieves a session using a read-through cache pattern:
//  1. Check the Redis PIN cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *SessionService) FindByPin(ctx context.Context, rawPin string) (*models.Session, error) {
	pin, err := models.NewPin(rawPin)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, pin.String()); err == nil {
			return &models.Session{
				ID:        cached.ID,
				Pin:       models.Pin(cached.Pin),
				Name:      models.SessionName(cached.Name),
				CreatedBy: cached.CreatedBy,
				Status:    models.SessionStatus(cached.Status),
				CreatedAt: cached.CreatedAt,
			}, nil
		}
		// Miss or cache error: Postgres is authoritative either way.
	}

	session, err := s.repo.GetByPin(ctx, pin)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), cachedFromSession(session))
		}()
	}

	return session, nil
}

// GetByID loads a session directly from the store.
func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.repo.GetByID(ctx, id)
}

// Close transitions the session to closed. Only the creator may close;
// closing an already closed session is an idempotent success. The PIN cache
// entry is evicted immediately (the worker evicts again on the
// session.closed event, both are best-effort).
func (s *SessionService) Close(ctx context.Context, sessionID, callerID uuid.UUID) (*models.Session, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CreatedBy != callerID {
		return nil, orderingdomain.ErrNotSessionCreator
	}

	if _, err := s.repo.Close(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, session.Pin.String())
	}

	return s.repo.GetByID(ctx, sessionID)
}

// CloseIdle closes every active session created before cutoff and evicts
// their PIN cache entries. Driven by the hourly auto-close workflow.
func (s *SessionService) CloseIdle(ctx context.Context, cutoff time.Time) (int, error) {
	pins, err := s.repo.CloseIdle(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("close idle sessions: %w", err)
	}
	if s.cache != nil {
		for _, pin := range pins {
			_ = s.cache.Delete(ctx, pin.String())
		}
	}
	return len(pins), nil
}

func (s *SessionService) drawPin() models.Pin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.RandomPin(s.rng)
}

func cachedFromSession(session *models.Session) *pkgcache.CachedSession {
	return &pkgcache.CachedSession{
		ID:        session.ID,
		Pin:       session.Pin.String(),
		Name:      session.Name.String(),
		CreatedBy: session.CreatedBy,
		Status:    string(session.Status),
		CreatedAt: session.CreatedAt,
	}
}
