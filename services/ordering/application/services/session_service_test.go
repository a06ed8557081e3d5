package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

func newTestServices(store *fakeStore) *Services {
	sessionSvc := NewSessionService(store, nil, rand.New(rand.NewPCG(1, 2)))
	return &Services{
		Session:    sessionSvc,
		Membership: NewMembershipService(sessionSvc, store),
		Cart:       NewCartService(store, store, fakeMenu{store}),
		Receipt:    NewReceiptService(store, store),
		Menu:       NewMenuService(fakeMenu{store}),
	}
}

func TestSessionService_Create(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestServices(store)
	creator := store.addUser("alice")

	session, err := svc.Session.Create(ctx, creator, "Hotpot Night")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := models.NewPin(session.Pin.String()); err != nil {
		t.Errorf("generated pin %q is not a valid 4-digit pin: %v", session.Pin, err)
	}
	if session.Status != models.SessionActive {
		t.Errorf("new session status = %q, want %q", session.Status, models.SessionActive)
	}
	if session.CreatedBy != creator {
		t.Errorf("CreatedBy = %v, want %v", session.CreatedBy, creator)
	}

	// The creator joins their own session as part of creation.
	isMember, err := store.Exists(ctx, session.ID, creator)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !isMember {
		t.Error("creator is not a member of the session they created")
	}
}

func TestSessionService_Create_InvalidName(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(newFakeStore())

	tests := []struct {
		name        string
		sessionName string
	}{
		{"empty", ""},
		{"whitespace only", "   \t "},
		{"too long", strings.Repeat("x", 81)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Session.Create(ctx, uuid.New(), tt.sessionName)
			if !errors.Is(err, orderingdomain.ErrInvalidSessionName) {
				t.Errorf("Create(%q) error = %v, want ErrInvalidSessionName", tt.sessionName, err)
			}
		})
	}
}

func TestSessionService_Create_RetriesOnPinConflict(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestServices(store)

	store.pinConflicts = 3
	session, err := svc.Session.Create(ctx, uuid.New(), "retry table")
	if err != nil {
		t.Fatalf("Create failed after conflicts: %v", err)
	}
	if session == nil {
		t.Fatal("expected a session after retries")
	}
	if store.createAttempts != 4 {
		t.Errorf("create attempts = %d, want 4 (3 conflicts + 1 success)", store.createAttempts)
	}
}

func TestSessionService_Create_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestServices(store)

	store.pinConflicts = maxPinAttempts
	_, err := svc.Session.Create(ctx, uuid.New(), "unlucky table")
	if err == nil {
		t.Fatal("expected error when every pin draw conflicts")
	}
	if !errors.Is(err, orderingdomain.ErrPinTaken) {
		t.Errorf("error = %v, want wrapped ErrPinTaken", err)
	}
	if store.createAttempts != maxPinAttempts {
		t.Errorf("create attempts = %d, want %d", store.createAttempts, maxPinAttempts)
	}
}

func TestSessionService_FindByPin(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestServices(store)

	created, err := svc.Session.Create(ctx, store.addUser("alice"), "find me")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("existing pin", func(t *testing.T) {
		found, err := svc.Session.FindByPin(ctx, created.Pin.String())
		if err != nil {
			t.Fatalf("FindByPin failed: %v", err)
		}
		if found.ID != created.ID {
			t.Errorf("found session %v, want %v", found.ID, created.ID)
		}
	})

	t.Run("unknown pin", func(t *testing.T) {
		unknown := "0000"
		if created.Pin.String() == unknown {
			unknown = "0001"
		}
		_, err := svc.Session.FindByPin(ctx, unknown)
		if !errors.Is(err, orderingdomain.ErrSessionNotFound) {
			t.Errorf("error = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("malformed pin", func(t *testing.T) {
		for _, pin := range []string{"", "12", "12345", "12a4"} {
			if _, err := svc.Session.FindByPin(ctx, pin); !errors.Is(err, orderingdomain.ErrInvalidPin) {
				t.Errorf("FindByPin(%q) error = %v, want ErrInvalidPin", pin, err)
			}
		}
	})
}

func TestSessionService_Close(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestServices(store)
	creator := store.addUser("alice")

	session, err := svc.Session.Create(ctx, creator, "closing time")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("non-creator rejected", func(t *testing.T) {
		_, err := svc.Session.Close(ctx, session.ID, uuid.New())
		if !errors.Is(err, orderingdomain.ErrNotSessionCreator) {
			t.Errorf("error = %v, want ErrNotSessionCreator", err)
		}
	})

	t.Run("creator closes", func(t *testing.T) {
		closed, err := svc.Session.Close(ctx, session.ID, creator)
		if err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if closed.Status != models.SessionClosed {
			t.Errorf("status = %q, want %q", closed.Status, models.SessionClosed)
		}
		if closed.ClosedAt == nil {
			t.Error("ClosedAt not set on closed session")
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		closed, err := svc.Session.Close(ctx, session.ID, creator)
		if err != nil {
			t.Fatalf("second Close failed: %v", err)
		}
		if closed.Status != models.SessionClosed {
			t.Errorf("status = %q, want %q", closed.Status, models.SessionClosed)
		}
	})

	t.Run("closed session keeps its pin reserved", func(t *testing.T) {
		found, err := svc.Session.FindByPin(ctx, session.Pin.String())
		if err != nil {
			t.Fatalf("FindByPin after close failed: %v", err)
		}
		if found.Active() {
			t.Error("closed session reported active")
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Session.Close(ctx, uuid.New(), creator)
		if !errors.Is(err, orderingdomain.ErrSessionNotFound) {
			t.Errorf("error = %v, want ErrSessionNotFound", err)
		}
	})
}

func TestSessionService_CloseIdle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestServices(store)

	stale, err := svc.Session.Create(ctx, store.addUser("alice"), "yesterday's tab")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	store.mu.Lock()
	store.sessions[stale.ID].CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	store.mu.Unlock()

	fresh, err := svc.Session.Create(ctx, store.addUser("bob"), "tonight's tab")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	closed, err := svc.Session.CloseIdle(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("CloseIdle failed: %v", err)
	}
	if closed != 1 {
		t.Errorf("closed %d sessions, want 1", closed)
	}

	got, err := svc.Session.GetByID(ctx, stale.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Active() {
		t.Error("stale session still active after CloseIdle")
	}

	got, err = svc.Session.GetByID(ctx, fresh.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Active() {
		t.Error("fresh session was closed by CloseIdle")
	}
}
