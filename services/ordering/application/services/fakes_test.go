package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderingdomain "github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

type memberKey struct {
	sessionID uuid.UUID
	userID    uuid.UUID
}

type lineKey struct {
	sessionID  uuid.UUID
	userID     uuid.UUID
	menuItemID uuid.UUID
}

type fakeLine struct {
	quantity int
	addedAt  time.Time
}

// fakeStore is an in-memory stand-in for the Postgres repositories. It
// mirrors the store-level semantics the services rely on: PIN uniqueness
// across all stored sessions, membership enforcement on cart writes, and
// leave cascading to the member's cart lines.
type fakeStore struct {
	mu sync.Mutex

	sessions  map[uuid.UUID]*models.Session
	members   map[memberKey]time.Time
	lines     map[lineKey]*fakeLine
	menu      map[uuid.UUID]models.MenuItem
	userNames map[uuid.UUID]string

	// pinConflicts makes the next N Creates fail with ErrPinTaken,
	// regardless of the drawn PIN.
	pinConflicts   int
	createAttempts int

	clock time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:  make(map[uuid.UUID]*models.Session),
		members:   make(map[memberKey]time.Time),
		lines:     make(map[lineKey]*fakeLine),
		menu:      make(map[uuid.UUID]models.MenuItem),
		userNames: make(map[uuid.UUID]string),
		clock:     time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
	}
}

// tick advances the fake clock so insertion order is observable.
func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) addMenuItem(name string, price string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.menu[id] = models.MenuItem{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	return id
}

func (f *fakeStore) addUser(name string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.userNames[id] = name
	return id
}

// SessionRepository

func (f *fakeStore) Create(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createAttempts++
	if f.pinConflicts > 0 {
		f.pinConflicts--
		return orderingdomain.ErrPinTaken
	}
	for _, s := range f.sessions {
		if s.Pin == session.Pin {
			return orderingdomain.ErrPinTaken
		}
	}
	copied := *session
	f.sessions[session.ID] = &copied
	f.members[memberKey{session.ID, session.CreatedBy}] = f.tick()
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, orderingdomain.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) GetByPin(_ context.Context, pin models.Pin) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Pin == pin {
			copied := *s
			return &copied, nil
		}
	}
	return nil, orderingdomain.ErrSessionNotFound
}

func (f *fakeStore) Close(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return false, orderingdomain.ErrSessionNotFound
	}
	if s.Status == models.SessionClosed {
		return true, nil
	}
	now := f.tick()
	s.Status = models.SessionClosed
	s.ClosedAt = &now
	return false, nil
}

func (f *fakeStore) CloseIdle(_ context.Context, cutoff time.Time) ([]models.Pin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pins []models.Pin
	for _, s := range f.sessions {
		if s.Status == models.SessionActive && s.CreatedAt.Before(cutoff) {
			now := f.tick()
			s.Status = models.SessionClosed
			s.ClosedAt = &now
			pins = append(pins, s.Pin)
		}
	}
	return pins, nil
}

// MembershipRepository

func (f *fakeStore) Join(_ context.Context, sessionID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Status is checked at insert time, like the status-guarded INSERT in
	// the real store.
	if s, ok := f.sessions[sessionID]; !ok || s.Status != models.SessionActive {
		return orderingdomain.ErrSessionClosed
	}
	key := memberKey{sessionID, userID}
	if _, ok := f.members[key]; ok {
		return nil
	}
	f.members[key] = f.tick()
	return nil
}

func (f *fakeStore) Leave(_ context.Context, sessionID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := memberKey{sessionID, userID}
	if _, ok := f.members[key]; !ok {
		return false, nil
	}
	delete(f.members, key)
	for lk := range f.lines {
		if lk.sessionID == sessionID && lk.userID == userID {
			delete(f.lines, lk)
		}
	}
	return true, nil
}

func (f *fakeStore) Exists(_ context.Context, sessionID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.members[memberKey{sessionID, userID}]
	return ok, nil
}

func (f *fakeStore) CurrentSession(_ context.Context, userID uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var (
		latest   *models.Session
		joinedAt time.Time
	)
	for key, at := range f.members {
		if key.userID != userID {
			continue
		}
		s := f.sessions[key.sessionID]
		if s == nil || s.Status != models.SessionActive {
			continue
		}
		if latest == nil || at.After(joinedAt) {
			copied := *s
			latest, joinedAt = &copied, at
		}
	}
	return latest, nil
}

// CartRepository

func (f *fakeStore) Upsert(_ context.Context, sessionID, userID, menuItemID uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[memberKey{sessionID, userID}]; !ok {
		return orderingdomain.ErrMembershipNotFound
	}
	if _, ok := f.menu[menuItemID]; !ok {
		return orderingdomain.ErrMenuItemNotFound
	}
	key := lineKey{sessionID, userID, menuItemID}
	if line, ok := f.lines[key]; ok {
		line.quantity += delta
		return nil
	}
	f.lines[key] = &fakeLine{quantity: delta, addedAt: f.tick()}
	return nil
}

func (f *fakeStore) Decrement(_ context.Context, sessionID, userID, menuItemID uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := lineKey{sessionID, userID, menuItemID}
	line, ok := f.lines[key]
	if !ok {
		return orderingdomain.ErrCartLineNotFound
	}
	if line.quantity-delta <= 0 {
		delete(f.lines, key)
		return nil
	}
	line.quantity -= delta
	return nil
}

func (f *fakeStore) SetQuantity(_ context.Context, sessionID, userID, menuItemID uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := lineKey{sessionID, userID, menuItemID}
	line, ok := f.lines[key]
	if !ok {
		return orderingdomain.ErrCartLineNotFound
	}
	line.quantity = quantity
	return nil
}

func (f *fakeStore) DeleteLine(_ context.Context, sessionID, userID, menuItemID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := lineKey{sessionID, userID, menuItemID}
	if _, ok := f.lines[key]; !ok {
		return orderingdomain.ErrCartLineNotFound
	}
	delete(f.lines, key)
	return nil
}

func (f *fakeStore) UserEntries(_ context.Context, sessionID, userID uuid.UUID) ([]models.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []models.CartEntry
	for key, line := range f.lines {
		if key.sessionID != sessionID || key.userID != userID {
			continue
		}
		entries = append(entries, f.entry(key, line))
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].AddedAt.Before(entries[j].AddedAt)
		}
		return entries[i].ItemName < entries[j].ItemName
	})
	return entries, nil
}

func (f *fakeStore) SessionEntries(_ context.Context, sessionID uuid.UUID) ([]models.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []models.CartEntry
	for key, line := range f.lines {
		if key.sessionID != sessionID {
			continue
		}
		entries = append(entries, f.entry(key, line))
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].UserName != entries[j].UserName {
			return entries[i].UserName < entries[j].UserName
		}
		if !entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].AddedAt.Before(entries[j].AddedAt)
		}
		return entries[i].ItemName < entries[j].ItemName
	})
	return entries, nil
}

func (f *fakeStore) entry(key lineKey, line *fakeLine) models.CartEntry {
	item := f.menu[key.menuItemID]
	return models.CartEntry{
		UserID:     key.userID,
		UserName:   f.userNames[key.userID],
		MenuItemID: key.menuItemID,
		ItemName:   item.Name,
		Price:      item.Price,
		Quantity:   line.quantity,
		AddedAt:    line.addedAt,
	}
}

// MenuRepository

func (f *fakeStore) MenuGetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.menu[id]
	if !ok {
		return nil, orderingdomain.ErrMenuItemNotFound
	}
	return &item, nil
}

func (f *fakeStore) List(_ context.Context) ([]models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]models.MenuItem, 0, len(f.menu))
	for _, item := range f.menu {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// fakeMenu adapts fakeStore to repositories.MenuRepository; the GetByID name
// collides with the session repository method on the shared struct.
type fakeMenu struct{ store *fakeStore }

func (m fakeMenu) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return m.store.MenuGetByID(ctx, id)
}

func (m fakeMenu) List(ctx context.Context) ([]models.MenuItem, error) {
	return m.store.List(ctx)
}
