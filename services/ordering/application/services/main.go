package services

import (
	"math/rand/v2"

	"github.com/ghuser/tabshare/pkg/app"
	"github.com/ghuser/tabshare/pkg/cache"
	"github.com/ghuser/tabshare/services/ordering/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the ordering
// bounded context. It wires domain services with their infrastructure
// implementations.
type Services struct {
	Session    *SessionService
	Membership *MembershipService
	Cart       *CartService
	Receipt    *ReceiptService
	Menu       *MenuService
}

// New wires all ordering application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	sessions := postgres.NewSessionRepository(a.Db, a.EventBus)
	members := postgres.NewMembershipRepository(a.Db)
	carts := postgres.NewCartRepository(a.Db)
	menu := postgres.NewMenuRepository(a.Db)
	sessionCache := cache.NewSessionCache(a.Redis)

	sessionSvc := NewSessionService(sessions, sessionCache, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	return &Services{
		Session:    sessionSvc,
		Membership: NewMembershipService(sessionSvc, members),
		Cart:       NewCartService(sessions, carts, menu),
		Receipt:    NewReceiptService(sessions, carts),
		Menu:       NewMenuService(menu),
	}
}
