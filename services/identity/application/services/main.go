package services

import (
	"github.com/ghuser/tabshare/pkg/app"
	"github.com/ghuser/tabshare/services/identity/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the identity
// bounded context.
type Services struct {
	User *UserService
}

// New wires all identity application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	return &Services{
		User: NewUserService(postgres.NewUserRepository(a.Db)),
	}
}
