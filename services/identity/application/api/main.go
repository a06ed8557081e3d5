package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/tabshare/pkg/app"
	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/services/identity/application/handlers"
	appsvcs "github.com/ghuser/tabshare/services/identity/application/services"
)

// IdentityRoutes registers account endpoints on the provided chi router.
func IdentityRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", handlers.NewPostSignupHandler(svcs, a.SessionStore).Execute)
		r.Post("/login", handlers.NewPostLoginHandler(svcs, a.SessionStore).Execute)
		r.Post("/logout", handlers.NewPostLogoutHandler(a.SessionStore).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
			r.Get("/me", handlers.NewGetMeHandler(svcs).Execute)
		})
	})
}
