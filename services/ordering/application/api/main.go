package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/tabshare/pkg/app"
	"github.com/ghuser/tabshare/pkg/auth"
	"github.com/ghuser/tabshare/services/ordering/application/handlers"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

// OrderingRoutes registers session, cart, receipt and menu endpoints on the
// provided chi router. Everything except the menu listing requires a login
// session.
func OrderingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Get("/menu", handlers.NewGetMenuHandler(svcs).Execute)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", handlers.NewPostSessionHandler(svcs).Execute)
			r.Get("/current", handlers.NewGetCurrentSessionHandler(svcs).Execute)
			r.Post("/join", handlers.NewPostJoinHandler(svcs).Execute)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Post("/leave", handlers.NewPostLeaveHandler(svcs).Execute)
				r.Post("/close", handlers.NewPostCloseHandler(svcs).Execute)
				r.Get("/receipt", handlers.NewGetReceiptHandler(svcs).Execute)

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", handlers.NewGetCartHandler(svcs).Execute)
					r.Post("/items", handlers.NewPostCartItemHandler(svcs).Execute)
					r.Put("/items/{menuItemID}", handlers.NewPutCartItemHandler(svcs).Execute)
					r.Delete("/items/{menuItemID}", handlers.NewDeleteCartItemHandler(svcs).Execute)
				})
			})
		})
	})
}
