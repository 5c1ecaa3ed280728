package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GabrielMorais2/system-management-usegm/internal/panel"
	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

// BackendClient is everything the panel needs from the backend.
type BackendClient interface {
	Clients
	AuthClient
}

// NewRouter wires the whole admin panel surface: public auth routes, the four
// session-gated pages, the JSON API under /panel/api, and static assets.
func NewRouter(client BackendClient, store session.Store, panels *Panels, pages *Pages) http.Handler {
	auth := NewAuthHandler(client, store, panels)
	orders := NewOrdersHandler(panels)
	products := NewProductsHandler(panels)
	dashboard := NewDashboardHandler(panel.NewDashboard(client))

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Compress(5))
	r.Use(ResolveSession(store))

	r.Get("/login", pages.Login)
	r.Post("/login", auth.Login)
	r.Get("/register", pages.Register)
	r.Post("/register", auth.Register)
	r.Post("/logout", auth.Logout)

	r.Group(func(r chi.Router) {
		r.Use(RequirePage)
		r.Get("/", pages.Dashboard)
		r.Get("/dashboard", pages.Dashboard)
		r.Get("/pedidos", pages.Pedidos)
		r.Get("/estoques", pages.Estoques)
	})

	r.Route("/panel/api", func(r chi.Router) {
		r.Use(RequireAPI)
		r.Route("/orders", orders.Routes)
		r.Route("/products", products.Routes)
		r.Get("/dashboard", dashboard.Counts)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", StaticHandler()))

	r.NotFound(pages.NotFound)
	return r
}
