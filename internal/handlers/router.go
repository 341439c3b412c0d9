package handlers

import (
	"net/http"

	"artloop/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RouterDeps collects the handlers and middleware the router wires together
type RouterDeps struct {
	Registrations *RegistrationHandler
	Events        *EventHandler
	Artists       *ArtistHandler
	Payments      *PaymentHandler
	Orders        *OrderHandler
	Admin         *AdminHandler
	Health        *HealthHandler
	AdminGate     *middleware.AdminMiddleware
	CORS          middleware.CORSConfig
}

// NewRouter builds the API router
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware(deps.CORS))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", deps.Health.Check)

		r.Post("/admin/login", deps.Admin.Login)
		r.Post("/admin/logout", deps.Admin.Logout)

		r.Route("/registrations", func(r chi.Router) {
			r.Post("/", deps.Registrations.Create)
			r.Get("/", deps.Registrations.ListByEvent)
			r.Get("/stats", deps.Registrations.Stats)
			r.Get("/{code}", deps.Registrations.Get)
			r.Post("/{code}/check-in", deps.Registrations.CheckIn)
		})

		r.Get("/verify", deps.Registrations.Verify)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", deps.Events.List)
			r.Get("/search", deps.Events.Search)
			r.Get("/{id}", deps.Events.Get)

			r.Group(func(r chi.Router) {
				r.Use(deps.AdminGate.RequireAdmin)
				r.Post("/", deps.Events.Create)
				r.Put("/{id}", deps.Events.Update)
				r.Delete("/{id}", deps.Events.Delete)
			})
		})

		r.Route("/artists", func(r chi.Router) {
			r.Get("/", deps.Artists.List)
			r.Get("/search", deps.Artists.Search)
			r.Get("/{id}", deps.Artists.Get)

			r.Group(func(r chi.Router) {
				r.Use(deps.AdminGate.RequireAdmin)
				r.Post("/", deps.Artists.Create)
				r.Put("/{id}", deps.Artists.Update)
				r.Delete("/{id}", deps.Artists.Delete)
			})
		})

		r.Post("/payments/intent", deps.Payments.CreateIntent)
		r.Post("/orders/confirmation", deps.Orders.SendConfirmation)
	})

	return r
}
