package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Nikcet/get-gifts-backend/internal/auth"
)

// NewRouter wires the HTTP surface. Reads are public; everything that
// mutates state sits behind the bearer-token middleware.
func NewRouter(h *Handlers, authSvc *auth.Service, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Get("/users", h.ListUsers)
		r.Get("/users/{userID}", h.GetUser)
		r.Get("/users/{userID}/gifts", h.ListUserGifts)

		r.Get("/gifts", h.ListGifts)
		r.Get("/gifts/{id}", h.GetGift)

		r.Group(func(r chi.Router) {
			r.Use(authSvc.Middleware)

			r.Post("/gifts", h.CreateGift)
			r.Put("/gifts/{id}", h.UpdateGift)
			r.Delete("/gifts/{id}", h.DeleteGift)
			r.Post("/gifts/{id}/reserve", h.ReserveGift)
			r.Post("/gifts/{id}/unreserve", h.UnreserveGift)
		})
	})

	return r
}
