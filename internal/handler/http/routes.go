package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/auth", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/refresh", h.refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout", h.logout)
			r.Get("/verify", h.verify)
			r.Get("/me", h.me)
		})
	})

	router.Route("/api/user", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/profile", h.getProfile)
		r.Put("/profile", h.updateProfile)
		r.Get("/preferences", h.getPreferences)
		r.Put("/preferences", h.updatePreferences)
		r.Get("/stats", h.getStats)
		r.Delete("/account", h.deleteAccount)
		r.Get("/sessions", h.getSessions)
		r.Post("/sessions/revoke-all", h.revokeAllSessions)
	})

	router.Route("/api/utils", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Get("/health", h.health)
			r.Get("/info", h.info)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth, h.adminRequired)
			r.Get("/stats", h.serviceStats)
			r.Post("/cleanup", h.cleanup)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
