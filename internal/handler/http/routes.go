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
	router.Use(withGZip)

	// routes without authorization; sign-out does its own token handling
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Post("/auth/sign_out", h.signOut)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/items/sync", h.postSync)
	})

	return router
}
