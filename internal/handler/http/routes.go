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

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Route("/api/documents", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/", h.listDocuments)
		r.Post("/", h.createDocument)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getDocument)
			r.Put("/", h.updateDocument)
			r.Delete("/", h.deleteDocument)
			r.Post("/views", h.incrementViews)
			r.Post("/visibility", h.setVisibility)
		})
	})

	return router
}
