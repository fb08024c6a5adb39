package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session API routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Post("/file", h.SelectFile)
		r.Post("/upload", h.Upload)
		r.Post("/ask", h.Ask)
		r.Post("/reset", h.Reset)
		r.Get("/export", h.Export)
	})
}
