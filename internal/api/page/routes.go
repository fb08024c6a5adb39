package page

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers page routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Post("/upload", h.Upload)
	r.Post("/ask", h.Ask)
	r.Post("/reset", h.Reset)
	r.Get("/export", h.Export)
}
