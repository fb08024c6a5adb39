package api

import (
	"net/http"
	"time"

	"github.com/futig/ragdesk/internal/api/docs"
	"github.com/futig/ragdesk/internal/api/middleware"
	"github.com/futig/ragdesk/internal/api/page"
	sessionapi "github.com/futig/ragdesk/internal/api/session"
	"github.com/futig/ragdesk/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router. requestTimeout bounds
// how long a handler may take; it should exceed the RAG client timeout so a
// slow indexing call still gets its answer rendered.
func SetupRouter(pageHandler *page.Handler, sessionHandler *sessionapi.Handler, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session)
		page.RegisterRoutes(r, pageHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS)
		r.Use(middleware.Session)
		sessionapi.RegisterRoutes(r, sessionHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "not found")
	})

	return r
}
