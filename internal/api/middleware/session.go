package middleware

import (
	"context"
	"net/http"

	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

const (
	// SessionCookie carries the browser session id
	SessionCookie = "ragdesk_session"
	// SessionHeader lets API clients without cookies pick their session
	SessionHeader = "X-Session-ID"
)

type sessionIDKey struct{}

// Session resolves the session id of a request from the header or cookie,
// issuing a fresh one when neither holds a valid UUID
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestSessionID(r)
		if !ok {
			id = uuid.NewString()
			ctxzap.Debug(r.Context(), "issued new session id")
		}

		// refresh the cookie so its lifetime follows activity
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set(SessionHeader, id)

		ctx := context.WithValue(r.Context(), sessionIDKey{}, id)
		ctx = logger.WithSession(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the id stored by Session, or "" outside of it
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

func requestSessionID(r *http.Request) (string, bool) {
	if id := r.Header.Get(SessionHeader); id != "" {
		if parsed, err := uuid.Parse(id); err == nil {
			return parsed.String(), true
		}
	}

	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	parsed, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
