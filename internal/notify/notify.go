// Package notify delivers user notifications produced by the session
// controller: one-shot flashes for the web page, log lines, or both.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Notifier is satisfied by every delivery channel in this package
type Notifier interface {
	Notify(ctx context.Context, sessionID string, n entity.Notification)
}

// Flash queues notifications per session until the next page render pops
// them. Queues nobody picks up expire with the session.
type Flash struct {
	mu    sync.Mutex
	queue *cache.Cache
}

func NewFlash(ttl, cleanupInterval time.Duration) *Flash {
	return &Flash{queue: cache.New(ttl, cleanupInterval)}
}

func (f *Flash) Notify(_ context.Context, sessionID string, n entity.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var pending []entity.Notification
	if v, ok := f.queue.Get(sessionID); ok {
		pending = v.([]entity.Notification)
	}
	f.queue.Set(sessionID, append(pending, n), cache.DefaultExpiration)
}

// Pop returns and clears the pending notifications of a session, oldest first
func (f *Flash) Pop(sessionID string) []entity.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.queue.Get(sessionID)
	if !ok {
		return nil
	}
	f.queue.Delete(sessionID)
	return v.([]entity.Notification)
}

// Log writes every notification to the context logger
type Log struct{}

func (Log) Notify(ctx context.Context, sessionID string, n entity.Notification) {
	fields := []zap.Field{
		zap.String("session_id", sessionID),
		zap.String("level", string(n.Level)),
		zap.String("title", n.Title),
	}

	if n.Level == entity.NotificationError {
		ctxzap.Warn(ctx, "user notified", fields...)
		return
	}
	ctxzap.Info(ctx, "user notified", fields...)
}

// Multi fans a notification out to several notifiers in order
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, sessionID string, n entity.Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, sessionID, n)
	}
}
