package middleware

import (
	"context"
	"time"

	"github.com/futig/ragdesk/internal/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// LoggingMiddleware logs all incoming updates
type LoggingMiddleware struct{}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware() *LoggingMiddleware {
	return &LoggingMiddleware{}
}

// Handle adds update fields to the context logger and logs the update
func (m *LoggingMiddleware) Handle(ctx context.Context, update tgbotapi.Update, next Next) {
	start := time.Now()

	ctx = logger.AddFields(ctx,
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID(update)),
		zap.Int64("chat_id", chatID(update)),
	)

	ctxzap.Info(ctx, "telegram update received",
		zap.String("type", messageType(update)),
	)

	next(ctx, update)

	ctxzap.Info(ctx, "telegram update processed",
		zap.Duration("duration", time.Since(start)),
	)
}

func messageType(update tgbotapi.Update) string {
	m := update.Message
	switch {
	case m == nil:
		return "other"
	case m.IsCommand():
		return "command"
	case m.Document != nil:
		return "document"
	case m.Text != "":
		return "text"
	default:
		return "other"
	}
}
