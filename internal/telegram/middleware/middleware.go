package middleware

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Next continues the chain with a possibly enriched context
type Next func(ctx context.Context, update tgbotapi.Update)

// Middleware wraps update processing
type Middleware interface {
	Handle(ctx context.Context, update tgbotapi.Update, next Next)
}

// Sender sends a text message to a chat
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Chain runs update through mws in order, then final
func Chain(ctx context.Context, update tgbotapi.Update, final Next, mws ...Middleware) {
	next := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, inner := mws[i], next
		next = func(ctx context.Context, u tgbotapi.Update) {
			mw.Handle(ctx, u, inner)
		}
	}
	next(ctx, update)
}

func chatID(update tgbotapi.Update) int64 {
	if m := update.Message; m != nil && m.Chat != nil {
		return m.Chat.ID
	}
	return 0
}

func userID(update tgbotapi.Update) int64 {
	if m := update.Message; m != nil && m.From != nil {
		return m.From.ID
	}
	return 0
}
