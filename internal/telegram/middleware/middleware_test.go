package middleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeSender) Send(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID, text})
	return nil
}

func update(user, chat int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: user},
			Chat: &tgbotapi.Chat{ID: chat},
			Text: text,
		},
	}
}

type recordingMiddleware struct {
	name  string
	trace *[]string
}

func (m recordingMiddleware) Handle(ctx context.Context, u tgbotapi.Update, next Next) {
	*m.trace = append(*m.trace, m.name)
	next(ctx, u)
}

func TestChain_Order(t *testing.T) {
	var trace []string
	Chain(context.Background(), update(1, 1, "x"), func(context.Context, tgbotapi.Update) {
		trace = append(trace, "final")
	}, recordingMiddleware{"a", &trace}, recordingMiddleware{"b", &trace})

	assert.Equal(t, []string{"a", "b", "final"}, trace)
}

func TestRecovery_NotifiesChat(t *testing.T) {
	sender := &fakeSender{}
	mw := NewRecoveryMiddleware(sender)

	assert.NotPanics(t, func() {
		mw.Handle(context.Background(), update(1, 77, "x"), func(context.Context, tgbotapi.Update) {
			panic("boom")
		})
	})
	assert.Equal(t, []sentMessage{{77, render.MsgInternalError}}, sender.sent)
}

func TestLogging_AddsUpdateFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	NewLoggingMiddleware().Handle(ctx, update(5, 6, "hi"), func(ctx context.Context, _ tgbotapi.Update) {
		ctxzap.Info(ctx, "inside")
	})

	inside := logs.FilterMessage("inside").All()
	require.Len(t, inside, 1)
	assert.EqualValues(t, 5, inside[0].ContextMap()["user_id"])
	assert.EqualValues(t, 6, inside[0].ContextMap()["chat_id"])

	received := logs.FilterMessage("telegram update received").All()
	require.Len(t, received, 1)
	assert.Equal(t, "text", received[0].ContextMap()["type"])
}

func TestRateLimiter(t *testing.T) {
	sender := &fakeSender{}
	rl := NewRateLimiterMiddleware(2, sender)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	passed := 0
	next := func(context.Context, tgbotapi.Update) { passed++ }

	for i := 0; i < 4; i++ {
		rl.Handle(context.Background(), update(1, 10, "x"), next)
	}
	assert.Equal(t, 2, passed)
	assert.Equal(t, []sentMessage{{10, render.MsgRateLimited}}, sender.sent, "one warning per interval")

	// other users have their own bucket
	rl.Handle(context.Background(), update(2, 20, "x"), next)
	assert.Equal(t, 3, passed)

	// two tokens per minute refill one token in 30s
	now = now.Add(31 * time.Second)
	rl.Handle(context.Background(), update(1, 10, "x"), next)
	assert.Equal(t, 4, passed)
}
