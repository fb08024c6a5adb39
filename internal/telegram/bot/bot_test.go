package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/pkg/retry"
	"github.com/futig/ragdesk/internal/telegram/handlers"
	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	updates chan tgbotapi.Update
	stopped bool
}

func (f *fakeSource) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeSource) StopReceivingUpdates() {
	f.stopped = true
}

type fakeAPI struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, c.(tgbotapi.MessageConfig).Text)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

type handlerFunc func(ctx context.Context, msg *handlers.Message) error

func (f handlerFunc) Handle(ctx context.Context, msg *handlers.Message) error {
	return f(ctx, msg)
}

func newTestBot(h MessageHandler, shutdown int) (*Bot, *fakeSource, *fakeAPI) {
	src := &fakeSource{updates: make(chan tgbotapi.Update)}
	api := &fakeAPI{}
	cfg := &config.TelegramConfig{UpdateTimeout: 1, ShutdownTimeout: shutdown}
	return New(src, cfg, h, handlers.NewMessageSender(api, retry.RetryConfig{}), zap.NewNop()), src, api
}

func message(chat int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: chat},
		Chat: &tgbotapi.Chat{ID: chat},
		Text: text,
	}}
}

func TestBot_RoutesMessages(t *testing.T) {
	got := make(chan *handlers.Message, 1)
	b, src, _ := newTestBot(handlerFunc(func(_ context.Context, msg *handlers.Message) error {
		got <- msg
		return nil
	}), 1)

	require.NoError(t, b.Start(context.Background()))
	src.updates <- message(5, "hello")

	select {
	case msg := <-got:
		assert.Equal(t, int64(5), msg.ChatID)
		assert.Equal(t, "hello", msg.Text)
	case <-time.After(time.Second):
		t.Fatal("message was not handled")
	}

	require.NoError(t, b.Stop())
	assert.True(t, src.stopped)
}

func TestBot_HandlerErrorAndPanicReachChat(t *testing.T) {
	done := make(chan struct{}, 2)
	b, src, api := newTestBot(handlerFunc(func(_ context.Context, msg *handlers.Message) error {
		defer func() { done <- struct{}{} }()
		if msg.Text == "panic" {
			panic("boom")
		}
		return assert.AnError
	}), 1)

	require.NoError(t, b.Start(context.Background()))
	src.updates <- message(1, "fail")
	src.updates <- message(2, "panic")
	<-done
	<-done
	require.NoError(t, b.Stop())

	assert.Equal(t, []string{render.MsgInternalError, render.MsgInternalError}, api.sent())
}

func TestBot_StopTimesOut(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	b, src, _ := newTestBot(handlerFunc(func(context.Context, *handlers.Message) error {
		close(entered)
		<-release
		return nil
	}), 1)

	require.NoError(t, b.Start(context.Background()))
	src.updates <- message(1, "slow")
	<-entered

	assert.ErrorIs(t, b.Stop(), ErrShutdownTimeout)
	close(release)
}
