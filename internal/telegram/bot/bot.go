package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/telegram/handlers"
	"github.com/futig/ragdesk/internal/telegram/middleware"
	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrShutdownTimeout is returned by Stop when handlers outlive the timeout
var ErrShutdownTimeout = errors.New("shutdown timeout exceeded")

// UpdateSource is the long-polling part of *tgbotapi.BotAPI
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// MessageHandler processes one normalized message
type MessageHandler interface {
	Handle(ctx context.Context, msg *handlers.Message) error
}

// Bot represents the Telegram bot
type Bot struct {
	api         UpdateSource
	cfg         *config.TelegramConfig
	handler     MessageHandler
	sender      *handlers.MessageSender
	middlewares []middleware.Middleware
	logger      *zap.Logger
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	api UpdateSource,
	cfg *config.TelegramConfig,
	handler MessageHandler,
	sender *handlers.MessageSender,
	logger *zap.Logger,
) *Bot {
	mws := []middleware.Middleware{
		middleware.NewLoggingMiddleware(),
		middleware.NewRecoveryMiddleware(sender),
	}
	if cfg.RateLimitPerMinute > 0 {
		// checked first so dropped updates cost nothing
		mws = append([]middleware.Middleware{middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, sender)}, mws...)
	}

	return &Bot{
		api:         api,
		cfg:         cfg,
		handler:     handler,
		sender:      sender,
		middlewares: mws,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx, updates)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return ErrShutdownTimeout
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-updates:
			if !ok {
				ctxzap.Info(ctx, "updates channel closed")
				return
			}

			// Handlers outlive ctx so Stop can drain them
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdate(context.WithoutCancel(ctx), u)
			}(update)
		}
	}
}

// handleUpdate runs update through the middleware chain into the handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	middleware.Chain(ctx, update, b.route, b.middlewares...)
}

func (b *Bot) route(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Chat == nil {
		ctxzap.Debug(ctx, "ignoring update without message")
		return
	}

	msg := handlers.NewMessage(update.Message)
	if err := b.handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error", zap.Error(err))
		_ = b.sender.Send(ctx, msg.ChatID, render.MsgInternalError)
	}
}
