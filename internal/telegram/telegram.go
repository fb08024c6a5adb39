package telegram

import (
	"context"
	"fmt"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/notify"
	"github.com/futig/ragdesk/internal/pkg/validator"
	"github.com/futig/ragdesk/internal/session"
	"github.com/futig/ragdesk/internal/telegram/bot"
	"github.com/futig/ragdesk/internal/telegram/handlers"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot connects to the Bot API and wires a chat front end onto the
// session controller. Notifications go to the chat and the log.
func NewBot(
	cfg *config.TelegramConfig,
	rag session.RagConnector,
	store handlers.SessionStore,
	documents *validator.Validator,
	exporter handlers.Exporter,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	sender := handlers.NewMessageSender(api, cfg.Retry)
	notifier := notify.Multi{notify.Log{}, handlers.NewChatNotifier(sender)}
	controller := session.NewController(rag, notifier, logger)

	handler := handlers.NewHandler(
		controller,
		store,
		sender,
		handlers.NewFileDownloader(api, nil, documents.MaxFileSize()),
		documents,
		exporter,
	)

	logger.Info("telegram bot initialized successfully")

	return bot.New(api, cfg, handler, sender, logger), nil
}
