package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/ragdesk/internal/api"
	"github.com/futig/ragdesk/internal/api/page"
	sessionapi "github.com/futig/ragdesk/internal/api/session"
	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/integration/rag"
	"github.com/futig/ragdesk/internal/notify"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/futig/ragdesk/internal/pkg/validator"
	"github.com/futig/ragdesk/internal/session"
	"github.com/futig/ragdesk/internal/telegram"
	"go.uber.org/zap"
)

// requestSlack is added on top of the RAG timeout for the web server
// timeouts, so a request waiting on the RAG service is not cut short
const requestSlack = 30 * time.Second

// Build creates the web application
func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	ragConnector := newRAGConnector(cfg, log)

	store := session.NewStore(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval, log)
	flash := notify.NewFlash(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)
	notifier := notify.Multi{notify.Log{}, flash}
	controller := session.NewController(ragConnector, notifier, log)
	log.Info("Session controller initialized")

	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	exporter := formatter.NewFactory()

	pageHandler := page.NewHandler(controller, store, flash, notifier, fileValidator, exporter)
	sessionHandler := sessionapi.NewHandler(controller, store, flash, fileValidator, exporter)
	log.Info("HTTP handlers initialized")

	requestTimeout := cfg.RAGConnectorCfg.RequestTimeout + requestSlack
	router := api.SetupRouter(pageHandler, sessionHandler, requestTimeout, log)
	log.Info("HTTP router configured")

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateTelegram(); err != nil {
		return nil, nil, fmt.Errorf("invalid telegram configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	ragConnector := newRAGConnector(cfg, log)
	store := session.NewStore(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval, log)
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, ragConnector, store, fileValidator, formatter.NewFactory(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	log.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, log, nil
}

func newRAGConnector(cfg *config.Config, log *zap.Logger) session.RagConnector {
	if cfg.EnableMocks {
		log.Info("Using mock RAG connector")
		return rag.NewMockConnector(log)
	}

	log.Info("Using RAG service", zap.String("url", cfg.RAGConnectorCfg.Url))
	return rag.NewConnector(cfg.RAGConnectorCfg, log)
}
