package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/ragdesk/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Web server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Use the in-process RAG mock instead of the remote service
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// External RAG service
	RAGConnectorCfg RAGConnectorConfig `envPrefix:"RAG_"`

	// In-memory session lifetime
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Telegram bot configuration (only required by the bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

type RAGConnectorConfig struct {
	HTTPClientConfig
	IndexEndpoint string `env:"INDEX_ENDPOINT" envDefault:"/indexing"`
	QueryEndpoint string `env:"QUERY_ENDPOINT" envDefault:"/query"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"2m"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"2m"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://rag-backend-eor6.onrender.com"`
}

// SessionConfig controls how long an idle session is kept
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize int64 `env:"MAX_SIZE" envDefault:"20971520"` // 20 MiB
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	UpdateTimeout   int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	// RateLimitPerMinute is the per-user message budget, 0 disables the limit
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	// Retry applies to outgoing chat messages
	Retry retry.RetryConfig `envPrefix:"RETRY_"`
}

// ErrMissingBotToken is returned by ValidateTelegram when no token is set
var ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN is required")

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.RAGConnectorCfg.Url == "" {
		errs = append(errs, "RAG_SERVICE_URL must not be empty")
	} else if !strings.HasPrefix(cfg.RAGConnectorCfg.Url, "http://") && !strings.HasPrefix(cfg.RAGConnectorCfg.Url, "https://") {
		errs = append(errs, fmt.Sprintf("RAG_SERVICE_URL must be an http(s) URL, got %q", cfg.RAGConnectorCfg.Url))
	}

	for name, endpoint := range map[string]string{
		"RAG_INDEX_ENDPOINT": cfg.RAGConnectorCfg.IndexEndpoint,
		"RAG_QUERY_ENDPOINT": cfg.RAGConnectorCfg.QueryEndpoint,
	} {
		if !strings.HasPrefix(endpoint, "/") {
			errs = append(errs, fmt.Sprintf("%s must start with '/', got %q", name, endpoint))
		}
	}

	if cfg.SessionCfg.TTL < time.Minute {
		errs = append(errs, fmt.Sprintf("SESSION_TTL must be at least 1m, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SessionCfg.CleanupInterval <= 0 {
		errs = append(errs, fmt.Sprintf("SESSION_CLEANUP_INTERVAL must be positive, got %s", cfg.SessionCfg.CleanupInterval))
	}

	if cfg.FileUploadCfg.MaxFileSize < 1 {
		errs = append(errs, fmt.Sprintf("FILE_UPLOAD_MAX_SIZE must be positive, got %d", cfg.FileUploadCfg.MaxFileSize))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ValidateTelegram checks the settings the bot binary needs on top of the base config
func (c *Config) ValidateTelegram() error {
	if c.TelegramCfg.BotToken == "" {
		return ErrMissingBotToken
	}
	if c.TelegramCfg.UpdateTimeout < 1 {
		return fmt.Errorf("TELEGRAM_UPDATE_TIMEOUT must be positive, got %d", c.TelegramCfg.UpdateTimeout)
	}
	if c.TelegramCfg.RateLimitPerMinute < 0 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.TelegramCfg.RateLimitPerMinute)
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
