package handlers

import (
	"context"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SessionController drives the per-chat session
type SessionController interface {
	ReplaceFile(ctx context.Context, s *session.Session, file *entity.FileData) error
	Upload(ctx context.Context, s *session.Session) error
	Ask(ctx context.Context, s *session.Session, question string) (string, error)
	Reset(ctx context.Context, s *session.Session) error
}

type SessionStore interface {
	GetOrCreate(id string) *session.Session
}

// Sender is the subset of *tgbotapi.BotAPI used to talk back to users
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// FileFetcher downloads a file a user sent to the bot
type FileFetcher interface {
	Fetch(ctx context.Context, fileID string) ([]byte, error)
}

// DocumentValidator checks a document before it is downloaded
type DocumentValidator interface {
	ValidateDocument(filename string, size int64) error
	MaxFileSize() int64
}

// Exporter renders the last answer as a downloadable file
type Exporter interface {
	Export(t entity.Transcript, format entity.ExportFormat) (*formatter.File, error)
}
