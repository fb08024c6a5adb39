package page

import (
	"context"
	"net/http"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/session"
)

type SessionController interface {
	ReplaceFile(ctx context.Context, s *session.Session, file *entity.FileData) error
	Upload(ctx context.Context, s *session.Session) error
	Ask(ctx context.Context, s *session.Session, question string) (string, error)
	Reset(ctx context.Context, s *session.Session) error
}

type SessionStore interface {
	GetOrCreate(id string) *session.Session
}

type FlashStore interface {
	Pop(sessionID string) []entity.Notification
}

type Notifier interface {
	Notify(ctx context.Context, sessionID string, n entity.Notification)
}

type DocumentReader interface {
	ReadRequestDocument(w http.ResponseWriter, r *http.Request, field string) (*entity.FileData, error)
	MaxFileSize() int64
}

type Exporter interface {
	Export(t entity.Transcript, format entity.ExportFormat) (*formatter.File, error)
}
