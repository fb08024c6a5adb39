package session

import (
	"context"
	"net/http"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	domain "github.com/futig/ragdesk/internal/session"
)

type SessionController interface {
	ReplaceFile(ctx context.Context, s *domain.Session, file *entity.FileData) error
	Upload(ctx context.Context, s *domain.Session) error
	Ask(ctx context.Context, s *domain.Session, question string) (string, error)
	Reset(ctx context.Context, s *domain.Session) error
}

type SessionStore interface {
	GetOrCreate(id string) *domain.Session
}

type FlashStore interface {
	Pop(sessionID string) []entity.Notification
}

type DocumentReader interface {
	ReadRequestDocument(w http.ResponseWriter, r *http.Request, field string) (*entity.FileData, error)
}

type Exporter interface {
	Export(t entity.Transcript, format entity.ExportFormat) (*formatter.File, error)
}
