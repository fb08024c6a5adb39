package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/futig/ragdesk/internal/api/middleware"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/integration/rag"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/futig/ragdesk/internal/pkg/response"
	domain "github.com/futig/ragdesk/internal/session"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Handler exposes the session controller as a JSON API
type Handler struct {
	controller SessionController
	store      SessionStore
	flash      FlashStore
	documents  DocumentReader
	exporter   Exporter
}

func NewHandler(
	controller SessionController,
	store SessionStore,
	flash FlashStore,
	documents DocumentReader,
	exporter Exporter,
) *Handler {
	return &Handler{
		controller: controller,
		store:      store,
		flash:      flash,
		documents:  documents,
		exporter:   exporter,
	}
}

// GetSession handles GET /api/session - current view and pending notifications
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSession")
	s := h.session(ctx)

	ctxzap.Debug(ctx, "fetching session view")

	h.respond(w, http.StatusOK, h.stateResponse(s))
}

// SelectFile handles POST /api/session/file - select a PDF without uploading it
func (h *Handler) SelectFile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SelectFile")
	s := h.session(ctx)

	file, err := h.documents.ReadRequestDocument(w, r, rag.IndexFormField)
	if err != nil {
		h.respondError(ctx, w, s, "invalid file", err)
		return
	}

	if err := h.controller.ReplaceFile(ctx, s, file); err != nil {
		h.respondError(ctx, w, s, "file input is disabled", err)
		return
	}

	h.respond(w, http.StatusOK, h.stateResponse(s))
}

// Upload handles POST /api/session/upload - index the selected file. A
// multipart body carrying a `pdf` part selects that file first.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Upload")
	s := h.session(ctx)

	if isMultipart(r) {
		file, err := h.documents.ReadRequestDocument(w, r, rag.IndexFormField)
		switch {
		case errors.Is(err, entity.ErrNoFileSelected):
		case err != nil:
			h.respondError(ctx, w, s, "invalid file", err)
			return
		default:
			if err := h.controller.ReplaceFile(ctx, s, file); err != nil {
				h.respondError(ctx, w, s, "file input is disabled", err)
				return
			}
		}
	}

	if err := h.controller.Upload(ctx, s); err != nil {
		h.respondError(ctx, w, s, "upload failed", err)
		return
	}

	h.respond(w, http.StatusOK, h.stateResponse(s))
}

// Ask handles POST /api/session/ask - query the indexed document
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")
	s := h.session(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, s, "invalid request body", fmt.Errorf("%w: question: %w", entity.ErrMissingField, err))
		return
	}

	answer, err := h.controller.Ask(ctx, s, req.Question)
	if err != nil {
		h.respondError(ctx, w, s, "query failed", err)
		return
	}

	resp := h.stateResponse(s)
	resp.Answer = answer
	h.respond(w, http.StatusOK, resp)
}

// Reset handles POST /api/session/reset - clear file, question and answer
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Reset")
	s := h.session(ctx)

	if err := h.controller.Reset(ctx, s); err != nil {
		h.respondError(ctx, w, s, "reset failed", err)
		return
	}

	h.respond(w, http.StatusOK, h.stateResponse(s))
}

// Export handles GET /api/session/export?format=md|pdf|docx - download the
// current question and answer
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Export")
	s := h.session(ctx)

	format, err := entity.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.respondError(ctx, w, s, "invalid format", err)
		return
	}

	transcript, err := s.Snapshot().Transcript()
	if err != nil {
		h.respondError(ctx, w, s, "nothing to export", err)
		return
	}

	file, err := h.exporter.Export(transcript, format)
	if err != nil {
		h.respondError(ctx, w, s, "export failed", err)
		return
	}

	ctxzap.Info(ctx, "answer exported", zap.String("format", string(format)), zap.Int("bytes", len(file.Content)))
	response.Attachment(w, file.Name, file.ContentType, file.Content)
}

func (h *Handler) session(ctx context.Context) *domain.Session {
	return h.store.GetOrCreate(middleware.SessionID(ctx))
}

func (h *Handler) stateResponse(s *domain.Session) StateResponse {
	return toStateResponse(s, h.flash.Pop(s.ID()))
}

func (h *Handler) respond(w http.ResponseWriter, status int, data StateResponse) {
	response.JSON(w, status, data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, s *domain.Session, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Info(ctx, message, zap.Error(err))
	}

	resp := h.stateResponse(s)
	resp.Error = http.StatusText(status)
	resp.Message = fmt.Sprintf("%s: %v", message, err)
	h.respond(w, status, resp)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
