package page

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/futig/ragdesk/internal/api/middleware"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/integration/rag"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/futig/ragdesk/internal/pkg/response"
	"github.com/futig/ragdesk/internal/session"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Handler serves the single page and its form posts. Every post answers
// with a redirect to the page, outcomes travel as flash notifications.
type Handler struct {
	controller SessionController
	store      SessionStore
	flash      FlashStore
	notifier   Notifier
	documents  DocumentReader
	exporter   Exporter
}

func NewHandler(
	controller SessionController,
	store SessionStore,
	flash FlashStore,
	notifier Notifier,
	documents DocumentReader,
	exporter Exporter,
) *Handler {
	return &Handler{
		controller: controller,
		store:      store,
		flash:      flash,
		notifier:   notifier,
		documents:  documents,
		exporter:   exporter,
	}
}

// Index handles GET / - render the page for the caller's session
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Index")
	id := middleware.SessionID(ctx)

	view := h.store.GetOrCreate(id).Snapshot().View()
	data := pageData{
		View:          view,
		Notifications: h.flash.Pop(id),
		MaxUploadMB:   h.documents.MaxFileSize() >> 20,
	}

	if view.ShowAnswer {
		answer, err := renderMarkdown(view.AnswerText)
		if err != nil {
			ctxzap.Warn(ctx, "failed to render answer as markdown", zap.Error(err))
			answer = template.HTML(template.HTMLEscapeString(view.AnswerText))
		}
		data.AnswerHTML = answer
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := renderPage(w, data); err != nil {
		ctxzap.Error(ctx, "failed to render page", zap.Error(err))
	}
}

// Upload handles POST /upload - select the posted PDF, then index it
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PageUpload")
	id := middleware.SessionID(ctx)
	s := h.store.GetOrCreate(id)

	file, err := h.documents.ReadRequestDocument(w, r, rag.IndexFormField)
	switch {
	case errors.Is(err, entity.ErrNoFileSelected):
		// keep whatever was selected before
	case err != nil:
		ctxzap.Info(ctx, "document rejected", zap.Error(err))
		h.notifier.Notify(ctx, id, entity.NotifyInvalidFile(h.rejectReason(err)))
		h.redirect(w, r)
		return
	default:
		if err := h.controller.ReplaceFile(ctx, s, file); err != nil {
			ctxzap.Debug(ctx, "file input is disabled, posted file ignored")
		}
	}

	// the controller already notified the outcome
	_ = h.controller.Upload(ctx, s)
	h.redirect(w, r)
}

// Ask handles POST /ask - query the indexed document
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PageAsk")
	s := h.store.GetOrCreate(middleware.SessionID(ctx))

	_, _ = h.controller.Ask(ctx, s, r.PostFormValue("question"))
	h.redirect(w, r)
}

// Reset handles POST /reset - clear the session
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PageReset")
	s := h.store.GetOrCreate(middleware.SessionID(ctx))

	_ = h.controller.Reset(ctx, s)
	h.redirect(w, r)
}

// Export handles GET /export?format=md|pdf|docx - download the answer shown
// on the page
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PageExport")
	id := middleware.SessionID(ctx)

	file, err := h.export(h.store.GetOrCreate(id).Snapshot(), r.URL.Query().Get("format"))
	if err != nil {
		ctxzap.Info(ctx, "export rejected", zap.Error(err))
		h.notifier.Notify(ctx, id, entity.NotifyExportFailed)
		h.redirect(w, r)
		return
	}

	response.Attachment(w, file.Name, file.ContentType, file.Content)
}

func (h *Handler) export(state session.State, rawFormat string) (*formatter.File, error) {
	format, err := entity.ParseExportFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	transcript, err := state.Transcript()
	if err != nil {
		return nil, err
	}
	return h.exporter.Export(transcript, format)
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) rejectReason(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidExtension):
		return "Only PDF files are accepted."
	case errors.Is(err, entity.ErrFileTooLarge):
		return fmt.Sprintf("The file is larger than %d MB.", h.documents.MaxFileSize()>>20)
	default:
		return "The file could not be read."
	}
}
