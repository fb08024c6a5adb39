package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/futig/ragdesk/internal/pkg/validator"
	"github.com/futig/ragdesk/internal/session"
	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
	Command   string
	Args      string
	Document  *tgbotapi.Document
}

// NewMessage normalizes an incoming Telegram message
func NewMessage(m *tgbotapi.Message) *Message {
	msg := &Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
		Document:  m.Document,
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	if m.IsCommand() {
		msg.Command = m.Command()
		msg.Args = strings.TrimSpace(m.CommandArguments())
	}
	return msg
}

// Handler maps chat messages onto the session controller. Each chat owns
// one session: a document selects and uploads, a text message asks.
type Handler struct {
	controller SessionController
	store      SessionStore
	sender     *MessageSender
	files      FileFetcher
	documents  DocumentValidator
	exporter   Exporter
}

func NewHandler(
	controller SessionController,
	store SessionStore,
	sender *MessageSender,
	files FileFetcher,
	documents DocumentValidator,
	exporter Exporter,
) *Handler {
	return &Handler{
		controller: controller,
		store:      store,
		sender:     sender,
		files:      files,
		documents:  documents,
		exporter:   exporter,
	}
}

// Handle processes one message
func (h *Handler) Handle(ctx context.Context, msg *Message) error {
	ctx = logger.AddFields(ctx, zap.Int64("chat_id", msg.ChatID))

	switch {
	case msg.Command != "":
		return h.handleCommand(ctx, msg)
	case msg.Document != nil:
		return h.handleDocument(ctx, msg)
	case msg.Text != "":
		return h.handleQuestion(ctx, msg)
	default:
		return h.sender.Send(ctx, msg.ChatID, render.MsgUnsupported)
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "Command")
	ctxzap.Info(ctx, "command received", zap.String("command", msg.Command))

	switch msg.Command {
	case "start":
		return h.sender.Send(ctx, msg.ChatID, render.MsgWelcome+"\n\n"+render.MsgHelp)
	case "help":
		return h.sender.Send(ctx, msg.ChatID, render.MsgHelp)
	case "status":
		view := h.session(msg).Snapshot().View()
		return h.sender.Send(ctx, msg.ChatID, render.Status(view))
	case "reset":
		if err := h.controller.Reset(ctx, h.session(msg)); err != nil {
			return h.replyRejected(ctx, msg, err)
		}
		return nil
	case "export":
		return h.handleExport(ctx, msg)
	default:
		return h.sender.Send(ctx, msg.ChatID, render.MsgUnknownCommand)
	}
}

func (h *Handler) handleDocument(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "Document")
	s := h.session(msg)
	doc := msg.Document

	if view := s.Snapshot().View(); !view.FileInputEnabled {
		if view.Busy {
			return h.sender.Send(ctx, msg.ChatID, render.MsgBusy)
		}
		return h.sender.Send(ctx, msg.ChatID, render.MsgAlreadyIndexed)
	}

	if err := h.documents.ValidateDocument(doc.FileName, int64(doc.FileSize)); err != nil {
		ctxzap.Info(ctx, "document rejected", zap.String("filename", doc.FileName), zap.Error(err))
		return h.replyRejected(ctx, msg, err)
	}

	content, err := h.files.Fetch(ctx, doc.FileID)
	if err != nil {
		ctxzap.Warn(ctx, "failed to download document", zap.Error(err))
		if errors.Is(err, entity.ErrFileTooLarge) {
			return h.replyRejected(ctx, msg, err)
		}
		return h.sender.Send(ctx, msg.ChatID, render.MsgDownloadFailed)
	}

	// the session may have moved on during the download
	if err := h.controller.ReplaceFile(ctx, s, &entity.FileData{
		Filename: validator.SanitizeFilename(doc.FileName),
		Content:  content,
	}); err != nil {
		return h.replyRejected(ctx, msg, err)
	}

	action := StartChatAction(ctx, h.sender, msg.ChatID, tgbotapi.ChatUploadDocument)
	err = h.controller.Upload(ctx, s)
	action.Stop()

	if err != nil && (entity.IsPrecondition(err) || entity.IsValidation(err)) {
		return h.replyRejected(ctx, msg, err)
	}
	// the outcome of the call itself reached the chat as a notification
	return nil
}

func (h *Handler) handleQuestion(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "Question")
	s := h.session(msg)

	action := StartChatAction(ctx, h.sender, msg.ChatID, tgbotapi.ChatTyping)
	answer, err := h.controller.Ask(ctx, s, msg.Text)
	action.Stop()

	if err != nil {
		if entity.IsPrecondition(err) || entity.IsValidation(err) {
			return h.replyRejected(ctx, msg, err)
		}
		return nil
	}

	return h.sender.Send(ctx, msg.ChatID, answer)
}

// handleExport sends the last answer as a file, markdown unless another
// format is named: /export pdf
func (h *Handler) handleExport(ctx context.Context, msg *Message) error {
	format, err := entity.ParseExportFormat(msg.Args)
	if err != nil {
		return h.sender.Send(ctx, msg.ChatID, render.MsgUnsupportedFormat)
	}

	transcript, err := h.session(msg).Snapshot().Transcript()
	if err != nil {
		return h.sender.Send(ctx, msg.ChatID, render.MsgNothingToExport)
	}

	file, err := h.exporter.Export(transcript, format)
	if err != nil {
		return err
	}

	ctxzap.Info(ctx, "answer exported", zap.String("format", string(format)))
	return h.sender.SendDocument(ctx, msg.ChatID, file.Name, file.Content)
}

// replyRejected explains a refused operation. Errors the controller
// already notified about are not repeated.
func (h *Handler) replyRejected(ctx context.Context, msg *Message, err error) error {
	switch {
	case errors.Is(err, entity.ErrBusy):
		return h.sender.Send(ctx, msg.ChatID, render.MsgBusy)
	case errors.Is(err, entity.ErrNotIndexed):
		return h.sender.Send(ctx, msg.ChatID, render.MsgSendPDFFirst)
	case errors.Is(err, entity.ErrAlreadyIndexed):
		return h.sender.Send(ctx, msg.ChatID, render.MsgAlreadyIndexed)
	case errors.Is(err, entity.ErrInvalidExtension):
		return h.sender.Send(ctx, msg.ChatID, render.MsgInvalidExtension)
	case errors.Is(err, entity.ErrFileTooLarge):
		return h.sender.Send(ctx, msg.ChatID, render.FileTooLarge(h.documents.MaxFileSize()))
	case errors.Is(err, entity.ErrNoFileSelected), errors.Is(err, entity.ErrEmptyQuestion):
		return nil
	default:
		return err
	}
}

func (h *Handler) session(msg *Message) *session.Session {
	return h.store.GetOrCreate(SessionID(msg.ChatID))
}
