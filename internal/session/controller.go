package session

import (
	"context"
	"errors"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RagConnector is the remote indexing/query service
type RagConnector interface {
	IndexDocument(ctx context.Context, file *entity.FileData) error
	Query(ctx context.Context, prompt string) (string, error)
}

// Notifier surfaces the outcome of an operation to the user
type Notifier interface {
	Notify(ctx context.Context, sessionID string, n entity.Notification)
}

// Controller enforces the select -> upload -> ask* -> reset sequence and
// mediates every call to the RAG service. It holds no session state itself.
type Controller struct {
	rag      RagConnector
	notifier Notifier
	logger   *zap.Logger
}

func NewController(rag RagConnector, notifier Notifier, logger *zap.Logger) *Controller {
	return &Controller{
		rag:      rag,
		notifier: notifier,
		logger:   logger,
	}
}

// SelectFile stores the file to upload, nil clears the selection. It never
// fails and never touches the indexed flag.
func (c *Controller) SelectFile(ctx context.Context, s *Session, file *entity.FileData) {
	ctx = c.ctx(ctx, s, "SelectFile")

	_, _ = s.apply(func(st State) (State, error) {
		return selectFile(st, file), nil
	})

	if file == nil {
		ctxzap.Debug(ctx, "file selection cleared")
		return
	}
	ctxzap.Debug(ctx, "file selected",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size()),
	)
}

// ReplaceFile selects file unless the file input is disabled, failing with
// ErrBusy or ErrAlreadyIndexed. The check and the selection are one step.
func (c *Controller) ReplaceFile(ctx context.Context, s *Session, file *entity.FileData) error {
	ctx = c.ctx(ctx, s, "ReplaceFile")

	if _, err := s.apply(func(st State) (State, error) {
		return replaceFile(st, file)
	}); err != nil {
		ctxzap.Info(ctx, "file selection refused", zap.Error(err))
		return err
	}

	ctxzap.Debug(ctx, "file selected", zap.String("filename", file.Filename))
	return nil
}

// Upload sends the selected file to the indexing endpoint. On failure the
// selection is kept so the user can retry.
func (c *Controller) Upload(ctx context.Context, s *Session) error {
	ctx = c.ctx(ctx, s, "Upload")

	st, err := s.apply(beginUpload)
	if err != nil {
		c.rejectPrecondition(ctx, s, err)
		return err
	}

	out := c.await(ctx, func(ctx context.Context) Outcome {
		return Outcome{Err: c.rag.IndexDocument(ctx, st.SelectedFile)}
	})

	_, _ = s.apply(func(st State) (State, error) {
		return completeUpload(st, out), nil
	})

	if !out.Fulfilled() {
		ctxzap.Warn(ctx, "upload failed", zap.Error(out.Err))
		c.notifier.Notify(ctx, s.ID(), entity.NotifyUploadFailed)
		return out.Err
	}

	ctxzap.Info(ctx, "document indexed", zap.String("filename", st.SelectedFile.Filename))
	c.notifier.Notify(ctx, s.ID(), entity.NotifyUploadSucceeded)
	return nil
}

// Ask sends question to the query endpoint and stores the answer. A failed
// query leaves the previous answer in place.
func (c *Controller) Ask(ctx context.Context, s *Session, question string) (string, error) {
	ctx = c.ctx(ctx, s, "Ask")

	if _, err := s.apply(func(st State) (State, error) {
		return beginAsk(st, question)
	}); err != nil {
		c.rejectPrecondition(ctx, s, err)
		return "", err
	}

	out := c.await(ctx, func(ctx context.Context) Outcome {
		answer, err := c.rag.Query(ctx, question)
		return Outcome{Answer: answer, Err: err}
	})

	_, _ = s.apply(func(st State) (State, error) {
		return completeAsk(st, out), nil
	})

	if !out.Fulfilled() {
		ctxzap.Warn(ctx, "query failed", zap.Error(out.Err))
		c.notifier.Notify(ctx, s.ID(), entity.NotifyQueryFailed)
		return "", out.Err
	}

	c.notifier.Notify(ctx, s.ID(), entity.NotifyQueryAnswered)
	return out.Answer, nil
}

// Reset returns the session to its initial state
func (c *Controller) Reset(ctx context.Context, s *Session) error {
	ctx = c.ctx(ctx, s, "Reset")

	if _, err := s.apply(reset); err != nil {
		c.rejectPrecondition(ctx, s, err)
		return err
	}

	ctxzap.Info(ctx, "session reset")
	c.notifier.Notify(ctx, s.ID(), entity.NotifyResetComplete)
	return nil
}

// await runs one remote call to completion. Cancellation of the caller's
// context is detached: an issued request is never aborted.
func (c *Controller) await(ctx context.Context, call func(context.Context) Outcome) Outcome {
	return call(context.WithoutCancel(ctx))
}

func (c *Controller) rejectPrecondition(ctx context.Context, s *Session, err error) {
	switch {
	case errors.Is(err, entity.ErrNoFileSelected):
		ctxzap.Info(ctx, "upload without a selected file")
		c.notifier.Notify(ctx, s.ID(), entity.NotifyNoFileSelected)
	case errors.Is(err, entity.ErrEmptyQuestion):
		// silently ignored, like an empty input
		ctxzap.Debug(ctx, "empty question ignored")
	default:
		ctxzap.Warn(ctx, "operation rejected", zap.Error(err))
	}
}

// noLogger is what ctxzap hands out for a context without a logger
var noLogger = ctxzap.Extract(context.Background())

func (c *Controller) ctx(ctx context.Context, s *Session, action string) context.Context {
	if ctxzap.Extract(ctx) == noLogger {
		ctx = ctxzap.ToContext(ctx, c.logger)
	}
	return logger.WithAction(logger.WithSession(ctx, s.ID()), action)
}
