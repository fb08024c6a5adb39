package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/futig/ragdesk/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// telegramMaxMessageLen is the Bot API limit for one text message
const telegramMaxMessageLen = 4096

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	bot   Sender
	retry retry.RetryConfig
}

// NewMessageSender creates a new MessageSender. Failed sends are retried
// per retryCfg when Telegram asks to slow down or fails on its side.
func NewMessageSender(bot Sender, retryCfg retry.RetryConfig) *MessageSender {
	return &MessageSender{bot: bot, retry: retryCfg}
}

// Send sends text to the chat, split into several messages when it exceeds
// the Telegram length limit
func (s *MessageSender) Send(ctx context.Context, chatID int64, text string) error {
	for _, chunk := range splitMessage(text, telegramMaxMessageLen) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		err := s.retry.Do(ctx, func() error {
			_, err := s.bot.Send(msg)
			return err
		}, retryableSendError, retryAfter)
		if err != nil {
			ctxzap.Error(ctx, "failed to send message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
			return err
		}
	}
	return nil
}

// SendDocument uploads content to the chat as a file named name
func (s *MessageSender) SendDocument(ctx context.Context, chatID int64, name string, content []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: content})
	err := s.retry.Do(ctx, func() error {
		_, err := s.bot.Send(doc)
		return err
	}, retryableSendError, retryAfter)
	if err != nil {
		ctxzap.Error(ctx, "failed to send document",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("filename", name),
		)
	}
	return err
}

// Action shows a chat action such as "typing" next to the bot name
func (s *MessageSender) Action(ctx context.Context, chatID int64, action string) {
	if _, err := s.bot.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
		ctxzap.Warn(ctx, "failed to send chat action",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("chat_action", action),
		)
	}
}

func retryableSendError(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter > 0 || apiErr.Code >= 500
	}
	// transport failure
	return true
}

func retryAfter(err error) (time.Duration, bool) {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return time.Duration(apiErr.RetryAfter) * time.Second, true
	}
	return 0, false
}

// splitMessage cuts text into chunks of at most limit runes, preferring
// line breaks as cut points
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
