package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const sessionPrefix = "tg:"

// SessionID is the session store key of a chat
func SessionID(chatID int64) string {
	return sessionPrefix + strconv.FormatInt(chatID, 10)
}

// ChatID reverses SessionID
func ChatID(sessionID string) (int64, error) {
	raw, ok := strings.CutPrefix(sessionID, sessionPrefix)
	if !ok {
		return 0, fmt.Errorf("session %q does not belong to a chat", sessionID)
	}
	return strconv.ParseInt(raw, 10, 64)
}

// ChatNotifier delivers controller notifications as chat messages
type ChatNotifier struct {
	sender *MessageSender
}

func NewChatNotifier(sender *MessageSender) *ChatNotifier {
	return &ChatNotifier{sender: sender}
}

func (n *ChatNotifier) Notify(ctx context.Context, sessionID string, note entity.Notification) {
	chatID, err := ChatID(sessionID)
	if err != nil {
		ctxzap.Warn(ctx, "notification for unknown chat dropped", zap.Error(err))
		return
	}

	_ = n.sender.Send(ctx, chatID, render.Notification(note))
}
