package handlers

import (
	"context"
	"time"
)

// chatActionInterval keeps the indicator alive; Telegram drops it after 5s
const chatActionInterval = 4 * time.Second

// ChatActionNotifier repeats a chat action while a long call is running
type ChatActionNotifier struct {
	sender *MessageSender
	chatID int64
	action string
	done   chan struct{}
}

// StartChatAction shows action in the chat until Stop is called
func StartChatAction(ctx context.Context, sender *MessageSender, chatID int64, action string) *ChatActionNotifier {
	t := &ChatActionNotifier{
		sender: sender,
		chatID: chatID,
		action: action,
		done:   make(chan struct{}),
	}

	sender.Action(ctx, chatID, action)

	go func() {
		ticker := time.NewTicker(chatActionInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sender.Action(ctx, chatID, action)
			case <-t.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return t
}

// Stop stops sending the chat action
func (t *ChatActionNotifier) Stop() {
	close(t.done)
}
