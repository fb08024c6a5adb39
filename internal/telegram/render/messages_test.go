package render

import (
	"testing"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestNotification(t *testing.T) {
	assert.Equal(t, "✅ Upload successful\nPDF has been indexed.", Notification(entity.NotifyUploadSucceeded))
	assert.Equal(t, "❌ Upload failed\nPlease try again.", Notification(entity.NotifyUploadFailed))
	assert.Equal(t, "ℹ️ Reset complete\nFile and question cleared.", Notification(entity.NotifyResetComplete))
	assert.Equal(t, "ℹ️ Plain", Notification(entity.Notification{Title: "Plain"}))
}

func TestStatus(t *testing.T) {
	pdf := &entity.FileData{Filename: "a.pdf"}

	assert.Equal(t, "No document yet. Send me a PDF.", Status(session.State{}.View()))
	assert.Equal(t, "⏳ Uploading...", Status(session.State{SelectedFile: pdf, Busy: true}.View()))

	answered := session.State{SelectedFile: pdf, Indexed: true, QuestionText: "q?", AnswerText: "a"}.View()
	assert.Equal(t, "✅ Upload Complete: a.pdf\n\n❓ q?\n\n💬 a", Status(answered))
}

func TestFileTooLarge(t *testing.T) {
	assert.Equal(t, "❌ The file is too large. The limit is 20 MB.", FileTooLarge(20<<20))
}
