package render

import (
	"fmt"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/session"
)

const (
	MsgWelcome = `👋 Hi! Send me a PDF and I will index it. Then ask questions about it in plain text.`

	MsgHelp = `Commands:
/start - show the welcome message
/help - show this help
/status - show the current document and question
/reset - forget the document and start over
/export [md|pdf|docx] - download the last answer as a file

How it works:
1. Send a PDF document
2. Wait for "Upload successful"
3. Ask questions as plain text messages`

	MsgSendPDFFirst     = "📄 Send me a PDF first, then ask your question."
	MsgBusy             = "⏳ Still working on your previous request, please wait."
	MsgAlreadyIndexed   = "📎 A document is already indexed. Send /reset to start over with another one."
	MsgUnsupported      = "🤔 I only understand PDF documents and text questions. See /help."
	MsgUnknownCommand   = "❌ Unknown command. See /help."
	MsgDownloadFailed   = "❌ Could not download the file from Telegram. Please send it again."
	MsgInvalidExtension = "❌ Only PDF files are accepted."
	MsgRateLimited      = "⚠️ Too many messages. Please wait a little."
	MsgInternalError    = "❌ Something went wrong. Try again or send /reset."

	MsgNothingToExport   = "📭 Nothing to export yet. Ask a question first."
	MsgUnsupportedFormat = "❌ Unknown format. Use /export md, /export pdf or /export docx."
)

// Notification formats a controller notification as a chat message
func Notification(n entity.Notification) string {
	icon := "ℹ️"
	switch n.Level {
	case entity.NotificationSuccess:
		icon = "✅"
	case entity.NotificationError:
		icon = "❌"
	}

	if n.Description == "" {
		return fmt.Sprintf("%s %s", icon, n.Title)
	}
	return fmt.Sprintf("%s %s\n%s", icon, n.Title, n.Description)
}

// FileTooLarge tells the user the size limit
func FileTooLarge(maxBytes int64) string {
	return fmt.Sprintf("❌ The file is too large. The limit is %d MB.", maxBytes>>20)
}

// Status renders the session view as a chat message
func Status(v session.View) string {
	var b strings.Builder

	switch v.Phase {
	case session.PhaseEmpty:
		b.WriteString("No document yet. Send me a PDF.")
	case session.PhaseFileSelected:
		fmt.Fprintf(&b, "📄 %s selected, not indexed yet.", v.Filename)
	case session.PhaseUploading:
		fmt.Fprintf(&b, "⏳ %s", v.UploadLabel)
	case session.PhaseIndexed:
		fmt.Fprintf(&b, "✅ Upload Complete: %s", v.Filename)
	case session.PhaseQuerying:
		b.WriteString("⏳ Looking for an answer...")
	}

	if v.QuestionText != "" {
		fmt.Fprintf(&b, "\n\n❓ %s", v.QuestionText)
	}
	if v.ShowAnswer {
		fmt.Fprintf(&b, "\n\n💬 %s", v.AnswerText)
	}

	return b.String()
}
