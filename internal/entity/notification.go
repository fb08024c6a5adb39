package entity

// NotificationLevel is the severity of a user notification
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationInfo    NotificationLevel = "info"
)

// Notification is a short message surfaced to the user after an operation
type Notification struct {
	Level       NotificationLevel `json:"level"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
}

var (
	NotifyNoFileSelected = Notification{
		Level:       NotificationError,
		Title:       "No file selected",
		Description: "Please select a PDF to upload.",
	}
	NotifyUploadSucceeded = Notification{
		Level:       NotificationSuccess,
		Title:       "Upload successful",
		Description: "PDF has been indexed.",
	}
	NotifyUploadFailed = Notification{
		Level:       NotificationError,
		Title:       "Upload failed",
		Description: "Please try again.",
	}
	NotifyQueryAnswered = Notification{
		Level:       NotificationSuccess,
		Title:       "Query answered",
		Description: "Check the result below.",
	}
	NotifyQueryFailed = Notification{
		Level:       NotificationError,
		Title:       "Something went wrong",
		Description: "Try asking again.",
	}
	NotifyResetComplete = Notification{
		Level:       NotificationInfo,
		Title:       "Reset complete",
		Description: "File and question cleared.",
	}
)

// NotifyInvalidFile reports a document rejected before it was selected
func NotifyInvalidFile(reason string) Notification {
	return Notification{
		Level:       NotificationError,
		Title:       "Invalid file",
		Description: reason,
	}
}

var NotifyExportFailed = Notification{
	Level:       NotificationError,
	Title:       "Export failed",
	Description: "Ask a question first, then download the answer.",
}
