package session

// View is the UI-enablement state derived from a State. Front ends render
// it and never compute enablement themselves.
type View struct {
	Phase            Phase  `json:"phase"`
	Busy             bool   `json:"busy"`
	Indexed          bool   `json:"indexed"`
	Filename         string `json:"filename,omitempty"`
	QuestionText     string `json:"question"`
	AnswerText       string `json:"answer,omitempty"`
	FileInputEnabled bool   `json:"file_input_enabled"`
	// UploadEnabled is for API clients. The page keeps its Upload button on
	// FileInputEnabled so a post without a file reports "No file selected".
	UploadEnabled    bool   `json:"upload_enabled"`
	UploadLabel      string `json:"upload_label"`
	ResetEnabled     bool   `json:"reset_enabled"`
	QuestionEnabled  bool   `json:"question_enabled"`
	AskEnabled       bool   `json:"ask_enabled"`
	ShowIndexedBadge bool   `json:"show_indexed_badge"`
	ShowAnswer       bool   `json:"show_answer"`
}

const (
	uploadLabelIdle = "Upload PDF"
	uploadLabelBusy = "Uploading..."
)

// View derives the enablement of every control from s
func (s State) View() View {
	v := View{
		Phase:            s.Phase(),
		Busy:             s.Busy,
		Indexed:          s.Indexed,
		QuestionText:     s.QuestionText,
		AnswerText:       s.AnswerText,
		FileInputEnabled: !s.Busy && !s.Indexed,
		UploadEnabled:    !s.Busy && !s.Indexed && s.SelectedFile != nil,
		UploadLabel:      uploadLabelIdle,
		ResetEnabled:     !s.Busy,
		QuestionEnabled:  s.Indexed && !s.Busy,
		AskEnabled:       s.Indexed && s.QuestionText != "" && !s.Busy,
		ShowIndexedBadge: s.Indexed,
		ShowAnswer:       s.AnswerText != "",
	}

	if s.SelectedFile != nil {
		v.Filename = s.SelectedFile.Filename
	}
	if s.Busy {
		v.UploadLabel = uploadLabelBusy
	}

	return v
}
