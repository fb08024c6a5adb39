package session

import (
	"strings"

	"github.com/futig/ragdesk/internal/entity"
)

// State is the inspectable value of one session. The zero value is the
// initial state: nothing selected, nothing indexed, no answer.
type State struct {
	Busy         bool
	Indexed      bool
	SelectedFile *entity.FileData
	QuestionText string
	// AnswerText is the markdown returned by the last successful query,
	// empty when there is none.
	AnswerText string
}

// Phase names the node of the select -> upload -> ask* -> reset cycle
type Phase string

const (
	PhaseEmpty        Phase = "empty"
	PhaseFileSelected Phase = "file_selected"
	PhaseUploading    Phase = "uploading"
	PhaseIndexed      Phase = "indexed"
	PhaseQuerying     Phase = "querying"
)

// Phase derives the current node. Querying is the busy sub-state of Indexed.
func (s State) Phase() Phase {
	switch {
	case s.Busy && s.Indexed:
		return PhaseQuerying
	case s.Busy:
		return PhaseUploading
	case s.Indexed:
		return PhaseIndexed
	case s.SelectedFile != nil:
		return PhaseFileSelected
	default:
		return PhaseEmpty
	}
}

// Outcome is the settled result of a remote call: fulfilled when Err is nil,
// rejected otherwise.
type Outcome struct {
	Answer string
	Err    error
}

func (o Outcome) Fulfilled() bool {
	return o.Err == nil
}

// Transitions. Each returns the next state, or the unchanged state and the
// reason the transition is not allowed.

func selectFile(s State, file *entity.FileData) State {
	s.SelectedFile = file
	return s
}

// replaceFile is selectFile for front ends: a new file is only taken while
// the file input is enabled, so an upload in flight keeps its file.
func replaceFile(s State, file *entity.FileData) (State, error) {
	if s.Busy {
		return s, entity.ErrBusy
	}
	if s.Indexed {
		return s, entity.ErrAlreadyIndexed
	}
	return selectFile(s, file), nil
}

func beginUpload(s State) (State, error) {
	if s.Busy {
		return s, entity.ErrBusy
	}
	if s.SelectedFile == nil {
		return s, entity.ErrNoFileSelected
	}
	if s.Indexed {
		return s, entity.ErrAlreadyIndexed
	}

	s.Busy = true
	return s, nil
}

func completeUpload(s State, out Outcome) State {
	s.Busy = false
	if out.Fulfilled() {
		s.Indexed = true
	}
	return s
}

func beginAsk(s State, question string) (State, error) {
	if s.Busy {
		return s, entity.ErrBusy
	}
	if !s.Indexed {
		return s, entity.ErrNotIndexed
	}
	if strings.TrimSpace(question) == "" {
		return s, entity.ErrEmptyQuestion
	}

	s.QuestionText = question
	s.Busy = true
	return s, nil
}

// completeAsk keeps the previous answer on failure.
func completeAsk(s State, out Outcome) State {
	s.Busy = false
	if out.Fulfilled() {
		s.AnswerText = out.Answer
	}
	return s
}

func reset(s State) (State, error) {
	if s.Busy {
		return s, entity.ErrBusy
	}
	return State{}, nil
}

// Transcript is what the page shows: the current question and the last
// answer. It fails with ErrNoAnswer until a query succeeded.
func (s State) Transcript() (entity.Transcript, error) {
	if s.AnswerText == "" {
		return entity.Transcript{}, entity.ErrNoAnswer
	}

	t := entity.Transcript{
		Question: s.QuestionText,
		Answer:   s.AnswerText,
	}
	if s.SelectedFile != nil {
		t.Document = s.SelectedFile.Filename
	}
	return t, nil
}
