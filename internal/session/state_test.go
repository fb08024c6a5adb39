package session

import (
	"testing"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdf = &entity.FileData{Filename: "report.pdf", Content: []byte("%PDF-1.4")}

func TestView(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  View
	}{
		{
			name:  "empty",
			state: State{},
			want: View{
				Phase:            PhaseEmpty,
				FileInputEnabled: true,
				UploadLabel:      "Upload PDF",
				ResetEnabled:     true,
			},
		},
		{
			name:  "file selected",
			state: State{SelectedFile: pdf},
			want: View{
				Phase:            PhaseFileSelected,
				Filename:         "report.pdf",
				FileInputEnabled: true,
				UploadEnabled:    true,
				UploadLabel:      "Upload PDF",
				ResetEnabled:     true,
			},
		},
		{
			name:  "uploading",
			state: State{SelectedFile: pdf, Busy: true},
			want: View{
				Phase:       PhaseUploading,
				Busy:        true,
				Filename:    "report.pdf",
				UploadLabel: "Uploading...",
			},
		},
		{
			name:  "indexed without question",
			state: State{SelectedFile: pdf, Indexed: true},
			want: View{
				Phase:            PhaseIndexed,
				Indexed:          true,
				Filename:         "report.pdf",
				UploadLabel:      "Upload PDF",
				ResetEnabled:     true,
				QuestionEnabled:  true,
				ShowIndexedBadge: true,
			},
		},
		{
			name:  "answered",
			state: State{SelectedFile: pdf, Indexed: true, QuestionText: "total?", AnswerText: "42"},
			want: View{
				Phase:            PhaseIndexed,
				Indexed:          true,
				Filename:         "report.pdf",
				QuestionText:     "total?",
				AnswerText:       "42",
				UploadLabel:      "Upload PDF",
				ResetEnabled:     true,
				QuestionEnabled:  true,
				AskEnabled:       true,
				ShowIndexedBadge: true,
				ShowAnswer:       true,
			},
		},
		{
			name:  "querying",
			state: State{SelectedFile: pdf, Indexed: true, Busy: true, QuestionText: "total?"},
			want: View{
				Phase:            PhaseQuerying,
				Busy:             true,
				Indexed:          true,
				Filename:         "report.pdf",
				QuestionText:     "total?",
				UploadLabel:      "Uploading...",
				ShowIndexedBadge: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.View())
		})
	}
}

func TestTransitions_BusyGuards(t *testing.T) {
	busy := State{SelectedFile: pdf, Indexed: true, Busy: true}

	_, err := beginUpload(busy)
	assert.ErrorIs(t, err, entity.ErrBusy)

	_, err = beginAsk(busy, "q")
	assert.ErrorIs(t, err, entity.ErrBusy)

	got, err := reset(busy)
	assert.ErrorIs(t, err, entity.ErrBusy)
	assert.Equal(t, busy, got)
}

func TestTransitions_UploadOutcome(t *testing.T) {
	started, err := beginUpload(State{SelectedFile: pdf})
	require.NoError(t, err)
	require.True(t, started.Busy)

	ok := completeUpload(started, Outcome{})
	assert.True(t, ok.Indexed)
	assert.False(t, ok.Busy)

	failed := completeUpload(started, Outcome{Err: entity.ErrTransport})
	assert.False(t, failed.Indexed)
	assert.False(t, failed.Busy)
	assert.Same(t, pdf, failed.SelectedFile)
}

func TestTransitions_AskOutcome(t *testing.T) {
	indexed := State{SelectedFile: pdf, Indexed: true, AnswerText: "old"}

	started, err := beginAsk(indexed, "new?")
	require.NoError(t, err)
	assert.Equal(t, "new?", started.QuestionText)
	assert.True(t, started.Busy)

	assert.Equal(t, "new", completeAsk(started, Outcome{Answer: "new"}).AnswerText)
	assert.Equal(t, "old", completeAsk(started, Outcome{Err: entity.ErrTransport}).AnswerText)
}

func TestTransitions_ReplaceFile(t *testing.T) {
	other := &entity.FileData{Filename: "other.pdf"}

	got, err := replaceFile(State{SelectedFile: pdf}, other)
	require.NoError(t, err)
	assert.Same(t, other, got.SelectedFile)

	uploading := State{SelectedFile: pdf, Busy: true}
	got, err = replaceFile(uploading, other)
	assert.ErrorIs(t, err, entity.ErrBusy)
	assert.Equal(t, uploading, got)

	_, err = replaceFile(State{SelectedFile: pdf, Indexed: true}, other)
	assert.ErrorIs(t, err, entity.ErrAlreadyIndexed)
}

func TestOutcome(t *testing.T) {
	assert.True(t, Outcome{Answer: "a"}.Fulfilled())
	assert.False(t, Outcome{Err: entity.ErrTransport}.Fulfilled())
}

func TestTranscript(t *testing.T) {
	_, err := State{SelectedFile: pdf, Indexed: true, QuestionText: "q"}.Transcript()
	assert.ErrorIs(t, err, entity.ErrNoAnswer)

	got, err := State{SelectedFile: pdf, Indexed: true, QuestionText: "q", AnswerText: "a"}.Transcript()
	require.NoError(t, err)
	assert.Equal(t, entity.Transcript{Document: "report.pdf", Question: "q", Answer: "a"}, got)
}
