package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{
		"":         FormatMarkdown,
		"markdown": FormatMarkdown,
		"MD":       FormatMarkdown,
		" pdf ":    FormatPDF,
		"docx":     FormatDOCX,
	} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseExportFormat("xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.True(t, IsValidation(err))
}

func TestErrorGroups(t *testing.T) {
	assert.True(t, IsPrecondition(ErrNoAnswer))
	assert.True(t, IsPrecondition(ErrBusy))
	assert.False(t, IsPrecondition(ErrEmptyQuestion))
	assert.True(t, IsValidation(ErrEmptyQuestion))
	assert.False(t, IsValidation(ErrTransport))
}
