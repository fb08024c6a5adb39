package formatter

import (
	"bytes"
	"testing"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transcript = entity.Transcript{
	Document: "report.pdf",
	Question: "What is the total?",
	Answer:   "The total is **42**.\n\n- a\n- b",
}

func TestExport_Markdown(t *testing.T) {
	file, err := NewFactory().Export(transcript, entity.FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "report-answer.md", file.Name)
	assert.Equal(t, markdownContentType, file.ContentType)
	assert.Equal(t, "# Answer from report.pdf\n\n## Question\n\nWhat is the total?\n\n## Answer\n\nThe total is **42**.\n\n- a\n- b\n", string(file.Content))
}

func TestExport_PDF(t *testing.T) {
	file, err := NewFactory().Export(transcript, entity.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "report-answer.pdf", file.Name)
	assert.Equal(t, pdfContentType, file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF-")))
}

func TestCreate(t *testing.T) {
	f := NewFactory()

	docx, err := f.Create(entity.FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, ".docx", docx.FileExtension())
	assert.Equal(t, docxContentType, docx.ContentType())

	_, err = f.Create("xlsx")
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "report-answer", exportName("report.pdf"))
	assert.Equal(t, "answer", exportName(""))
	assert.Equal(t, "Answer", title(entity.Transcript{}))
}
