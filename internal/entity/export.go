package entity

import (
	"fmt"
	"strings"
)

// ExportFormat is a file format the current answer can be exported to
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "md"
	FormatPDF      ExportFormat = "pdf"
	FormatDOCX     ExportFormat = "docx"
)

// ParseExportFormat accepts md, pdf and docx in any case. An empty string
// selects markdown.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "markdown":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (allowed: md, pdf, docx)", ErrUnsupportedFormat, s)
	}
}

// Transcript is the exported content of a session: which document was
// asked about, the last question and its answer
type Transcript struct {
	Document string
	Question string
	Answer   string
}
