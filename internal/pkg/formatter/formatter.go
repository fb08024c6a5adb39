// Package formatter renders a session transcript into downloadable files.
package formatter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
)

const (
	headingQuestion = "Question"
	headingAnswer   = "Answer"
)

type Formatter interface {
	Format(t entity.Transcript) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

// File is a rendered export ready to be sent
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Export renders t in format
func (f *Factory) Export(t entity.Transcript, format entity.ExportFormat) (*File, error) {
	fm, err := f.Create(format)
	if err != nil {
		return nil, err
	}

	content, err := fm.Format(t)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", format, err)
	}

	return &File{
		Name:        exportName(t.Document) + fm.FileExtension(),
		ContentType: fm.ContentType(),
		Content:     content,
	}, nil
}

func title(t entity.Transcript) string {
	if t.Document == "" {
		return "Answer"
	}
	return "Answer from " + t.Document
}

func exportName(document string) string {
	base := strings.TrimSuffix(filepath.Base(document), filepath.Ext(document))
	if base == "" || base == "." {
		return "answer"
	}
	return base + "-answer"
}
