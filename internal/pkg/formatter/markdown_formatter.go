package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/ragdesk/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format keeps the answer as is, it is markdown already
func (mf *MarkdownFormatter) Format(t entity.Transcript) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n## %s\n\n%s\n\n## %s\n\n%s\n",
		title(t), headingQuestion, t.Question, headingAnswer, t.Answer)
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
