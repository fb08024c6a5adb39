package formatter

import (
	"bytes"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(t entity.Transcript) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	heading(doc, "Heading1", title(t))

	heading(doc, "Heading2", headingQuestion)
	paragraphs(doc, t.Question)

	heading(doc, "Heading2", headingAnswer)
	paragraphs(doc, t.Answer)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func heading(doc *document.Document, style, text string) {
	p := doc.AddParagraph()
	p.SetStyle(style)
	p.AddRun().AddText(text)
}

// paragraphs writes one paragraph per line so line breaks survive
func paragraphs(doc *document.Document, text string) {
	for _, line := range strings.Split(text, "\n") {
		doc.AddParagraph().AddRun().AddText(line)
	}
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
