package page

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/futig/ragdesk/internal/api/ui"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/session"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").
		Funcs(template.FuncMap{
			"cn":      ui.Classes,
			"classIf": ui.If,
		}).
		ParseFS(templateFS, "templates/*.html"),
)

// raw HTML in answers is dropped by the default renderer
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type pageData struct {
	View          session.View
	AnswerHTML    template.HTML
	Notifications []entity.Notification
	MaxUploadMB   int64
}

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func renderPage(w io.Writer, data pageData) error {
	return templates.ExecuteTemplate(w, "index.html", data)
}
