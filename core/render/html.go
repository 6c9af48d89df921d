package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/chunk"
	"github.com/gaurav-prasanna/dailyword/core/locale"
)

// The card is also the input of the Markdown renderer, so it carries no styling.
const cardTemplate = `{{define "card"}}<main class="card">
<p id="today" class="date">{{.W.Date}}</p>
{{if .W.Title}}<h1>{{.W.Title}}</h1>
{{end}}<h2 id="ref">{{.W.Reference}}</h2>
<div id="text">{{range .Paragraphs}}<p>{{range $i, $line := .}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>{{end}}</div>
<p id="status" class="status">{{.W.Status}}{{if .W.Link}} <a id="source" href="{{.W.Link}}" target="_blank" rel="noopener">{{.LinkLabel}}</a>{{end}}</p>
</main>{{end}}`

const pageTemplate = `{{define "page"}}<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="description" content="{{.Excerpt}}">
<title>{{if .W.Title}}{{.W.Title}} · {{end}}{{.W.Reference}}</title>
<style>
body{margin:0;padding:16px;font-family:Georgia,serif;background:#fbfaf7;color:#2b2b2b}
.card{max-width:680px;margin:0 auto}
.date{font-size:13px;color:#8a8070;text-transform:capitalize;margin:0 0 4px}
h1{font-size:15px;font-weight:normal;letter-spacing:.08em;text-transform:uppercase;margin:0 0 12px;color:#6b5e4a}
h2{font-size:20px;margin:0 0 12px}
#text p{line-height:1.6;margin:0 0 12px}
.status{font-size:12px;color:#8a8070}
.status a{color:inherit}
</style>
</head>
<body>
{{template "card" .}}
</body>
</html>
{{end}}`

var tmpl = template.Must(template.Must(template.New("card").Parse(cardTemplate)).Parse(pageTemplate))

type viewModel struct {
	W          core.Widget
	Lang       string
	Excerpt    string
	LinkLabel  string
	Paragraphs [][]string
}

func newViewModel(w core.Widget) viewModel {
	label := w.LinkLabel
	if label == "" {
		label = "↗"
	}
	return viewModel{
		W:          w,
		Lang:       locale.Match(w.Locale).String(),
		Excerpt:    chunk.New(0).Excerpt(w.Text),
		LinkLabel:  label,
		Paragraphs: chunk.Paragraphs(w.Text),
	}
}

// HTMLRenderer writes a self-contained page suitable for an embed block.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render executes the page template.
func (r *HTMLRenderer) Render(w core.Widget) ([]byte, error) {
	return execute("page", w)
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// ContentType returns the MIME type for HTML output.
func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func execute(name string, w core.Widget) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, newViewModel(w)); err != nil {
		return nil, fmt.Errorf("executing %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}
