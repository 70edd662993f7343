package handler

import (
	"html/template"
	"strings"
)

const head = `
<!doctype html>
<html>
<head>
  <title>{{ .Title }}</title>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
</head>
<body>
`

const tail = `
</body>
</html>
`

func page(name string, body string) *template.Template {
	return template.Must(template.New(name).Parse(strings.TrimSpace(head+strings.TrimSpace(body)+tail) + "\n"))
}

var IndexTemplate = page(`tmpfiles-index.html`, `
<h1>files</h1>
{{- range .Links }}
<a href="{{ .File }}">{{ .Name }}</a> <a href="{{ .Edit }}">rename</a><br>
{{- else }}
<p>no files yet</p>
{{- end }}
<form action="/create" method="post">
  <input type="text" name="title" placeholder="title">
  <textarea name="details" placeholder="details"></textarea>
  <button type="submit">create</button>
</form>
`)

var ShowTemplate = page(`tmpfiles-show.html`, `
<h1>{{ .Name }}</h1>
<pre>{{ .Content }}</pre>
<a href="/">back</a>
`)

var EditTemplate = page(`tmpfiles-edit.html`, `
<h1>rename {{ .Name }}</h1>
<form action="/edit" method="post">
  <input type="hidden" name="previous" value="{{ .Name }}">
  <input type="text" name="new" value="{{ .Name }}">
  <button type="submit">rename</button>
</form>
<a href="/">back</a>
`)
