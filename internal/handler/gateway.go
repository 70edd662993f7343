package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"tmpfiles/internal/control"
	"tmpfiles/internal/model"
)

const (
	prefixList   = `Internal Server Error: `
	prefixRead   = `Unable to read the file: `
	prefixRename = `Error renaming the file: `
	prefixCreate = `Unable to create file: `
	prefixEdit   = `Unable to render the rename form: `
)

// link is one listed entry with its hrefs already path-escaped, since the
// template URL normalizer leaves reserved characters such as ? and # alone.
type link struct {
	Name string
	File template.URL
	Edit template.URL
}

// Gateway serves the file store over HTTP. Handlers keep no state between
// requests.
type Gateway struct {
	store  model.Store
	logger control.Logger
}

func NewGateway(store model.Store, logger control.Logger) Gateway {
	gateway := Gateway{
		store:  store,
		logger: logger,
	}
	return gateway
}

func (gateway Gateway) Mount(router chi.Router) {
	router.Get(`/`, gateway.Index)
	router.Get(`/files/{filename}`, gateway.Show)
	router.Get(`/edit/{filename}`, gateway.Edit)
	router.Post(`/edit`, gateway.Rename)
	router.Post(`/create`, gateway.Create)
	router.NotFound(NotFound)
	router.MethodNotAllowed(MethodNotAllowed)
}

func (gateway Gateway) Index(w http.ResponseWriter, r *http.Request) {
	names, err := gateway.store.List()
	if err != nil {
		gateway.fail(w, `list`, prefixList, err)
		return
	}
	links := make([]link, len(names))
	for i, name := range names {
		escaped := url.PathEscape(name)
		links[i] = link{
			Name: name,
			File: template.URL(`/files/` + escaped),
			Edit: template.URL(`/edit/` + escaped),
		}
	}
	gateway.render(w, IndexTemplate, prefixList, struct {
		Title string
		Links []link
	}{Title: `files`, Links: links})
}

func (gateway Gateway) Show(w http.ResponseWriter, r *http.Request) {
	entry, err := gateway.store.Read(filename(r))
	if err != nil {
		gateway.fail(w, `read`, prefixRead, err)
		return
	}
	gateway.render(w, ShowTemplate, prefixRead, struct {
		Title   string
		Name    string
		Content string
	}{Title: entry.Name, Name: entry.Name, Content: entry.Content})
}

// Edit only renders the rename form; the name is not checked against the
// store.
func (gateway Gateway) Edit(w http.ResponseWriter, r *http.Request) {
	name := filename(r)
	gateway.render(w, EditTemplate, prefixEdit, struct {
		Title string
		Name  string
	}{Title: name, Name: name})
}

func (gateway Gateway) Rename(w http.ResponseWriter, r *http.Request) {
	previous := r.FormValue(`previous`)
	next := r.FormValue(`new`)
	if err := gateway.store.Rename(previous, next); err != nil {
		gateway.fail(w, `rename`, prefixRename, err)
		return
	}
	gateway.logger.Audit(`rename previous=%s new=%s`, previous, next)
	http.Redirect(w, r, `/`, http.StatusFound)
}

func (gateway Gateway) Create(w http.ResponseWriter, r *http.Request) {
	name, err := gateway.store.Create(r.FormValue(`title`), r.FormValue(`details`))
	if err != nil {
		gateway.fail(w, `create`, prefixCreate, err)
		return
	}
	gateway.logger.Audit(`create name=%s`, name)
	http.Redirect(w, r, `/`, http.StatusFound)
}

func (gateway Gateway) fail(w http.ResponseWriter, op string, prefix string, err error) {
	gateway.logger.Error(`%s error: %s`, op, err)
	http.Error(w, prefix+err.Error(), http.StatusInternalServerError)
}

// render buffers the page so a template failure can still become a 500.
func (gateway Gateway) render(w http.ResponseWriter, tmpl *template.Template, prefix string, data any) {
	buffer := bytes.NewBuffer([]byte{})
	if err := tmpl.Execute(buffer, data); err != nil {
		gateway.fail(w, `template`, prefix, err)
		return
	}
	w.Header().Set(`content-type`, `text/html; charset=utf-8`)
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// filename returns the decoded path segment. chi matches against the raw
// path when one exists, so only then is the parameter still escaped.
func filename(r *http.Request) string {
	name := chi.URLParam(r, `filename`)
	if r.URL.RawPath == `` {
		return name
	}
	if text, err := url.PathUnescape(name); err == nil {
		return text
	}
	return name
}
