package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/groupzip/groupzip"
)

//go:embed templates/*.html
var templateFS embed.FS

// WebApp is the form front end: it collects a directory path, runs the
// archiver on it and shows the result of the session's last run.
type WebApp struct {
	Options       groupzip.Options
	Logger        *log.Logger
	Sessions      *SessionStore
	TemplateCache map[string]*template.Template
}

// New parses the embedded templates and returns a ready WebApp.
func New(opts groupzip.Options, logger *log.Logger) (*WebApp, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	webapp := &WebApp{
		Options:  opts,
		Logger:   logger,
		Sessions: NewSessionStore(),
	}
	if err := webapp.initTemplates(); err != nil {
		return nil, err
	}
	return webapp, nil
}

func (webapp *WebApp) initTemplates() error {
	funcMap := template.FuncMap{
		"base": filepath.Base,
	}
	webapp.TemplateCache = make(map[string]*template.Template)
	for _, name := range []string{"home.html", "success.html", "error.html"} {
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		webapp.TemplateCache[name] = tmpl
	}
	return nil
}

// Handler returns the HTTP handler serving the front end.
func (webapp *WebApp) Handler() http.Handler {
	return router(webapp)
}

func (webapp *WebApp) render(w http.ResponseWriter, name string, data any) {
	tmpl := webapp.TemplateCache[name]
	if tmpl == nil {
		webapp.renderError(w, http.StatusInternalServerError, "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		webapp.Logger.Error("render template", "template", name, "err", err)
	}
}
