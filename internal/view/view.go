// Package view renders the todo list page.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"todolist/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer turns a todo list into HTML.
type Renderer struct {
	tmpl *template.Template
}

type indexData struct {
	Todos  []models.Todo
	MaxLen int
}

// New parses the embedded page templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the index page for todos to w.
func (r *Renderer) Render(w io.Writer, todos []models.Todo) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", indexData{Todos: todos, MaxLen: models.DescriptionMaxLen})
}

// Assets returns the embedded stylesheet directory.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
