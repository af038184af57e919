// Package components renders the post details view and keeps its local
// state (the write-comment form) next to the shared comments store.
package components

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("components").ParseFS(templateFS, "templates/*.html"))

// RenderLoader writes the loading indicator.
func RenderLoader(w io.Writer) error {
	return templates.ExecuteTemplate(w, "Loader", nil)
}
