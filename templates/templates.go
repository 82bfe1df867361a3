// Package templates embeds the HTML views rendered by the controllers.
// File: templates/templates.go
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every embedded view. Pages are addressed by file name,
// e.g. c.HTML(http.StatusOK, "add.html", data).
func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
