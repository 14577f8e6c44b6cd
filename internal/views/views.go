// Package views embeds the HTML templates and exposes the render engine.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts errors users posts tags *.html
var files embed.FS

// Engine returns the template engine backed by the embedded templates.
// Template names are paths without the .html extension, e.g. "users/index".
func Engine() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
