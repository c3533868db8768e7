// Package render turns a RenderRequest into something a user can look at: an HTML page
// driving the neovis.js widget, or node positions for the terminal canvas.
package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"graphview/internal/config"
	"graphview/internal/viewer"
	"graphview/internal/visconfig"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Page writes the single-page viewer bound to the configured container.
type Page struct {
	title string
	view  config.ViewConfig
}

type pageData struct {
	Title       string
	ContainerID string
	Width       int
	Height      int
	NeovisURL   string
	Request     *visconfig.RenderRequest
}

// NewPage creates a Page for view.
func NewPage(title string, view config.ViewConfig) *Page {
	return &Page{title: title, view: view}
}

// Write renders the page. A nil req produces the bare container with no widget script.
func (p *Page) Write(w io.Writer, req *visconfig.RenderRequest) error {
	data := pageData{
		Title:       p.title,
		ContainerID: p.view.ContainerID,
		Width:       p.view.Width,
		Height:      p.view.Height,
		NeovisURL:   p.view.NeovisURL,
		Request:     req,
	}
	if req != nil {
		data.ContainerID = req.ContainerID
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

// Bind returns a viewer.Renderer that writes the page for each request into w.
func (p *Page) Bind(w io.Writer) viewer.Renderer {
	return viewer.RendererFunc(func(_ context.Context, req *visconfig.RenderRequest) error {
		return p.Write(w, req)
	})
}
