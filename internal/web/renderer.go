// Package web renders the embedded HTML pages served by the prediction form.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded page templates. Templates are parsed once at
// construction and are safe for concurrent use.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// resultsPage feeds results.html. Exactly one of Result or Error is populated.
type resultsPage struct {
	Result string
	Error  string
}

// Form renders the score input form.
func (r *Renderer) Form(c *fiber.Ctx) error {
	return r.render(c, "index.html", nil)
}

// Result renders the results page with a populated score.
func (r *Renderer) Result(c *fiber.Ctx, score string) error {
	return r.render(c, "results.html", resultsPage{Result: score})
}

// Error renders the results page with the generic failure message.
func (r *Renderer) Error(c *fiber.Ctx, message string) error {
	return r.render(c, "results.html", resultsPage{Error: message})
}

func (r *Renderer) render(c *fiber.Ctx, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(buf.String())
}
