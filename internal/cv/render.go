package cv

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed template.html
var defaultTemplate string

// TemplateError represents an error parsing a CV template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure producing HTML or PDF output.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

var funcs = template.FuncMap{
	"month": FormatMonth,
	"lines": func(s string) []string {
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	},
}

// ParseTemplate parses an HTML CV template with the CV helper functions.
func ParseTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("cv").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

// RenderHTML writes c as a standalone HTML page using the built-in template.
func RenderHTML(w io.Writer, c *CV) error {
	tmpl, err := ParseTemplate(defaultTemplate)
	if err != nil {
		return err
	}
	return RenderTemplate(w, tmpl, c)
}

// RenderTemplate executes tmpl with c. Nothing is written to w on failure.
func RenderTemplate(w io.Writer, tmpl *template.Template, c *CV) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, c); err != nil {
		return &RenderError{Message: "failed to execute template", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write html", Cause: err}
	}
	return nil
}

// PDFRenderer turns a standalone HTML page into a PDF document.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Export validates c, renders it to HTML and prints it to PDF into w.
func Export(ctx context.Context, c *CV, renderer PDFRenderer, w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var html bytes.Buffer
	if err := RenderHTML(&html, c); err != nil {
		return err
	}

	pdf, err := renderer.Render(ctx, html.String())
	if err != nil {
		return &RenderError{Message: "failed to print pdf", Cause: err}
	}

	if _, err := w.Write(pdf); err != nil {
		return &RenderError{Message: "failed to write pdf", Cause: err}
	}
	return nil
}
