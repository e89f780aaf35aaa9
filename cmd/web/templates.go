package main

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/myrjola/pulsecoach/internal/chatbot"
	"github.com/myrjola/pulsecoach/internal/contexthelpers"
)

//go:embed templates
var templateFS embed.FS

type BaseTemplateData struct {
	CurrentProfileID int64
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentProfileID: contexthelpers.CurrentProfileID(r.Context()),
	}
}

// templateFuncs returns the template.FuncMap shared by all pages.
func (app *application) templateFuncs(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"mdToHTML": func(markdown string) template.HTML {
			return app.renderMarkdownToHTML(ctx, markdown)
		},
	}
}

// renderMarkdownToHTML renders assistant markdown for the chat page. A
// rendering failure degrades to escaped plain text instead of failing the
// page.
func (app *application) renderMarkdownToHTML(ctx context.Context, markdown string) template.HTML {
	rendered, err := chatbot.RenderMarkdown(markdown)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "render markdown", slog.Any("error", err))
		return template.HTML(template.HTMLEscapeString(markdown)) //nolint:gosec // escaped above.
	}
	return rendered
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to a directory inside cmd/web/templates/pages. It has
// to include a template named "page".
func (app *application) pageTemplate(ctx context.Context, pageName string) (*template.Template, error) {
	t := template.New(pageName).Funcs(app.templateFuncs(ctx))
	t, err := t.ParseFS(templateFS, "templates/base.gohtml", fmt.Sprintf("templates/pages/%s/*.gohtml", pageName))
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return t, nil
}

// render renders the template residing in cmd/web/templates/pages/{pageName}
// and writes it to the response writer.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, pageName string, data any) {
	t, err := app.pageTemplate(r.Context(), pageName)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, r, fmt.Errorf("execute template %s: %w", pageName, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
