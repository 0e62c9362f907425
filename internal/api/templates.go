// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package api

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/fundviz/fundviz/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer renders the embedded chart pages. Each page receives a
// flat parameter map; the core never inspects the rendered output.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return &TemplateRenderer{templates: templates}, nil
}

// Render writes the named page. Params are exposed to the template as-is.
func (t *TemplateRenderer) Render(w http.ResponseWriter, name string, params map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.templates.ExecuteTemplate(w, name+".html", params); err != nil {
		logging.Error().Err(err).Str("template", name).Msg("Template rendering failed")
	}
}
