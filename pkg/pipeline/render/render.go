// Package render renders the text templates used to generate driver programs.
package render

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Fields maps template field names to their values.
type Fields map[string]any

// Engine renders text/template sources. Referencing a field that is not set is an error, so a rendered text never
// keeps an unresolved placeholder.
type Engine struct {
	funcs template.FuncMap
}

// New creates an engine. The quote function is always available and renders a Go string literal.
func New() *Engine {
	return &Engine{
		funcs: template.FuncMap{
			"quote": strconv.Quote,
		},
	}
}

// Render parses text and executes it with fields.
func (e *Engine) Render(name, text string, fields any) (string, error) {
	tpl, err := template.New(name).Funcs(e.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, "unable to parse template %s", name)
	}

	var sb strings.Builder
	err = tpl.Execute(&sb, fields)
	if err != nil {
		return "", errors.Wrapf(err, "unable to execute template %s", name)
	}

	return sb.String(), nil
}
