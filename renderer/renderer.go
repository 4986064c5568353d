// Package renderer turns consolidation results into markdown reports.
package renderer

import (
	"fmt"
	"strings"
	"text/template"
)

// renderTemplate is a generic utility to render one named template over data.
func renderTemplate(name, content string, data any) string {
	tmpl, err := template.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}

var funcs = template.FuncMap{
	"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
}
