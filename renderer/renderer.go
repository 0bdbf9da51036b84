// Package renderer formats sale records for tax declarations: Markdown reports, their
// terminal and HTML renditions, and spreadsheet exports.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rsutax"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.md
var templates embed.FS

// salesReport is the data of the sales.md template.
type salesReport struct {
	Title   string
	Records []rsutax.SaleRecord
	Summary rsutax.Summary
}

// comparisonReport is the data of the comparison.md template.
type comparisonReport struct {
	Title   string
	Results []rsutax.MethodResult
}

// SalesMarkdown renders sale records and their totals as a markdown table.
func SalesMarkdown(title string, records []rsutax.SaleRecord) string {
	return renderTemplate("sales.md", salesReport{
		Title:   title,
		Records: records,
		Summary: rsutax.Totals(records),
	})
}

// ComparisonMarkdown renders the outcome of the same schedule under each matching method.
func ComparisonMarkdown(title string, results []rsutax.MethodResult) string {
	return renderTemplate("comparison.md", comparisonReport{Title: title, Results: results})
}

// renderTemplate executes an embedded template.
func renderTemplate(file string, data any) string {
	content, err := fs.ReadFile(templates, "templates/"+file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(file).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}

// Terminal renders markdown for a terminal of the given width, with ANSI styles when style
// is "dark" or "light", and plain text with "notty".
func Terminal(md string, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("cannot create terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("cannot render markdown: %w", err)
	}
	return out, nil
}

// HTML renders markdown as an HTML fragment, tables included.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	converter := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := converter.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to html: %w", err)
	}
	return buf.String(), nil
}
