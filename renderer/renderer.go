// Package renderer turns the valuation report model into its output
// forms: the plain-text report, the HTML report, and markdown tables
// for the terminal commands.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/spelloconsulting/portfolioperf"
	"github.com/spelloconsulting/portfolioperf/date"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Text renders the plain-text report body.
func Text(r *portfolio.Report) string {
	return renderTemplate("report_text", "templates/report.txt.tmpl", r)
}

// ValuationMarkdown renders the report as markdown for the terminal.
func ValuationMarkdown(r *portfolio.Report) string {
	return renderTemplate("valuation_md", "templates/valuation.md.tmpl", r)
}

// HoldingsMarkdown renders the imported holdings as a markdown table.
func HoldingsMarkdown(holdings []*portfolio.Holding) string {
	return renderTemplate("holdings_md", "templates/holdings.md.tmpl", holdings)
}

// historyRow is one prepared line of the history table.
type historyRow struct {
	Date  string
	Value string
}

// HistoryMarkdown renders the valuation history as a markdown table.
func HistoryMarkdown(history *date.History[float64]) string {
	rows := make([]historyRow, 0, history.Len())
	for on, value := range history.Values() {
		rows = append(rows, historyRow{Date: on.String(), Value: fmt.Sprintf("%.0f", value)})
	}
	return renderTemplate("history_md", "templates/history.md.tmpl", rows)
}

// renderTemplate is a generic utility to render one embedded template.
func renderTemplate(templateName, mainFile string, data any) string {
	content, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", mainFile, err)
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
