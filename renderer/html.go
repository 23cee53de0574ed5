package renderer

import (
	"html/template"
	"io/fs"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/spelloconsulting/portfolioperf"
)

// HTML renders the HTML report. When overridePath names a template file
// it is used instead of the embedded default, so the report layout can
// be customised without rebuilding.
func HTML(r *portfolio.Report, overridePath string) (string, error) {
	var content []byte
	var err error
	if overridePath != "" {
		content, err = os.ReadFile(overridePath)
		if err != nil {
			return "", errors.Wrapf(err, "reading report template %s", overridePath)
		}
	} else {
		content, err = fs.ReadFile(templates, "templates/report.html.tmpl")
		if err != nil {
			return "", errors.Wrap(err, "reading embedded report template")
		}
	}

	tmpl, err := template.New("report_html").Parse(string(content))
	if err != nil {
		return "", errors.Wrap(err, "parsing report template")
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, r); err != nil {
		return "", errors.Wrap(err, "rendering report template")
	}
	return b.String(), nil
}
