package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	portfolio "github.com/spelloconsulting/portfolioperf"
	"github.com/spelloconsulting/portfolioperf/chart"
	"github.com/spelloconsulting/portfolioperf/renderer"
)

// reportsDir is where rendered report files land before delivery.
const reportsDir = "reports"

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "run the full valuation and deliver the report" }
func (*reportCmd) Usage() string {
	return `pperf report

  Values the portfolio on the current and prior dates, derives the
  change, winners and losers, and asset class moves, then renders the
  report and delivers it by email when email is enabled. This is the
  command the scheduler runs.

Usage Examples:
$ pperf -config config.yaml report

`
}

func (*reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	// Captured before this run records anything, so a clean run can
	// notice it recovered from a previously failed one.
	hadPriorFailure := a.log.HadPriorFailure()

	prices := a.priceTable()
	set := a.importHoldings(prices)
	v, ledger := a.valuation(set, prices)

	if !v.Valuate(portfolio.ModePrior) {
		a.log.Errorf("No prior valuation available. Cannot proceed with valuation change report.")
		return subcommands.ExitFailure
	}
	if !v.Valuate(portfolio.ModeCurrent) {
		a.log.Errorf("No current valuation available. Cannot proceed with valuation change report.")
		return subcommands.ExitFailure
	}
	if !v.ValuationChange() {
		return subcommands.ExitFailure
	}
	v.WinnersAndLosers()
	v.AssetClassChanges()

	rep := v.Report(a.chartURL(ledger), a.cfg.HistoryChart.BrandText)
	a.log.Infof("%s", rep.Summary())

	if status := a.deliver(rep); status != subcommands.ExitSuccess {
		return status
	}

	if hadPriorFailure && a.log.FatalsThisRun() == 0 {
		a.log.Infof("Run recovered after a previous failure.")
		if err := a.log.SendEmail("Run recovery", "The portfolio report run completed successfully after a previous failure."); err != nil {
			a.log.Errorf("Could not send recovery email: %v", err)
		}
		if err := a.log.ClearFailure(); err != nil {
			a.log.Errorf("Could not clear the failure flag: %v", err)
		}
	}

	if a.log.FatalsThisRun() > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// chartURL renders and uploads the valuation history chart, returning
// the URL the HTML report embeds. Chart problems degrade the report,
// they never fail the run.
func (a *app) chartURL(ledger *portfolio.Ledger) string {
	h := a.cfg.HistoryChart
	if !h.Enable {
		return ""
	}
	history, ok := ledger.History(h.NumberOfDays)
	if !ok {
		return ""
	}
	png, err := chart.Render(history, h.ChartTitle)
	if err != nil {
		a.log.Errorf("Could not render the valuation history chart: %v", err)
		return ""
	}
	if a.cfg.Files.SaveReportOutputFiles {
		path := filepath.Join(reportsDir, "valuation.png")
		if err := os.MkdirAll(reportsDir, 0755); err == nil {
			err = os.WriteFile(path, png, 0644)
		}
		if err != nil {
			a.log.Warnf("Could not save %s: %v", path, err)
		}
	}
	up := &chart.Uploader{
		CloudName: h.CloudName,
		APIKey:    h.APIKey,
		APISecret: h.APISecret,
		Folder:    h.UploadFolder,
	}
	url, err := up.Upload(png, "valuation_history.png")
	if err != nil {
		a.log.Errorf("Could not upload the valuation history chart: %v", err)
		return ""
	}
	a.log.Detailf("Uploaded valuation history chart to %s", url)
	return url
}

// deliver renders the configured report forms, writes them under
// reports/, emails them when email is enabled, and removes the files
// again unless the configuration keeps them.
func (a *app) deliver(rep *portfolio.Report) subcommands.ExitStatus {
	reportType := a.cfg.Portfolio.ReportType
	text := renderer.Text(rep)

	var html string
	if reportType == "html" || reportType == "both" {
		var err error
		html, err = renderer.HTML(rep, a.cfg.Files.ReportHTMLTemplate)
		if err != nil {
			a.log.Fatalf("Could not render the HTML report: %v", err)
			return subcommands.ExitFailure
		}
	}

	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		a.log.Fatalf("Could not create the %s directory: %v", reportsDir, err)
		return subcommands.ExitFailure
	}
	var written []string
	if reportType == "text" || reportType == "both" {
		path := filepath.Join(reportsDir, "portfolio_report.txt")
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			a.log.Fatalf("Could not write %s: %v", path, err)
			return subcommands.ExitFailure
		}
		written = append(written, path)
	}
	if html != "" {
		path := filepath.Join(reportsDir, "portfolio_report.html")
		if err := os.WriteFile(path, []byte(html), 0644); err != nil {
			a.log.Fatalf("Could not write %s: %v", path, err)
			return subcommands.ExitFailure
		}
		written = append(written, path)
	}

	if a.mailer != nil {
		subject := a.cfg.Email.SubjectPrefix + a.cfg.Portfolio.ReportName
		var err error
		if html != "" {
			err = a.mailer.SendHTML(subject, text, html)
		} else {
			err = a.mailer.Send(subject, text)
		}
		if err != nil {
			a.log.Fatalf("Could not email the report: %v", err)
			return subcommands.ExitFailure
		}
		a.log.Infof("Emailed report to %s", a.cfg.Email.SendEmailsTo)
	} else {
		fmt.Print(text)
	}

	if !a.cfg.Files.SaveReportOutputFiles {
		for _, p := range written {
			if err := os.Remove(p); err != nil {
				a.log.Warnf("Could not remove report file %s: %v", p, err)
			}
		}
	}
	return subcommands.ExitSuccess
}
