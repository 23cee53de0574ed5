// Package cmd implements the pperf CLI: the scheduled report run and
// the interactive inspection commands.
package cmd

import (
	"flag"

	"github.com/google/subcommands"

	portfolio "github.com/spelloconsulting/portfolioperf"
	"github.com/spelloconsulting/portfolioperf/config"
	"github.com/spelloconsulting/portfolioperf/logging"
	"github.com/spelloconsulting/portfolioperf/mail"
)

// Commands lists every subcommand the binary registers.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&reportCmd{},
		&valueCmd{},
		&historyCmd{},
		&holdingsCmd{},
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "config.yaml", "Path to the YAML configuration file")

// app bundles the loaded configuration with the logger and mailer every
// command needs.
type app struct {
	cfg    *config.Config
	log    *logging.Logger
	mailer *mail.Sender // nil when email is disabled
}

// newApp loads the configuration and builds the logger and, when
// enabled, the SMTP mailer for alerts and reports.
func newApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Settings{
		LogfileName:      cfg.Files.LogfileName,
		LogfileMaxLines:  cfg.Files.LogfileMaxLines,
		LogfileVerbosity: cfg.Files.LogfileVerbosity,
		ConsoleVerbosity: cfg.Files.ConsoleVerbosity,
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}
	if cfg.Email.EnableEmail {
		a.mailer = mail.New(mail.Settings{
			Server:   cfg.Email.SMTPServer,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			To:       cfg.Email.SendEmailsTo,
		})
		log.SetMailer(a.mailer, cfg.Email.SubjectPrefix)
	}
	return a, nil
}

// priceTable loads every configured price file. Missing or stale files
// are recorded as fatal and skipped.
func (a *app) priceTable() *portfolio.PriceTable {
	sources := make([]portfolio.PriceFileSource, 0, len(a.cfg.Files.PriceDataFiles))
	for _, pf := range a.cfg.Files.PriceDataFiles {
		sources = append(sources, portfolio.PriceFileSource{Path: pf.DataFile, MaxAge: pf.MaxAge})
	}
	return portfolio.LoadPriceFiles(sources, a.log)
}

// importHoldings loads every configured spreadsheet source into one
// holding set. A failed source is recorded as fatal; the others still
// load.
func (a *app) importHoldings(prices *portfolio.PriceTable) *portfolio.HoldingSet {
	set := portfolio.NewHoldingSet(a.log)
	importer := portfolio.NewHoldingsImporter(prices, portfolio.ImportOptions{
		MinUnitsHeld:    a.cfg.Portfolio.MinUnitsHeld,
		DisplayMode:     portfolio.DisplayMode(a.cfg.Portfolio.HoldingsDisplayMode),
		DefaultCurrency: a.cfg.Portfolio.ReportingCurrency,
	}, a.log)

	for _, src := range a.cfg.Files.PortfolioImport {
		err := importer.Import(set, portfolio.ImportSource{
			Path:     src.DataFile,
			Location: src.NamedLocation,
			Type:     src.LocationType,
		})
		if err != nil {
			a.log.Fatalf("Failed to import portfolio data from %s: %v", src.DataFile, err)
		}
	}
	return set
}

// valuation assembles the valuation run and the ledger it writes to.
func (a *app) valuation(set *portfolio.HoldingSet, prices *portfolio.PriceTable) (*portfolio.Valuation, *portfolio.Ledger) {
	ledger := portfolio.NewLedger(a.cfg.Files.PortfolioValuationFile, a.log)
	settings := portfolio.Settings{
		ReportName:         a.cfg.Portfolio.ReportName,
		ReportingCurrency:  a.cfg.Portfolio.ReportingCurrency,
		PriorValuationDays: a.cfg.Portfolio.PriorValuationDays,
		WinnersAndLosers:   a.cfg.Portfolio.WinnersAndLosers,
		MaxPriceMisses:     a.cfg.Portfolio.MaxPriceMisses,
	}
	return portfolio.NewValuation(settings, set, prices, ledger, a.log), ledger
}
