// Package config loads the reporter's YAML configuration file into
// typed sections, applies defaults, and validates the result.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration file.
type Config struct {
	Portfolio    Portfolio    `yaml:"Portfolio"`
	HistoryChart HistoryChart `yaml:"HistoryChart"`
	Files        Files        `yaml:"Files"`
	Email        Email        `yaml:"Email"`
}

// Portfolio configures the valuation run itself.
type Portfolio struct {
	ReportName              string  `yaml:"ReportName"`
	ReportType              string  `yaml:"ReportType"` // text, html or both
	ReportingCurrency       string  `yaml:"ReportingCurrency"`
	ReportingCurrencySymbol string  `yaml:"ReportingCurrencySymbol"`
	PriorValuationDays      int     `yaml:"PriorValuationDays"`
	WinnersAndLosers        int     `yaml:"WinnersAndLosers"`
	HoldingsDisplayMode     string  `yaml:"HoldingsDisplayMode"` // symbol, both or name
	MaxPriceMisses          int     `yaml:"MaxPriceMisses"`
	MinUnitsHeld            float64 `yaml:"MinUnitsHeld"`
}

// HistoryChart configures the valuation history chart and its upload.
type HistoryChart struct {
	Enable       bool   `yaml:"Enable"`
	CloudName    string `yaml:"CloudName"`
	APIKey       string `yaml:"APIKey"`
	APISecret    string `yaml:"APISecret"`
	UploadFolder string `yaml:"UploadFolder"`
	ChartTitle   string `yaml:"ChartTitle"`
	BrandText    string `yaml:"BrandText"`
	NumberOfDays int    `yaml:"ChartNumberOfDays"`
}

// PriceFile is one price data source with its freshness limit.
type PriceFile struct {
	DataFile string `yaml:"DataFile"`
	MaxAge   int    `yaml:"MaxAge"` // days, 0 disables the freshness check
}

// ImportSource is one holdings spreadsheet location.
type ImportSource struct {
	DataFile      string `yaml:"DataFile"`
	NamedLocation string `yaml:"NamedLocation"`
	LocationType  string `yaml:"LocationType"` // sheet, table or range
}

// Files configures every file the run reads or writes.
type Files struct {
	LogfileName            string         `yaml:"LogfileName"`
	LogfileMaxLines        int            `yaml:"LogfileMaxLines"`
	LogfileVerbosity       string         `yaml:"LogfileVerbosity"`
	ConsoleVerbosity       string         `yaml:"ConsoleVerbosity"`
	PriceDataFiles         []PriceFile    `yaml:"PriceDataFiles"`
	PortfolioValuationFile string         `yaml:"PortfolioValuationFile"`
	PortfolioImport        []ImportSource `yaml:"PortfolioImport"`
	ReportHTMLTemplate     string         `yaml:"ReportHTMLTemplate"`
	SaveReportOutputFiles  bool           `yaml:"SaveReportOutputFiles"`
}

// Email configures the SMTP target for report and alert mail.
type Email struct {
	EnableEmail   bool   `yaml:"EnableEmail"`
	SendEmailsTo  string `yaml:"SendEmailsTo"`
	SMTPServer    string `yaml:"SMTPServer"`
	SMTPPort      int    `yaml:"SMTPPort"`
	SMTPUsername  string `yaml:"SMTPUsername"`
	SMTPPassword  string `yaml:"SMTPPassword"`
	SubjectPrefix string `yaml:"SubjectPrefix"`
}

// Load reads, defaults and validates the configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	p := &c.Portfolio
	if p.ReportName == "" {
		p.ReportName = "Portfolio Performance Report"
	}
	if p.ReportType == "" {
		p.ReportType = "html"
	}
	if p.ReportingCurrency == "" {
		p.ReportingCurrency = "AUD"
	}
	if p.ReportingCurrencySymbol == "" {
		p.ReportingCurrencySymbol = "$"
	}
	if p.PriorValuationDays == 0 {
		p.PriorValuationDays = 7
	}
	if p.WinnersAndLosers == 0 {
		p.WinnersAndLosers = 5
	}
	if p.HoldingsDisplayMode == "" {
		p.HoldingsDisplayMode = "both"
	}
	if p.MaxPriceMisses == 0 {
		p.MaxPriceMisses = 2
	}
	if p.MinUnitsHeld == 0 {
		p.MinUnitsHeld = 0.01
	}

	h := &c.HistoryChart
	if h.UploadFolder == "" {
		h.UploadFolder = "portfolio_charts"
	}
	if h.ChartTitle == "" {
		h.ChartTitle = "Portfolio Valuation (last 12 months)"
	}
	if h.NumberOfDays == 0 {
		h.NumberOfDays = 365
	}

	f := &c.Files
	if f.LogfileName == "" {
		f.LogfileName = "logfile.log"
	}
	if f.LogfileMaxLines == 0 {
		f.LogfileMaxLines = 500
	}
	if f.LogfileVerbosity == "" {
		f.LogfileVerbosity = "detailed"
	}
	if f.ConsoleVerbosity == "" {
		f.ConsoleVerbosity = "summary"
	}
	for i := range f.PriceDataFiles {
		if f.PriceDataFiles[i].MaxAge == 0 {
			f.PriceDataFiles[i].MaxAge = 5
		}
	}
	for i := range f.PortfolioImport {
		if f.PortfolioImport[i].NamedLocation == "" {
			f.PortfolioImport[i].NamedLocation = "Portfolio"
		}
		if f.PortfolioImport[i].LocationType == "" {
			f.PortfolioImport[i].LocationType = "sheet"
		}
	}
}

var verbosities = map[string]bool{
	"none": true, "error": true, "warning": true, "summary": true,
	"detailed": true, "debug": true, "all": true,
}

// Validate enforces field constraints that defaults cannot repair.
func (c *Config) Validate() error {
	p := c.Portfolio
	switch p.ReportType {
	case "text", "html", "both":
	default:
		return errors.Errorf("Portfolio.ReportType %q not one of text, html, both", p.ReportType)
	}
	switch p.HoldingsDisplayMode {
	case "symbol", "both", "name":
	default:
		return errors.Errorf("Portfolio.HoldingsDisplayMode %q not one of symbol, both, name", p.HoldingsDisplayMode)
	}
	// A prior date on or after the current date would produce a
	// meaningless (or negative) day difference.
	if p.PriorValuationDays < 1 {
		return errors.Errorf("Portfolio.PriorValuationDays must be at least 1, got %d", p.PriorValuationDays)
	}
	if p.MaxPriceMisses < 0 {
		return errors.Errorf("Portfolio.MaxPriceMisses must not be negative, got %d", p.MaxPriceMisses)
	}
	if p.WinnersAndLosers < 1 {
		return errors.Errorf("Portfolio.WinnersAndLosers must be at least 1, got %d", p.WinnersAndLosers)
	}

	f := c.Files
	if !verbosities[f.LogfileVerbosity] {
		return errors.Errorf("Files.LogfileVerbosity %q is not a known verbosity", f.LogfileVerbosity)
	}
	if !verbosities[f.ConsoleVerbosity] {
		return errors.Errorf("Files.ConsoleVerbosity %q is not a known verbosity", f.ConsoleVerbosity)
	}
	if len(f.PriceDataFiles) == 0 {
		return errors.New("Files.PriceDataFiles must list at least one price file")
	}
	for _, pf := range f.PriceDataFiles {
		if pf.DataFile == "" {
			return errors.New("Files.PriceDataFiles entry is missing DataFile")
		}
		if pf.MaxAge < 0 {
			return errors.Errorf("Files.PriceDataFiles MaxAge must not be negative, got %d", pf.MaxAge)
		}
	}
	if len(f.PortfolioImport) == 0 {
		return errors.New("Files.PortfolioImport must list at least one import source")
	}
	for _, im := range f.PortfolioImport {
		if im.DataFile == "" {
			return errors.New("Files.PortfolioImport entry is missing DataFile")
		}
		switch im.LocationType {
		case "sheet", "table", "range":
		default:
			return errors.Errorf("Files.PortfolioImport LocationType %q not one of sheet, table, range", im.LocationType)
		}
	}

	e := c.Email
	if e.EnableEmail {
		if e.SMTPServer == "" || e.SMTPUsername == "" || e.SMTPPassword == "" || e.SendEmailsTo == "" {
			return errors.New("Email is enabled but SMTPServer, SMTPUsername, SMTPPassword or SendEmailsTo is missing")
		}
		if e.SMTPPort < 25 || e.SMTPPort > 1000 {
			return errors.Errorf("Email.SMTPPort %d out of range 25..1000", e.SMTPPort)
		}
	}

	h := c.HistoryChart
	if h.Enable {
		if h.CloudName == "" || h.APIKey == "" || h.APISecret == "" {
			return errors.New("HistoryChart is enabled but CloudName, APIKey or APISecret is missing")
		}
		if h.NumberOfDays < 1 || h.NumberOfDays > 365 {
			return errors.Errorf("HistoryChart.ChartNumberOfDays %d out of range 1..365", h.NumberOfDays)
		}
	}

	return nil
}
