package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
Files:
  PriceDataFiles:
    - DataFile: prices.csv
  PortfolioImport:
    - DataFile: portfolio.xlsx
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "Portfolio Performance Report", cfg.Portfolio.ReportName)
	assert.Equal(t, "html", cfg.Portfolio.ReportType)
	assert.Equal(t, "AUD", cfg.Portfolio.ReportingCurrency)
	assert.Equal(t, 7, cfg.Portfolio.PriorValuationDays)
	assert.Equal(t, 5, cfg.Portfolio.WinnersAndLosers)
	assert.Equal(t, 2, cfg.Portfolio.MaxPriceMisses)
	assert.Equal(t, 0.01, cfg.Portfolio.MinUnitsHeld)
	assert.Equal(t, "both", cfg.Portfolio.HoldingsDisplayMode)
	assert.Equal(t, "detailed", cfg.Files.LogfileVerbosity)
	assert.Equal(t, "summary", cfg.Files.ConsoleVerbosity)
	require.Len(t, cfg.Files.PriceDataFiles, 1)
	assert.Equal(t, 5, cfg.Files.PriceDataFiles[0].MaxAge)
	require.Len(t, cfg.Files.PortfolioImport, 1)
	assert.Equal(t, "Portfolio", cfg.Files.PortfolioImport[0].NamedLocation)
	assert.Equal(t, "sheet", cfg.Files.PortfolioImport[0].LocationType)
	assert.Equal(t, 365, cfg.HistoryChart.NumberOfDays)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
Portfolio:
  ReportType: text
  ReportingCurrency: USD
  PriorValuationDays: 30
  HoldingsDisplayMode: symbol
Files:
  PriceDataFiles:
    - DataFile: prices.csv
      MaxAge: 10
  PortfolioImport:
    - DataFile: portfolio.xlsx
      NamedLocation: TablePortfolio
      LocationType: table
  PortfolioValuationFile: portfolio_valuation.csv
`))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Portfolio.ReportType)
	assert.Equal(t, "USD", cfg.Portfolio.ReportingCurrency)
	assert.Equal(t, 30, cfg.Portfolio.PriorValuationDays)
	assert.Equal(t, 10, cfg.Files.PriceDataFiles[0].MaxAge)
	assert.Equal(t, "table", cfg.Files.PortfolioImport[0].LocationType)
	assert.Equal(t, "portfolio_valuation.csv", cfg.Files.PortfolioValuationFile)
}

func TestValidateRejects(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		want string
	}{
		{
			"bad report type",
			"Portfolio:\n  ReportType: pdf\n" + minimalYAML,
			"ReportType",
		},
		{
			"negative prior days",
			"Portfolio:\n  PriorValuationDays: -7\n" + minimalYAML,
			"PriorValuationDays",
		},
		{
			"bad display mode",
			"Portfolio:\n  HoldingsDisplayMode: icon\n" + minimalYAML,
			"HoldingsDisplayMode",
		},
		{
			"no price files",
			"Files:\n  PortfolioImport:\n    - DataFile: p.xlsx\n",
			"PriceDataFiles",
		},
		{
			"bad location type",
			`
Files:
  PriceDataFiles:
    - DataFile: prices.csv
  PortfolioImport:
    - DataFile: p.xlsx
      LocationType: cell
`,
			"LocationType",
		},
		{
			"email enabled without smtp",
			minimalYAML + "Email:\n  EnableEmail: true\n",
			"Email",
		},
		{
			"chart enabled without credentials",
			minimalYAML + "HistoryChart:\n  Enable: true\n",
			"HistoryChart",
		},
		{
			"bad verbosity",
			minimalYAML + "  LogfileVerbosity: loud\n",
			"LogfileVerbosity",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateAllowsSilentConsole(t *testing.T) {
	// "none" silences the console sink; the logfile still records the run.
	cfg, err := Load(writeConfig(t, minimalYAML+"  ConsoleVerbosity: none\n"))
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Files.ConsoleVerbosity)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
