package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	portfolio "github.com/spelloconsulting/portfolioperf"
	"github.com/spelloconsulting/portfolioperf/renderer"
)

type valueCmd struct {
	mode string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value the portfolio and print the result" }
func (*valueCmd) Usage() string {
	return `pperf value [-mode current|prior|both]

  Values the portfolio and prints the result to the terminal. With
  -mode both (the default) it runs both passes and prints the full
  valuation change, asset class moves and winners and losers; with a
  single mode it prints that pass's total only. Nothing is emailed and
  no report files are written.

Usage Examples:
$ pperf -config config.yaml value
$ pperf -config config.yaml value -mode current

`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "both", "valuation pass to run: current, prior or both")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	prices := a.priceTable()
	set := a.importHoldings(prices)
	v, _ := a.valuation(set, prices)

	switch c.mode {
	case "current", "prior":
		mode := portfolio.ModeCurrent
		if c.mode == "prior" {
			mode = portfolio.ModePrior
		}
		if !v.Valuate(mode) {
			return subcommands.ExitFailure
		}
		total := v.Value.Current
		on := v.Dates.Current
		if mode == portfolio.ModePrior {
			total = v.Value.Prior
			on = v.Dates.Prior
		}
		fmt.Printf("Portfolio value as at %s: %s (%d price misses)\n", on, total, v.PriceMisses)
		return subcommands.ExitSuccess

	case "both":
		if !v.Valuate(portfolio.ModePrior) || !v.Valuate(portfolio.ModeCurrent) {
			return subcommands.ExitFailure
		}
		if !v.ValuationChange() {
			return subcommands.ExitFailure
		}
		v.WinnersAndLosers()
		v.AssetClassChanges()

		printMarkdown(renderer.ValuationMarkdown(v.Report("", "")))
		return subcommands.ExitSuccess

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q, want current, prior or both\n", c.mode)
		return subcommands.ExitUsageError
	}
}
