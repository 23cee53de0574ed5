package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/spelloconsulting/portfolioperf/renderer"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the imported holdings" }
func (*holdingsCmd) Usage() string {
	return `pperf holdings

  Imports the configured spreadsheet sources and displays the resulting
  holdings without valuing them.

Usage Examples:
$ pperf -config config.yaml holdings

`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	prices := a.priceTable()
	set := a.importHoldings(prices)
	if set.Len() == 0 {
		fmt.Fprintln(os.Stderr, "no holdings imported")
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingsMarkdown(set.Holdings()))
	return subcommands.ExitSuccess
}
