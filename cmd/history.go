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

type historyCmd struct {
	days int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the recorded valuation history" }
func (*historyCmd) Usage() string {
	return `pperf history [-days <n>]

  Displays the valuation ledger over the trailing number of days.

Usage Examples:
$ pperf -config config.yaml history -days 90

`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 365, "trailing number of days to display")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	ledger := portfolio.NewLedger(a.cfg.Files.PortfolioValuationFile, a.log)
	history, ok := ledger.History(c.days)
	if !ok {
		fmt.Fprintln(os.Stderr, "no valuation history available")
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HistoryMarkdown(history))
	return subcommands.ExitSuccess
}
