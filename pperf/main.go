package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/spelloconsulting/portfolioperf/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands() {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion. It exits early when the shell is
// asking for completions rather than running a command.
func completion() {
	configFlag := map[string]complete.Predictor{"config": predict.Files("*.yaml")}
	c := &complete.Command{
		Flags: configFlag,
		Sub: map[string]*complete.Command{
			"report":   {Flags: configFlag},
			"value":    {Flags: configFlag},
			"history":  {Flags: configFlag},
			"holdings": {Flags: configFlag},
		},
	}
	c.Complete("pperf")
}
