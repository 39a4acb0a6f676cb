package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/folioctl/folio/cmd"
)

func main() {
	// Shell completion runs before flag parsing. When invoked by the
	// shell's completion hook it prints candidates and exits.
	completion().Complete("folio")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	verbs := []string{
		"init", "set-value", "class", "asset", "quantity", "target", "remove",
		"update", "sources", "search",
		"dashboard", "log",
		"fmt", "import",
		"assist", "topic",
		"help", "flags", "commands",
	}
	sub := make(map[string]*complete.Command, len(verbs))
	for _, verb := range verbs {
		sub[verb] = &complete.Command{}
	}
	sub["import"].Flags = map[string]complete.Predictor{
		"layout":  predict.Set{"schwab", "hardwallet"},
		"class":   predict.Something,
		"dry-run": predict.Nothing,
	}
	sub["topic"].Args = predict.Set{"readme", "quickstart", "journal", "pricing", "rebalancing", "importing", "*"}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"portfolio-file": predict.Files("*.jsonl"),
		},
	}
}
