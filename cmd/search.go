package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/folioctl/folio"
	"github.com/folioctl/folio/quote"
	"github.com/folioctl/folio/renderer"
)

type searchCmd struct {
	consensus bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "searches for a symbol, or details the consensus on one" }
func (*searchCmd) Usage() string {
	return `folio search [-consensus] <query>

  Searches the symbol directory for a free-form query and lists the
  matches with their family. With -consensus the query must be a valid
  symbol; every source of its family is asked and the consensus detail
  is shown instead.

Usage Examples:
$ folio search apple
$ folio search -consensus BTC-USD

`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.consensus, "consensus", false, "Treat the query as a symbol and detail the price consensus.")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return fail(fmt.Errorf("a search query is required"))
	}
	query := strings.Join(f.Args(), " ")

	if c.consensus {
		symbol, err := folio.ParseSymbol(query)
		if err != nil {
			return fail(err)
		}
		consensus, err := quote.NewService(nil).Consensus(ctx, symbol)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.ConsensusMarkdown(consensus))
		return subcommands.ExitSuccess
	}

	yahoo := &quote.Yahoo{Client: quote.Daily()}
	results, err := yahoo.Search(ctx, query)
	if err != nil {
		return fail(err)
	}
	if len(results) == 0 {
		fmt.Printf("No results for %q.\n", query)
		return subcommands.ExitSuccess
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Search results for %q\n\n", query)
	sb.WriteString("| Symbol | Name | Exchange | Kind |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", r.Symbol, r.Name, r.Exchange, r.Kind)
	}
	printMarkdown(sb.String())
	return subcommands.ExitSuccess
}
