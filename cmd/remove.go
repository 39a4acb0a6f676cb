package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/folioctl/folio"
)

type removeCmd struct {
	symbol string
	date   string
	memo   string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "removes an asset from the portfolio" }
func (*removeCmd) Usage() string {
	return `folio remove -symbol <symbol>

  Removes the asset from the portfolio state. Its history stays in the
  journal.

Usage Examples:
$ folio remove -symbol MSFT -memo "sold out"

`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Asset symbol.")
	f.StringVar(&c.date, "d", "", "Date of the record. Today by default.")
	f.StringVar(&c.memo, "memo", "", "Optional rationale for the record.")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	symbol, err := folio.ParseSymbol(c.symbol)
	if err != nil {
		return fail(err)
	}
	rec := folio.NewRemoveAsset(day, c.memo, symbol)
	return AppendRecords(rec)
}
