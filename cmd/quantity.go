package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/folioctl/folio"
)

type quantityCmd struct {
	symbol   string
	quantity string
	date     string
	memo     string
}

func (*quantityCmd) Name() string     { return "quantity" }
func (*quantityCmd) Synopsis() string { return "sets the held quantity of an asset" }
func (*quantityCmd) Usage() string {
	return `folio quantity -symbol <symbol> -quantity <units>

  Sets the held quantity of an asset. The quantity replaces the previous
  one; this is a statement of what you hold, not a trade.

Usage Examples:
$ folio quantity -symbol AAPL -quantity 100
$ folio quantity -symbol BTC-USD -quantity 0.25

`
}

func (c *quantityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Asset symbol.")
	f.StringVar(&c.quantity, "quantity", "", "Held quantity, in units of the asset.")
	f.StringVar(&c.date, "d", "", "Date of the record. Today by default.")
	f.StringVar(&c.memo, "memo", "", "Optional rationale for the record.")
}

func (c *quantityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	symbol, err := folio.ParseSymbol(c.symbol)
	if err != nil {
		return fail(err)
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		return fail(fmt.Errorf("invalid -quantity %q: %w", c.quantity, err))
	}
	rec := folio.NewSetQuantity(day, c.memo, symbol, folio.Q(quantity))
	return AppendRecords(rec)
}
