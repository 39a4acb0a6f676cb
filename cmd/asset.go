package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/folioctl/folio"
)

type assetCmd struct {
	symbol string
	name   string
	class  string
	date   string
	memo   string
}

func (*assetCmd) Name() string     { return "asset" }
func (*assetCmd) Synopsis() string { return "declares an asset and assigns it to a class" }
func (*assetCmd) Usage() string {
	return `folio asset -symbol <symbol> -class <class> [-name <name>]

  Declares an asset in the journal. Symbols are US tickers (AAPL, BRK.B),
  B3 tickers (PETR4.SA) or crypto pairs (BTC-USD, also accepted compact as
  BTCUSD).

Usage Examples:
$ folio asset -symbol AAPL -name "Apple Inc" -class stocks
$ folio asset -symbol BTC-USD -class crypto

`
}

func (c *assetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Asset symbol.")
	f.StringVar(&c.name, "name", "", "Display name. The symbol by default.")
	f.StringVar(&c.class, "class", "", "Class the asset belongs to.")
	f.StringVar(&c.date, "d", "", "Date of the record. Today by default.")
	f.StringVar(&c.memo, "memo", "", "Optional rationale for the record.")
}

func (c *assetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	symbol, err := folio.ParseSymbol(c.symbol)
	if err != nil {
		return fail(err)
	}
	rec := folio.NewDeclareAsset(day, c.memo, symbol, c.name, c.class)
	return AppendRecords(rec)
}
