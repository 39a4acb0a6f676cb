package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/folioctl/folio"
)

type targetCmd struct {
	symbol    string
	percent   float64
	threshold float64
	date      string
	memo      string
}

func (*targetCmd) Name() string     { return "target" }
func (*targetCmd) Synopsis() string { return "sets the target share of an asset within its class" }
func (*targetCmd) Usage() string {
	return `folio target -symbol <symbol> -percent <percent> [-threshold <percent>]

  Sets the target share of an asset within its class target value, and
  optionally the deviation threshold grading the rebalance statuses.

Usage Examples:
$ folio target -symbol AAPL -percent 50
$ folio target -symbol BTC-USD -percent 100 -threshold 10

`
}

func (c *targetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Asset symbol.")
	f.Float64Var(&c.percent, "percent", 0, "Target share of the class, in percent.")
	f.Float64Var(&c.threshold, "threshold", 0, "Deviation tolerated before alerts, in percent (5 by default).")
	f.StringVar(&c.date, "d", "", "Date of the record. Today by default.")
	f.StringVar(&c.memo, "memo", "", "Optional rationale for the record.")
}

func (c *targetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	symbol, err := folio.ParseSymbol(c.symbol)
	if err != nil {
		return fail(err)
	}
	rec := folio.NewSetTarget(day, c.memo, symbol, folio.Percent(c.percent), folio.Percent(c.threshold))
	return AppendRecords(rec)
}
