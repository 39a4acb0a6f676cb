package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/folioctl/folio"
)

type classCmd struct {
	name      string
	target    float64
	threshold float64
	date      string
	memo      string
}

func (*classCmd) Name() string     { return "class" }
func (*classCmd) Synopsis() string { return "declares an asset class and its target share" }
func (*classCmd) Usage() string {
	return `folio class -name <name> -target <percent> [-threshold <percent>]

  Declares an asset class targeting a share of the portfolio total value,
  or updates an existing class of the same name. Class targets may sum
  below 100% (the rest is the cash reserve) but never above.

Usage Examples:
$ folio class -name stocks -target 60
$ folio class -name crypto -target 20 -threshold 10

`
}

func (c *classCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Class name.")
	f.Float64Var(&c.target, "target", 0, "Target share of the portfolio total, in percent.")
	f.Float64Var(&c.threshold, "threshold", 0, "Deviation tolerated before alerts, in percent (5 by default).")
	f.StringVar(&c.date, "d", "", "Date of the record. Today by default.")
	f.StringVar(&c.memo, "memo", "", "Optional rationale for the record.")
}

func (c *classCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	rec := folio.NewDeclareClass(day, c.memo, c.name, folio.Percent(c.target), folio.Percent(c.threshold))
	return AppendRecords(rec)
}
