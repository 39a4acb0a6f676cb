package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/folioctl/folio"
)

type initCmd struct {
	name     string
	currency string
	value    string
	date     string
	memo     string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "declares the portfolio, its currency and total value" }
func (*initCmd) Usage() string {
	return `folio init -name <name> [-currency USD] -value <amount>

  Declares the portfolio in the journal, or updates its declaration. The
  value is the fixed total the class targets split; it is a decision, not
  the sum of the assets.

Usage Examples:
$ folio init -name retirement -currency USD -value 100000

`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Portfolio name.")
	f.StringVar(&c.currency, "currency", "USD", "Reporting currency (ISO 4217 code).")
	f.StringVar(&c.value, "value", "", "Fixed total value of the portfolio.")
	f.StringVar(&c.date, "d", "", "Date of the record. Today by default.")
	f.StringVar(&c.memo, "memo", "", "Optional rationale for the record.")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	value, err := decimal.NewFromString(c.value)
	if err != nil {
		return fail(fmt.Errorf("invalid -value %q: %w", c.value, err))
	}
	rec := folio.NewDeclarePortfolio(day, c.memo, c.name, c.currency, folio.M(value, c.currency))
	return AppendRecords(rec)
}

type setValueCmd struct {
	value string
	date  string
	memo  string
}

func (*setValueCmd) Name() string     { return "set-value" }
func (*setValueCmd) Synopsis() string { return "updates the fixed total value of the portfolio" }
func (*setValueCmd) Usage() string {
	return `folio set-value -value <amount>

  Updates the fixed total value, keeping the declared name and currency.

`
}

func (c *setValueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.value, "value", "", "Fixed total value of the portfolio.")
	f.StringVar(&c.date, "d", "", "Date of the record. Today by default.")
	f.StringVar(&c.memo, "memo", "", "Optional rationale for the record.")
}

func (c *setValueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	value, err := decimal.NewFromString(c.value)
	if err != nil {
		return fail(fmt.Errorf("invalid -value %q: %w", c.value, err))
	}
	book, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	p := book.Portfolio()
	if p.Name == "" {
		return fail(fmt.Errorf("no portfolio declared yet, run 'folio init' first"))
	}
	rec := folio.NewDeclarePortfolio(day, c.memo, p.Name, p.Currency, folio.M(value, p.Currency))
	if err := book.Append(rec); err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}
	fmt.Printf("Portfolio %q now valued %s\n", p.Name, book.Portfolio().Value)
	return subcommands.ExitSuccess
}
