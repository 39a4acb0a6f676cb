package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/folioctl/folio"
	"github.com/folioctl/folio/imports"
)

type importCmd struct {
	layout string
	class  string
	date   string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "imports positions from broker statement text" }
func (*importCmd) Usage() string {
	return `folio import [-layout schwab|hardwallet] -class <class> [<file>]

  Parses broker statement text (typically OCR output of a screenshot) into
  positions, journaled as declare-asset and set-quantity records. Reads
  stdin when no file is given. Without -layout, schwab is tried first,
  then hardwallet.

Usage Examples:
$ folio import -layout schwab -class stocks positions.txt
$ pbpaste | folio import -class crypto

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.layout, "layout", "", "Statement layout. Auto-detected by default.")
	f.StringVar(&c.class, "class", "", "Class receiving the new assets.")
	f.StringVar(&c.date, "d", "", "Date of the records. Today by default.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Print the parsed positions without touching the journal.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	text, err := readInput(f)
	if err != nil {
		return fail(err)
	}
	positions, err := imports.Parse(text, c.layout)
	if err != nil {
		return fail(err)
	}
	if len(positions) == 0 {
		return fail(fmt.Errorf("no position recognized in the input"))
	}
	if currency := imports.DetectCurrency(text); currency != "" {
		fmt.Printf("Statement currency looks like %s\n", currency)
	}

	if c.dryRun {
		for _, p := range positions {
			fmt.Printf("%s (%s): %v units\n", p.Symbol, p.Name, p.Quantity)
		}
		return subcommands.ExitSuccess
	}

	book, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	for _, p := range positions {
		symbol, err := folio.ParseSymbol(p.Symbol)
		if err != nil {
			return fail(fmt.Errorf("position %q: %w", p.Symbol, err))
		}
		if book.Asset(symbol) == nil {
			if err := book.Append(folio.NewDeclareAsset(day, "imported", symbol, p.Name, c.class)); err != nil {
				return fail(err)
			}
		}
		if err := book.Append(folio.NewSetQuantity(day, "imported", symbol, folio.Q(p.Quantity))); err != nil {
			return fail(err)
		}
		if p.Price > 0 {
			rec := folio.NewUpdatePrice(day, symbol, decimal.NewFromFloat(p.Price), "import")
			if err := book.AppendOrUpdate(rec); err != nil {
				return fail(err)
			}
		}
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %d position(s) into %s\n", len(positions), *portfolioFile)
	return subcommands.ExitSuccess
}

func readInput(f *flag.FlagSet) (string, error) {
	if f.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
