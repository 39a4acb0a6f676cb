package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/folioctl/folio"
	"github.com/folioctl/folio/quote"
)

type updateCmd struct {
	date string
	all  bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetches consensus prices and journals them" }
func (*updateCmd) Usage() string {
	return `folio update [-all]

  Fetches a consensus price for every held asset and appends an
  update-price record to the journal. Prices fetched the same day merge
  into a single record. Use -all to also price assets with no quantity.

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date to record the prices on. Today by default.")
	f.BoolVar(&c.all, "all", false, "Price every declared asset, held or not.")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		return fail(err)
	}
	if day.IsZero() {
		day = folio.Today()
	}
	book, err := DecodeBook()
	if err != nil {
		return fail(err)
	}

	service := quote.NewService(nil)
	var errs []error
	priced := 0
	for _, asset := range book.Assets() {
		if !c.all && asset.Quantity.IsZero() {
			continue
		}
		consensus, err := service.Consensus(ctx, asset.Symbol)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if consensus.Divergent {
			log.Printf("warning: sources diverge by %.2f%% on %s", consensus.Divergence*100, asset.Symbol)
		}
		rec := folio.NewUpdatePrice(day, asset.Symbol, decimal.NewFromFloat(consensus.Price), "consensus")
		if err := book.AppendOrUpdate(rec); err != nil {
			errs = append(errs, err)
			continue
		}
		priced++
	}

	if priced > 0 {
		if err := SaveBook(book); err != nil {
			return fail(err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		fmt.Printf("Updated %d price(s), some failed:\n", priced)
		return fail(err)
	}
	fmt.Printf("Updated %d price(s) in %s\n", priced, *portfolioFile)
	return subcommands.ExitSuccess
}
