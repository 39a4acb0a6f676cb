package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/folioctl/folio/renderer"
)

type logCmd struct {
	from string
	to   string
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "lists the journal records" }
func (*logCmd) Usage() string {
	return `folio log [-from <date>] [-to <date>]

  Lists the journal records as a table, optionally filtered to a date
  range.

Usage Examples:
$ folio log
$ folio log -from 2025-01-01 -to 2025-06-30

`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Only records on or after this date.")
	f.StringVar(&c.to, "to", "", "Only records on or before this date.")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := parseDay(c.from)
	if err != nil {
		return fail(err)
	}
	to, err := parseDay(c.to)
	if err != nil {
		return fail(err)
	}
	book, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.LogMarkdown(book, from, to))
	return subcommands.ExitSuccess
}

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "validates and formats the journal into canonical form" }
func (*fmtCmd) Usage() string {
	return `folio fmt

  Validates every record of the journal and rewrites the file in canonical
  JSONL form: records sorted by date, attributes in canonical order. Safe
  to run after editing the journal by hand.

`
}

func (*fmtCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	if err := book.Validate(); err != nil {
		return fail(err)
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
