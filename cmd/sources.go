package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/folioctl/folio/quote"
	"github.com/folioctl/folio/renderer"
)

type sourcesCmd struct{}

func (*sourcesCmd) Name() string     { return "sources" }
func (*sourcesCmd) Synopsis() string { return "probes every price source and reports its status" }
func (*sourcesCmd) Usage() string {
	return `folio sources

  Probes every enabled price source with a well-known symbol and reports
  which ones answer. Keyed sources missing their API key in the
  environment are listed as unconfigured.

`
}

func (*sourcesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *sourcesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	service := quote.NewService(nil)
	printMarkdown(renderer.SourcesMarkdown(service.Check(ctx)))
	return subcommands.ExitSuccess
}
