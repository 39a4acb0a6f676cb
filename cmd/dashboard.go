package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/folioctl/folio"
	"github.com/folioctl/folio/renderer"
)

type dashboardCmd struct {
	asJSON bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "shows the rebalancing dashboard" }
func (*dashboardCmd) Usage() string {
	return `folio dashboard [-json]

  Computes the rebalancing dashboard from the journal: every class against
  its target value, every holding against its target share, with statuses
  and buy/sell suggestions. -json emits the raw structure, chart series
  included.

`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Emit the raw dashboard as JSON.")
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	d := folio.NewDashboard(book)

	if c.asJSON {
		labels, shares := d.Series()
		out := struct {
			*folio.Dashboard
			ChartLabels []string  `json:"chart_labels"`
			ChartShares []float64 `json:"chart_shares"`
		}{d, labels, shares}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fail(err)
		}
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderDashboard(d))
	return subcommands.ExitSuccess
}
