package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/folioctl/folio"
	"github.com/folioctl/folio/quote"
)

func demoBook(t *testing.T) *folio.Book {
	t.Helper()
	b := folio.NewBook()
	day := folio.NewDate(2025, 6, 1)
	recs := []folio.Record{
		folio.NewDeclarePortfolio(day, "", "retirement", "USD", folio.M(100000, "USD")),
		folio.NewDeclareClass(day, "", "stocks", 60, 5),
		folio.NewDeclareAsset(day, "", "AAPL", "Apple Inc", "stocks"),
		folio.NewSetTarget(day, "", "AAPL", 100, 5),
		folio.NewSetQuantity(day, "start position", "AAPL", folio.Q(100)),
	}
	for _, r := range recs {
		if err := b.Append(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.AppendOrUpdate(folio.NewUpdatePrice(day, "AAPL", decimal.NewFromInt(200), "finnhub")); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRenderDashboard(t *testing.T) {
	got := RenderDashboard(folio.NewDashboard(demoBook(t)))

	for _, want := range []string{
		"# retirement",
		"Prices as of 2025-06-01",
		"## stocks (60.00% of total, under)",
		"| AAPL |",
		"20.00% of 60.00%",
		"## Allocation",
		"## Alerts",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dashboard missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "error") {
		t.Errorf("dashboard rendered an error:\n%s", got)
	}
}

func TestAllocationChart(t *testing.T) {
	chart := allocationChart(folio.NewDashboard(demoBook(t)))
	if !strings.Contains(chart, "stocks") || !strings.Contains(chart, "cash") {
		t.Errorf("chart missing bars:\n%s", chart)
	}
	if !strings.Contains(chart, "█") {
		t.Errorf("chart has no bars:\n%s", chart)
	}
}

func TestLogMarkdown(t *testing.T) {
	book := demoBook(t)
	got := LogMarkdown(book, folio.Date{}, folio.Date{})

	for _, want := range []string{
		"| Date | Command | Details | Memo |",
		"| 2025-06-01 | portfolio | retirement (USD)",
		"| 2025-06-01 | set-quantity | AAPL holds 100 | start position |",
		"AAPL=200",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("log missing %q:\n%s", want, got)
		}
	}
}

func TestLogMarkdownRangeFilter(t *testing.T) {
	book := demoBook(t)
	// everything is journaled on 2025-06-01, a later window is empty.
	got := LogMarkdown(book, folio.NewDate(2025, 7, 1), folio.Date{})
	if strings.Contains(got, "| 2025-06-01 |") {
		t.Errorf("log leaked records outside the range:\n%s", got)
	}
	if !strings.Contains(got, "# Journal") {
		t.Errorf("log lost its title:\n%s", got)
	}
}

func TestSourcesMarkdown(t *testing.T) {
	got := SourcesMarkdown([]quote.SourceStatus{
		{Name: "finnhub", State: quote.StateOK},
		{Name: "stooq", State: quote.StateError, Error: "timeout"},
		{Name: "fmp", State: quote.StateUnconfigured},
	})
	if !strings.Contains(got, "| finnhub | ok |") {
		t.Errorf("sources missing finnhub row:\n%s", got)
	}
	if !strings.Contains(got, "| stooq | **down** | timeout |") {
		t.Errorf("sources missing stooq row:\n%s", got)
	}
	if !strings.Contains(got, "| fmp | unconfigured |") {
		t.Errorf("sources missing fmp row:\n%s", got)
	}
}

func TestConsensusMarkdown(t *testing.T) {
	c := quote.NewConsensus("AAPL", []quote.Candidate{
		{Source: "finnhub", Price: 100},
		{Source: "stooq", Price: 100.05},
	})
	got := ConsensusMarkdown(c)
	if !strings.Contains(got, "# AAPL") || !strings.Contains(got, "| finnhub | 100 |") {
		t.Errorf("consensus report incomplete:\n%s", got)
	}
}
