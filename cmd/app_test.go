package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"

	"github.com/folioctl/folio"
)

// tempJournal points the global journal file at a temp location for the test.
func tempJournal(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "portfolio.jsonl")
	old := portfolioFile
	portfolioFile = &file
	t.Cleanup(func() { portfolioFile = old })
	return file
}

// run executes a subcommand with the given flag values.
func run(t *testing.T, c subcommands.Command, args map[string]string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	for k, v := range args {
		if err := f.Set(k, v); err != nil {
			t.Fatalf("set flag -%s=%s: %v", k, v, err)
		}
	}
	return c.Execute(context.Background(), f)
}

func TestJournalRoundTrip(t *testing.T) {
	tempJournal(t)

	steps := []struct {
		cmd  subcommands.Command
		args map[string]string
	}{
		{&initCmd{}, map[string]string{"name": "retirement", "currency": "USD", "value": "100000", "d": "2025-06-01"}},
		{&classCmd{}, map[string]string{"name": "stocks", "target": "60", "d": "2025-06-01"}},
		{&assetCmd{}, map[string]string{"symbol": "aapl", "class": "stocks", "name": "Apple Inc", "d": "2025-06-01"}},
		{&quantityCmd{}, map[string]string{"symbol": "AAPL", "quantity": "100", "d": "2025-06-02"}},
		{&targetCmd{}, map[string]string{"symbol": "AAPL", "percent": "50", "d": "2025-06-02"}},
	}
	for _, step := range steps {
		if status := run(t, step.cmd, step.args); status != subcommands.ExitSuccess {
			t.Fatalf("%s: exit status %v", step.cmd.Name(), status)
		}
	}

	book, err := DecodeBook()
	if err != nil {
		t.Fatal(err)
	}
	if got := book.Portfolio().Name; got != "retirement" {
		t.Errorf("portfolio name = %q, want retirement", got)
	}
	if got := book.Portfolio().Value; !got.Equal(folio.M(100000, "USD")) {
		t.Errorf("portfolio value = %s, want 100,000.00 USD", got)
	}
	class := book.Class("stocks")
	if class == nil || !class.Target.Equal(60) {
		t.Fatalf("class stocks = %+v, want target 60", class)
	}
	asset := book.Asset("AAPL")
	if asset == nil {
		t.Fatal("asset AAPL not journaled")
	}
	if !asset.Quantity.Equal(folio.Q(100)) {
		t.Errorf("AAPL quantity = %s, want 100", asset.Quantity)
	}
	if !asset.Target.Equal(50) {
		t.Errorf("AAPL target = %s, want 50", asset.Target)
	}
}

func TestAssetRequiresDeclaredClass(t *testing.T) {
	tempJournal(t)

	if status := run(t, &initCmd{}, map[string]string{"name": "p", "value": "1000"}); status != subcommands.ExitSuccess {
		t.Fatalf("init: exit status %v", status)
	}
	if status := run(t, &assetCmd{}, map[string]string{"symbol": "AAPL", "class": "stocks"}); status != subcommands.ExitFailure {
		t.Errorf("asset without class: exit status %v, want failure", status)
	}
}

func TestInitRejectsBadValue(t *testing.T) {
	tempJournal(t)

	if status := run(t, &initCmd{}, map[string]string{"name": "p", "value": "not-a-number"}); status != subcommands.ExitFailure {
		t.Errorf("exit status %v, want failure", status)
	}
}

func TestFmtCanonicalizes(t *testing.T) {
	file := tempJournal(t)

	untidy := `{"value":1000,"currency":"USD","name":"p","date":"2025-06-01","command":"portfolio"}
{"target":100,"name":"stocks","command":"class","date":"2025-06-01","threshold":5}
`
	if err := os.WriteFile(file, []byte(untidy), 0o644); err != nil {
		t.Fatal(err)
	}
	if status := run(t, &fmtCmd{}, nil); status != subcommands.ExitSuccess {
		t.Fatalf("fmt: exit status %v", status)
	}

	got, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"command":"portfolio","date":"2025-06-01","name":"p","currency":"USD","value":1000}
{"command":"class","date":"2025-06-01","name":"stocks","target":100,"threshold":5}
`
	if string(got) != want {
		t.Errorf("canonical journal:\n%s\nwant:\n%s", got, want)
	}
}
