package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/folioctl/folio"
)

// LogMarkdown renders the journal as a markdown table, filtered to the
// given date range. A zero bound leaves that side open.
func LogMarkdown(book *folio.Book, from, to folio.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Journal\n\n")

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Date | Command | Details | Memo |")
		fmt.Fprintln(w, "|:---|:---|:---|:---|")
		rows := 0
		for rec := range book.Records() {
			day := rec.When()
			if !from.IsZero() && day.Before(from) {
				continue
			}
			if !to.IsZero() && day.After(to) {
				continue
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", day, rec.What(), describe(rec), rec.Note())
			rows++
		}
		return rows > 0
	})
	return b.String()
}

// describe summarizes the payload of a record in one cell.
func describe(rec folio.Record) string {
	switch r := rec.(type) {
	case folio.DeclarePortfolio:
		return fmt.Sprintf("%s (%s) valued %s", r.Name, r.Currency, r.Value)
	case folio.DeclareClass:
		return fmt.Sprintf("%s targets %s of total", r.Name, r.Target)
	case folio.DeclareAsset:
		return fmt.Sprintf("%s (%s) in %s", r.Symbol, r.Name, r.Class)
	case folio.SetQuantity:
		return fmt.Sprintf("%s holds %s", r.Symbol, r.Quantity)
	case folio.SetTarget:
		return fmt.Sprintf("%s targets %s of class", r.Symbol, r.Target)
	case folio.RemoveAsset:
		return string(r.Symbol)
	case folio.UpdatePrice:
		parts := make([]string, 0, len(r.Prices))
		for _, sym := range r.Symbols() {
			parts = append(parts, fmt.Sprintf("%s=%s", sym, r.Prices[sym]))
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
