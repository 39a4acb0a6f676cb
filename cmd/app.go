// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"

	"github.com/folioctl/folio"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "portfolio")
	c.Register(&setValueCmd{}, "portfolio")
	c.Register(&classCmd{}, "portfolio")
	c.Register(&assetCmd{}, "portfolio")
	c.Register(&quantityCmd{}, "portfolio")
	c.Register(&targetCmd{}, "portfolio")
	c.Register(&removeCmd{}, "portfolio")

	c.Register(&updateCmd{}, "market")
	c.Register(&sourcesCmd{}, "market")
	c.Register(&searchCmd{}, "market")

	c.Register(&dashboardCmd{}, "reports")
	c.Register(&logCmd{}, "reports")

	c.Register(&fmtCmd{}, "journal")
	c.Register(&importCmd{}, "journal")

	c.Register(&assistCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio.jsonl", "Path to the portfolio journal file (JSONL format)")

// DecodeBook reads the app journal file. A missing file is an empty book.
func DecodeBook() (*folio.Book, error) {
	f, err := os.Open(*portfolioFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return folio.NewBook(), nil
		}
		return nil, fmt.Errorf("could not open journal file %q: %w", *portfolioFile, err)
	}
	defer f.Close()

	book, err := folio.DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal file %q: %w", *portfolioFile, err)
	}
	return book, nil
}

// SaveBook writes the whole book back in canonical form.
func SaveBook(book *folio.Book) error {
	f, err := os.Create(*portfolioFile)
	if err != nil {
		return fmt.Errorf("could not write journal file %q: %w", *portfolioFile, err)
	}
	defer f.Close()
	return folio.EncodeBook(f, book)
}

// AppendRecords validates the records against the journal and saves it.
func AppendRecords(recs ...folio.Record) subcommands.ExitStatus {
	book, err := DecodeBook()
	if err != nil {
		return fail(err)
	}
	for _, rec := range recs {
		if err := book.Append(rec); err != nil {
			return fail(err)
		}
	}
	if err := SaveBook(book); err != nil {
		return fail(err)
	}
	fmt.Printf("Appended %d record(s) to %s\n", len(recs), *portfolioFile)
	return subcommands.ExitSuccess
}

// fail reports the error the way every subcommand does.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// parseDay reads a -d flag value, empty meaning today.
func parseDay(s string) (folio.Date, error) {
	if s == "" {
		return folio.Date{}, nil
	}
	return folio.ParseDate(s)
}
