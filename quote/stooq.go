package quote

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/folioctl/folio"
)

// Stooq serves daily close prices as CSV. Keyless, so it is the fallback of
// choice when no API key is configured.
type Stooq struct {
	Client  *http.Client
	BaseURL string
}

func (s *Stooq) Name() string { return "stooq" }

// stooqSymbol maps a symbol to stooq's ticker namespace.
func stooqSymbol(symbol folio.Symbol) (string, error) {
	switch symbol.Kind() {
	case folio.KindUS:
		return strings.ToLower(string(symbol)) + ".us", nil
	case folio.KindOther:
		return strings.ToLower(string(symbol)), nil
	default:
		return "", fmt.Errorf("stooq does not serve %s symbols", symbol.Kind())
	}
}

func (s *Stooq) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	ticker, err := stooqSymbol(symbol)
	if err != nil {
		return 0, err
	}
	base := s.BaseURL
	if base == "" {
		base = "https://stooq.com"
	}
	addr := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2ohlcv&h&e=csv", base, url.QueryEscape(ticker))

	body, err := wget(ctx, s.Client, addr)
	if err != nil {
		return 0, err
	}
	return parseStooqCSV(body, symbol)
}

// parseStooqCSV extracts the close price from stooq's one-row CSV answer:
//
//	Symbol,Date,Time,Open,High,Low,Close,Volume
//	AAPL.US,2025-06-01,22:00:07,200.1,201.5,199.2,200.9,48210300
//
// Unknown symbols come back with N/D in every field.
func parseStooqCSV(body []byte, symbol folio.Symbol) (float64, error) {
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("invalid csv for %q: %w", symbol, err)
	}
	if len(records) < 2 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	header, row := records[0], records[1]
	closeCol := -1
	for i, name := range header {
		if strings.EqualFold(name, "Close") {
			closeCol = i
		}
	}
	if closeCol < 0 || closeCol >= len(row) {
		return 0, fmt.Errorf("no close column for %q", symbol)
	}
	field := row[closeCol]
	if field == "N/D" {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	val, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid close %q for %q: %w", field, symbol, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return val, nil
}
