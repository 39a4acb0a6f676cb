package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/folioctl/folio"
)

// AlphaVantage serves end-of-day quotes for US listings. Free tier, key
// required, 25 requests per day.
type AlphaVantage struct {
	Client  *http.Client
	Key     string
	BaseURL string
}

func (a *AlphaVantage) Name() string  { return "alphavantage" }
func (a *AlphaVantage) Enabled() bool { return a.Key != "" }

func (a *AlphaVantage) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	base := a.BaseURL
	if base == "" {
		base = "https://www.alphavantage.co"
	}
	addr := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s", base, url.QueryEscape(string(symbol)), a.Key)

	var jobj struct {
		Quote struct {
			Price string `json:"05. price"`
		} `json:"Global Quote"`
	}
	if err := jwget(ctx, a.Client, addr, &jobj); err != nil {
		return 0, err
	}
	// an exhausted key or an unknown symbol both come back as an empty
	// Global Quote object.
	if jobj.Quote.Price == "" {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	val, err := strconv.ParseFloat(jobj.Quote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %q: %w", jobj.Quote.Price, symbol, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return val, nil
}
