package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/folioctl/folio"
)

// Finnhub serves real-time quotes for US listings. Free tier, key required.
type Finnhub struct {
	Client  *http.Client
	Key     string
	BaseURL string // defaults to the public endpoint
}

func (f *Finnhub) Name() string  { return "finnhub" }
func (f *Finnhub) Enabled() bool { return f.Key != "" }

func (f *Finnhub) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	base := f.BaseURL
	if base == "" {
		base = "https://finnhub.io/api/v1"
	}
	addr := fmt.Sprintf("%s/quote?symbol=%s&token=%s", base, url.QueryEscape(string(symbol)), f.Key)

	// "c" is the current price; finnhub answers 0 for unknown symbols
	// instead of an error.
	var jobj struct {
		Current float64 `json:"c"`
	}
	if err := jwget(ctx, f.Client, addr, &jobj); err != nil {
		return 0, err
	}
	if jobj.Current <= 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return jobj.Current, nil
}
