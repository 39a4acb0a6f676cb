package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/folioctl/folio"
)

// Brapi serves quotes for B3 (Brazilian) listings. Keyless for a low rate,
// a token raises the limit. Tickers are the bare B3 codes, without the .SA
// suffix used everywhere else.
type Brapi struct {
	Client  *http.Client
	Token   string
	BaseURL string
}

func (b *Brapi) Name() string { return "brapi" }

func (b *Brapi) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	base := b.BaseURL
	if base == "" {
		base = "https://brapi.dev"
	}
	addr := fmt.Sprintf("%s/api/quote/%s", base, url.PathEscape(string(symbol.Bare())))
	if b.Token != "" {
		addr += "?token=" + url.QueryEscape(b.Token)
	}

	var jobj struct {
		Results []struct {
			Price float64 `json:"regularMarketPrice"`
		} `json:"results"`
	}
	if err := jwget(ctx, b.Client, addr, &jobj); err != nil {
		return 0, err
	}
	if len(jobj.Results) == 0 || jobj.Results[0].Price <= 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return jobj.Results[0].Price, nil
}
