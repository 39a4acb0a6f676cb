package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/folioctl/folio"
)

// CoinCap serves crypto prices by asset slug. Keyless, USD only, so it
// backs coingecko up for USD pairs.
type CoinCap struct {
	Client  *http.Client
	BaseURL string
}

func (c *CoinCap) Name() string { return "coincap" }

func (c *CoinCap) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	if symbol.Kind() != folio.KindCrypto {
		return 0, fmt.Errorf("coincap does not serve %s symbols", symbol.Kind())
	}
	if symbol.Quote() != "USD" {
		return 0, fmt.Errorf("coincap quotes in USD only, not %s", symbol.Quote())
	}
	// coincap slugs match the coingecko ids for the major coins.
	id := folio.CoinID(symbol.Base())
	if id == "" {
		id = strings.ToLower(symbol.Base())
	}
	base := c.BaseURL
	if base == "" {
		base = "https://api.coincap.io"
	}
	addr := fmt.Sprintf("%s/v2/assets/%s", base, url.PathEscape(id))

	var jobj struct {
		Data struct {
			PriceUSD string `json:"priceUsd"`
		} `json:"data"`
	}
	if err := jwget(ctx, c.Client, addr, &jobj); err != nil {
		return 0, err
	}
	if jobj.Data.PriceUSD == "" {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	val, err := strconv.ParseFloat(jobj.Data.PriceUSD, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %q: %w", jobj.Data.PriceUSD, symbol, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return val, nil
}
