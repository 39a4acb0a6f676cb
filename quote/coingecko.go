package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/folioctl/folio"
)

// CoinGecko serves crypto prices by coin id. Keyless. It is the primary
// crypto source because it quotes in any fiat currency.
type CoinGecko struct {
	Client  *http.Client
	BaseURL string

	mu  sync.Mutex
	ids map[string]string // resolved via the search endpoint
}

func (g *CoinGecko) Name() string { return "coingecko" }

func (g *CoinGecko) base() string {
	if g.BaseURL != "" {
		return g.BaseURL
	}
	return "https://api.coingecko.com"
}

func (g *CoinGecko) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	if symbol.Kind() != folio.KindCrypto {
		return 0, fmt.Errorf("coingecko does not serve %s symbols", symbol.Kind())
	}
	id, err := g.coinID(ctx, symbol.Base())
	if err != nil {
		return 0, err
	}
	vs := strings.ToLower(symbol.Quote())
	addr := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=%s", g.base(), url.QueryEscape(id), url.QueryEscape(vs))

	var jobj map[string]map[string]float64
	if err := jwget(ctx, g.Client, addr, &jobj); err != nil {
		return 0, err
	}
	val := jobj[id][vs]
	if val <= 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return val, nil
}

// coinID maps a ticker base to a coingecko coin id, trying the well-known
// coins first and falling back to the search endpoint.
func (g *CoinGecko) coinID(ctx context.Context, base string) (string, error) {
	if id := folio.CoinID(base); id != "" {
		return id, nil
	}
	g.mu.Lock()
	id, ok := g.ids[base]
	g.mu.Unlock()
	if ok {
		return id, nil
	}

	addr := fmt.Sprintf("%s/api/v3/search?query=%s", g.base(), url.QueryEscape(base))
	var jobj struct {
		Coins []struct {
			ID     string `json:"id"`
			Symbol string `json:"symbol"`
		} `json:"coins"`
	}
	if err := jwget(ctx, g.Client, addr, &jobj); err != nil {
		return "", err
	}
	for _, coin := range jobj.Coins {
		if strings.EqualFold(coin.Symbol, base) {
			g.mu.Lock()
			if g.ids == nil {
				g.ids = make(map[string]string)
			}
			g.ids[base] = coin.ID
			g.mu.Unlock()
			return coin.ID, nil
		}
	}
	return "", fmt.Errorf("unknown coin %q", base)
}
