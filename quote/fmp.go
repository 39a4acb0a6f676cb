package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/folioctl/folio"
)

// FMP (Financial Modeling Prep) serves short quotes for US listings. Free
// tier, key required.
type FMP struct {
	Client  *http.Client
	Key     string
	BaseURL string
}

func (f *FMP) Name() string  { return "fmp" }
func (f *FMP) Enabled() bool { return f.Key != "" }

func (f *FMP) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	base := f.BaseURL
	if base == "" {
		base = "https://financialmodelingprep.com/api/v3"
	}
	addr := fmt.Sprintf("%s/quote-short/%s?apikey=%s", base, url.PathEscape(string(symbol)), f.Key)

	var jobj []struct {
		Price float64 `json:"price"`
	}
	if err := jwget(ctx, f.Client, addr, &jobj); err != nil {
		return 0, err
	}
	if len(jobj) == 0 || jobj[0].Price <= 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return jobj[0].Price, nil
}
