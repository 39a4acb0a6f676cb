package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/folioctl/folio"
)

// TwelveData serves real-time quotes for US listings. Free tier, key
// required.
type TwelveData struct {
	Client  *http.Client
	Key     string
	BaseURL string
}

func (t *TwelveData) Name() string  { return "twelvedata" }
func (t *TwelveData) Enabled() bool { return t.Key != "" }

func (t *TwelveData) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	base := t.BaseURL
	if base == "" {
		base = "https://api.twelvedata.com"
	}
	addr := fmt.Sprintf("%s/price?symbol=%s&apikey=%s", base, url.QueryEscape(string(symbol)), t.Key)

	var jobj struct {
		Price   string `json:"price"`
		Message string `json:"message"` // set on errors, with code and status
	}
	if err := jwget(ctx, t.Client, addr, &jobj); err != nil {
		return 0, err
	}
	if jobj.Price == "" {
		if jobj.Message != "" {
			return 0, fmt.Errorf("no quote for %q: %s", symbol, jobj.Message)
		}
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	val, err := strconv.ParseFloat(jobj.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %q: %w", jobj.Price, symbol, err)
	}
	return val, nil
}
