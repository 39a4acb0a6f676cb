package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"

	"github.com/folioctl/folio"
)

// Yahoo serves quotes for every symbol family through the unofficial chart
// endpoint. Keyless, last in every chain because the endpoint is throttled
// and undocumented.
type Yahoo struct {
	Client  *http.Client
	BaseURL string
}

func (y *Yahoo) Name() string { return "yahoo" }

func (y *Yahoo) base() string {
	if y.BaseURL != "" {
		return y.BaseURL
	}
	return "https://query1.finance.yahoo.com"
}

func (y *Yahoo) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s", y.base(), url.PathEscape(string(symbol)))

	var jobj any
	if err := jwget(ctx, y.Client, addr, &jobj); err != nil {
		return 0, err
	}
	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("no quote for %q: %q %w", symbol, path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer, keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("no quote for %q: %q is not a float: %v", symbol, path, jval)
	}
	if val <= 0 {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	return val, nil
}

// SearchResult is one match from a symbol search.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
	Kind     string `json:"kind"`
}

// Search looks a free-form query up in yahoo's symbol directory.
func (y *Yahoo) Search(ctx context.Context, query string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0", y.base(), url.QueryEscape(query))

	var jobj struct {
		Quotes []struct {
			Symbol    string `json:"symbol"`
			ShortName string `json:"shortname"`
			LongName  string `json:"longname"`
			Exchange  string `json:"exchange"`
			QuoteType string `json:"quoteType"`
		} `json:"quotes"`
	}
	if err := jwget(ctx, y.Client, addr, &jobj); err != nil {
		return nil, err
	}
	var out []SearchResult
	for _, q := range jobj.Quotes {
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		kind := folio.KindOther
		if sym, err := folio.ParseSymbol(q.Symbol); err == nil {
			kind = sym.Kind()
		}
		out = append(out, SearchResult{Symbol: q.Symbol, Name: name, Exchange: q.Exchange, Kind: kind.String()})
	}
	return out, nil
}
