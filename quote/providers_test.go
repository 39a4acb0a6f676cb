package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFinnhubQuote(t *testing.T) {
	srv := jsonServer(t, `{"c":199.95,"h":201.2,"l":198.3,"o":200.0,"pc":198.9}`)
	f := &Finnhub{Client: srv.Client(), Key: "k", BaseURL: srv.URL}

	got, err := f.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if got != 199.95 {
		t.Errorf("price = %v, want 199.95", got)
	}
}

func TestFinnhubUnknownSymbol(t *testing.T) {
	// finnhub answers zeros instead of an error for unknown symbols.
	srv := jsonServer(t, `{"c":0,"h":0,"l":0,"o":0,"pc":0}`)
	f := &Finnhub{Client: srv.Client(), Key: "k", BaseURL: srv.URL}
	if _, err := f.Quote(context.Background(), "NOPE"); err == nil {
		t.Fatal("quote resolved for an unknown symbol")
	}
}

func TestAlphaVantageQuote(t *testing.T) {
	srv := jsonServer(t, `{"Global Quote":{"01. symbol":"AAPL","05. price":"200.1000"}}`)
	a := &AlphaVantage{Client: srv.Client(), Key: "k", BaseURL: srv.URL}

	got, err := a.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if got != 200.10 {
		t.Errorf("price = %v, want 200.10", got)
	}
}

func TestAlphaVantageExhaustedKey(t *testing.T) {
	srv := jsonServer(t, `{"Global Quote":{}}`)
	a := &AlphaVantage{Client: srv.Client(), Key: "k", BaseURL: srv.URL}
	if _, err := a.Quote(context.Background(), "AAPL"); err == nil {
		t.Fatal("quote resolved from an empty answer")
	}
}

func TestTwelveDataQuote(t *testing.T) {
	srv := jsonServer(t, `{"price":"200.14999"}`)
	td := &TwelveData{Client: srv.Client(), Key: "k", BaseURL: srv.URL}

	got, err := td.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if got != 200.14999 {
		t.Errorf("price = %v, want 200.14999", got)
	}
}

func TestFMPQuote(t *testing.T) {
	srv := jsonServer(t, `[{"symbol":"AAPL","price":200.25,"volume":48210300}]`)
	f := &FMP{Client: srv.Client(), Key: "k", BaseURL: srv.URL}

	got, err := f.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if got != 200.25 {
		t.Errorf("price = %v, want 200.25", got)
	}
}

func TestBrapiQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// brapi wants the bare B3 ticker, without the .SA suffix.
		if r.URL.Path != "/api/quote/PETR4" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"results":[{"symbol":"PETR4","regularMarketPrice":38.42}]}`)
	}))
	t.Cleanup(srv.Close)
	b := &Brapi{Client: srv.Client(), BaseURL: srv.URL}

	got, err := b.Quote(context.Background(), mustSymbol(t, "PETR4.SA"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 38.42 {
		t.Errorf("price = %v, want 38.42", got)
	}
}

func TestYahooQuote(t *testing.T) {
	srv := jsonServer(t, `{"chart":{"result":[{"meta":{"symbol":"AAPL","regularMarketPrice":200.5}}],"error":null}}`)
	y := &Yahoo{Client: srv.Client(), BaseURL: srv.URL}

	got, err := y.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if got != 200.5 {
		t.Errorf("price = %v, want 200.5", got)
	}
}

func TestYahooSearch(t *testing.T) {
	srv := jsonServer(t, `{"quotes":[{"symbol":"AAPL","shortname":"Apple Inc.","exchange":"NMS","quoteType":"EQUITY"}]}`)
	y := &Yahoo{Client: srv.Client(), BaseURL: srv.URL}

	got, err := y.Search(context.Background(), "apple")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("results = %v, want 1", got)
	}
	if got[0].Symbol != "AAPL" || got[0].Name != "Apple Inc." || got[0].Kind != "us" {
		t.Errorf("result = %+v, want AAPL / Apple Inc. / us", got[0])
	}
}

func TestCoinGeckoQuote(t *testing.T) {
	srv := jsonServer(t, `{"bitcoin":{"usd":60123.5}}`)
	g := &CoinGecko{Client: srv.Client(), BaseURL: srv.URL}

	got, err := g.Quote(context.Background(), mustSymbol(t, "BTC-USD"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 60123.5 {
		t.Errorf("price = %v, want 60123.5", got)
	}
}

func TestCoinGeckoResolvesUnknownCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/search":
			fmt.Fprint(w, `{"coins":[{"id":"render-token","symbol":"RNDR","name":"Render"}]}`)
		case "/api/v3/simple/price":
			fmt.Fprint(w, `{"render-token":{"usd":7.21}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	g := &CoinGecko{Client: srv.Client(), BaseURL: srv.URL}

	got, err := g.Quote(context.Background(), mustSymbol(t, "RNDR-USD"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 7.21 {
		t.Errorf("price = %v, want 7.21", got)
	}
}

func TestCoinCapQuote(t *testing.T) {
	srv := jsonServer(t, `{"data":{"id":"bitcoin","symbol":"BTC","priceUsd":"60124.0213"}}`)
	c := &CoinCap{Client: srv.Client(), BaseURL: srv.URL}

	got, err := c.Quote(context.Background(), mustSymbol(t, "BTC-USD"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 60124.0213 {
		t.Errorf("price = %v, want 60124.0213", got)
	}
}

func TestCoinCapRejectsNonUSD(t *testing.T) {
	c := &CoinCap{Client: http.DefaultClient}
	if _, err := c.Quote(context.Background(), mustSymbol(t, "BTC-EUR")); err == nil {
		t.Fatal("coincap answered a EUR pair")
	}
}

func TestStooqParseCSV(t *testing.T) {
	body := "Symbol,Date,Time,Open,High,Low,Close,Volume\nAAPL.US,2025-06-01,22:00:07,200.1,201.5,199.2,200.9,48210300\n"
	got, err := parseStooqCSV([]byte(body), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if got != 200.9 {
		t.Errorf("close = %v, want 200.9", got)
	}
}

func TestStooqParseUnknownSymbol(t *testing.T) {
	body := "Symbol,Date,Time,Open,High,Low,Close,Volume\nNOPE.US,N/D,N/D,N/D,N/D,N/D,N/D,N/D\n"
	if _, err := parseStooqCSV([]byte(body), "NOPE"); err == nil {
		t.Fatal("close parsed from an N/D row")
	}
}

func TestStooqSymbol(t *testing.T) {
	tests := []struct {
		symbol  string
		want    string
		wantErr bool
	}{
		{"AAPL", "aapl.us", false},
		{"PETR4.SA", "", true},
		{"BTC-USD", "", true},
	}
	for _, tt := range tests {
		got, err := stooqSymbol(mustSymbol(t, tt.symbol))
		if (err != nil) != tt.wantErr {
			t.Errorf("stooqSymbol(%s) error = %v, wantErr %v", tt.symbol, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("stooqSymbol(%s) = %q, want %q", tt.symbol, got, tt.want)
		}
	}
}
