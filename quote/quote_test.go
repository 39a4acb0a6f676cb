package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/folioctl/folio"
)

func mustSymbol(t *testing.T, s string) folio.Symbol {
	t.Helper()
	sym, err := folio.ParseSymbol(s)
	if err != nil {
		t.Fatal(err)
	}
	return sym
}

// fakeSource answers a fixed price, or fails.
type fakeSource struct {
	name  string
	price float64
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }
func (f *fakeSource) Quote(ctx context.Context, symbol folio.Symbol) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.price, nil
}

func newTestService(sources ...Source) *Service {
	return New(map[folio.Kind][]Source{folio.KindUS: sources})
}

func TestPriceFallsBack(t *testing.T) {
	broken := &fakeSource{name: "broken", err: errors.New("rate limited")}
	good := &fakeSource{name: "good", price: 123.45}
	s := newTestService(broken, good)

	q, err := s.Price(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if q.Price != 123.45 || q.Source != "good" {
		t.Errorf("quote = %+v, want 123.45 from good", q)
	}
	if broken.calls != 1 {
		t.Errorf("broken calls = %d, want 1", broken.calls)
	}
}

func TestPriceAllSourcesFail(t *testing.T) {
	s := newTestService(&fakeSource{name: "broken", err: errors.New("down")})
	if _, err := s.Price(context.Background(), "AAPL"); err == nil {
		t.Fatal("price resolved with every source failing")
	}
}

func TestPriceCachesWithinTTL(t *testing.T) {
	src := &fakeSource{name: "src", price: 100}
	s := newTestService(src)
	now := time.Now()
	s.now = func() time.Time { return now }

	ctx := context.Background()
	if _, err := s.Price(ctx, "AAPL"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Price(ctx, "AAPL"); err != nil {
		t.Fatal(err)
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1 (second hit served from cache)", src.calls)
	}

	// past the TTL the source is asked again.
	now = now.Add(cacheTTL + time.Second)
	if _, err := s.Price(ctx, "AAPL"); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2 after expiry", src.calls)
	}
}

func TestCandidatesSkipsFailures(t *testing.T) {
	s := newTestService(
		&fakeSource{name: "a", price: 100},
		&fakeSource{name: "b", err: errors.New("down")},
		&fakeSource{name: "c", price: 101},
	)
	got := s.Candidates(context.Background(), "AAPL")
	if len(got) != 2 {
		t.Fatalf("candidates = %v, want 2", got)
	}
	// priority order survives the concurrent fan-out.
	if got[0].Source != "a" || got[1].Source != "c" {
		t.Errorf("candidates = %v, want a then c", got)
	}
}

func TestConsensusNoSource(t *testing.T) {
	s := newTestService(&fakeSource{name: "broken", err: errors.New("down")})
	if _, err := s.Consensus(context.Background(), "AAPL"); err == nil {
		t.Fatal("consensus resolved with no candidates")
	}
}

func TestBatch(t *testing.T) {
	src := &fakeSource{name: "src", price: 50}
	s := newTestService(src)

	quotes, err := s.Batch(context.Background(), []folio.Symbol{"AAPL", "MSFT", "GOOG"})
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 3 {
		t.Fatalf("quotes = %d, want 3", len(quotes))
	}
	if q := quotes["MSFT"]; q.Price != 50 {
		t.Errorf("MSFT = %+v, want price 50", q)
	}
}

func TestSourcesSkipsDisabled(t *testing.T) {
	s := New(map[folio.Kind][]Source{folio.KindUS: {
		&Finnhub{},                // no key
		&fakeSource{name: "free"}, // keyless, always on
		&AlphaVantage{Key: "key"}, // keyed and configured
	}})
	got := s.Sources(folio.KindUS)
	if len(got) != 2 {
		t.Fatalf("sources = %d, want 2", len(got))
	}
	if got[0].Name() != "free" || got[1].Name() != "alphavantage" {
		t.Errorf("sources = [%s %s], want [free alphavantage]", got[0].Name(), got[1].Name())
	}
}

func TestCheckReportsUnconfigured(t *testing.T) {
	free := &fakeSource{name: "free", price: 100}
	down := &fakeSource{name: "down", err: errors.New("timeout")}
	s := newTestService(&Finnhub{}, free, down) // finnhub has no key

	states := make(map[string]string)
	for _, status := range s.Check(context.Background()) {
		states[status.Name] = status.State
	}
	if states["finnhub"] != StateUnconfigured {
		t.Errorf("finnhub state = %q, want %q", states["finnhub"], StateUnconfigured)
	}
	if states["free"] != StateOK {
		t.Errorf("free state = %q, want %q", states["free"], StateOK)
	}
	if states["down"] != StateError {
		t.Errorf("down state = %q, want %q", states["down"], StateError)
	}
	if free.calls != 1 {
		t.Errorf("free probed %d times, want 1", free.calls)
	}
}
