package quote

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/folioctl/folio"
)

// Source is a single market data provider.
type Source interface {
	Name() string
	// Quote returns the latest price for the symbol, in the symbol's quote
	// currency.
	Quote(ctx context.Context, symbol folio.Symbol) (float64, error)
}

// Keyed is implemented by sources that need an API key to answer.
type Keyed interface {
	Enabled() bool
}

// Quote is a resolved price for a symbol.
type Quote struct {
	Symbol folio.Symbol `json:"symbol"`
	Price  float64      `json:"price"`
	Source string       `json:"source"`
	Time   time.Time    `json:"time"`
}

// Service resolves symbols to prices, querying the sources registered for
// each symbol kind. Resolved quotes are cached in memory for a short TTL so
// a dashboard refresh does not hammer the providers.
type Service struct {
	sources map[folio.Kind][]Source

	mu    sync.Mutex
	cache map[folio.Symbol]cached
	ttl   time.Duration
	now   func() time.Time
}

type cached struct {
	quote Quote
	at    time.Time
}

// cacheTTL keeps quotes fresh enough for interactive use.
const cacheTTL = 60 * time.Second

// NewService builds a service over the default providers, picking up API
// keys from the environment (FINNHUB_KEY, ALPHAVANTAGE_KEY, TWELVEDATA_KEY,
// FMP_KEY, BRAPI_TOKEN). Keyless providers are always registered.
func NewService(client *http.Client) *Service {
	if client == nil {
		client = Daily()
	}
	finnhub := &Finnhub{Client: client, Key: os.Getenv("FINNHUB_KEY")}
	alpha := &AlphaVantage{Client: client, Key: os.Getenv("ALPHAVANTAGE_KEY")}
	twelve := &TwelveData{Client: client, Key: os.Getenv("TWELVEDATA_KEY")}
	fmp := &FMP{Client: client, Key: os.Getenv("FMP_KEY")}
	brapi := &Brapi{Client: client, Token: os.Getenv("BRAPI_TOKEN")}
	stooq := &Stooq{Client: client}
	yahoo := &Yahoo{Client: client}
	gecko := &CoinGecko{Client: client}
	coincap := &CoinCap{Client: client}

	return New(map[folio.Kind][]Source{
		folio.KindUS:     {finnhub, fmp, twelve, alpha, stooq, yahoo},
		folio.KindBR:     {brapi, yahoo},
		folio.KindCrypto: {gecko, coincap, yahoo},
		folio.KindOther:  {yahoo, stooq},
	})
}

// New builds a service over an explicit source registry.
func New(sources map[folio.Kind][]Source) *Service {
	return &Service{
		sources: sources,
		cache:   make(map[folio.Symbol]cached),
		ttl:     cacheTTL,
		now:     time.Now,
	}
}

// Sources returns the enabled sources registered for the given kind, in
// priority order.
func (s *Service) Sources(kind folio.Kind) []Source {
	var out []Source
	for _, src := range s.sources[kind] {
		if k, ok := src.(Keyed); ok && !k.Enabled() {
			continue
		}
		out = append(out, src)
	}
	return out
}

// Price resolves the symbol against its sources in priority order and
// returns the first answer. Results are served from cache within the TTL.
func (s *Service) Price(ctx context.Context, symbol folio.Symbol) (Quote, error) {
	s.mu.Lock()
	if c, ok := s.cache[symbol]; ok && s.now().Sub(c.at) < s.ttl {
		s.mu.Unlock()
		return c.quote, nil
	}
	s.mu.Unlock()

	var errs []error
	for _, src := range s.Sources(symbol.Kind()) {
		price, err := src.Quote(ctx, symbol)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		q := Quote{Symbol: symbol, Price: price, Source: src.Name(), Time: s.now()}
		s.remember(q)
		return q, nil
	}
	if len(errs) == 0 {
		return Quote{}, fmt.Errorf("no source for %s symbols", symbol.Kind())
	}
	return Quote{}, fmt.Errorf("no price for %q: %v", symbol, errs)
}

func (s *Service) remember(q Quote) {
	s.mu.Lock()
	s.cache[q.Symbol] = cached{quote: q, at: s.now()}
	s.mu.Unlock()
}

// Candidates queries all sources of the symbol kind concurrently and
// returns every answer, in source priority order. Failing sources are
// skipped.
func (s *Service) Candidates(ctx context.Context, symbol folio.Symbol) []Candidate {
	sources := s.Sources(symbol.Kind())
	answers := make([]*Candidate, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			price, err := src.Quote(ctx, symbol)
			if err != nil {
				return nil // a failing source is not a candidate
			}
			answers[i] = &Candidate{Source: src.Name(), Price: price}
			return nil
		})
	}
	g.Wait()

	var out []Candidate
	for _, a := range answers {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// Consensus resolves the symbol against all its sources and reconciles the
// answers. The consensus price is cached like a plain quote.
func (s *Service) Consensus(ctx context.Context, symbol folio.Symbol) (Consensus, error) {
	candidates := s.Candidates(ctx, symbol)
	if len(candidates) == 0 {
		return Consensus{Symbol: symbol}, fmt.Errorf("no price for %q from any source", symbol)
	}
	c := NewConsensus(symbol, candidates)
	s.remember(Quote{Symbol: symbol, Price: c.Price, Source: "consensus", Time: s.now()})
	return c, nil
}

// Batch resolves several symbols concurrently, at most four in flight. It
// returns the quotes it could resolve and the first error encountered, if
// any.
func (s *Service) Batch(ctx context.Context, symbols []folio.Symbol) (map[folio.Symbol]Quote, error) {
	var mu sync.Mutex
	quotes := make(map[folio.Symbol]Quote, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, symbol := range symbols {
		g.Go(func() error {
			q, err := s.Price(ctx, symbol)
			if err != nil {
				return err
			}
			mu.Lock()
			quotes[symbol] = q
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return quotes, err
}

// States reported by Check.
const (
	StateOK           = "ok"
	StateError        = "error"
	StateUnconfigured = "unconfigured" // keyed source without its API key
)

// SourceStatus is the result of probing one source.
type SourceStatus struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// probes, one well-known symbol per kind.
var probes = map[folio.Kind]folio.Symbol{
	folio.KindUS:     "AAPL",
	folio.KindBR:     "PETR4.SA",
	folio.KindCrypto: "BTC-USD",
}

// Check reports on every registered source: enabled ones are probed with a
// well-known symbol of their kind, keyed ones missing their API key are
// reported unconfigured without a probe.
func (s *Service) Check(ctx context.Context) []SourceStatus {
	type probe struct {
		source Source
		symbol folio.Symbol
	}
	var plan []probe
	var unconfigured []SourceStatus
	seen := make(map[string]bool)
	for _, kind := range []folio.Kind{folio.KindUS, folio.KindBR, folio.KindCrypto} {
		for _, src := range s.sources[kind] {
			if seen[src.Name()] {
				continue
			}
			seen[src.Name()] = true
			if k, ok := src.(Keyed); ok && !k.Enabled() {
				unconfigured = append(unconfigured, SourceStatus{Name: src.Name(), State: StateUnconfigured})
				continue
			}
			plan = append(plan, probe{source: src, symbol: probes[kind]})
		}
	}

	probed := make([]SourceStatus, len(plan))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range plan {
		g.Go(func() error {
			probed[i] = SourceStatus{Name: p.source.Name(), State: StateOK}
			if _, err := p.source.Quote(ctx, p.symbol); err != nil {
				probed[i].State = StateError
				probed[i].Error = err.Error()
			}
			return nil
		})
	}
	g.Wait()
	return append(probed, unconfigured...)
}
