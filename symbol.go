package folio

import (
	"fmt"
	"regexp"
	"strings"
)

// Symbol is the normalized ticker of an asset as quoted by public providers.
//
// Symbols are always uppercase. Three families are recognized:
//
//   - Listed US assets (stocks, ETFs, REITs): "AAPL", "SPY", "BRK.B".
//   - Brazilian stocks, suffixed with the B3 marker: "PETR4.SA".
//   - Crypto pairs, a base asset and a quote currency separated by a
//     hyphen: "BTC-USD". The compact form "BTCUSD" normalizes to it.
//
// Anything else that is plain alphanumeric is accepted as KindOther so
// that users can track assets we cannot classify.
type Symbol string

// Kind classifies a symbol by the market it trades on. It decides which
// quote providers are willing to price it.
type Kind int

const (
	KindUS Kind = iota
	KindBR
	KindCrypto
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindUS:
		return "us"
	case KindBR:
		return "br"
	case KindCrypto:
		return "crypto"
	default:
		return "other"
	}
}

var (
	usSymbolRE      = regexp.MustCompile(`^[A-Z]{1,5}$`)
	usClassSymbolRE = regexp.MustCompile(`^[A-Z]{1,5}\.[A-Z]$`)
	brSymbolRE      = regexp.MustCompile(`^[A-Z]{4}[0-9]{1,2}\.SA$`)
	cryptoSymbolRE  = regexp.MustCompile(`^[A-Z0-9]{2,10}-[A-Z]{3}$`)
	otherSymbolRE   = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)
	invalidRunesRE  = regexp.MustCompile(`[^A-Z0-9.\-]`)
)

// quote currencies accepted in crypto pairs.
var cryptoQuotes = map[string]bool{"USD": true, "EUR": true, "BRL": true}

// cryptoBases maps well-known crypto tickers to the identifier used by
// CoinGecko. Presence in this map is also what classifies a bare ticker
// (or a compact pair like "BTCUSD") as crypto.
var cryptoBases = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"SOL":   "solana",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"SHIB":  "shiba-inu",
	"LTC":   "litecoin",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"ALGO":  "algorand",
	"VET":   "vechain",
	"FIL":   "filecoin",
	"NEAR":  "near",
}

// CoinID returns the CoinGecko identifier for a crypto base ticker,
// or the empty string when the coin is not a well-known one.
func CoinID(base string) string {
	return cryptoBases[strings.ToUpper(base)]
}

// ParseSymbol normalizes and validates a raw user ticker.
//
// Normalization uppercases, trims, strips invalid runes, and expands the
// compact crypto form ("BTCUSD" becomes "BTC-USD", provided the base is a
// known crypto asset and the suffix a supported quote currency).
func ParseSymbol(raw string) (Symbol, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = invalidRunesRE.ReplaceAllString(s, "")
	if s == "" {
		return "", fmt.Errorf("empty symbol %q", raw)
	}
	if len(s) > 20 {
		return "", fmt.Errorf("symbol %q is too long (max 20 characters)", raw)
	}

	// Compact crypto pair: expand before classification.
	if !strings.Contains(s, "-") && len(s) > 3 {
		base, suffix := s[:len(s)-3], s[len(s)-3:]
		if cryptoQuotes[suffix] {
			if _, known := cryptoBases[base]; known {
				s = base + "-" + suffix
			}
		}
	}

	sym := Symbol(s)
	switch {
	case strings.HasSuffix(s, ".SA"):
		if !brSymbolRE.MatchString(s) {
			return "", fmt.Errorf("invalid BR symbol %q, want XXXX9.SA (e.g. PETR4.SA)", raw)
		}
	case strings.Contains(s, "-"):
		if !cryptoSymbolRE.MatchString(s) {
			return "", fmt.Errorf("invalid crypto symbol %q, want BASE-CUR (e.g. BTC-USD)", raw)
		}
	case strings.Contains(s, "."):
		if !usClassSymbolRE.MatchString(s) {
			return "", fmt.Errorf("invalid symbol %q", raw)
		}
	case usSymbolRE.MatchString(s) || otherSymbolRE.MatchString(s):
		// plain listed ticker, or an unclassified alphanumeric one.
	default:
		return "", fmt.Errorf("unrecognized symbol format %q", raw)
	}
	return sym, nil
}

// MustParseSymbol is like ParseSymbol but panics on error.
func MustParseSymbol(raw string) Symbol {
	s, err := ParseSymbol(raw)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// Kind classifies the symbol. The symbol is assumed normalized.
func (s Symbol) Kind() Kind {
	str := string(s)
	if strings.HasSuffix(str, ".SA") {
		return KindBR
	}
	if _, quote, found := strings.Cut(str, "-"); found {
		if cryptoQuotes[quote] {
			return KindCrypto
		}
		return KindOther
	}
	if _, known := cryptoBases[str]; known {
		return KindCrypto
	}
	if usSymbolRE.MatchString(str) || usClassSymbolRE.MatchString(str) {
		return KindUS
	}
	return KindOther
}

// Base returns the crypto base ticker ("BTC" for "BTC-USD"). For a bare
// crypto ticker it returns the ticker itself.
func (s Symbol) Base() string {
	base, _, _ := strings.Cut(string(s), "-")
	return base
}

// Quote returns the quote currency of a crypto pair, defaulting to USD.
func (s Symbol) Quote() string {
	if _, quote, found := strings.Cut(string(s), "-"); found && cryptoQuotes[quote] {
		return quote
	}
	return "USD"
}

// Bare returns the symbol stripped of its market suffix ("PETR4" for
// "PETR4.SA"), the form the BR provider expects.
func (s Symbol) Bare() string {
	return strings.TrimSuffix(string(s), ".SA")
}

func (s Symbol) String() string { return string(s) }
