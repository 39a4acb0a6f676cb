package imports

import (
	"regexp"
	"strings"
)

// cryptoNames maps the words appearing on a wallet screen to the ticker
// and display name of the coin.
var cryptoNames = []struct {
	key    string
	ticker string
	name   string
}{
	{"BITCOIN", "BTC", "Bitcoin"},
	{"BTC", "BTC", "Bitcoin"},
	{"ETHEREUM", "ETH", "Ethereum"},
	{"ETH", "ETH", "Ethereum"},
	{"SOLANA", "SOL", "Solana"},
	{"SOL", "SOL", "Solana"},
}

func cryptoName(ticker string) string {
	for _, c := range cryptoNames {
		if c.ticker == ticker {
			return c.name
		}
	}
	return ticker
}

var (
	spacesRE    = regexp.MustCompile(`\s+`)
	directQtyRE = regexp.MustCompile(`(?i)([0-9][0-9.,]*)\s*(BTC|ETH|SOL)`)
	numberRE    = regexp.MustCompile(`[0-9][0-9.,]*`)
	lineNumRE   = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)
)

// ParseHardwallet reads hardware wallet screenshots. Wallet screens have no
// table structure, so this is proximity heuristics: numbers next to a coin
// name or ticker are quantity candidates, and the smallest plausible
// candidate wins (the larger ones are fiat values of the same line).
func ParseHardwallet(text string) []Position {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	normalized := spacesRE.ReplaceAllString(text, " ")
	candidates := make(map[string][]float64)

	// direct quantity-ticker captures, like "3,81884 BTC".
	for _, m := range directQtyRE.FindAllStringSubmatch(normalized, -1) {
		ticker := strings.ToUpper(m[2])
		if val, ok := cryptoQuantity(m[1]); ok {
			candidates[ticker] = append(candidates[ticker], val)
		}
	}

	// numbers within a short window after a coin name or ticker.
	upper := strings.ToUpper(normalized)
	for _, coin := range cryptoNames {
		for idx := strings.Index(upper, coin.key); idx >= 0; {
			start := idx + len(coin.key)
			end := min(start+160, len(normalized))
			for _, n := range numberRE.FindAllString(normalized[start:end], -1) {
				if val, ok := cryptoQuantity(n); ok {
					candidates[coin.ticker] = append(candidates[coin.ticker], val)
				}
			}
			next := strings.Index(upper[start:], coin.key)
			if next < 0 {
				break
			}
			idx = start + next
		}
	}

	// line-scan fallback for very mangled OCR output.
	if len(candidates) == 0 {
		for _, line := range strings.Split(text, "\n") {
			upper := strings.ToUpper(line)
			for _, coin := range cryptoNames {
				if !strings.Contains(upper, coin.key) {
					continue
				}
				for _, n := range lineNumRE.FindAllString(line, -1) {
					if val, ok := cryptoQuantity(n); ok {
						candidates[coin.ticker] = append(candidates[coin.ticker], val)
					}
				}
				break
			}
		}
	}

	var positions []Position
	for _, coin := range cryptoNames {
		vals, ok := candidates[coin.ticker]
		if !ok {
			continue
		}
		delete(candidates, coin.ticker)
		qty := vals[0]
		for _, v := range vals[1:] {
			if v < qty {
				qty = v
			}
		}
		positions = append(positions, Position{Symbol: coin.ticker, Name: cryptoName(coin.ticker), Quantity: qty})
	}
	return positions
}

// cryptoQuantity parses a wallet quantity. Wallets often drop the decimal
// separator on small fonts, so a long bare integer reads as a quantity with
// five implied decimals: 381884 is 3.81884.
func cryptoQuantity(raw string) (float64, bool) {
	if !strings.ContainsAny(raw, ".,") && len(raw) >= 6 {
		raw = raw[:len(raw)-5] + "." + raw[len(raw)-5:]
	}
	val, err := ParseNumber(raw)
	if err != nil {
		return 0, false
	}
	return val, true
}
