// Package imports parses broker statement text, typically the OCR output
// of an account screenshot, into positions ready to be journaled.
package imports

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Position is one parsed holding line.
type Position struct {
	Symbol   string
	Name     string
	Quantity float64
	Price    float64 // zero when the layout does not carry a price
}

// Known statement layouts.
const (
	LayoutSchwab     = "schwab"
	LayoutHardwallet = "hardwallet"
)

// Parse extracts positions from statement text. With an explicit layout it
// runs that parser only; with an empty layout it tries schwab first and
// falls back to hardwallet.
func Parse(text, layout string) ([]Position, error) {
	switch strings.ToLower(layout) {
	case LayoutSchwab:
		return ParseSchwab(text), nil
	case LayoutHardwallet:
		return ParseHardwallet(text), nil
	case "":
		if positions := ParseSchwab(text); len(positions) > 0 {
			return positions, nil
		}
		return ParseHardwallet(text), nil
	default:
		return nil, fmt.Errorf("unknown layout %q (want %s or %s)", layout, LayoutSchwab, LayoutHardwallet)
	}
}

// currencyHints maps a currency code to the marks that betray it in
// statement text.
var currencyHints = []struct {
	code     string
	patterns []string
}{
	{"BRL", []string{"R$", "BRL"}},
	{"CAD", []string{"C$", "CAD"}},
	{"AUD", []string{"A$", "AUD"}},
	{"NZD", []string{"NZ$", "NZD"}},
	{"USD", []string{"$", "USD"}},
	{"EUR", []string{"€", "EUR"}},
	{"GBP", []string{"£", "GBP"}},
	{"JPY", []string{"¥", "JPY"}},
	{"CHF", []string{"CHF"}},
	{"CNY", []string{"CNY", "CN¥"}},
}

// DetectCurrency guesses the statement currency from its symbols and codes.
// Prefixed dollar variants (R$, C$...) are checked before the bare $ so a
// Brazilian statement does not read as USD.
func DetectCurrency(text string) string {
	for _, hint := range currencyHints {
		for _, pattern := range hint.patterns {
			if strings.Contains(text, pattern) {
				return hint.code
			}
		}
	}
	return ""
}

var thousandsRE = regexp.MustCompile(`^[0-9.,]+$`)

// ParseNumber reads a number in either decimal convention: 1,234.56 and
// 1.234,56 both parse to 1234.56. When both separators appear, the last one
// is the decimal mark.
func ParseNumber(val string) (float64, error) {
	cleaned := strings.TrimSpace(val)
	cleaned = strings.ReplaceAll(cleaned, "R$", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || !thousandsRE.MatchString(cleaned) {
		return 0, fmt.Errorf("invalid number %q", val)
	}
	dot, comma := strings.LastIndex(cleaned, "."), strings.LastIndex(cleaned, ",")
	switch {
	case dot >= 0 && comma >= 0 && comma > dot: // 1.234,56
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case dot >= 0 && comma >= 0: // 1,234.56
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case comma >= 0: // 3,81884
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	return strconv.ParseFloat(cleaned, 64)
}
