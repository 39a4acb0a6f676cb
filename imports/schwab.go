package imports

import (
	"regexp"
	"strings"
)

// schwabSymbolRE matches the leading ticker of a Schwab position row,
// including class shares like BRK.B.
var schwabSymbolRE = regexp.MustCompile(`^([A-Z]{1,5}(?:\.[A-Z])?)\s+`)

var schwabNumberRE = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// ParseSchwab reads Schwab-style position tables: one row per holding,
// symbol first, then quantity and price columns. Header rows repeat in OCR
// output and are skipped by their column names.
func ParseSchwab(text string) []Position {
	var positions []Position
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "Symbol") || strings.Contains(line, "Quantity") || strings.Contains(line, "Market Value") {
			continue
		}
		m := schwabSymbolRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		symbol := m[1]

		// schwab statements use the US convention, the comma is noise.
		nums := schwabNumberRE.FindAllString(strings.ReplaceAll(line, ",", ""), -1)
		if len(nums) == 0 {
			continue
		}
		qty, err := ParseNumber(nums[0])
		if err != nil {
			continue
		}
		p := Position{Symbol: symbol, Name: symbol, Quantity: qty}
		if len(nums) >= 2 {
			if price, err := ParseNumber(nums[1]); err == nil {
				p.Price = price
			}
		}
		positions = append(positions, p)
	}
	return positions
}
