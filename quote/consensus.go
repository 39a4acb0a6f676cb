package quote

import (
	"math"
	"slices"

	"github.com/folioctl/folio"
)

// Divergence thresholds: traditional venues quote within a tenth of a
// percent of each other, crypto venues spread wider.
const (
	maxDivergence       = 0.001
	maxCryptoDivergence = 0.01
)

// Candidate is one provider's answer for a symbol.
type Candidate struct {
	Source string  `json:"source"`
	Price  float64 `json:"price"`
}

// Consensus is the reconciled price of a symbol across providers.
type Consensus struct {
	Symbol     folio.Symbol `json:"symbol"`
	Price      float64      `json:"price"`      // median of the accepted candidates
	Candidates []Candidate  `json:"candidates"` // accepted candidates
	Rejected   []Candidate  `json:"rejected,omitempty"`
	Divergence float64      `json:"divergence"` // relative spread of the accepted candidates
	Divergent  bool         `json:"divergent"`  // spread beyond the tolerance for this symbol kind
}

// NewConsensus reconciles provider candidates into a single price.
//
// With three or more candidates, outliers further than three scaled median
// absolute deviations from the preliminary median are rejected first; a
// stale or broken provider must not drag the consensus. The price is the
// median of what remains, and the divergence is the relative spread
// (max-min over median) of the accepted candidates.
func NewConsensus(symbol folio.Symbol, candidates []Candidate) Consensus {
	c := Consensus{Symbol: symbol}
	if len(candidates) == 0 {
		return c
	}

	accepted := slices.Clone(candidates)
	if len(accepted) >= 3 {
		accepted, c.Rejected = rejectOutliers(accepted)
	}
	c.Candidates = accepted
	c.Price = median(prices(accepted))

	if len(accepted) > 1 && c.Price > 0 {
		lo, hi := minmax(prices(accepted))
		c.Divergence = (hi - lo) / c.Price
	}
	tolerance := maxDivergence
	if symbol.Kind() == folio.KindCrypto {
		tolerance = maxCryptoDivergence
	}
	c.Divergent = c.Divergence > tolerance
	return c
}

// rejectOutliers drops candidates further than three scaled median absolute
// deviations from the median. The 1.4826 factor makes the MAD comparable to
// a standard deviation on normal data.
func rejectOutliers(candidates []Candidate) (accepted, rejected []Candidate) {
	values := prices(candidates)
	m := median(values)

	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - m)
	}
	mad := 1.4826 * median(deviations)
	if mad == 0 {
		return candidates, nil
	}

	for i, cand := range candidates {
		if deviations[i] > 3*mad {
			rejected = append(rejected, cand)
		} else {
			accepted = append(accepted, cand)
		}
	}
	if len(accepted) == 0 { // all equally far apart, keep everything
		return candidates, nil
	}
	return accepted, rejected
}

func prices(candidates []Candidate) []float64 {
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = c.Price
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func minmax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
