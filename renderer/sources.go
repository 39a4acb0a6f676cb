package renderer

import (
	"fmt"
	"strings"

	"github.com/folioctl/folio/quote"
)

// SourcesMarkdown renders the provider health check.
func SourcesMarkdown(statuses []quote.SourceStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Price sources\n\n")
	fmt.Fprintln(&b, "| Source | Status | Detail |")
	fmt.Fprintln(&b, "|:---|:---|:---|")
	for _, s := range statuses {
		mark := s.State
		if s.State == quote.StateError {
			mark = "**down**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Name, mark, s.Error)
	}
	return b.String()
}

// ConsensusMarkdown renders a consensus quote with its per-source candidates.
func ConsensusMarkdown(c quote.Consensus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Symbol)
	fmt.Fprintf(&b, "Consensus price **%v** over %d sources", c.Price, len(c.Candidates))
	if c.Divergent {
		fmt.Fprintf(&b, ", sources diverge by %.2f%%", c.Divergence*100)
	}
	fmt.Fprintf(&b, ".\n\n")

	fmt.Fprintln(&b, "| Source | Price |")
	fmt.Fprintln(&b, "|:---|--:|")
	for _, cand := range c.Candidates {
		fmt.Fprintf(&b, "| %s | %v |\n", cand.Source, cand.Price)
	}
	for _, cand := range c.Rejected {
		fmt.Fprintf(&b, "| %s (rejected) | %v |\n", cand.Source, cand.Price)
	}
	return b.String()
}
