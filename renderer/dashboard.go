package renderer

import (
	"fmt"
	"strings"

	"github.com/folioctl/folio"
)

// dashboardView decorates the dashboard with the pre-built allocation chart,
// text/template being the wrong place to draw bars.
type dashboardView struct {
	*folio.Dashboard
	Chart string
}

// RenderDashboard renders the rebalancing dashboard to a markdown string.
func RenderDashboard(d *folio.Dashboard) string {
	partials := map[string]string{
		"dashboard_title":   "dashboard_title.md",
		"dashboard_classes": "dashboard_classes.md",
		"dashboard_chart":   "dashboard_chart.md",
		"dashboard_alerts":  "dashboard_alerts.md",
	}
	view := &dashboardView{Dashboard: d, Chart: allocationChart(d)}
	return renderTemplate("dashboard", "dashboard.md", partials, view)
}

// allocationChart draws the class allocation as horizontal bars, one line
// per class plus the uncovered remainder as cash.
func allocationChart(d *folio.Dashboard) string {
	labels, shares := d.Series()
	if len(labels) == 0 {
		return ""
	}
	width := 0
	for _, l := range labels {
		if len(l) > width {
			width = len(l)
		}
	}
	const scale = 40.0 / 100.0
	var b strings.Builder
	for i, label := range labels {
		bar := strings.Repeat("█", max(1, int(shares[i]*scale)))
		fmt.Fprintf(&b, "%-*s %s %.1f%%\n", width, label, bar, shares[i])
	}
	return b.String()
}
