package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealflow/internal/service"
)

// FormatPipelineStats renders the pipeline totals dashboard.
func FormatPipelineStats(stats *service.PipelineStats) string {
	var b strings.Builder

	b.WriteString(Header("Pipeline") + "\n")

	b.WriteString(fmt.Sprintf("%s  %d total, %d qualified (%s)\n",
		Bold("Leads:"),
		stats.Leads.Total,
		stats.Leads.Qualified,
		rateString(stats.Leads.QualificationRate)))

	b.WriteString(fmt.Sprintf("%s  %d total, %d open, %d won (%s close rate)\n",
		Bold("Deals:"),
		stats.Deals.Total,
		stats.Deals.Open,
		stats.Deals.ClosedWon,
		rateString(stats.Deals.CloseRate)))

	b.WriteString(fmt.Sprintf("%s  %d total, %d completed\n",
		Bold("Projects:"),
		stats.Projects.Total,
		stats.Projects.Completed))

	return b.String()
}

func rateString(rate float64) string {
	text := fmt.Sprintf("%.2f%%", rate)
	switch {
	case rate >= 50:
		return StyleGreen.Render(text)
	case rate >= 20:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}
