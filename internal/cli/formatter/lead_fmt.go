package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealflow/internal/domain"
)

// FormatLeadList renders leads as a table.
func FormatLeadList(leads []*domain.Lead) string {
	if len(leads) == 0 {
		return Dim("No leads.") + "\n"
	}

	headers := []string{"ID", "BUSINESS", "SOURCE", "STATUS", "SCORE", "NEEDS"}
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		score := Dim("--")
		if l.Score != nil {
			score = fmt.Sprintf("%d", *l.Score)
		}
		needs := Dim("--")
		if len(l.IdentifiedNeeds) > 0 {
			needs = strings.Join(l.IdentifiedNeeds, ", ")
		}
		rows = append(rows, []string{
			l.DisplayID(),
			Bold(l.BusinessName),
			l.Source,
			LeadStatusPill(l.Status),
			score,
			needs,
		})
	}
	return RenderTable(headers, rows)
}
