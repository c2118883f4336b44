package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealflow/internal/domain"
)

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// FormatDealList renders deals as a table.
func FormatDealList(deals []*domain.Deal) string {
	if len(deals) == 0 {
		return Dim("No deals.") + "\n"
	}

	headers := []string{"ID", "BUSINESS", "STATUS", "ROUNDS", "VALUE"}
	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		value := Dim("--")
		if d.Proposal != nil {
			value = fmt.Sprintf("$%.0f", d.Proposal.Price)
		}
		rows = append(rows, []string{
			shortID(d.ID),
			Bold(d.BusinessName),
			DealStatusPill(d.Status),
			fmt.Sprintf("%d", d.NegotiationRounds),
			value,
		})
	}
	return RenderTable(headers, rows)
}

// FormatDeal renders one deal in full: terms, then the communication log in
// chronological order.
func FormatDeal(d *domain.Deal) string {
	var b strings.Builder

	b.WriteString(Header("Deal "+shortID(d.ID)) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(d.BusinessName), DealStatusPill(d.Status)))
	b.WriteString(fmt.Sprintf("Negotiation rounds: %d\n", d.NegotiationRounds))
	if d.ClosedAt != nil {
		b.WriteString(fmt.Sprintf("Closed: %s\n", d.ClosedAt.Format("2006-01-02 15:04")))
	}

	if d.Proposal != nil {
		b.WriteString("\n" + Header("Proposal") + "\n")
		b.WriteString(fmt.Sprintf("Price: %s\n", Bold(fmt.Sprintf("$%.2f", d.Proposal.Price))))
		if len(d.Proposal.Services) > 0 {
			b.WriteString("Services:\n")
			for _, svc := range d.Proposal.Services {
				b.WriteString("  - " + svc + "\n")
			}
		}
		if d.Proposal.Timeline != nil {
			b.WriteString(fmt.Sprintf("Timeline: %s to %s (%d days)\n",
				d.Proposal.Timeline.Start.Format("2006-01-02"),
				d.Proposal.Timeline.End.Format("2006-01-02"),
				d.Proposal.Timeline.DurationDays))
		}
		if d.Proposal.DiscountApplied > 0 {
			b.WriteString(fmt.Sprintf("Discount applied: %.0f%%\n", d.Proposal.DiscountApplied))
		}
		if d.Proposal.RushFeeApplied > 0 {
			b.WriteString(fmt.Sprintf("Rush fee applied: %.0f%%\n", d.Proposal.RushFeeApplied))
		}
	}

	if len(d.Communications) > 0 {
		b.WriteString("\n" + Header("Communications") + "\n")
		for _, c := range d.Communications {
			dir := StyleBlue.Render("→ out")
			if c.Direction == domain.DirectionInbound {
				dir = StyleGreen.Render("← in ")
			}
			firstLine := c.Content
			if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
				firstLine = firstLine[:idx] + " …"
			}
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				dir, Dim(c.Timestamp.Format("2006-01-02 15:04")), firstLine))
		}
	}
	return b.String()
}
