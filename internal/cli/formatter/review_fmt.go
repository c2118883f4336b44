package formatter

import "github.com/alexanderramin/dealflow/internal/service"

// FormatPendingReviews renders tasks waiting on a review decision.
func FormatPendingReviews(pending []service.PendingReview) string {
	if len(pending) == 0 {
		return Dim("Nothing awaiting review.") + "\n"
	}

	headers := []string{"PROJECT", "BUSINESS", "TASK", "NAME"}
	rows := make([][]string, 0, len(pending))
	for _, p := range pending {
		rows = append(rows, []string{
			shortID(p.ProjectID),
			Bold(p.BusinessName),
			p.TaskID,
			p.TaskName,
		})
	}
	return RenderTable(headers, rows)
}
