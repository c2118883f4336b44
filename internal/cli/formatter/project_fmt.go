package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/lifecycle"
)

const progressBarWidth = 10

// FormatProjectList renders projects as a table with progress bars.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects.") + "\n"
	}

	headers := []string{"ID", "BUSINESS", "SERVICE", "STATUS", "PROGRESS", "END"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.DisplayID(),
			Bold(p.BusinessName),
			p.ServiceType,
			ProjectStatusPill(p.Status),
			RenderProgress(p.Progress, progressBarWidth),
			p.Timeline.End.Format("2006-01-02"),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectReport renders a full delivery report.
func FormatProjectReport(r *lifecycle.Report) string {
	var b strings.Builder

	b.WriteString(Header("Project "+shortID(r.ProjectID)) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		Bold(r.BusinessName), r.ServiceType, ProjectStatusPill(r.Status)))
	b.WriteString(r.StatusSummary + "\n\n")

	b.WriteString(fmt.Sprintf("Progress: %s\n", RenderProgress(r.Progress, progressBarWidth)))
	b.WriteString(fmt.Sprintf("Tasks: %d/%d completed (%.1f%%)\n",
		r.TasksCompleted, r.TasksTotal, r.CompletionPercentage))

	b.WriteString(fmt.Sprintf("Timeline: %s to %s, %.1f%% elapsed",
		r.TimelineStart.Format("2006-01-02"),
		r.TimelineEnd.Format("2006-01-02"),
		r.ElapsedPercentage))
	if r.DaysRemaining >= 0 {
		b.WriteString(fmt.Sprintf(", %d days remaining\n", r.DaysRemaining))
	} else {
		b.WriteString("  " + StyleRed.Render(fmt.Sprintf("(%d days overdue)", -r.DaysRemaining)) + "\n")
	}

	if r.DeliverablesTotal > 0 {
		b.WriteString(fmt.Sprintf("Deliverables: %d total", r.DeliverablesTotal))
		for _, status := range []domain.DeliverableStatus{
			domain.DeliverablePlanned,
			domain.DeliverablePendingReview,
			domain.DeliverableApproved,
			domain.DeliverableRejected,
		} {
			if n := r.DeliverablesByStatus[status]; n > 0 {
				b.WriteString(fmt.Sprintf(", %d %s", n, status))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTaskList renders a project's tasks with their scheduled windows.
func FormatTaskList(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}

	headers := []string{"ID", "TASK", "STATUS", "WINDOW"}
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			task.ID,
			task.Name,
			taskStatusPill(task.Status),
			fmt.Sprintf("%s to %s", task.Start.Format("01-02"), task.End.Format("01-02")),
		})
	}
	return RenderTable(headers, rows)
}

func taskStatusPill(s domain.TaskStatus) string {
	switch s {
	case domain.TaskCompleted:
		return StyleGreen.Render(string(s))
	case domain.TaskNeedsReview:
		return StyleYellow.Render(string(s))
	case domain.TaskRevisionNeeded:
		return StyleRed.Render(string(s))
	case domain.TaskInProgress:
		return StyleBlue.Render(string(s))
	default:
		return StyleDim.Render(string(s))
	}
}
