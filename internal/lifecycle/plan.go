package lifecycle

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dealflow/internal/domain"
)

const (
	defaultDurationDays = 14
	deliverableDueDays  = 14
	hoursPerDay         = 24
)

// DefaultTimeline returns the standard two-week delivery window starting now.
func DefaultTimeline(now time.Time) domain.Timeline {
	return domain.Timeline{
		Start:        now,
		End:          now.Add(defaultDurationDays * hoursPerDay * time.Hour),
		DurationDays: defaultDurationDays,
	}
}

// BuildTasks instantiates the service's task template and schedules each
// task by evenly partitioning the timeline: task i runs from
// start+duration*i/n to start+duration*(i+1)/n days, truncated to whole days.
func BuildTasks(serviceType string, tl domain.Timeline) []domain.Task {
	tpl := TasksFor(serviceType)
	n := len(tpl)

	tasks := make([]domain.Task, 0, n)
	for i, t := range tpl {
		startOffset := tl.DurationDays * i / n
		endOffset := tl.DurationDays * (i + 1) / n
		tasks = append(tasks, domain.Task{
			ID:          fmt.Sprintf("T%d", i+1),
			Name:        t.Name,
			Description: t.Description,
			Status:      domain.TaskPending,
			Start:       tl.Start.Add(time.Duration(startOffset) * hoursPerDay * time.Hour),
			End:         tl.Start.Add(time.Duration(endOffset) * hoursPerDay * time.Hour),
		})
	}
	return tasks
}

// BuildDeliverables instantiates the service's deliverable template with the
// default due date of fourteen days after the project start.
func BuildDeliverables(serviceType string, start time.Time) []domain.Deliverable {
	tpl := DeliverablesFor(serviceType)

	deliverables := make([]domain.Deliverable, 0, len(tpl))
	for i, d := range tpl {
		deliverables = append(deliverables, domain.Deliverable{
			ID:          fmt.Sprintf("D%d", i+1),
			Type:        d.Type,
			Description: d.Description,
			Status:      domain.DeliverablePlanned,
			DueDate:     start.Add(deliverableDueDays * hoursPerDay * time.Hour),
		})
	}
	return deliverables
}
