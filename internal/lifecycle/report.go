package lifecycle

import (
	"math"
	"time"

	"github.com/alexanderramin/dealflow/internal/domain"
)

// Schedule summaries reported against the elapsed-vs-completed band.
const (
	SummaryCompleted       = "Completed"
	SummaryBehindSchedule  = "Behind Schedule"
	SummaryAheadOfSchedule = "Ahead of Schedule"
	SummaryOnTrack         = "On Track"
)

// scheduleTolerancePct is the band within which elapsed time and completion
// are considered in step.
const scheduleTolerancePct = 10.0

// Report is a point-in-time project snapshot for reporting surfaces. Building
// it never mutates the project.
type Report struct {
	ProjectID     string
	DealID        string
	BusinessName  string
	ServiceType   string
	Status        domain.ProjectStatus
	StatusSummary string
	Progress      float64

	TimelineStart     time.Time
	TimelineEnd       time.Time
	ElapsedPercentage float64
	DaysRemaining     int

	TasksTotal           int
	TasksCompleted       int
	CompletionPercentage float64

	DeliverablesTotal    int
	DeliverablesByStatus map[domain.DeliverableStatus]int

	GeneratedAt time.Time
}

// BuildReport derives the schedule report for a project at the given time.
// A zero-duration timeline counts as fully elapsed.
func BuildReport(p *domain.Project, now time.Time) Report {
	total := len(p.Tasks)
	completed := p.CompletedTaskCount()

	var completionPct float64
	if total > 0 {
		completionPct = float64(completed) / float64(total) * 100
	}

	elapsedPct := elapsedPercentage(p.Timeline, now)

	summary := SummaryOnTrack
	switch {
	case p.Status == domain.ProjectCompleted:
		summary = SummaryCompleted
	case elapsedPct > completionPct+scheduleTolerancePct:
		summary = SummaryBehindSchedule
	case elapsedPct < completionPct-scheduleTolerancePct:
		summary = SummaryAheadOfSchedule
	}

	byStatus := make(map[domain.DeliverableStatus]int, 4)
	for i := range p.Deliverables {
		byStatus[p.Deliverables[i].Status]++
	}

	daysRemaining := int(p.Timeline.End.Sub(now).Hours() / 24)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return Report{
		ProjectID:            p.ID,
		DealID:               p.DealID,
		BusinessName:         p.BusinessName,
		ServiceType:          p.ServiceType,
		Status:               p.Status,
		StatusSummary:        summary,
		Progress:             p.Progress,
		TimelineStart:        p.Timeline.Start,
		TimelineEnd:          p.Timeline.End,
		ElapsedPercentage:    math.Min(100, round1(elapsedPct)),
		DaysRemaining:        daysRemaining,
		TasksTotal:           total,
		TasksCompleted:       completed,
		CompletionPercentage: round1(completionPct),
		DeliverablesTotal:    len(p.Deliverables),
		DeliverablesByStatus: byStatus,
		GeneratedAt:          now,
	}
}

func elapsedPercentage(tl domain.Timeline, now time.Time) float64 {
	totalDays := tl.End.Sub(tl.Start).Hours() / 24
	if totalDays <= 0 {
		return 100
	}
	elapsedDays := now.Sub(tl.Start).Hours() / 24
	return elapsedDays / totalDays * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
