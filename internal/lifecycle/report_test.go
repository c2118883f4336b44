package lifecycle

import (
	"testing"
	"time"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func reportProject(taskStatuses []domain.TaskStatus, durationDays int) *domain.Project {
	p := &domain.Project{
		ID:     "p-1",
		Status: domain.ProjectInProgress,
		Timeline: domain.Timeline{
			Start:        testNow,
			End:          testNow.Add(time.Duration(durationDays) * 24 * time.Hour),
			DurationDays: durationDays,
		},
	}
	for i, s := range taskStatuses {
		p.Tasks = append(p.Tasks, domain.Task{ID: string(rune('A' + i)), Status: s})
	}
	p.RecomputeProgress()
	return p
}

func TestBuildReport_BehindSchedule(t *testing.T) {
	// 10-day project, 8 days elapsed (80%), 2 of 5 tasks done (40%).
	p := reportProject([]domain.TaskStatus{
		domain.TaskCompleted, domain.TaskCompleted,
		domain.TaskInProgress, domain.TaskPending, domain.TaskPending,
	}, 10)

	r := BuildReport(p, testNow.Add(8*24*time.Hour))

	assert.Equal(t, SummaryBehindSchedule, r.StatusSummary)
	assert.Equal(t, 40.0, r.CompletionPercentage)
	assert.Equal(t, 80.0, r.ElapsedPercentage)
	assert.Equal(t, 2, r.DaysRemaining)
}

func TestBuildReport_AheadOfSchedule(t *testing.T) {
	// 10-day project, 2 days elapsed (20%), 4 of 5 tasks done (80%).
	p := reportProject([]domain.TaskStatus{
		domain.TaskCompleted, domain.TaskCompleted,
		domain.TaskCompleted, domain.TaskCompleted, domain.TaskPending,
	}, 10)

	r := BuildReport(p, testNow.Add(2*24*time.Hour))
	assert.Equal(t, SummaryAheadOfSchedule, r.StatusSummary)
}

func TestBuildReport_OnTrackWithinBand(t *testing.T) {
	// 10-day project, 5 days elapsed (50%), 2 of 5 done (40%): inside the band.
	p := reportProject([]domain.TaskStatus{
		domain.TaskCompleted, domain.TaskCompleted,
		domain.TaskPending, domain.TaskPending, domain.TaskPending,
	}, 10)

	r := BuildReport(p, testNow.Add(5*24*time.Hour))
	assert.Equal(t, SummaryOnTrack, r.StatusSummary)
}

func TestBuildReport_CompletedOverrides(t *testing.T) {
	p := reportProject([]domain.TaskStatus{domain.TaskCompleted}, 10)
	p.Status = domain.ProjectCompleted

	// Even far past the end date, completed wins.
	r := BuildReport(p, testNow.Add(100*24*time.Hour))
	assert.Equal(t, SummaryCompleted, r.StatusSummary)
}

func TestBuildReport_ZeroDurationTimeline(t *testing.T) {
	p := reportProject([]domain.TaskStatus{domain.TaskPending}, 0)

	r := BuildReport(p, testNow)
	assert.Equal(t, 100.0, r.ElapsedPercentage)
	assert.Equal(t, SummaryBehindSchedule, r.StatusSummary)
}

func TestBuildReport_ElapsedCappedAt100(t *testing.T) {
	p := reportProject([]domain.TaskStatus{domain.TaskCompleted}, 5)

	r := BuildReport(p, testNow.Add(30*24*time.Hour))
	assert.Equal(t, 100.0, r.ElapsedPercentage)
	assert.Equal(t, 0, r.DaysRemaining)
}

func TestBuildReport_DeliverableCounts(t *testing.T) {
	p := reportProject(nil, 10)
	p.Deliverables = []domain.Deliverable{
		{ID: "D1", Status: domain.DeliverablePlanned},
		{ID: "D2", Status: domain.DeliverablePendingReview},
		{ID: "D3", Status: domain.DeliverableApproved},
		{ID: "D4", Status: domain.DeliverableApproved},
	}

	r := BuildReport(p, testNow)
	assert.Equal(t, 4, r.DeliverablesTotal)
	assert.Equal(t, 1, r.DeliverablesByStatus[domain.DeliverablePlanned])
	assert.Equal(t, 2, r.DeliverablesByStatus[domain.DeliverableApproved])
}
