package domain

import (
	"fmt"
	"time"
)

// StatusChange is one append-only history entry on a project or task.
type StatusChange struct {
	From      string
	To        string
	Timestamp time.Time
	Notes     string
}

// Task is a unit of delivery work. Tasks are created with the project and
// never deleted; review decisions and execution mutate the status only.
type Task struct {
	ID          string
	Name        string
	Description string
	Status      TaskStatus

	// Scheduled window, derived by evenly partitioning the project timeline.
	Start time.Time
	End   time.Time

	History     []StatusChange
	CompletedAt *time.Time
	ReviewedAt  *time.Time
	Feedback    string
}

// taskTransitions lists the allowed task status moves.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:        {TaskInProgress},
	TaskInProgress:     {TaskNeedsReview, TaskCompleted},
	TaskNeedsReview:    {TaskCompleted, TaskRevisionNeeded},
	TaskRevisionNeeded: {TaskInProgress},
	TaskCompleted:      {},
}

// Transition moves the task to next, appending a history entry. A move to
// completed records the completion time; review decisions out of needs_review
// record the review time.
func (t *Task) Transition(next TaskStatus, now time.Time, notes string) error {
	allowed := false
	for _, s := range taskTransitions[t.Status] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("task %s cannot move %s -> %s", t.ID, t.Status, next)
	}
	t.History = append(t.History, StatusChange{
		From:      string(t.Status),
		To:        string(next),
		Timestamp: now,
		Notes:     notes,
	})
	if t.Status == TaskNeedsReview {
		t.ReviewedAt = &now
	}
	t.Status = next
	if next == TaskCompleted && t.CompletedAt == nil {
		t.CompletedAt = &now
	}
	if next == TaskRevisionNeeded {
		t.Feedback = notes
	}
	return nil
}

// Deliverable is an expected delivery artifact tracked on a project.
type Deliverable struct {
	ID          string
	Type        string
	Description string
	Status      DeliverableStatus
	DueDate     time.Time
	FilePath    string
	Notes       string
}

// Project is the delivery-execution record created from a closed-won deal.
// It exclusively owns its tasks and deliverables.
type Project struct {
	ID           string
	DealID       string
	BusinessName string
	ServiceType  string
	Status       ProjectStatus

	Timeline     Timeline
	Tasks        []Task
	Deliverables []Deliverable

	// Progress is derived: a checkpoint value per project status until tasks
	// exist, then the task completion rollup exclusively.
	Progress float64

	StatusHistory []StatusChange
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var projectStageOrder = map[ProjectStatus]int{
	ProjectCreated:    0,
	ProjectPending:    1,
	ProjectInProgress: 2,
	ProjectReview:     3,
	ProjectCompleted:  4,
}

// statusCheckpoints are the top-down progress values applied on project
// status transitions while no tasks drive the rollup.
var statusCheckpoints = map[ProjectStatus]float64{
	ProjectInProgress: 25,
	ProjectReview:     75,
}

// SetStatus moves the project exactly one stage forward, appending a history
// entry. Checkpoint progress values apply only while the project has no
// tasks; once tasks exist the rollup is the sole progress authority.
// Completion always pins progress to 100 and records the completion time.
func (p *Project) SetStatus(next ProjectStatus, now time.Time, notes string) error {
	cur, ok := projectStageOrder[p.Status]
	if !ok {
		return fmt.Errorf("project %s has unknown status %q", p.ID, p.Status)
	}
	nxt, ok := projectStageOrder[next]
	if !ok {
		return fmt.Errorf("unknown project status %q", next)
	}
	if nxt != cur+1 {
		return fmt.Errorf("project %s cannot move %s -> %s", p.ID, p.Status, next)
	}
	p.StatusHistory = append(p.StatusHistory, StatusChange{
		From:      string(p.Status),
		To:        string(next),
		Timestamp: now,
		Notes:     notes,
	})
	p.Status = next
	p.UpdatedAt = now

	if next == ProjectCompleted {
		p.Progress = 100
		p.CompletedAt = &now
		return nil
	}
	if cp, ok := statusCheckpoints[next]; ok && len(p.Tasks) == 0 {
		p.Progress = cp
	}
	return nil
}

// Task returns a pointer to the task with the given ID.
func (p *Project) Task(taskID string) (*Task, error) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %s not found in project %s", taskID, p.ID)
}

// RecomputeProgress derives progress from task completion. Projects without
// tasks keep their checkpoint value. The result is an unrounded percentage.
func (p *Project) RecomputeProgress() {
	if len(p.Tasks) == 0 {
		return
	}
	completed := 0
	for i := range p.Tasks {
		if p.Tasks[i].Status == TaskCompleted {
			completed++
		}
	}
	p.Progress = float64(completed) / float64(len(p.Tasks)) * 100
}

// CompletedTaskCount returns how many tasks are completed.
func (p *Project) CompletedTaskCount() int {
	n := 0
	for i := range p.Tasks {
		if p.Tasks[i].Status == TaskCompleted {
			n++
		}
	}
	return n
}

// DisplayID returns a short identifier for display, truncating UUIDs.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
