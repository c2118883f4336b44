package service

import (
	"context"

	"github.com/alexanderramin/dealflow/internal/app"
	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/lifecycle"
	"github.com/alexanderramin/dealflow/internal/negotiation"
)

type LeadService interface {
	Ingest(ctx context.Context, raw app.RawLead) (*domain.Lead, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	Qualify(ctx context.Context, id string) (*domain.Lead, error)
	QualifyPending(ctx context.Context) (int, error)
	ListReadyForTransfer(ctx context.Context) ([]*domain.Lead, error)
}

type DealService interface {
	GetByID(ctx context.Context, id string) (*domain.Deal, error)
	List(ctx context.Context) ([]*domain.Deal, error)
	ListByStatus(ctx context.Context, status domain.DealStatus) ([]*domain.Deal, error)
	ListOpen(ctx context.Context) ([]*domain.Deal, error)
	// CreateFromLead transfers a qualified lead and opens its deal in one
	// transaction. At most one deal ever exists per lead.
	CreateFromLead(ctx context.Context, leadID string) (*domain.Deal, error)
	RecordCommunication(ctx context.Context, dealID string, dir domain.Direction, content string) error
	Advance(ctx context.Context, dealID string, next domain.DealStatus) error
	// SeedProposal derives commercial terms from the lead's identified needs
	// and attaches them to the deal.
	SeedProposal(ctx context.Context, dealID string) error
	// EvaluateNegotiation evaluates the latest communication and applies the
	// outcome: accepted terms close the deal won, counter-offers cycle it
	// back to proposal_sent and consume a negotiation round.
	EvaluateNegotiation(ctx context.Context, dealID string) (*negotiation.Outcome, error)
}

// PendingReview identifies a task awaiting a review decision.
type PendingReview struct {
	ProjectID    string
	BusinessName string
	TaskID       string
	TaskName     string
}

type ProjectService interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByDealID(ctx context.Context, dealID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// CreateFromDeal plans a project from a closed-won deal: task and
	// deliverable templates for the service type, evenly partitioned timeline.
	CreateFromDeal(ctx context.Context, dealID string) (*domain.Project, error)
	AdvanceStatus(ctx context.Context, projectID string, next domain.ProjectStatus, notes string) error
	// UpdateTaskStatus transitions a task and recomputes project progress
	// from the task rollup.
	UpdateTaskStatus(ctx context.Context, projectID, taskID string, next domain.TaskStatus, notes string) error
	ApproveTask(ctx context.Context, projectID, taskID string) error
	RejectTask(ctx context.Context, projectID, taskID, feedback string) error
	PendingReviews(ctx context.Context) ([]PendingReview, error)
	SubmitDeliverable(ctx context.Context, projectID, deliverableID, filePath string) error
	ReviewDeliverable(ctx context.Context, projectID, deliverableID string, approved bool, notes string) error
	Report(ctx context.Context, projectID string) (*lifecycle.Report, error)
}

// PipelineStats aggregates pipeline counts and conversion rates.
type PipelineStats struct {
	Leads struct {
		Total             int
		Qualified         int
		QualificationRate float64
	}
	Deals struct {
		Total     int
		Open      int
		ClosedWon int
		CloseRate float64
	}
	Projects struct {
		Total     int
		Completed int
	}
}

type StatsService interface {
	Snapshot(ctx context.Context) (*PipelineStats, error)
}
