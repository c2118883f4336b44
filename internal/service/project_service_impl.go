package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dealflow/internal/app"
	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/lifecycle"
	"github.com/alexanderramin/dealflow/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	deals    repository.DealRepo
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewProjectService(deals repository.DealRepo, projects repository.ProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		deals:    deals,
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) GetByDealID(ctx context.Context, dealID string) (*domain.Project, error) {
	return s.projects.GetByDealID(ctx, dealID)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) CreateFromDeal(ctx context.Context, dealID string) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-project-from-deal",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"deal_id": dealID},
		})
	}()

	// Idempotent: a deal delivers at most one project.
	if existing, getErr := s.projects.GetByDealID(ctx, dealID); getErr == nil {
		return existing, nil
	} else if !errors.Is(getErr, repository.ErrNotFound) {
		return nil, getErr
	}

	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.Status != domain.DealClosedWon {
		return nil, &app.ValidationError{Entity: "deal", ID: dealID,
			Err: fmt.Errorf("project requires a closed_won deal, got %s", deal.Status)}
	}

	now := time.Now().UTC()
	timeline := lifecycle.DefaultTimeline(now)
	if deal.Proposal != nil && deal.Proposal.Timeline != nil {
		timeline = *deal.Proposal.Timeline
	}
	serviceType := serviceTypeFor(deal.Proposal)

	project = &domain.Project{
		ID:           uuid.New().String(),
		DealID:       deal.ID,
		BusinessName: deal.BusinessName,
		ServiceType:  serviceType,
		Status:       domain.ProjectCreated,
		Timeline:     timeline,
		Tasks:        lifecycle.BuildTasks(serviceType, timeline),
		Deliverables: lifecycle.BuildDeliverables(serviceType, timeline.Start),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) AdvanceStatus(ctx context.Context, projectID string, next domain.ProjectStatus, notes string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if err := project.SetStatus(next, time.Now().UTC(), notes); err != nil {
		return &app.ValidationError{Entity: "project", ID: projectID, Err: err}
	}
	return s.projects.Update(ctx, project)
}

func (s *projectService) UpdateTaskStatus(ctx context.Context, projectID, taskID string, next domain.TaskStatus, notes string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	task, err := project.Task(taskID)
	if err != nil {
		return &app.ValidationError{Entity: "task", ID: taskID, Err: err}
	}
	now := time.Now().UTC()
	if err := task.Transition(next, now, notes); err != nil {
		return &app.ValidationError{Entity: "task", ID: taskID, Err: err}
	}
	if err := s.projects.UpdateTask(ctx, projectID, task); err != nil {
		return err
	}

	// Task completion drives project progress exclusively once tasks exist.
	project.RecomputeProgress()
	project.UpdatedAt = now
	return s.projects.Update(ctx, project)
}

func (s *projectService) ApproveTask(ctx context.Context, projectID, taskID string) error {
	return s.UpdateTaskStatus(ctx, projectID, taskID, domain.TaskCompleted, "")
}

func (s *projectService) RejectTask(ctx context.Context, projectID, taskID, feedback string) error {
	return s.UpdateTaskStatus(ctx, projectID, taskID, domain.TaskRevisionNeeded, feedback)
}

func (s *projectService) PendingReviews(ctx context.Context) ([]PendingReview, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	var pending []PendingReview
	for _, p := range projects {
		for i := range p.Tasks {
			if p.Tasks[i].Status != domain.TaskNeedsReview {
				continue
			}
			pending = append(pending, PendingReview{
				ProjectID:    p.ID,
				BusinessName: p.BusinessName,
				TaskID:       p.Tasks[i].ID,
				TaskName:     p.Tasks[i].Name,
			})
		}
	}
	return pending, nil
}

func (s *projectService) SubmitDeliverable(ctx context.Context, projectID, deliverableID, filePath string) error {
	project, deliverable, err := s.deliverable(ctx, projectID, deliverableID)
	if err != nil {
		return err
	}
	if deliverable.Status != domain.DeliverablePlanned && deliverable.Status != domain.DeliverableRejected {
		return &app.ValidationError{Entity: "deliverable", ID: deliverableID,
			Err: fmt.Errorf("cannot submit from status %s", deliverable.Status)}
	}
	deliverable.Status = domain.DeliverablePendingReview
	deliverable.FilePath = filePath
	return s.projects.UpdateDeliverable(ctx, project.ID, deliverable)
}

func (s *projectService) ReviewDeliverable(ctx context.Context, projectID, deliverableID string, approved bool, notes string) error {
	project, deliverable, err := s.deliverable(ctx, projectID, deliverableID)
	if err != nil {
		return err
	}
	if deliverable.Status != domain.DeliverablePendingReview {
		return &app.ValidationError{Entity: "deliverable", ID: deliverableID,
			Err: fmt.Errorf("cannot review from status %s", deliverable.Status)}
	}
	if approved {
		deliverable.Status = domain.DeliverableApproved
	} else {
		deliverable.Status = domain.DeliverableRejected
	}
	deliverable.Notes = notes
	return s.projects.UpdateDeliverable(ctx, project.ID, deliverable)
}

func (s *projectService) deliverable(ctx context.Context, projectID, deliverableID string) (*domain.Project, *domain.Deliverable, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	for i := range project.Deliverables {
		if project.Deliverables[i].ID == deliverableID {
			return project, &project.Deliverables[i], nil
		}
	}
	return nil, nil, fmt.Errorf("deliverable %s in project %s: %w", deliverableID, projectID, repository.ErrNotFound)
}

func (s *projectService) Report(ctx context.Context, projectID string) (*lifecycle.Report, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	report := lifecycle.BuildReport(project, time.Now().UTC())
	return &report, nil
}
