package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/dealflow/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. Repositories
// wrap it with context; callers match with errors.Is.
var ErrNotFound = errors.New("not found")

type LeadRepo interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	ListByStatus(ctx context.Context, status domain.LeadStatus) ([]*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error)
}

type DealRepo interface {
	Create(ctx context.Context, d *domain.Deal) error
	GetByID(ctx context.Context, id string) (*domain.Deal, error)
	GetByLeadID(ctx context.Context, leadID string) (*domain.Deal, error)
	List(ctx context.Context) ([]*domain.Deal, error)
	ListByStatus(ctx context.Context, status domain.DealStatus) ([]*domain.Deal, error)
	ListOpen(ctx context.Context) ([]*domain.Deal, error)
	Update(ctx context.Context, d *domain.Deal) error
	AddCommunication(ctx context.Context, dealID string, c domain.Communication) error
	CountByStatus(ctx context.Context) (map[domain.DealStatus]int, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByDealID(ctx context.Context, dealID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	UpdateTask(ctx context.Context, projectID string, t *domain.Task) error
	UpdateDeliverable(ctx context.Context, projectID string, d *domain.Deliverable) error
	CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int, error)
}
