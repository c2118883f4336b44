package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dealflow/internal/app"
	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/qualify"
	"github.com/alexanderramin/dealflow/internal/repository"
	"github.com/google/uuid"
)

type leadService struct {
	leads    repository.LeadRepo
	weights  qualify.Weights
	observer UseCaseObserver
}

func NewLeadService(leads repository.LeadRepo, weights qualify.Weights, observers ...UseCaseObserver) LeadService {
	return &leadService{
		leads:    leads,
		weights:  weights,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *leadService) Ingest(ctx context.Context, raw app.RawLead) (*domain.Lead, error) {
	if raw.BusinessName == "" {
		return nil, &app.ValidationError{Entity: "lead", ID: "", Err: fmt.Errorf("business name is required")}
	}

	now := time.Now().UTC()
	discoveredAt := raw.DiscoveredAt
	if discoveredAt.IsZero() {
		discoveredAt = now
	}

	lead := &domain.Lead{
		ID:               uuid.New().String(),
		BusinessName:     raw.BusinessName,
		Source:           raw.Source,
		Website:          raw.Website,
		WebsiteQuality:   raw.WebsiteQuality,
		SocialProfiles:   raw.SocialProfiles,
		Technologies:     raw.Technologies,
		ContentTopics:    raw.ContentTopics,
		OnlineReviews:    raw.OnlineReviews,
		GrowthIndicators: raw.GrowthIndicators,
		ServiceNeeds:     raw.ServiceNeeds,
		BusinessMaturity: raw.BusinessMaturity,
		DigitalPresence:  raw.DigitalPresence,
		Status:           domain.LeadNew,
		DiscoveredAt:     discoveredAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if leadIsEnriched(raw) {
		lead.Status = domain.LeadEnriched
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// leadIsEnriched reports whether the sourcing record carries any enrichment
// attributes beyond the bare business identity.
func leadIsEnriched(raw app.RawLead) bool {
	return raw.Website != "" || len(raw.SocialProfiles) > 0 || len(raw.Technologies) > 0 ||
		len(raw.ContentTopics) > 0 || raw.OnlineReviews > 0 || len(raw.GrowthIndicators) > 0 ||
		len(raw.ServiceNeeds) > 0 || raw.BusinessMaturity != nil || raw.DigitalPresence != nil
}

func (s *leadService) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

func (s *leadService) List(ctx context.Context) ([]*domain.Lead, error) {
	return s.leads.List(ctx)
}

func (s *leadService) Qualify(ctx context.Context, id string) (lead *domain.Lead, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "qualify-lead",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"lead_id": id},
		})
	}()

	lead, err = s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Status == domain.LeadQualified {
		// Already scored; qualification is idempotent.
		return lead, nil
	}

	result := qualify.Qualify(lead, s.weights)
	if err = lead.SetQualification(result.Score, result.IdentifiedNeeds, time.Now().UTC()); err != nil {
		return nil, &app.ValidationError{Entity: "lead", ID: id, Err: err}
	}
	if err = s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// QualifyPending scores every lead still awaiting qualification and returns
// how many were qualified. A failure on one lead is collected and does not
// stop qualification of the rest.
func (s *leadService) QualifyPending(ctx context.Context) (int, error) {
	count := 0
	var errs []error
	for _, status := range []domain.LeadStatus{domain.LeadNew, domain.LeadEnriched} {
		leads, err := s.leads.ListByStatus(ctx, status)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, lead := range leads {
			if _, err := s.Qualify(ctx, lead.ID); err != nil {
				errs = append(errs, fmt.Errorf("qualifying lead %s: %w", lead.ID, err))
				continue
			}
			count++
		}
	}
	return count, errors.Join(errs...)
}

func (s *leadService) ListReadyForTransfer(ctx context.Context) ([]*domain.Lead, error) {
	return s.leads.ListByStatus(ctx, domain.LeadQualified)
}
