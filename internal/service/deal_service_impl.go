package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dealflow/internal/app"
	"github.com/alexanderramin/dealflow/internal/db"
	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/negotiation"
	"github.com/alexanderramin/dealflow/internal/repository"
	"github.com/google/uuid"
)

type dealService struct {
	leads     repository.LeadRepo
	deals     repository.DealRepo
	uow       db.UnitOfWork
	rules     negotiation.RuleSet
	maxRounds int
	observer  UseCaseObserver
}

func NewDealService(
	leads repository.LeadRepo,
	deals repository.DealRepo,
	uow db.UnitOfWork,
	rules negotiation.RuleSet,
	maxRounds int,
	observers ...UseCaseObserver,
) DealService {
	return &dealService{
		leads:     leads,
		deals:     deals,
		uow:       uow,
		rules:     rules,
		maxRounds: maxRounds,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *dealService) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	return s.deals.GetByID(ctx, id)
}

func (s *dealService) List(ctx context.Context) ([]*domain.Deal, error) {
	return s.deals.List(ctx)
}

func (s *dealService) ListByStatus(ctx context.Context, status domain.DealStatus) ([]*domain.Deal, error) {
	return s.deals.ListByStatus(ctx, status)
}

func (s *dealService) ListOpen(ctx context.Context) ([]*domain.Deal, error) {
	return s.deals.ListOpen(ctx)
}

func (s *dealService) CreateFromLead(ctx context.Context, leadID string) (deal *domain.Deal, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-deal-from-lead",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"lead_id": leadID},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLeads := repository.NewSQLiteLeadRepo(tx)
		txDeals := repository.NewSQLiteDealRepo(tx)

		// The lead transfer and the deal creation commit together; a lead is
		// never transferred without its deal.
		existing, getErr := txDeals.GetByLeadID(ctx, leadID)
		if getErr == nil {
			deal = existing
			return nil
		}
		if !errors.Is(getErr, repository.ErrNotFound) {
			return getErr
		}

		lead, getErr := txLeads.GetByID(ctx, leadID)
		if getErr != nil {
			return getErr
		}

		now := time.Now().UTC()
		if trErr := lead.MarkTransferred(now); trErr != nil {
			return &app.ValidationError{Entity: "lead", ID: leadID, Err: trErr}
		}
		if upErr := txLeads.Update(ctx, lead); upErr != nil {
			return upErr
		}

		deal = &domain.Deal{
			ID:           uuid.New().String(),
			LeadID:       lead.ID,
			BusinessName: lead.BusinessName,
			Status:       domain.DealReceived,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return txDeals.Create(ctx, deal)
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

func (s *dealService) RecordCommunication(ctx context.Context, dealID string, dir domain.Direction, content string) error {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return err
	}
	if deal.IsClosed() {
		return &app.ValidationError{Entity: "deal", ID: dealID,
			Err: fmt.Errorf("cannot record communication on %s deal", deal.Status)}
	}
	return s.deals.AddCommunication(ctx, dealID, domain.Communication{
		Direction: dir,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}

func (s *dealService) Advance(ctx context.Context, dealID string, next domain.DealStatus) error {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return err
	}
	if err := deal.AdvanceTo(next, time.Now().UTC()); err != nil {
		return &app.ValidationError{Entity: "deal", ID: dealID, Err: err}
	}
	return s.deals.Update(ctx, deal)
}

func (s *dealService) SeedProposal(ctx context.Context, dealID string) error {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return err
	}
	if deal.Proposal != nil {
		return nil
	}
	lead, err := s.leads.GetByID(ctx, deal.LeadID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	deal.Proposal = buildProposal(lead, now)
	deal.UpdatedAt = now
	return s.deals.Update(ctx, deal)
}

func (s *dealService) EvaluateNegotiation(ctx context.Context, dealID string) (outcome *negotiation.Outcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"deal_id": dealID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "evaluate-negotiation",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.Status != domain.DealNegotiating {
		return nil, &app.ValidationError{Entity: "deal", ID: dealID,
			Err: fmt.Errorf("cannot negotiate from status %s", deal.Status)}
	}

	outcome, err = negotiation.Evaluate(deal, s.rules)
	if err != nil {
		return nil, err
	}
	fields["outcome"] = string(outcome.Status)

	now := time.Now().UTC()
	var reply *domain.Communication
	switch outcome.Status {
	case negotiation.StatusAccepted:
		deal.Proposal = proposalFromTerms(outcome.Terms)
		if err = deal.AdvanceTo(domain.DealClosedWon, now); err != nil {
			return nil, &app.ValidationError{Entity: "deal", ID: dealID, Err: err}
		}

	case negotiation.StatusCounterOffer:
		reply = &domain.Communication{
			Direction: domain.DirectionOutbound,
			Content:   outcome.CounterOffer.Rendered,
			Timestamp: now,
		}
		if _, err = deal.ReturnToProposal(now, s.maxRounds); err != nil {
			return nil, &app.ValidationError{Entity: "deal", ID: dealID, Err: err}
		}

	case negotiation.StatusRejected:
		reply = &domain.Communication{
			Direction: domain.DirectionOutbound,
			Content:   outcome.Reason,
			Timestamp: now,
		}
		if _, err = deal.ReturnToProposal(now, s.maxRounds); err != nil {
			return nil, &app.ValidationError{Entity: "deal", ID: dealID, Err: err}
		}
	}

	// The outbound reply and the status/round change commit together; a
	// counter-offer must never be on record for a deal that did not cycle
	// back.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDeals := repository.NewSQLiteDealRepo(tx)
		if reply != nil {
			if txErr := txDeals.AddCommunication(ctx, dealID, *reply); txErr != nil {
				return txErr
			}
		}
		return txDeals.Update(ctx, deal)
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// proposalFromTerms materializes accepted negotiation terms as the deal's
// stored proposal.
func proposalFromTerms(t *negotiation.Terms) *domain.Proposal {
	return &domain.Proposal{
		Services:            t.Services,
		Price:               t.Price,
		Timeline:            t.Timeline,
		AdditionalRevisions: t.AdditionalRevisions,
		FeatureSubstitution: t.FeatureSubstitution,
		DiscountApplied:     t.DiscountApplied,
		RushFeeApplied:      t.RushFeeApplied,
	}
}
