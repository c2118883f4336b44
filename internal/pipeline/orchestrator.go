package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/dealflow/internal/app"
	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/repository"
	"github.com/alexanderramin/dealflow/internal/service"
)

const projectQueueCapacity = 64

// Orchestrator drives the acquisition stages in order once per cycle. Every
// entity advances at most one stage per cycle; failures on one entity are
// recorded and never stop the rest of the cycle.
type Orchestrator struct {
	sourcing  app.Sourcing
	messenger app.Messenger
	leads     service.LeadService
	deals     service.DealService
	projects  service.ProjectService
	policy    AdvancePolicy
	logger    *slog.Logger

	// Closed-won deal IDs handed off during the advance stage and drained at
	// the end of the same cycle. A fast path only: the durable source of
	// truth is the closed-won sweep in createProjects.
	projectQueue chan string
}

func NewOrchestrator(
	sourcing app.Sourcing,
	messenger app.Messenger,
	leads service.LeadService,
	deals service.DealService,
	projects service.ProjectService,
	policy AdvancePolicy,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		sourcing:     sourcing,
		messenger:    messenger,
		leads:        leads,
		deals:        deals,
		projects:     projects,
		policy:       policy,
		logger:       logger,
		projectQueue: make(chan string, projectQueueCapacity),
	}
}

// Run executes cycles until the context is cancelled. The first cycle starts
// immediately.
func (o *Orchestrator) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report := o.RunCycle(ctx)
		o.logCycle(report)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunCycle runs one full pass over the pipeline and reports what moved.
func (o *Orchestrator) RunCycle(ctx context.Context) *app.CycleReport {
	report := &app.CycleReport{StartedAt: time.Now().UTC()}

	o.discover(ctx, report)
	o.qualifyLeads(ctx, report)
	o.openDeals(ctx, report)
	o.advanceDeals(ctx, report)
	o.createProjects(ctx, report)

	report.Duration = time.Since(report.StartedAt)
	return report
}

func (o *Orchestrator) discover(ctx context.Context, report *app.CycleReport) {
	raws, err := o.sourcing.Discover(ctx)
	if err != nil {
		o.recordError(report, &app.CollaboratorError{Collaborator: "sourcing", Err: err})
		return
	}
	for _, raw := range raws {
		if _, err := o.leads.Ingest(ctx, raw); err != nil {
			o.recordError(report, fmt.Errorf("ingesting lead %q: %w", raw.BusinessName, err))
			continue
		}
		report.LeadsDiscovered++
	}
}

func (o *Orchestrator) qualifyLeads(ctx context.Context, report *app.CycleReport) {
	qualified, err := o.leads.QualifyPending(ctx)
	report.LeadsQualified = qualified
	if err != nil {
		o.recordError(report, fmt.Errorf("qualifying leads: %w", err))
	}
}

func (o *Orchestrator) openDeals(ctx context.Context, report *app.CycleReport) {
	leads, err := o.leads.ListReadyForTransfer(ctx)
	if err != nil {
		o.recordError(report, fmt.Errorf("listing transfer-ready leads: %w", err))
		return
	}
	for _, lead := range leads {
		if _, err := o.deals.CreateFromLead(ctx, lead.ID); err != nil {
			o.recordError(report, fmt.Errorf("opening deal for lead %s: %w", lead.ID, err))
			continue
		}
		report.DealsCreated++
	}
}

func (o *Orchestrator) advanceDeals(ctx context.Context, report *app.CycleReport) {
	deals, err := o.deals.ListOpen(ctx)
	if err != nil {
		o.recordError(report, fmt.Errorf("listing open deals: %w", err))
		return
	}
	for _, deal := range deals {
		if err := o.advanceDeal(ctx, deal, report); err != nil {
			o.recordError(report, fmt.Errorf("advancing deal %s: %w", deal.ID, err))
		}
	}
}

// advanceDeal moves one open deal at most one stage.
func (o *Orchestrator) advanceDeal(ctx context.Context, deal *domain.Deal, report *app.CycleReport) error {
	decision := Decision{Deal: deal, Now: time.Now().UTC()}

	switch deal.Status {
	case domain.DealReceived:
		if !o.policy.ShouldAdvance(ctx, decision) {
			return nil
		}
		body := fmt.Sprintf("Hello %s, we reviewed your online presence and believe we can help you grow. Are you open to a short conversation?", deal.BusinessName)
		if err := o.send(ctx, deal, "Helping "+deal.BusinessName+" grow", body); err != nil {
			return err
		}
		if err := o.deals.Advance(ctx, deal.ID, domain.DealOutreachSent); err != nil {
			return err
		}
		report.DealsAdvanced++

	case domain.DealOutreachSent:
		if !o.policy.ShouldAdvance(ctx, decision) {
			return nil
		}
		if err := o.deals.Advance(ctx, deal.ID, domain.DealEngaged); err != nil {
			return err
		}
		report.DealsAdvanced++

	case domain.DealEngaged:
		if !o.policy.ShouldAdvance(ctx, decision) {
			return nil
		}
		if err := o.deals.SeedProposal(ctx, deal.ID); err != nil {
			return err
		}
		seeded, err := o.deals.GetByID(ctx, deal.ID)
		if err != nil {
			return err
		}
		body := proposalMessage(seeded)
		if err := o.send(ctx, deal, "Proposal for "+deal.BusinessName, body); err != nil {
			return err
		}
		if err := o.deals.Advance(ctx, deal.ID, domain.DealProposalSent); err != nil {
			return err
		}
		report.DealsAdvanced++

	case domain.DealProposalSent:
		if !o.policy.ShouldAdvance(ctx, decision) {
			return nil
		}
		if err := o.deals.Advance(ctx, deal.ID, domain.DealNegotiating); err != nil {
			return err
		}
		report.DealsAdvanced++

	case domain.DealNegotiating:
		// Evaluate only what the prospect said last; our own counter-offers
		// must not be re-read as new requests.
		latest, err := deal.LatestCommunication()
		if err != nil || latest.Direction != domain.DirectionInbound {
			return nil
		}
		if _, err := o.deals.EvaluateNegotiation(ctx, deal.ID); err != nil {
			return err
		}
		o.settleOutcome(ctx, deal.ID, report)
	}
	return nil
}

// settleOutcome tallies a negotiation result and queues project creation on a
// win. Counter-offers cycle the deal back to proposal_sent, so only closed
// outcomes count as advancement.
func (o *Orchestrator) settleOutcome(ctx context.Context, dealID string, report *app.CycleReport) {
	settled, err := o.deals.GetByID(ctx, dealID)
	if err != nil {
		o.recordError(report, fmt.Errorf("reloading deal %s: %w", dealID, err))
		return
	}
	switch settled.Status {
	case domain.DealClosedWon:
		report.DealsAdvanced++
		report.DealsClosedWon++
		select {
		case o.projectQueue <- dealID:
		default:
			// The closed-won sweep in createProjects picks it up anyway.
		}
	case domain.DealClosedLost:
		report.DealsAdvanced++
		report.DealsClosedLost++
	}
}

func (o *Orchestrator) createProjects(ctx context.Context, report *app.CycleReport) {
	pending := make([]string, 0, len(o.projectQueue))
	seen := make(map[string]bool)
	add := func(dealID string) {
		if !seen[dealID] {
			seen[dealID] = true
			pending = append(pending, dealID)
		}
	}

	// Same-cycle handoffs first.
	for n := len(o.projectQueue); n > 0; n-- {
		add(<-o.projectQueue)
	}

	// Then sweep every closed-won deal still missing its project. Wins that
	// closed before a restart, overflowed the queue or failed creation in an
	// earlier cycle are retried here until they succeed.
	won, err := o.deals.ListByStatus(ctx, domain.DealClosedWon)
	if err != nil {
		o.recordError(report, fmt.Errorf("listing closed-won deals: %w", err))
	}
	for _, deal := range won {
		add(deal.ID)
	}

	for _, dealID := range pending {
		if _, err := o.projects.GetByDealID(ctx, dealID); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			o.recordError(report, fmt.Errorf("checking project for deal %s: %w", dealID, err))
			continue
		}
		if _, err := o.projects.CreateFromDeal(ctx, dealID); err != nil {
			o.recordError(report, fmt.Errorf("creating project for deal %s: %w", dealID, err))
			continue
		}
		report.ProjectsCreated++
	}
}

func (o *Orchestrator) send(ctx context.Context, deal *domain.Deal, subject, body string) error {
	if _, err := o.messenger.Send(ctx, deal.BusinessName, subject, body); err != nil {
		return &app.CollaboratorError{Collaborator: "messenger", Err: err}
	}
	return o.deals.RecordCommunication(ctx, deal.ID, domain.DirectionOutbound, body)
}

func proposalMessage(deal *domain.Deal) string {
	if deal.Proposal == nil {
		return "Please find our proposal attached."
	}
	msg := fmt.Sprintf("We propose the following services for a total of $%.2f:\n", deal.Proposal.Price)
	for _, svc := range deal.Proposal.Services {
		msg += "- " + svc + "\n"
	}
	if deal.Proposal.Timeline != nil {
		msg += fmt.Sprintf("Estimated delivery in %d days.", deal.Proposal.Timeline.DurationDays)
	}
	return msg
}

func (o *Orchestrator) recordError(report *app.CycleReport, err error) {
	report.Errors = append(report.Errors, err)
	o.logger.Warn("cycle step failed", "error", err)
}

func (o *Orchestrator) logCycle(report *app.CycleReport) {
	o.logger.Info("pipeline cycle complete",
		"duration", report.Duration,
		"leads_discovered", report.LeadsDiscovered,
		"leads_qualified", report.LeadsQualified,
		"deals_created", report.DealsCreated,
		"deals_advanced", report.DealsAdvanced,
		"deals_closed_won", report.DealsClosedWon,
		"deals_closed_lost", report.DealsClosedLost,
		"projects_created", report.ProjectsCreated,
		"errors", len(report.Errors),
	)
}
