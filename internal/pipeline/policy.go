// Package pipeline runs the acquisition cycle: sourcing leads, qualifying
// them, opening and advancing deals and handing closed-won deals off to
// project delivery. Advancement is policy-driven and deterministic.
package pipeline

import (
	"context"
	"time"

	"github.com/alexanderramin/dealflow/internal/config"
	"github.com/alexanderramin/dealflow/internal/domain"
)

// Decision is the input for one advancement judgement on an open deal.
type Decision struct {
	Deal *domain.Deal
	Now  time.Time
}

// AdvancePolicy decides whether an open deal moves one stage this cycle.
type AdvancePolicy interface {
	ShouldAdvance(ctx context.Context, d Decision) bool
}

// SLAPolicy advances a deal when its time in the current status exceeds the
// status threshold, or sooner when the prospect has spoken last. Purely a
// function of the decision input, so fixed inputs give a fixed answer.
type SLAPolicy struct {
	Thresholds map[domain.DealStatus]time.Duration
}

// NewSLAPolicy builds the policy from configured per-status thresholds.
func NewSLAPolicy(sla config.SLA) *SLAPolicy {
	return &SLAPolicy{
		Thresholds: map[domain.DealStatus]time.Duration{
			domain.DealReceived:     time.Duration(sla.ReceivedSeconds) * time.Second,
			domain.DealOutreachSent: time.Duration(sla.OutreachSentSeconds) * time.Second,
			domain.DealEngaged:      time.Duration(sla.EngagedSeconds) * time.Second,
			domain.DealProposalSent: time.Duration(sla.ProposalSentSeconds) * time.Second,
		},
	}
}

func (p *SLAPolicy) ShouldAdvance(_ context.Context, d Decision) bool {
	if d.Deal.IsClosed() {
		return false
	}
	// An inbound message since the last touch means the prospect is waiting
	// on us; do not sit out the full threshold.
	if latest, err := d.Deal.LatestCommunication(); err == nil && latest.Direction == domain.DirectionInbound {
		return true
	}
	threshold, ok := p.Thresholds[d.Deal.Status]
	if !ok {
		return false
	}
	return d.Now.Sub(d.Deal.UpdatedAt) >= threshold
}
