package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dealflow/internal/config"
	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSLAPolicy_TimeInStatusThreshold(t *testing.T) {
	policy := NewSLAPolicy(config.SLA{OutreachSentSeconds: 1800})
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	deal := &domain.Deal{
		ID:        "d1",
		Status:    domain.DealOutreachSent,
		UpdatedAt: now.Add(-10 * time.Minute),
	}
	assert.False(t, policy.ShouldAdvance(ctx, Decision{Deal: deal, Now: now}))

	deal.UpdatedAt = now.Add(-31 * time.Minute)
	assert.True(t, policy.ShouldAdvance(ctx, Decision{Deal: deal, Now: now}))
}

func TestSLAPolicy_InboundCommunicationShortCircuits(t *testing.T) {
	policy := NewSLAPolicy(config.SLA{ProposalSentSeconds: 3600})
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	deal := &domain.Deal{
		ID:        "d1",
		Status:    domain.DealProposalSent,
		UpdatedAt: now.Add(-time.Minute),
	}
	deal.AddCommunication(domain.DirectionInbound, "sounds interesting", now.Add(-30*time.Second))

	assert.True(t, policy.ShouldAdvance(context.Background(), Decision{Deal: deal, Now: now}))
}

func TestSLAPolicy_OutboundCommunicationDoesNotShortCircuit(t *testing.T) {
	policy := NewSLAPolicy(config.SLA{ProposalSentSeconds: 3600})
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	deal := &domain.Deal{
		ID:        "d1",
		Status:    domain.DealProposalSent,
		UpdatedAt: now.Add(-time.Minute),
	}
	deal.AddCommunication(domain.DirectionOutbound, "following up", now.Add(-time.Minute))

	assert.False(t, policy.ShouldAdvance(context.Background(), Decision{Deal: deal, Now: now}))
}

func TestSLAPolicy_NeverAdvancesClosedDeals(t *testing.T) {
	policy := NewSLAPolicy(config.SLA{})
	now := time.Now().UTC()

	for _, status := range []domain.DealStatus{domain.DealClosedWon, domain.DealClosedLost} {
		deal := &domain.Deal{ID: "d1", Status: status, UpdatedAt: now.Add(-24 * time.Hour)}
		assert.False(t, policy.ShouldAdvance(context.Background(), Decision{Deal: deal, Now: now}))
	}
}

func TestSLAPolicy_DeterministicForFixedInputs(t *testing.T) {
	policy := NewSLAPolicy(config.SLA{EngagedSeconds: 60})
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	deal := &domain.Deal{ID: "d1", Status: domain.DealEngaged, UpdatedAt: now.Add(-90 * time.Second)}

	first := policy.ShouldAdvance(context.Background(), Decision{Deal: deal, Now: now})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, policy.ShouldAdvance(context.Background(), Decision{Deal: deal, Now: now}))
	}
}
