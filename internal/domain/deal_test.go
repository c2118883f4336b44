package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestAdvanceTo_SingleStep(t *testing.T) {
	d := &Deal{ID: "d-1", Status: DealReceived}

	steps := []DealStatus{
		DealOutreachSent, DealEngaged, DealProposalSent, DealNegotiating, DealClosedWon,
	}
	for _, next := range steps {
		require.NoError(t, d.AdvanceTo(next, testNow), "advancing to %s", next)
		assert.Equal(t, next, d.Status)
	}
	require.NotNil(t, d.ClosedAt)
	assert.Equal(t, testNow, *d.ClosedAt)
}

func TestAdvanceTo_RejectsSkip(t *testing.T) {
	d := &Deal{ID: "d-1", Status: DealReceived}
	err := d.AdvanceTo(DealEngaged, testNow)
	require.Error(t, err)
	assert.Equal(t, DealReceived, d.Status, "status should not change")
}

func TestAdvanceTo_RejectsRegression(t *testing.T) {
	d := &Deal{ID: "d-1", Status: DealNegotiating}
	err := d.AdvanceTo(DealEngaged, testNow)
	require.Error(t, err)
	assert.Equal(t, DealNegotiating, d.Status)
}

func TestAdvanceTo_ClosedIsTerminal(t *testing.T) {
	d := &Deal{ID: "d-1", Status: DealClosedLost}
	err := d.AdvanceTo(DealClosedWon, testNow)
	require.Error(t, err)
}

func TestReturnToProposal_CountsRounds(t *testing.T) {
	d := &Deal{ID: "d-1", Status: DealNegotiating}

	lost, err := d.ReturnToProposal(testNow, 3)
	require.NoError(t, err)
	assert.False(t, lost)
	assert.Equal(t, DealProposalSent, d.Status)
	assert.Equal(t, 1, d.NegotiationRounds)
}

func TestReturnToProposal_ForcesLostAtCap(t *testing.T) {
	d := &Deal{ID: "d-1", Status: DealNegotiating, NegotiationRounds: 2}

	lost, err := d.ReturnToProposal(testNow, 3)
	require.NoError(t, err)
	assert.True(t, lost)
	assert.Equal(t, DealClosedLost, d.Status)
	require.NotNil(t, d.ClosedAt)
}

func TestReturnToProposal_OnlyFromNegotiating(t *testing.T) {
	d := &Deal{ID: "d-1", Status: DealEngaged}
	_, err := d.ReturnToProposal(testNow, 3)
	require.Error(t, err)
}

func TestLatestCommunication_Empty(t *testing.T) {
	d := &Deal{ID: "d-1"}
	_, err := d.LatestCommunication()
	assert.ErrorIs(t, err, ErrNoCommunications)
}

func TestLatestCommunication_PicksNewest(t *testing.T) {
	d := &Deal{ID: "d-1"}
	d.AddCommunication(DirectionOutbound, "first", testNow.Add(-2*time.Hour))
	d.AddCommunication(DirectionInbound, "second", testNow.Add(-time.Hour))
	d.AddCommunication(DirectionInbound, "third", testNow)

	c, err := d.LatestCommunication()
	require.NoError(t, err)
	assert.Equal(t, "third", c.Content)
}

func TestLatestCommunication_TieKeepsInsertionOrder(t *testing.T) {
	d := &Deal{ID: "d-1"}
	d.AddCommunication(DirectionInbound, "earlier of tie", testNow)
	d.AddCommunication(DirectionInbound, "later of tie", testNow)

	c, err := d.LatestCommunication()
	require.NoError(t, err)
	assert.Equal(t, "earlier of tie", c.Content)
}
