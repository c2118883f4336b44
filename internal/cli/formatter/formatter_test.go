package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"a1", "Harbor Bakery"},
			{"b2", "Gym"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4) // header, separator, two rows
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[2], "Harbor Bakery")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestRenderProgress_Bounds(t *testing.T) {
	assert.Contains(t, RenderProgress(-5, 10), "0%")
	assert.Contains(t, RenderProgress(250, 10), "100%")
	assert.Contains(t, RenderProgress(50, 10), "50%")
}

func TestFormatPipelineStats(t *testing.T) {
	stats := &service.PipelineStats{}
	stats.Leads.Total = 4
	stats.Leads.Qualified = 2
	stats.Leads.QualificationRate = 50
	stats.Deals.Total = 2
	stats.Deals.ClosedWon = 1
	stats.Deals.CloseRate = 50
	stats.Projects.Total = 1

	out := FormatPipelineStats(stats)
	assert.Contains(t, out, "4 total, 2 qualified")
	assert.Contains(t, out, "50.00%")
	assert.Contains(t, out, "1 won")
}

func TestFormatDealList_Empty(t *testing.T) {
	assert.Contains(t, FormatDealList(nil), "No deals")
}

func TestFormatDeal_ShowsCommunications(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	deal := &domain.Deal{
		ID:           "abcdef1234567890",
		BusinessName: "Harbor Bakery",
		Status:       domain.DealNegotiating,
		Communications: []domain.Communication{
			{Direction: domain.DirectionOutbound, Content: "Our proposal is attached.", Timestamp: now},
			{Direction: domain.DirectionInbound, Content: "Can we get a discount?", Timestamp: now.Add(time.Hour)},
		},
	}

	out := FormatDeal(deal)
	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "Our proposal is attached.")
	assert.Contains(t, out, "Can we get a discount?")
}

func TestFormatLeadList_ShowsScoreAndNeeds(t *testing.T) {
	score := 74
	leads := []*domain.Lead{{
		ID:              "abcdef1234567890",
		BusinessName:    "Harbor Bakery",
		Source:          "directory",
		Status:          domain.LeadQualified,
		Score:           &score,
		IdentifiedNeeds: []string{"website_redesign"},
	}}

	out := FormatLeadList(leads)
	assert.Contains(t, out, "74")
	assert.Contains(t, out, "website_redesign")
}
