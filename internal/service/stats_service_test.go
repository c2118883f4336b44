package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/repository"
	"github.com/alexanderramin/dealflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Snapshot(t *testing.T) {
	database := testutil.NewTestDB(t)
	leads := repository.NewSQLiteLeadRepo(database)
	deals := repository.NewSQLiteDealRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	svc := NewStatsService(leads, deals, projects)
	ctx := context.Background()

	l1 := testutil.NewTestLead("One")
	l2 := testutil.NewTestLead("Two",
		testutil.WithLeadStatus(domain.LeadQualified), testutil.WithScore(70))
	l3 := testutil.NewTestLead("Three",
		testutil.WithLeadStatus(domain.LeadTransferred), testutil.WithScore(80))
	for _, l := range []*domain.Lead{l1, l2, l3} {
		require.NoError(t, leads.Create(ctx, l))
	}

	d1 := testutil.NewTestDeal(l3.ID, l3.BusinessName,
		testutil.WithDealStatus(domain.DealClosedWon))
	require.NoError(t, deals.Create(ctx, d1))

	p1 := testutil.NewTestProject(d1.ID, d1.BusinessName,
		testutil.WithProjectStatus(domain.ProjectCompleted))
	require.NoError(t, projects.Create(ctx, p1))

	stats, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Leads.Total)
	// Transferred leads passed qualification before handoff.
	assert.Equal(t, 2, stats.Leads.Qualified)
	assert.Equal(t, 66.67, stats.Leads.QualificationRate)

	assert.Equal(t, 1, stats.Deals.Total)
	assert.Equal(t, 0, stats.Deals.Open)
	assert.Equal(t, 1, stats.Deals.ClosedWon)
	assert.Equal(t, 100.0, stats.Deals.CloseRate)

	assert.Equal(t, 1, stats.Projects.Total)
	assert.Equal(t, 1, stats.Projects.Completed)
}

func TestStatsService_Snapshot_EmptyPipeline(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewStatsService(
		repository.NewSQLiteLeadRepo(database),
		repository.NewSQLiteDealRepo(database),
		repository.NewSQLiteProjectRepo(database),
	)

	stats, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Leads.Total)
	assert.Equal(t, 0.0, stats.Leads.QualificationRate)
	assert.Equal(t, 0.0, stats.Deals.CloseRate)
}
