package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createLead(t *testing.T, repo *SQLiteLeadRepo, name string) *domain.Lead {
	t.Helper()
	lead := testutil.NewTestLead(name)
	require.NoError(t, repo.Create(context.Background(), lead))
	return lead
}

func TestDealRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	lead := createLead(t, leads, "Acme Bakery")
	deal := testutil.NewTestDeal(lead.ID, lead.BusinessName)
	require.NoError(t, repo.Create(ctx, deal))

	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.ID, fetched.ID)
	assert.Equal(t, lead.ID, fetched.LeadID)
	assert.Equal(t, domain.DealReceived, fetched.Status)
	assert.Nil(t, fetched.Proposal)
	assert.Empty(t, fetched.Communications)
}

func TestDealRepo_GetByLeadID(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	lead := createLead(t, leads, "Acme Bakery")
	deal := testutil.NewTestDeal(lead.ID, lead.BusinessName)
	require.NoError(t, repo.Create(ctx, deal))

	fetched, err := repo.GetByLeadID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.ID, fetched.ID)

	_, err = repo.GetByLeadID(ctx, "no-such-lead")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDealRepo_Proposal_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	lead := createLead(t, leads, "Acme Bakery")
	proposal := testutil.NewTestProposal(2500, "website_redesign", "seo")
	proposal.AdditionalRevisions = 1
	deal := testutil.NewTestDeal(lead.ID, lead.BusinessName, testutil.WithProposal(proposal))
	require.NoError(t, repo.Create(ctx, deal))

	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Proposal)
	assert.Equal(t, 2500.0, fetched.Proposal.Price)
	assert.Equal(t, []string{"website_redesign", "seo"}, fetched.Proposal.Services)
	assert.Equal(t, 1, fetched.Proposal.AdditionalRevisions)
	require.NotNil(t, fetched.Proposal.Timeline)
	assert.Equal(t, 14, fetched.Proposal.Timeline.DurationDays)
}

func TestDealRepo_Communications_PreserveInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	lead := createLead(t, leads, "Acme Bakery")
	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	deal := testutil.NewTestDeal(lead.ID, lead.BusinessName,
		testutil.WithCommunication(domain.DirectionOutbound, "Intro email", at),
		testutil.WithCommunication(domain.DirectionInbound, "Interested, tell me more", at.Add(time.Hour)),
	)
	require.NoError(t, repo.Create(ctx, deal))

	// Append one more after creation.
	require.NoError(t, repo.AddCommunication(ctx, deal.ID, domain.Communication{
		Direction: domain.DirectionOutbound,
		Content:   "Proposal attached",
		Timestamp: at.Add(2 * time.Hour),
	}))

	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Communications, 3)
	assert.Equal(t, "Intro email", fetched.Communications[0].Content)
	assert.Equal(t, "Interested, tell me more", fetched.Communications[1].Content)
	assert.Equal(t, "Proposal attached", fetched.Communications[2].Content)
	assert.Equal(t, domain.DirectionInbound, fetched.Communications[1].Direction)
}

func TestDealRepo_Update_PersistsStatusAndRounds(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	lead := createLead(t, leads, "Acme Bakery")
	deal := testutil.NewTestDeal(lead.ID, lead.BusinessName)
	require.NoError(t, repo.Create(ctx, deal))

	now := time.Now().UTC()
	require.NoError(t, deal.AdvanceTo(domain.DealOutreachSent, now))
	deal.NegotiationRounds = 2
	require.NoError(t, repo.Update(ctx, deal))

	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DealOutreachSent, fetched.Status)
	assert.Equal(t, 2, fetched.NegotiationRounds)
}

func TestDealRepo_Update_PersistsClosedAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	lead := createLead(t, leads, "Acme Bakery")
	deal := testutil.NewTestDeal(lead.ID, lead.BusinessName, testutil.WithDealStatus(domain.DealNegotiating))
	require.NoError(t, repo.Create(ctx, deal))

	now := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	require.NoError(t, deal.AdvanceTo(domain.DealClosedWon, now))
	require.NoError(t, repo.Update(ctx, deal))

	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DealClosedWon, fetched.Status)
	require.NotNil(t, fetched.ClosedAt)
	assert.Equal(t, now, fetched.ClosedAt.UTC())
}

func TestDealRepo_ListOpen_ExcludesClosed(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	l1 := createLead(t, leads, "A")
	l2 := createLead(t, leads, "B")
	l3 := createLead(t, leads, "C")
	require.NoError(t, repo.Create(ctx, testutil.NewTestDeal(l1.ID, "A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestDeal(l2.ID, "B", testutil.WithDealStatus(domain.DealClosedWon))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestDeal(l3.ID, "C", testutil.WithDealStatus(domain.DealClosedLost))))

	open, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "A", open[0].BusinessName)
}

func TestDealRepo_CountByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	l1 := createLead(t, leads, "A")
	l2 := createLead(t, leads, "B")
	require.NoError(t, repo.Create(ctx, testutil.NewTestDeal(l1.ID, "A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestDeal(l2.ID, "B", testutil.WithDealStatus(domain.DealClosedWon))))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.DealReceived])
	assert.Equal(t, 1, counts[domain.DealClosedWon])
}
