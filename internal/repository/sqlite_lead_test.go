package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteLeadRepo(db)
	ctx := context.Background()

	lead := testutil.NewTestLead("Acme Bakery",
		testutil.WithWebsite("https://acme.example", 62),
		testutil.WithSocialProfiles("instagram", "facebook"),
		testutil.WithTechnologies("shopify"),
		testutil.WithOnlineReviews(12),
		testutil.WithGrowthIndicators("hiring"),
	)
	require.NoError(t, repo.Create(ctx, lead))

	fetched, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, fetched.ID)
	assert.Equal(t, "Acme Bakery", fetched.BusinessName)
	assert.Equal(t, domain.LeadNew, fetched.Status)
	assert.Equal(t, 62, fetched.WebsiteQuality)
	assert.Equal(t, []string{"instagram", "facebook"}, fetched.SocialProfiles)
	assert.Equal(t, []string{"shopify"}, fetched.Technologies)
	assert.Equal(t, 12, fetched.OnlineReviews)
	assert.Nil(t, fetched.Score)
	assert.Nil(t, fetched.BusinessMaturity)
}

func TestLeadRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteLeadRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLeadRepo_Update_PersistsQualification(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteLeadRepo(db)
	ctx := context.Background()

	lead := testutil.NewTestLead("Acme Bakery", testutil.WithLeadStatus(domain.LeadEnriched))
	require.NoError(t, repo.Create(ctx, lead))

	require.NoError(t, lead.SetQualification(74, []string{"website_redesign", "seo"}, lead.UpdatedAt))
	require.NoError(t, repo.Update(ctx, lead))

	fetched, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadQualified, fetched.Status)
	require.NotNil(t, fetched.Score)
	assert.Equal(t, 74, *fetched.Score)
	assert.Equal(t, []string{"website_redesign", "seo"}, fetched.IdentifiedNeeds)
}

func TestLeadRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteLeadRepo(db)
	ctx := context.Background()

	lead := testutil.NewTestLead("Ghost Business")
	err := repo.Update(ctx, lead)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLeadRepo_EnrichmentScores_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteLeadRepo(db)
	ctx := context.Background()

	lead := testutil.NewTestLead("Acme Bakery", testutil.WithEnrichmentScores(0.9, 0.95))
	require.NoError(t, repo.Create(ctx, lead))

	fetched, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.BusinessMaturity)
	require.NotNil(t, fetched.DigitalPresence)
	assert.Equal(t, 0.9, *fetched.BusinessMaturity)
	assert.Equal(t, 0.95, *fetched.DigitalPresence)
}

func TestLeadRepo_ListByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteLeadRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestLead("A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLead("B", testutil.WithLeadStatus(domain.LeadEnriched))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLead("C", testutil.WithLeadStatus(domain.LeadEnriched))))

	enriched, err := repo.ListByStatus(ctx, domain.LeadEnriched)
	require.NoError(t, err)
	assert.Len(t, enriched, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLeadRepo_CountByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteLeadRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestLead("A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLead("B", testutil.WithLeadStatus(domain.LeadQualified), testutil.WithScore(80))))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.LeadNew])
	assert.Equal(t, 1, counts[domain.LeadQualified])
	assert.Equal(t, 0, counts[domain.LeadTransferred])
}
