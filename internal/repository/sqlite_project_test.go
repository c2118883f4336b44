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

// createDeal inserts a lead and a closed-won deal so project foreign keys hold.
func createDeal(t *testing.T, leads *SQLiteLeadRepo, deals *SQLiteDealRepo, name string) *domain.Deal {
	t.Helper()
	lead := createLead(t, leads, name)
	deal := testutil.NewTestDeal(lead.ID, name, testutil.WithDealStatus(domain.DealClosedWon))
	require.NoError(t, deals.Create(context.Background(), deal))
	return deal
}

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	deals := NewSQLiteDealRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	deal := createDeal(t, leads, deals, "Acme Bakery")
	proj := testutil.NewTestProject(deal.ID, deal.BusinessName,
		testutil.WithTasks(testutil.NewTestTask("T1", "Planning"), testutil.NewTestTask("T2", "Execution")),
		testutil.WithDeliverables(domain.Deliverable{
			ID:      "D1",
			Type:    "website",
			Status:  domain.DeliverablePlanned,
			DueDate: time.Now().UTC().AddDate(0, 0, 14),
		}),
	)
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, deal.ID, fetched.DealID)
	assert.Equal(t, "web_development", fetched.ServiceType)
	assert.Equal(t, domain.ProjectCreated, fetched.Status)
	assert.Equal(t, 14, fetched.Timeline.DurationDays)
	require.Len(t, fetched.Tasks, 2)
	assert.Equal(t, "Planning", fetched.Tasks[0].Name)
	assert.Equal(t, domain.TaskPending, fetched.Tasks[0].Status)
	require.Len(t, fetched.Deliverables, 1)
	assert.Equal(t, "website", fetched.Deliverables[0].Type)
}

func TestProjectRepo_GetByDealID(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	deals := NewSQLiteDealRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	deal := createDeal(t, leads, deals, "Acme Bakery")
	proj := testutil.NewTestProject(deal.ID, deal.BusinessName)
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByDealID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)

	_, err = repo.GetByDealID(ctx, "no-such-deal")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectRepo_Update_PersistsStatusHistoryAndProgress(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	deals := NewSQLiteDealRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	deal := createDeal(t, leads, deals, "Acme Bakery")
	proj := testutil.NewTestProject(deal.ID, deal.BusinessName)
	require.NoError(t, repo.Create(ctx, proj))

	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	require.NoError(t, proj.SetStatus(domain.ProjectPending, now, "kickoff scheduled"))
	require.NoError(t, proj.SetStatus(domain.ProjectInProgress, now.Add(time.Hour), ""))
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectInProgress, fetched.Status)
	assert.Equal(t, 25.0, fetched.Progress)
	require.Len(t, fetched.StatusHistory, 2)
	assert.Equal(t, "created", fetched.StatusHistory[0].From)
	assert.Equal(t, "pending", fetched.StatusHistory[0].To)
	assert.Equal(t, "kickoff scheduled", fetched.StatusHistory[0].Notes)
}

func TestProjectRepo_UpdateTask_PersistsLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	deals := NewSQLiteDealRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	deal := createDeal(t, leads, deals, "Acme Bakery")
	proj := testutil.NewTestProject(deal.ID, deal.BusinessName,
		testutil.WithTasks(testutil.NewTestTask("T1", "Planning")))
	require.NoError(t, repo.Create(ctx, proj))

	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	task, err := proj.Task("T1")
	require.NoError(t, err)
	require.NoError(t, task.Transition(domain.TaskInProgress, now, ""))
	require.NoError(t, task.Transition(domain.TaskNeedsReview, now.Add(time.Hour), "ready"))
	require.NoError(t, repo.UpdateTask(ctx, proj.ID, task))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Tasks, 1)
	got := fetched.Tasks[0]
	assert.Equal(t, domain.TaskNeedsReview, got.Status)
	require.Len(t, got.History, 2)
	assert.Equal(t, "pending", got.History[0].From)
	assert.Equal(t, "in_progress", got.History[0].To)
	assert.Equal(t, "ready", got.History[1].Notes)
}

func TestProjectRepo_UpdateTask_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	deals := NewSQLiteDealRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	deal := createDeal(t, leads, deals, "Acme Bakery")
	proj := testutil.NewTestProject(deal.ID, deal.BusinessName)
	require.NoError(t, repo.Create(ctx, proj))

	task := testutil.NewTestTask("T9", "Ghost")
	err := repo.UpdateTask(ctx, proj.ID, &task)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectRepo_UpdateDeliverable(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	deals := NewSQLiteDealRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	deal := createDeal(t, leads, deals, "Acme Bakery")
	due := time.Now().UTC().AddDate(0, 0, 14)
	proj := testutil.NewTestProject(deal.ID, deal.BusinessName,
		testutil.WithDeliverables(domain.Deliverable{
			ID: "D1", Type: "website", Status: domain.DeliverablePlanned, DueDate: due,
		}))
	require.NoError(t, repo.Create(ctx, proj))

	d := proj.Deliverables[0]
	d.Status = domain.DeliverablePendingReview
	d.FilePath = "/srv/deliverables/site.zip"
	require.NoError(t, repo.UpdateDeliverable(ctx, proj.ID, &d))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Deliverables, 1)
	assert.Equal(t, domain.DeliverablePendingReview, fetched.Deliverables[0].Status)
	assert.Equal(t, "/srv/deliverables/site.zip", fetched.Deliverables[0].FilePath)
}

func TestProjectRepo_ListByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	leads := NewSQLiteLeadRepo(db)
	deals := NewSQLiteDealRepo(db)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	d1 := createDeal(t, leads, deals, "A")
	d2 := createDeal(t, leads, deals, "B")
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(d1.ID, "A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(d2.ID, "B",
		testutil.WithProjectStatus(domain.ProjectInProgress))))

	active, err := repo.ListByStatus(ctx, domain.ProjectInProgress)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "B", active[0].BusinessName)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.ProjectCreated])
	assert.Equal(t, 1, counts[domain.ProjectInProgress])
}
