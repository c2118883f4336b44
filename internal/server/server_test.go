package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/repository"
	"github.com/alexanderramin/dealflow/internal/service"
	"github.com/alexanderramin/dealflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, repository.LeadRepo, repository.DealRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	leads := repository.NewSQLiteLeadRepo(database)
	deals := repository.NewSQLiteDealRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	stats := service.NewStatsService(leads, deals, projects)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(database, stats, logger), leads, deals
}

func TestHealth_ReportsCounts(t *testing.T) {
	srv, leads, _ := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, leads.Create(ctx, testutil.NewTestLead("Harbor Bakery")))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status        string         `json:"status"`
		Database      string         `json:"database"`
		UptimeSeconds float64        `json:"uptime_seconds"`
		Counts        map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "connected", body.Database)
	assert.GreaterOrEqual(t, body.UptimeSeconds, 0.0)
	assert.Equal(t, 1, body.Counts["leads"])
	assert.Equal(t, 0, body.Counts["deals"])
}

func TestHealth_DegradedWhenDatabaseClosed(t *testing.T) {
	database := testutil.NewTestDB(t)
	stats := service.NewStatsService(
		repository.NewSQLiteLeadRepo(database),
		repository.NewSQLiteDealRepo(database),
		repository.NewSQLiteProjectRepo(database),
	)
	srv := New(database, stats, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, database.Close())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unreachable", body.Database)
}

func TestStats_ReportsRates(t *testing.T) {
	srv, leads, deals := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, leads.Create(ctx, testutil.NewTestLead("One")))
	qualified := testutil.NewTestLead("Two",
		testutil.WithLeadStatus(domain.LeadTransferred), testutil.WithScore(80))
	require.NoError(t, leads.Create(ctx, qualified))
	require.NoError(t, deals.Create(ctx, testutil.NewTestDeal(qualified.ID, qualified.BusinessName,
		testutil.WithDealStatus(domain.DealClosedWon))))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Leads struct {
			Total             int     `json:"total"`
			Qualified         int     `json:"qualified"`
			QualificationRate float64 `json:"qualification_rate"`
		} `json:"leads"`
		Deals struct {
			Total     int     `json:"total"`
			CloseRate float64 `json:"close_rate"`
		} `json:"deals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Leads.Total)
	assert.Equal(t, 1, body.Leads.Qualified)
	assert.Equal(t, 50.0, body.Leads.QualificationRate)
	assert.Equal(t, 1, body.Deals.Total)
	assert.Equal(t, 100.0, body.Deals.CloseRate)
}

func TestEndpoints_NeverMutateState(t *testing.T) {
	srv, leads, _ := newTestServer(t)
	ctx := context.Background()
	lead := testutil.NewTestLead("Harbor Bakery")
	require.NoError(t, leads.Create(ctx, lead))

	for _, path := range []string{"/health", "/api/stats"} {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	stored, err := leads.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadNew, stored.Status)
	assert.Equal(t, lead.UpdatedAt.Unix(), stored.UpdatedAt.Unix())
}
