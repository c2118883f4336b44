package service

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/alexanderramin/dealflow/internal/repository"
)

type statsService struct {
	leads    repository.LeadRepo
	deals    repository.DealRepo
	projects repository.ProjectRepo
}

func NewStatsService(leads repository.LeadRepo, deals repository.DealRepo, projects repository.ProjectRepo) StatsService {
	return &statsService{leads: leads, deals: deals, projects: projects}
}

func (s *statsService) Snapshot(ctx context.Context) (*PipelineStats, error) {
	leadCounts, err := s.leads.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting leads: %w", err)
	}
	dealCounts, err := s.deals.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting deals: %w", err)
	}
	projectCounts, err := s.projects.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting projects: %w", err)
	}

	stats := &PipelineStats{}
	for _, n := range leadCounts {
		stats.Leads.Total += n
	}
	// Transferred leads were qualified before handoff; they still count
	// toward the qualification rate.
	stats.Leads.Qualified = leadCounts[domain.LeadQualified] + leadCounts[domain.LeadTransferred]
	if stats.Leads.Total > 0 {
		stats.Leads.QualificationRate = roundRate(float64(stats.Leads.Qualified) / float64(stats.Leads.Total) * 100)
	}

	for status, n := range dealCounts {
		stats.Deals.Total += n
		if status != domain.DealClosedWon && status != domain.DealClosedLost {
			stats.Deals.Open += n
		}
	}
	stats.Deals.ClosedWon = dealCounts[domain.DealClosedWon]
	if stats.Deals.Total > 0 {
		stats.Deals.CloseRate = roundRate(float64(stats.Deals.ClosedWon) / float64(stats.Deals.Total) * 100)
	}

	for status, n := range projectCounts {
		stats.Projects.Total += n
		if status == domain.ProjectCompleted {
			stats.Projects.Completed += n
		}
	}
	return stats, nil
}

func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}
