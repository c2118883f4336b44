package testutil

import (
	"time"

	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/google/uuid"
)

// Lead options
type LeadOption func(*domain.Lead)

func WithLeadStatus(s domain.LeadStatus) LeadOption {
	return func(l *domain.Lead) {
		l.Status = s
	}
}

func WithWebsite(url string, quality int) LeadOption {
	return func(l *domain.Lead) {
		l.Website = url
		l.WebsiteQuality = quality
	}
}

func WithSocialProfiles(profiles ...string) LeadOption {
	return func(l *domain.Lead) {
		l.SocialProfiles = profiles
	}
}

func WithTechnologies(techs ...string) LeadOption {
	return func(l *domain.Lead) {
		l.Technologies = techs
	}
}

func WithContentTopics(topics ...string) LeadOption {
	return func(l *domain.Lead) {
		l.ContentTopics = topics
	}
}

func WithOnlineReviews(n int) LeadOption {
	return func(l *domain.Lead) {
		l.OnlineReviews = n
	}
}

func WithGrowthIndicators(indicators ...string) LeadOption {
	return func(l *domain.Lead) {
		l.GrowthIndicators = indicators
	}
}

func WithServiceNeeds(needs ...string) LeadOption {
	return func(l *domain.Lead) {
		l.ServiceNeeds = needs
	}
}

func WithEnrichmentScores(maturity, presence float64) LeadOption {
	return func(l *domain.Lead) {
		l.BusinessMaturity = &maturity
		l.DigitalPresence = &presence
	}
}

func WithScore(score int) LeadOption {
	return func(l *domain.Lead) {
		l.Score = &score
	}
}

func NewTestLead(businessName string, opts ...LeadOption) *domain.Lead {
	now := time.Now().UTC()
	l := &domain.Lead{
		ID:           uuid.New().String(),
		BusinessName: businessName,
		Source:       "directory",
		Status:       domain.LeadNew,
		DiscoveredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Deal options
type DealOption func(*domain.Deal)

func WithDealStatus(s domain.DealStatus) DealOption {
	return func(d *domain.Deal) {
		d.Status = s
	}
}

func WithProposal(p *domain.Proposal) DealOption {
	return func(d *domain.Deal) {
		d.Proposal = p
	}
}

func WithNegotiationRounds(n int) DealOption {
	return func(d *domain.Deal) {
		d.NegotiationRounds = n
	}
}

func WithCommunication(dir domain.Direction, content string, at time.Time) DealOption {
	return func(d *domain.Deal) {
		d.Communications = append(d.Communications, domain.Communication{
			Direction: dir,
			Content:   content,
			Timestamp: at,
		})
	}
}

func NewTestDeal(leadID, businessName string, opts ...DealOption) *domain.Deal {
	now := time.Now().UTC()
	d := &domain.Deal{
		ID:           uuid.New().String(),
		LeadID:       leadID,
		BusinessName: businessName,
		Status:       domain.DealReceived,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewTestProposal builds a proposal with a 14-day timeline starting now.
func NewTestProposal(price float64, services ...string) *domain.Proposal {
	now := time.Now().UTC()
	return &domain.Proposal{
		Services: services,
		Price:    price,
		Timeline: &domain.Timeline{
			Start:        now,
			End:          now.AddDate(0, 0, 14),
			DurationDays: 14,
		},
	}
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithServiceType(t string) ProjectOption {
	return func(p *domain.Project) {
		p.ServiceType = t
	}
}

func WithTimeline(start time.Time, days int) ProjectOption {
	return func(p *domain.Project) {
		p.Timeline = domain.Timeline{
			Start:        start,
			End:          start.AddDate(0, 0, days),
			DurationDays: days,
		}
	}
}

func WithTasks(tasks ...domain.Task) ProjectOption {
	return func(p *domain.Project) {
		p.Tasks = tasks
	}
}

func WithDeliverables(deliverables ...domain.Deliverable) ProjectOption {
	return func(p *domain.Project) {
		p.Deliverables = deliverables
	}
}

func NewTestProject(dealID, businessName string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:           uuid.New().String(),
		DealID:       dealID,
		BusinessName: businessName,
		ServiceType:  "web_development",
		Status:       domain.ProjectCreated,
		Timeline: domain.Timeline{
			Start:        now,
			End:          now.AddDate(0, 0, 14),
			DurationDays: 14,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestTask builds a pending task scheduled inside the default window.
func NewTestTask(id, name string) domain.Task {
	now := time.Now().UTC()
	return domain.Task{
		ID:     id,
		Name:   name,
		Status: domain.TaskPending,
		Start:  now,
		End:    now.AddDate(0, 0, 3),
	}
}
