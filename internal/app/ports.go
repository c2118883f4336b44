package app

import (
	"context"
	"time"
)

// RawLead is an unprocessed prospect record produced by a sourcing
// collaborator. Enrichment attributes are optional; absent fields are scored
// with neutral defaults.
type RawLead struct {
	BusinessName     string
	Source           string
	Website          string
	WebsiteQuality   int
	SocialProfiles   []string
	Technologies     []string
	ContentTopics    []string
	OnlineReviews    int
	GrowthIndicators []string
	ServiceNeeds     []string
	BusinessMaturity *float64
	DigitalPresence  *float64
	DiscoveredAt     time.Time
}

// Sourcing discovers new leads. Implementations wrap scrapers, directories or
// purchased lists; failures surface as CollaboratorError.
type Sourcing interface {
	Discover(ctx context.Context) ([]RawLead, error)
}

// Messenger delivers outbound messages to a prospect and returns a provider
// message ID. Failures surface as CollaboratorError.
type Messenger interface {
	Send(ctx context.Context, recipient, subject, body string) (string, error)
}

// CycleReport summarizes one orchestrator cycle.
type CycleReport struct {
	StartedAt       time.Time
	Duration        time.Duration
	LeadsDiscovered int
	LeadsQualified  int
	DealsCreated    int
	DealsAdvanced   int
	DealsClosedWon  int
	DealsClosedLost int
	ProjectsCreated int
	Errors          []error
}
