package domain

import (
	"fmt"
	"time"
)

// Lead is a prospect business record awaiting qualification. Sourcing creates
// it, enrichment fills in the optional attributes, qualification assigns the
// score, and the orchestrator marks it transferred when a deal is opened.
type Lead struct {
	ID           string
	BusinessName string
	Source       string

	// Enriched attributes; all optional.
	Website          string
	WebsiteQuality   int // 0-100
	SocialProfiles   []string
	Technologies     []string
	ContentTopics    []string
	OnlineReviews    int
	GrowthIndicators []string
	ServiceNeeds     []string

	// Pre-computed enrichment scores, normalized to [0,1]. When present the
	// qualifier uses them verbatim instead of its own heuristics.
	BusinessMaturity *float64
	DigitalPresence  *float64

	Status          LeadStatus
	Score           *int
	IdentifiedNeeds []string
	DiscoveredAt    time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetQualification records the qualification score and identified needs and
// moves the lead to qualified. Score must be present exactly on qualified and
// transferred leads; a transferred lead is immutable.
func (l *Lead) SetQualification(score int, needs []string, now time.Time) error {
	if l.Status == LeadTransferred {
		return fmt.Errorf("lead %s is transferred and immutable", l.ID)
	}
	if score < 0 || score > 100 {
		return fmt.Errorf("score %d out of range [0,100]", score)
	}
	l.Score = &score
	l.IdentifiedNeeds = needs
	l.Status = LeadQualified
	l.UpdatedAt = now
	return nil
}

// MarkTransferred freezes a qualified lead once a deal has been created for it.
func (l *Lead) MarkTransferred(now time.Time) error {
	if l.Status == LeadTransferred {
		return nil
	}
	if l.Status != LeadQualified {
		return fmt.Errorf("lead %s cannot transfer from status %s", l.ID, l.Status)
	}
	l.Status = LeadTransferred
	l.UpdatedAt = now
	return nil
}

// DisplayID returns a short identifier for display, truncating UUIDs.
func (l *Lead) DisplayID() string {
	if len(l.ID) >= 8 {
		return l.ID[:8]
	}
	return l.ID
}
