// Package qualify turns raw or enriched lead records into a 0-100
// qualification score plus a short list of identified service needs. All
// functions are pure: missing fields default to neutral values and never
// produce an error.
package qualify

import (
	"math"

	"github.com/alexanderramin/dealflow/internal/domain"
)

// Weights control the relative contribution of each sub-score. The four
// component weights are applied to sub-scores normalized to [0,1]; the
// presence factors weight the digital presence components internally.
type Weights struct {
	BusinessMaturity float64 `yaml:"business_maturity"`
	DigitalPresence  float64 `yaml:"digital_presence"`
	GrowthIndicators float64 `yaml:"growth_indicators"`
	ServiceNeeds     float64 `yaml:"service_needs"`

	PresenceFactors PresenceFactors `yaml:"digital_presence_factors"`
}

// PresenceFactors weight the components of the digital presence sub-score.
type PresenceFactors struct {
	WebsiteQuality float64 `yaml:"website_quality"`
	SocialMedia    float64 `yaml:"social_media"`
	OnlineReviews  float64 `yaml:"online_reviews"`
}

// DefaultWeights returns the standard scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		BusinessMaturity: 0.25,
		DigitalPresence:  0.25,
		GrowthIndicators: 0.25,
		ServiceNeeds:     0.25,
		PresenceFactors: PresenceFactors{
			WebsiteQuality: 0.4,
			SocialMedia:    0.3,
			OnlineReviews:  0.3,
		},
	}
}

// Result is the outcome of qualifying a single lead.
type Result struct {
	Score           int
	IdentifiedNeeds []string
}

// Qualify scores the lead and identifies its needs. Deterministic for a
// given lead and weight set.
func Qualify(lead *domain.Lead, w Weights) Result {
	total := (scoreBusinessMaturity(lead)*w.BusinessMaturity +
		scoreDigitalPresence(lead, w.PresenceFactors)*w.DigitalPresence +
		scoreGrowthIndicators(lead)*w.GrowthIndicators +
		scoreServiceNeeds(lead)*w.ServiceNeeds) * 100

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Result{Score: score, IdentifiedNeeds: IdentifyNeeds(lead)}
}

// scoreBusinessMaturity uses the enrichment-computed value when present,
// otherwise estimates from a 0.5 base with adjustments for a website and at
// least one social profile.
func scoreBusinessMaturity(lead *domain.Lead) float64 {
	if lead.BusinessMaturity != nil {
		return clamp01(*lead.BusinessMaturity)
	}
	maturity := 0.5
	if lead.Website != "" {
		maturity += 0.1
	}
	if len(lead.SocialProfiles) > 0 {
		maturity += 0.1
	}
	return clamp01(maturity)
}

// scoreDigitalPresence combines website quality, social profile count and
// review count, each normalized, under the presence factor weights.
func scoreDigitalPresence(lead *domain.Lead, f PresenceFactors) float64 {
	if lead.DigitalPresence != nil {
		return clamp01(*lead.DigitalPresence)
	}
	websiteScore := float64(lead.WebsiteQuality) / 100
	socialScore := math.Min(1, float64(len(lead.SocialProfiles))/3)
	reviewsScore := math.Min(1, float64(lead.OnlineReviews)/5)

	score := websiteScore*f.WebsiteQuality +
		socialScore*f.SocialMedia +
		reviewsScore*f.OnlineReviews
	return clamp01(score)
}

func scoreGrowthIndicators(lead *domain.Lead) float64 {
	return math.Min(1, float64(len(lead.GrowthIndicators))/3)
}

func scoreServiceNeeds(lead *domain.Lead) float64 {
	return math.Min(1, float64(len(lead.ServiceNeeds))/3)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
