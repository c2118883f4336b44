package qualify

import (
	"strings"

	"github.com/alexanderramin/dealflow/internal/domain"
)

const maxIdentifiedNeeds = 3

// ecommercePlatforms are technologies whose presence means the lead already
// has an online store.
var ecommercePlatforms = map[string]bool{
	"shopify":     true,
	"woocommerce": true,
	"magento":     true,
}

// IdentifyNeeds runs the deterministic needs cascade: enrichment-estimated
// needs first, then deficiency rules on website quality, social presence,
// e-commerce technology and content topics. The result is deduplicated in
// first-occurrence order and capped at three entries.
func IdentifyNeeds(lead *domain.Lead) []string {
	var needs []string
	needs = append(needs, lead.ServiceNeeds...)

	switch {
	case lead.WebsiteQuality < 40:
		needs = append(needs, "website_redesign")
	case lead.WebsiteQuality < 70:
		needs = append(needs, "website_improvement")
	}

	switch {
	case len(lead.SocialProfiles) == 0:
		needs = append(needs, "social_media_setup")
	case len(lead.SocialProfiles) < 2:
		needs = append(needs, "social_media_expansion")
	}

	// Only meaningful when the technology stack is known; an empty list
	// means enrichment never detected technologies, not that the business
	// lacks a store.
	if len(lead.Technologies) > 0 && !hasEcommerceTech(lead.Technologies) {
		needs = append(needs, "e_commerce_setup")
	}

	for _, topic := range lead.ContentTopics {
		if topic == "marketing" {
			needs = append(needs, "marketing_strategy")
			break
		}
	}

	seen := make(map[string]bool, len(needs))
	unique := make([]string, 0, maxIdentifiedNeeds)
	for _, n := range needs {
		if seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
		if len(unique) == maxIdentifiedNeeds {
			break
		}
	}
	return unique
}

func hasEcommerceTech(technologies []string) bool {
	for _, tech := range technologies {
		if ecommercePlatforms[strings.ToLower(tech)] {
			return true
		}
	}
	return false
}
