package service

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/dealflow/internal/domain"
)

// serviceDefinition is one sellable service in the catalog.
type serviceDefinition struct {
	ID        string
	Name      string
	Category  string
	BasePrice float64
}

var serviceCatalog = map[string]serviceDefinition{
	"website_design":                {ID: "website_design", Name: "Website Design", Category: "design", BasePrice: 800},
	"website_development":           {ID: "website_development", Name: "Website Development", Category: "web_development", BasePrice: 1200},
	"website_optimization":          {ID: "website_optimization", Name: "Website Optimization", Category: "web_development", BasePrice: 600},
	"website_maintenance":           {ID: "website_maintenance", Name: "Website Maintenance", Category: "web_development", BasePrice: 300},
	"social_media_account_creation": {ID: "social_media_account_creation", Name: "Social Media Account Creation", Category: "marketing", BasePrice: 200},
	"social_media_strategy":         {ID: "social_media_strategy", Name: "Social Media Strategy", Category: "marketing", BasePrice: 400},
	"social_media_management":       {ID: "social_media_management", Name: "Social Media Management", Category: "marketing", BasePrice: 500},
	"social_media_content":          {ID: "social_media_content", Name: "Social Media Content", Category: "content_creation", BasePrice: 400},
	"e_commerce_development":        {ID: "e_commerce_development", Name: "E-Commerce Development", Category: "web_development", BasePrice: 1500},
	"product_catalog_setup":         {ID: "product_catalog_setup", Name: "Product Catalog Setup", Category: "web_development", BasePrice: 500},
	"marketing_plan":                {ID: "marketing_plan", Name: "Marketing Plan", Category: "marketing", BasePrice: 600},
	"marketing_consultation":        {ID: "marketing_consultation", Name: "Marketing Consultation", Category: "marketing", BasePrice: 300},
	"content_marketing":             {ID: "content_marketing", Name: "Content Marketing", Category: "content_creation", BasePrice: 500},
	"email_marketing":               {ID: "email_marketing", Name: "Email Marketing", Category: "marketing", BasePrice: 400},
	"blog_post_writing":             {ID: "blog_post_writing", Name: "Blog Post Writing", Category: "content_creation", BasePrice: 300},
	"article_writing":               {ID: "article_writing", Name: "Article Writing", Category: "content_creation", BasePrice: 300},
	"seo_audit":                     {ID: "seo_audit", Name: "SEO Audit", Category: "analytics", BasePrice: 400},
	"seo_implementation":            {ID: "seo_implementation", Name: "SEO Implementation", Category: "web_development", BasePrice: 700},
	"analytics_setup":               {ID: "analytics_setup", Name: "Analytics Setup", Category: "analytics", BasePrice: 300},
	"performance_reporting":         {ID: "performance_reporting", Name: "Performance Reporting", Category: "analytics", BasePrice: 250},
}

// needServices maps an identified need to the services that address it.
var needServices = map[string][]string{
	"website_redesign":       {"website_design", "website_development"},
	"website_improvement":    {"website_optimization", "website_maintenance"},
	"social_media_setup":     {"social_media_account_creation", "social_media_strategy"},
	"social_media_expansion": {"social_media_management", "social_media_content"},
	"e_commerce_setup":       {"e_commerce_development", "product_catalog_setup"},
	"marketing_strategy":     {"marketing_plan", "marketing_consultation"},
	"marketing_services":     {"content_marketing", "email_marketing"},
	"content_creation":       {"blog_post_writing", "article_writing"},
	"seo_optimization":       {"seo_audit", "seo_implementation"},
	"analytics_reporting":    {"analytics_setup", "performance_reporting"},
}

// categoryDurations are base delivery durations per service category in days.
// Services run in parallel, so a proposal's duration is the longest category
// plus buffer, not the sum.
var categoryDurations = map[string]int{
	"content_creation": 7,
	"web_development":  14,
	"marketing":        10,
	"analytics":        5,
	"design":           7,
}

const (
	proposalStartOffsetDays = 3
	proposalBufferDays      = 3
	defaultServiceDuration  = 7
	bundleDiscountThreshold = 3
	bundleDiscount          = 0.10
)

// buildProposal derives deterministic commercial terms from a lead's
// identified needs. Scope scales with the number of needs, pricing tier with
// the enrichment maturity/presence scores.
func buildProposal(lead *domain.Lead, now time.Time) *domain.Proposal {
	services := servicesForNeeds(lead.IdentifiedNeeds)

	tierMultiplier := pricingTierMultiplier(lead)
	scopeMultiplier := scopeMultiplier(len(lead.IdentifiedNeeds))

	total := 0.0
	maxDuration := 0
	serviceIDs := make([]string, 0, len(services))
	for _, svc := range services {
		price := roundToTen(svc.BasePrice * tierMultiplier * scopeMultiplier)
		total += price
		if d, ok := categoryDurations[svc.Category]; ok {
			maxDuration = max(maxDuration, d)
		} else {
			maxDuration = max(maxDuration, defaultServiceDuration)
		}
		serviceIDs = append(serviceIDs, svc.ID)
	}
	if len(services) >= bundleDiscountThreshold {
		total = roundToTen(total * (1 - bundleDiscount))
	}

	if maxDuration == 0 {
		maxDuration = defaultServiceDuration
	}
	duration := maxDuration + proposalBufferDays
	start := now.AddDate(0, 0, proposalStartOffsetDays)

	return &domain.Proposal{
		Services: serviceIDs,
		Price:    total,
		Timeline: &domain.Timeline{
			Start:        start,
			End:          start.AddDate(0, 0, duration),
			DurationDays: duration,
		},
	}
}

// servicesForNeeds resolves needs into a deduplicated, alphabetically ordered
// service list. Unknown needs are skipped.
func servicesForNeeds(needs []string) []serviceDefinition {
	seen := make(map[string]bool)
	var services []serviceDefinition
	for _, need := range needs {
		for _, id := range needServices[need] {
			if seen[id] {
				continue
			}
			seen[id] = true
			services = append(services, serviceCatalog[id])
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

func pricingTierMultiplier(lead *domain.Lead) float64 {
	maturity, presence := 0.5, 0.5
	if lead.BusinessMaturity != nil {
		maturity = *lead.BusinessMaturity
	}
	if lead.DigitalPresence != nil {
		presence = *lead.DigitalPresence
	}
	combined := (maturity + presence) / 2
	switch {
	case combined < 0.4:
		return 0.8
	case combined < 0.7:
		return 1.0
	default:
		return 1.2
	}
}

func scopeMultiplier(needsCount int) float64 {
	switch {
	case needsCount <= 1:
		return 0.8
	case needsCount <= 3:
		return 1.0
	default:
		return 1.3
	}
}

func roundToTen(v float64) float64 {
	return math.Round(v/10) * 10
}

// serviceTypeFor picks the delivery service type for a project from the
// proposal's service categories, preferring the heaviest delivery track.
func serviceTypeFor(proposal *domain.Proposal) string {
	if proposal == nil {
		return "web_development"
	}
	categories := make(map[string]bool)
	for _, id := range proposal.Services {
		if svc, ok := serviceCatalog[id]; ok {
			categories[svc.Category] = true
		}
	}
	switch {
	case categories["web_development"] || categories["design"]:
		return "web_development"
	case categories["content_creation"]:
		return "content_creation"
	case categories["analytics"]:
		return "data_analysis"
	default:
		return "web_development"
	}
}
