// Package negotiation evaluates inbound deal communications against a
// configured rule set and decides whether to accept, reject or counter the
// requested adjustments. Evaluation is deterministic and pure; the caller
// applies the outcome to the deal.
package negotiation

// RuleSet bounds what the business is willing to concede in a negotiation.
type RuleSet struct {
	PriceFlexibility    PriceFlexibility    `yaml:"price_flexibility"`
	ScopeFlexibility    ScopeFlexibility    `yaml:"scope_flexibility"`
	TimelineFlexibility TimelineFlexibility `yaml:"timeline_flexibility"`
}

type PriceFlexibility struct {
	MaxDiscountPercentage float64 `yaml:"max_discount_percentage"`
	RushFeePercentage     float64 `yaml:"rush_fee_percentage"`
}

type ScopeFlexibility struct {
	AdditionalRevisions int  `yaml:"additional_revisions"`
	FeatureSubstitution bool `yaml:"feature_substitution"`
}

type TimelineFlexibility struct {
	MaxExtensionDays int `yaml:"max_extension_days"`
	RushMinimumDays  int `yaml:"rush_minimum_days"`
}

// DefaultRuleSet returns the standard negotiation bounds.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		PriceFlexibility: PriceFlexibility{
			MaxDiscountPercentage: 10,
			RushFeePercentage:     20,
		},
		ScopeFlexibility: ScopeFlexibility{
			AdditionalRevisions: 1,
			FeatureSubstitution: false,
		},
		TimelineFlexibility: TimelineFlexibility{
			MaxExtensionDays: 5,
			RushMinimumDays:  3,
		},
	}
}
