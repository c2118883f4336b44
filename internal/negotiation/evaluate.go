package negotiation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dealflow/internal/domain"
)

type Status string

const (
	StatusAccepted     Status = "accepted"
	StatusRejected     Status = "rejected"
	StatusCounterOffer Status = "counter_offer"
)

const rejectedReason = "Requested terms are outside our acceptable parameters"

// Evaluation is the per-kind verdict on one extracted request.
type Evaluation struct {
	Kind       domain.RequestKind
	Requested  float64
	Acceptable bool
	// Counter is the bounded value offered instead when the request exceeds
	// policy; equal to Requested when acceptable.
	Counter float64
}

// RushTerms price a rush delivery; rush requests are always acceptable and
// only ever priced, never refused.
type RushTerms struct {
	FeePercentage float64
	MinimumDays   int
}

// Terms are the adjusted commercial terms produced when every request is
// acceptable.
type Terms struct {
	Services            []string
	Price               float64
	Timeline            *domain.Timeline
	DiscountApplied     float64
	AdditionalRevisions int
	FeatureSubstitution bool
	RushFeeApplied      float64
	ExtensionDays       int
}

// CounterOffer carries the bounded alternatives for the refused kinds plus a
// deterministic human-readable rendering.
type CounterOffer struct {
	Discount            *float64
	AdditionalRevisions *int
	FeatureSubstitution *bool
	Rush                *RushTerms
	ExtensionDays       *int
	Rendered            string
}

// Outcome is the evaluator's decision for one negotiation round.
type Outcome struct {
	Status       Status
	Terms        *Terms
	CounterOffer *CounterOffer
	Reason       string
	Evaluations  []Evaluation
}

// Evaluate selects the deal's latest inbound-facing communication, extracts
// the negotiation requests from it and decides accepted, rejected or
// counter_offer against the rule set. A deal without communications returns
// domain.ErrNoCommunications.
func Evaluate(deal *domain.Deal, rules RuleSet) (*Outcome, error) {
	latest, err := deal.LatestCommunication()
	if err != nil {
		return nil, err
	}

	reqs := ExtractRequests(latest.Content)
	evals := evaluateRequests(reqs, rules)

	acceptable, unacceptable := 0, 0
	for _, e := range evals {
		if e.Acceptable {
			acceptable++
		} else {
			unacceptable++
		}
	}

	switch {
	case unacceptable == 0:
		// Covers the empty request set: nothing asked, nothing to refuse.
		return &Outcome{
			Status:      StatusAccepted,
			Terms:       finalTerms(deal.Proposal, reqs, rules),
			Evaluations: evals,
		}, nil
	case acceptable == 0:
		return &Outcome{
			Status:      StatusRejected,
			Reason:      rejectedReason,
			Evaluations: evals,
		}, nil
	default:
		return &Outcome{
			Status:       StatusCounterOffer,
			CounterOffer: buildCounterOffer(evals, rules),
			Evaluations:  evals,
		}, nil
	}
}

func evaluateRequests(reqs RequestSet, rules RuleSet) []Evaluation {
	var evals []Evaluation

	if reqs.PriceDiscount != nil {
		requested := *reqs.PriceDiscount
		maxDiscount := rules.PriceFlexibility.MaxDiscountPercentage
		evals = append(evals, Evaluation{
			Kind:       domain.RequestPriceDiscount,
			Requested:  requested,
			Acceptable: requested <= maxDiscount,
			Counter:    min(requested, maxDiscount),
		})
	}
	if reqs.AdditionalRevisions != nil {
		requested := *reqs.AdditionalRevisions
		maxRevisions := rules.ScopeFlexibility.AdditionalRevisions
		evals = append(evals, Evaluation{
			Kind:       domain.RequestAdditionalRevisions,
			Requested:  float64(requested),
			Acceptable: requested <= maxRevisions,
			Counter:    float64(min(requested, maxRevisions)),
		})
	}
	if reqs.FeatureAddition {
		substitution := rules.ScopeFlexibility.FeatureSubstitution
		evals = append(evals, Evaluation{
			Kind:       domain.RequestFeatureAddition,
			Requested:  1,
			Acceptable: substitution,
		})
	}
	if reqs.RushDelivery {
		// Always acceptable: compensated by the rush fee, never refused.
		evals = append(evals, Evaluation{
			Kind:       domain.RequestRushDelivery,
			Requested:  1,
			Acceptable: true,
			Counter:    rules.PriceFlexibility.RushFeePercentage,
		})
	}
	if reqs.TimelineExtension != nil {
		requested := *reqs.TimelineExtension
		maxExtension := rules.TimelineFlexibility.MaxExtensionDays
		evals = append(evals, Evaluation{
			Kind:       domain.RequestTimelineExtension,
			Requested:  float64(requested),
			Acceptable: requested <= maxExtension,
			Counter:    float64(min(requested, maxExtension)),
		})
	}
	return evals
}

// finalTerms applies every accepted adjustment to the proposal in the fixed
// order discount, revisions, feature substitution, rush, extension. Each step
// acts on the already-adjusted price and timeline of the previous one, so the
// order is normative even where steps commute.
func finalTerms(proposal *domain.Proposal, reqs RequestSet, rules RuleSet) *Terms {
	terms := &Terms{}
	if proposal != nil {
		terms.Services = append([]string(nil), proposal.Services...)
		terms.Price = proposal.Price
		terms.AdditionalRevisions = proposal.AdditionalRevisions
		terms.FeatureSubstitution = proposal.FeatureSubstitution
		if proposal.Timeline != nil {
			tl := *proposal.Timeline
			terms.Timeline = &tl
		}
	}

	if reqs.PriceDiscount != nil {
		terms.Price *= 1 - *reqs.PriceDiscount/100
		terms.DiscountApplied = *reqs.PriceDiscount
	}
	if reqs.AdditionalRevisions != nil {
		terms.AdditionalRevisions = *reqs.AdditionalRevisions
	}
	if reqs.FeatureAddition {
		terms.FeatureSubstitution = true
	}
	if reqs.RushDelivery {
		terms.Price *= 1 + rules.PriceFlexibility.RushFeePercentage/100
		terms.RushFeeApplied = rules.PriceFlexibility.RushFeePercentage
		// Rush overrides the end date rather than shifting it. Skipped when
		// the proposal carries no timeline.
		if terms.Timeline != nil {
			rushDays := rules.TimelineFlexibility.RushMinimumDays
			terms.Timeline.End = terms.Timeline.Start.Add(time.Duration(rushDays) * 24 * time.Hour)
			terms.Timeline.DurationDays = rushDays
		}
	}
	if reqs.TimelineExtension != nil {
		terms.ExtensionDays = *reqs.TimelineExtension
		if terms.Timeline != nil {
			terms.Timeline.End = terms.Timeline.End.Add(time.Duration(*reqs.TimelineExtension) * 24 * time.Hour)
			terms.Timeline.DurationDays += *reqs.TimelineExtension
		}
	}
	return terms
}

// buildCounterOffer collects the bounded alternatives for every refused kind
// and renders them in the fixed line order discount, revisions, feature,
// rush, extension.
func buildCounterOffer(evals []Evaluation, rules RuleSet) *CounterOffer {
	co := &CounterOffer{}
	for _, e := range evals {
		if e.Acceptable {
			continue
		}
		switch e.Kind {
		case domain.RequestPriceDiscount:
			v := e.Counter
			co.Discount = &v
		case domain.RequestAdditionalRevisions:
			v := int(e.Counter)
			co.AdditionalRevisions = &v
		case domain.RequestFeatureAddition:
			v := rules.ScopeFlexibility.FeatureSubstitution
			co.FeatureSubstitution = &v
		case domain.RequestRushDelivery:
			co.Rush = &RushTerms{
				FeePercentage: rules.PriceFlexibility.RushFeePercentage,
				MinimumDays:   rules.TimelineFlexibility.RushMinimumDays,
			}
		case domain.RequestTimelineExtension:
			v := int(e.Counter)
			co.ExtensionDays = &v
		}
	}
	co.Rendered = renderCounterOffer(co)
	return co
}

func renderCounterOffer(co *CounterOffer) string {
	var b strings.Builder
	b.WriteString("We can offer the following adjustments:\n\n")

	if co.Discount != nil {
		fmt.Fprintf(&b, "- A %g%% discount on the total price\n", *co.Discount)
	}
	if co.AdditionalRevisions != nil {
		fmt.Fprintf(&b, "- %d additional revision(s)\n", *co.AdditionalRevisions)
	}
	if co.FeatureSubstitution != nil && *co.FeatureSubstitution {
		b.WriteString("- We can substitute one feature for another of equivalent scope\n")
	}
	if co.Rush != nil {
		fmt.Fprintf(&b, "- Rush delivery with a minimum timeline of %d days, with a %g%% rush fee\n",
			co.Rush.MinimumDays, co.Rush.FeePercentage)
	}
	if co.ExtensionDays != nil {
		fmt.Fprintf(&b, "- A timeline extension of %d days\n", *co.ExtensionDays)
	}
	return b.String()
}
