package negotiation

import "strings"

// Requested magnitudes assumed when a keyword matches but the message does
// not quantify the ask.
const (
	assumedDiscountPct   = 15.0
	assumedRevisions     = 2
	assumedExtensionDays = 7
)

// RequestSet is the structured negotiation asks extracted from one inbound
// communication. Absent kinds are nil/false.
type RequestSet struct {
	PriceDiscount       *float64
	AdditionalRevisions *int
	FeatureAddition     bool
	RushDelivery        bool
	TimelineExtension   *int
}

// Empty reports whether no request kind was detected.
func (r RequestSet) Empty() bool {
	return r.PriceDiscount == nil &&
		r.AdditionalRevisions == nil &&
		!r.FeatureAddition &&
		!r.RushDelivery &&
		r.TimelineExtension == nil
}

// ExtractRequests scans message content for negotiation keywords. Matching is
// case-insensitive and deterministic; content with no matches yields an empty
// set, which is not an error.
func ExtractRequests(content string) RequestSet {
	c := strings.ToLower(content)
	var reqs RequestSet

	if containsAny(c, "discount", "lower price", "reduce price") {
		d := assumedDiscountPct
		reqs.PriceDiscount = &d
	}
	if containsAny(c, "additional revision", "more revision") {
		n := assumedRevisions
		reqs.AdditionalRevisions = &n
	}
	if strings.Contains(c, "feature") && containsAny(c, "add", "include") {
		reqs.FeatureAddition = true
	}
	if containsAny(c, "deadline", "sooner", "earlier") {
		reqs.RushDelivery = true
	}
	if containsAny(c, "extend", "more time", "longer") {
		n := assumedExtensionDays
		reqs.TimelineExtension = &n
	}
	return reqs
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
