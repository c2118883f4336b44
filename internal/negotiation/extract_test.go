package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRequests(t *testing.T) {
	cases := []struct {
		name    string
		content string
		check   func(t *testing.T, r RequestSet)
	}{
		{
			name:    "discount keyword",
			content: "Any chance of a DISCOUNT here?",
			check: func(t *testing.T, r RequestSet) {
				require.NotNil(t, r.PriceDiscount)
				assert.Equal(t, 15.0, *r.PriceDiscount)
			},
		},
		{
			name:    "lower price phrasing",
			content: "we would need a lower price to proceed",
			check: func(t *testing.T, r RequestSet) {
				require.NotNil(t, r.PriceDiscount)
			},
		},
		{
			name:    "revisions",
			content: "could we get one additional revision round?",
			check: func(t *testing.T, r RequestSet) {
				require.NotNil(t, r.AdditionalRevisions)
				assert.Equal(t, 2, *r.AdditionalRevisions)
			},
		},
		{
			name:    "feature addition needs both keywords",
			content: "please add a booking feature",
			check: func(t *testing.T, r RequestSet) {
				assert.True(t, r.FeatureAddition)
			},
		},
		{
			name:    "feature word alone is not a request",
			content: "we love that feature",
			check: func(t *testing.T, r RequestSet) {
				assert.False(t, r.FeatureAddition)
			},
		},
		{
			name:    "rush delivery",
			content: "our deadline moved, we need this earlier",
			check: func(t *testing.T, r RequestSet) {
				assert.True(t, r.RushDelivery)
			},
		},
		{
			name:    "timeline extension",
			content: "we will need more time on our side",
			check: func(t *testing.T, r RequestSet) {
				require.NotNil(t, r.TimelineExtension)
				assert.Equal(t, 7, *r.TimelineExtension)
			},
		},
		{
			name:    "no matches yields empty set",
			content: "Sounds great, send over the contract.",
			check: func(t *testing.T, r RequestSet) {
				assert.True(t, r.Empty())
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, ExtractRequests(tc.content))
		})
	}
}
