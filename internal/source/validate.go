package source

import "fmt"

// ValidateLeadFile checks a parsed lead file before conversion.
// Returns a slice of all validation errors found.
func ValidateLeadFile(file *LeadFile) []error {
	var errs []error

	if len(file.Leads) == 0 {
		errs = append(errs, fmt.Errorf("leads: at least one entry is required"))
	}
	for i, l := range file.Leads {
		errs = append(errs, validateLead(i, &l)...)
	}

	return errs
}

func validateLead(i int, l *LeadImport) []error {
	var errs []error

	if l.BusinessName == "" {
		errs = append(errs, fmt.Errorf("leads[%d].business_name is required", i))
	}
	if l.WebsiteQuality < 0 || l.WebsiteQuality > 100 {
		errs = append(errs, fmt.Errorf("leads[%d].website_quality: %d is outside 0-100", i, l.WebsiteQuality))
	}
	if l.OnlineReviews < 0 {
		errs = append(errs, fmt.Errorf("leads[%d].online_reviews must not be negative", i))
	}
	if l.BusinessMaturity != nil && (*l.BusinessMaturity < 0 || *l.BusinessMaturity > 1) {
		errs = append(errs, fmt.Errorf("leads[%d].business_maturity: %v is outside 0-1", i, *l.BusinessMaturity))
	}
	if l.DigitalPresence != nil && (*l.DigitalPresence < 0 || *l.DigitalPresence > 1) {
		errs = append(errs, fmt.Errorf("leads[%d].digital_presence: %v is outside 0-1", i, *l.DigitalPresence))
	}

	return errs
}
