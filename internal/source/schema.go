// Package source implements file-drop lead intake. Operators (or upstream
// scrapers) drop YAML lead files into a watched directory; each orchestrator
// cycle picks them up, converts them to raw leads and archives the files so
// they are discovered exactly once.
package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LeadFile is the top-level YAML structure for a dropped lead file.
type LeadFile struct {
	Source string       `yaml:"source"`
	Leads  []LeadImport `yaml:"leads"`
}

// LeadImport defines one prospect record in a lead file. Enrichment fields
// are optional; absent fields score with neutral defaults downstream.
type LeadImport struct {
	BusinessName     string   `yaml:"business_name"`
	Source           string   `yaml:"source,omitempty"`
	Website          string   `yaml:"website,omitempty"`
	WebsiteQuality   int      `yaml:"website_quality,omitempty"`
	SocialProfiles   []string `yaml:"social_profiles,omitempty"`
	Technologies     []string `yaml:"technologies,omitempty"`
	ContentTopics    []string `yaml:"content_topics,omitempty"`
	OnlineReviews    int      `yaml:"online_reviews,omitempty"`
	GrowthIndicators []string `yaml:"growth_indicators,omitempty"`
	ServiceNeeds     []string `yaml:"service_needs,omitempty"`
	BusinessMaturity *float64 `yaml:"business_maturity,omitempty"`
	DigitalPresence  *float64 `yaml:"digital_presence,omitempty"`
}

// LoadLeadFile reads and parses a dropped lead YAML file.
func LoadLeadFile(path string) (*LeadFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file LeadFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing lead file: %w", err)
	}
	return &file, nil
}
