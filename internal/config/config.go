package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/dealflow/internal/negotiation"
	"github.com/alexanderramin/dealflow/internal/qualify"
)

// Config models dealflow.yml.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Intake struct {
		LeadsDir  string `yaml:"leads_dir"`
		OutboxDir string `yaml:"outbox_dir"`
	} `yaml:"intake"`

	Pipeline struct {
		IntervalSeconds      int `yaml:"interval_seconds"`
		MaxNegotiationRounds int `yaml:"max_negotiation_rounds"`
		SLA                  SLA `yaml:"sla"`
	} `yaml:"pipeline"`

	Qualification qualify.Weights     `yaml:"qualification"`
	Negotiation   negotiation.RuleSet `yaml:"negotiation"`
}

// SLA sets how long a deal may sit in each open status before the
// orchestrator advances it on its own. Zero means advance on the next cycle.
type SLA struct {
	ReceivedSeconds     int `yaml:"received_seconds"`
	OutreachSentSeconds int `yaml:"outreach_sent_seconds"`
	EngagedSeconds      int `yaml:"engaged_seconds"`
	ProposalSentSeconds int `yaml:"proposal_sent_seconds"`
}

// Interval returns the pipeline cycle interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Pipeline.IntervalSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	cfg.Database.Path = "dealflow.db"
	cfg.Server.Addr = ":8080"
	cfg.Intake.LeadsDir = "leads"
	cfg.Intake.OutboxDir = "outbox"
	cfg.Pipeline.IntervalSeconds = 15
	cfg.Pipeline.MaxNegotiationRounds = 3
	cfg.Pipeline.SLA = SLA{
		ReceivedSeconds:     0,
		OutreachSentSeconds: 1800,
		EngagedSeconds:      0,
		ProposalSentSeconds: 3600,
	}
	cfg.Qualification = qualify.DefaultWeights()
	cfg.Negotiation = negotiation.DefaultRuleSet()
	return &cfg
}

// Load reads config from path, falling back to defaults when the file does
// not exist. A present but invalid file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return FromYAML(data)
}

// FromYAML parses and validates config from raw YAML bytes. Omitted sections
// keep their default values.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("config.database.path is required")
	}
	if c.Intake.LeadsDir == "" {
		return fmt.Errorf("config.intake.leads_dir is required")
	}
	if c.Intake.OutboxDir == "" {
		return fmt.Errorf("config.intake.outbox_dir is required")
	}
	if c.Pipeline.IntervalSeconds <= 0 {
		return fmt.Errorf("config.pipeline.interval_seconds must be positive")
	}
	if c.Pipeline.MaxNegotiationRounds < 1 {
		return fmt.Errorf("config.pipeline.max_negotiation_rounds must be at least 1")
	}
	for name, v := range map[string]int{
		"received_seconds":      c.Pipeline.SLA.ReceivedSeconds,
		"outreach_sent_seconds": c.Pipeline.SLA.OutreachSentSeconds,
		"engaged_seconds":       c.Pipeline.SLA.EngagedSeconds,
		"proposal_sent_seconds": c.Pipeline.SLA.ProposalSentSeconds,
	} {
		if v < 0 {
			return fmt.Errorf("config.pipeline.sla.%s must not be negative", name)
		}
	}
	if err := validateWeights(c.Qualification); err != nil {
		return err
	}
	return validateRules(c.Negotiation)
}

func validateWeights(w qualify.Weights) error {
	for name, v := range map[string]float64{
		"business_maturity": w.BusinessMaturity,
		"digital_presence":  w.DigitalPresence,
		"growth_indicators": w.GrowthIndicators,
		"service_needs":     w.ServiceNeeds,
	} {
		if v < 0 {
			return fmt.Errorf("config.qualification.%s must not be negative", name)
		}
	}
	return nil
}

func validateRules(r negotiation.RuleSet) error {
	if r.PriceFlexibility.MaxDiscountPercentage < 0 || r.PriceFlexibility.MaxDiscountPercentage > 100 {
		return fmt.Errorf("config.negotiation.price_flexibility.max_discount_percentage must be in [0,100]")
	}
	if r.PriceFlexibility.RushFeePercentage < 0 {
		return fmt.Errorf("config.negotiation.price_flexibility.rush_fee_percentage must not be negative")
	}
	if r.ScopeFlexibility.AdditionalRevisions < 0 {
		return fmt.Errorf("config.negotiation.scope_flexibility.additional_revisions must not be negative")
	}
	if r.TimelineFlexibility.MaxExtensionDays < 0 {
		return fmt.Errorf("config.negotiation.timeline_flexibility.max_extension_days must not be negative")
	}
	if r.TimelineFlexibility.RushMinimumDays < 1 {
		return fmt.Errorf("config.negotiation.timeline_flexibility.rush_minimum_days must be at least 1")
	}
	return nil
}
