package recommend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleConfig carries the rule scorer's weights and sector taxonomy. The
// zero value is unusable; start from DefaultRuleConfig or LoadRuleConfig.
type RuleConfig struct {
	Weights        RuleWeights         `yaml:"weights"`
	SectorTaxonomy map[string][]string `yaml:"sector_taxonomy"`
}

type RuleWeights struct {
	Skill        float64 `yaml:"skill"`
	Sector       float64 `yaml:"sector"`
	Location     float64 `yaml:"location"`
	Education    float64 `yaml:"education"`
	PerfectBonus float64 `yaml:"perfect_bonus"`
}

func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Weights: RuleWeights{
			Skill:        3,
			Sector:       2,
			Location:     2,
			Education:    1.5,
			PerfectBonus: 2,
		},
		SectorTaxonomy: map[string][]string{
			"technology": {"tech", "software", "development", "programming", "it"},
			"analytics":  {"data", "analysis", "research", "statistics"},
			"marketing":  {"digital", "social", "content", "advertising"},
			"finance":    {"financial", "banking", "investment", "accounting"},
		},
	}
}

// LoadRuleConfig reads weight and taxonomy overrides from a YAML file.
// An empty path returns the defaults; fields missing from the file keep
// their default values.
func LoadRuleConfig(path string) (RuleConfig, error) {
	cfg := DefaultRuleConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse rules file: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c RuleConfig) withDefaults() RuleConfig {
	def := DefaultRuleConfig()
	if c.Weights.Skill <= 0 {
		c.Weights.Skill = def.Weights.Skill
	}
	if c.Weights.Sector <= 0 {
		c.Weights.Sector = def.Weights.Sector
	}
	if c.Weights.Location <= 0 {
		c.Weights.Location = def.Weights.Location
	}
	if c.Weights.Education <= 0 {
		c.Weights.Education = def.Weights.Education
	}
	if c.Weights.PerfectBonus <= 0 {
		c.Weights.PerfectBonus = def.Weights.PerfectBonus
	}
	if len(c.SectorTaxonomy) == 0 {
		c.SectorTaxonomy = def.SectorTaxonomy
	}
	return c
}
