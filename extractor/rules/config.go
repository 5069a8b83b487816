package rules

import (
	"fmt"
	"regexp"

	"github.com/spf13/viper"
)

// PatternConfig is an uncompiled named pattern as it appears in config.
type PatternConfig struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
}

// ForcedMerchantConfig is an uncompiled forced-merchant alias.
type ForcedMerchantConfig struct {
	Pattern string `mapstructure:"pattern"`
	Name    string `mapstructure:"name"`
}

// CSVConfig holds the header keyword sets for CSV column mapping.
type CSVConfig struct {
	NameKeywords   []string `mapstructure:"name_keywords"`
	AmountKeywords []string `mapstructure:"amount_keywords"`
}

// Config is the raw rule configuration before pattern compilation.
type Config struct {
	Suppress        []PatternConfig        `mapstructure:"suppress"`
	Cleaners        []PatternConfig        `mapstructure:"cleaners"`
	ForcedMerchants []ForcedMerchantConfig `mapstructure:"forced_merchants"`
	CSV             CSVConfig              `mapstructure:"csv"`
	DefaultCategory string                 `mapstructure:"default_category"`
	LineTolerance   float64                `mapstructure:"line_tolerance"`
}

// Compile turns a Config into an ExtractionRules value, validating every
// pattern up front.
func (c Config) Compile() (ExtractionRules, error) {
	r := ExtractionRules{
		NameKeywords:    c.CSV.NameKeywords,
		AmountKeywords:  c.CSV.AmountKeywords,
		DefaultCategory: c.DefaultCategory,
		LineTolerance:   c.LineTolerance,
	}
	if r.LineTolerance <= 0 {
		r.LineTolerance = 4.0
	}

	for _, pc := range c.Suppress {
		re, err := regexp.Compile(pc.Pattern)
		if err != nil {
			return ExtractionRules{}, fmt.Errorf("suppress rule %q: %w", pc.Name, err)
		}
		r.Suppress = append(r.Suppress, Rule{Name: pc.Name, Pattern: re})
	}
	for _, pc := range c.Cleaners {
		re, err := regexp.Compile(pc.Pattern)
		if err != nil {
			return ExtractionRules{}, fmt.Errorf("cleaner rule %q: %w", pc.Name, err)
		}
		r.Cleaners = append(r.Cleaners, Rule{Name: pc.Name, Pattern: re})
	}
	for _, fc := range c.ForcedMerchants {
		re, err := regexp.Compile(fc.Pattern)
		if err != nil {
			return ExtractionRules{}, fmt.Errorf("forced merchant %q: %w", fc.Name, err)
		}
		r.Forced = append(r.Forced, ForcedMerchant{Pattern: re, Name: fc.Name})
	}
	return r, nil
}

// FromViper materializes the rule set from the loaded configuration.
func FromViper() (ExtractionRules, error) {
	var cfg Config
	if err := viper.UnmarshalKey("rules", &cfg); err != nil {
		return ExtractionRules{}, fmt.Errorf("failed to read rules config: %w", err)
	}
	return cfg.Compile()
}
