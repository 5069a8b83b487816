// Package cancel maps merchant names to cancellation help links. The
// registry is a best-effort lookup: an unknown merchant falls back to a
// web search link rather than no link at all.
package cancel

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/spf13/viper"

	"github.com/subtrackr/subscan/extractor/common"
)

// Entry pairs a merchant pattern with its cancellation link.
type Entry struct {
	Pattern *regexp.Regexp
	Link    common.CancelLink
}

// Registry resolves cancellation links for merchant names.
type Registry struct {
	entries   []Entry
	searchURL string
}

// New builds a registry from entries and a search fallback base URL.
func New(entries []Entry, searchURL string) *Registry {
	return &Registry{entries: entries, searchURL: searchURL}
}

// Resolve returns a cancellation link for the merchant. When no entry
// matches, it returns a search link so the user always has somewhere to
// go.
func (r *Registry) Resolve(merchant string) common.CancelLink {
	for _, e := range r.entries {
		if e.Pattern.MatchString(merchant) {
			return e.Link
		}
	}
	query := url.QueryEscape(merchant + " cancel subscription")
	return common.CancelLink{URL: r.searchURL + query, Label: "Search"}
}

// EntryConfig is an uncompiled registry entry as it appears in config.
type EntryConfig struct {
	Pattern string `mapstructure:"pattern"`
	URL     string `mapstructure:"url"`
	Label   string `mapstructure:"label"`
}

// Config is the raw registry configuration.
type Config struct {
	SearchURL string        `mapstructure:"search_url"`
	Links     []EntryConfig `mapstructure:"links"`
}

// Compile turns a Config into a Registry, validating patterns up front.
func (c Config) Compile() (*Registry, error) {
	searchURL := c.SearchURL
	if searchURL == "" {
		searchURL = "https://www.google.com/search?q="
	}
	entries := make([]Entry, 0, len(c.Links))
	for _, ec := range c.Links {
		re, err := regexp.Compile(ec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("cancel link %q: %w", ec.Label, err)
		}
		entries = append(entries, Entry{
			Pattern: re,
			Link:    common.CancelLink{URL: ec.URL, Label: ec.Label},
		})
	}
	return New(entries, searchURL), nil
}

// FromViper materializes the registry from the loaded configuration.
func FromViper() (*Registry, error) {
	var cfg Config
	if err := viper.UnmarshalKey("cancel", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read cancel config: %w", err)
	}
	return cfg.Compile()
}

// Default returns the built-in registry, mirroring the embedded
// configuration shipped with the CLI.
func Default() *Registry {
	reg, err := Config{
		SearchURL: "https://www.google.com/search?q=",
		Links: []EntryConfig{
			{Pattern: `(?i)netflix`, URL: "https://www.netflix.com/cancelplan", Label: "Netflix"},
			{Pattern: `(?i)spotify`, URL: "https://www.spotify.com/account/subscription/", Label: "Spotify"},
			{Pattern: `(?i)amazon|prime`, URL: "https://www.amazon.com/mc/pipelines/cancellation", Label: "Amazon Prime"},
			{Pattern: `(?i)disney`, URL: "https://www.disneyplus.com/account", Label: "Disney+"},
			{Pattern: `(?i)john\s*reed|rsg\s*group`, URL: "https://www.johnreed.fitness/faq", Label: "John Reed"},
		},
	}.Compile()
	if err != nil {
		panic(fmt.Sprintf("cancel: invalid default registry: %v", err))
	}
	return reg
}
