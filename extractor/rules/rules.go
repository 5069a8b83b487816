// Package rules holds the pattern tables that drive statement
// extraction: the suppression set, the ordered name-cleaning stages, the
// forced-merchant aliases, and the CSV header keyword sets. Rule sets
// are built once at startup and passed into the pipeline explicitly so
// they can be swapped per locale or bank without touching pipeline code.
package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is a single named pattern stage.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// ForcedMerchant overrides the cleaned name when a line matches a known
// alias pattern whose literal text would clean to something unusable.
type ForcedMerchant struct {
	Pattern *regexp.Regexp
	Name    string
}

// ExtractionRules is the full rule set consumed by the extractors.
type ExtractionRules struct {
	// Suppress disqualifies a line from ever becoming a candidate.
	Suppress []Rule
	// Cleaners run in order against a line to leave a merchant name.
	// Order matters: the date rule must run before the generic amount
	// rule, or a date would be partially consumed as a monetary token.
	Cleaners []Rule
	// Forced is consulted against the raw line and again against the
	// cleaned name.
	Forced []ForcedMerchant

	// NameKeywords and AmountKeywords map CSV header cells to columns.
	NameKeywords   []string
	AmountKeywords []string

	// DefaultCategory is submitted on every created subscription and
	// re-assigned downstream by the categorization subsystem.
	DefaultCategory string

	// LineTolerance is the maximum vertical distance, in PDF text-space
	// units, between fragments that still belong to the same visual row.
	LineTolerance float64
}

var hasLetter = regexp.MustCompile(`[A-Za-zÄÖÜäöüß]`)

// Suppressed reports whether a line matches the suppression set and must
// never become a candidate, even when it carries a valid amount.
func (r ExtractionRules) Suppressed(line string) bool {
	for _, rule := range r.Suppress {
		if rule.Pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// CleanName runs the ordered removal stages against a raw line and
// collapses the remaining whitespace.
func (r ExtractionRules) CleanName(line string) string {
	s := line
	for _, rule := range r.Cleaners {
		s = rule.Pattern.ReplaceAllString(s, " ")
	}
	return strings.Join(strings.Fields(s), " ")
}

// UsableName reports whether a cleaned name can stand as a merchant
// name. A line can clean down to pure noise, or to text that is itself
// suppression wording.
func (r ExtractionRules) UsableName(name string) bool {
	if name == "" || !hasLetter.MatchString(name) {
		return false
	}
	return !r.Suppressed(name)
}

// ForcedName returns the canonical display name for a line matching a
// forced-merchant alias.
func (r ExtractionRules) ForcedName(line string) (string, bool) {
	for _, fm := range r.Forced {
		if fm.Pattern.MatchString(line) {
			return fm.Name, true
		}
	}
	return "", false
}

// Default returns the built-in rule set. It mirrors the embedded
// configuration shipped with the CLI.
func Default() ExtractionRules {
	r, err := Config{
		Suppress: []PatternConfig{
			{Name: "balance", Pattern: `(?i)\b(saldo|balance|kontostand|zwischensumme|summe|uebertrag|übertrag|total)\b`},
			{Name: "account-number", Pattern: `(?i)\b(iban|bic|kartennummer|kontonummer|card\s?number|account\s?number)\b`},
			{Name: "posting-metadata", Pattern: `(?i)\b(buchungstag|wertstellung|valuta|buchungsdatum|booking\s?date|value\s?date|posting\s?date)\b`},
		},
		Cleaners: []PatternConfig{
			{Name: "dates", Pattern: `\b\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`},
			{Name: "iban", Pattern: `\b[A-Z]{2}\d{2}[A-Za-z0-9]{11,30}\b`},
			{Name: "currency", Pattern: `(?i)\b(EUR|USD|GBP|CHF)\b|[€$£]`},
			{Name: "amounts", Pattern: `[-+]?\d[\d.,]*`},
			{Name: "separators", Pattern: `[.,/\\:;|*#_'"()\[\]+-]+`},
		},
		ForcedMerchants: []ForcedMerchantConfig{
			{Pattern: `(?i)\bRSG\s*GROUP\b`, Name: "John Reed"},
		},
		CSV: CSVConfig{
			NameKeywords:   []string{"description", "beschreibung", "verwendungszweck", "buchungstext", "empfänger", "payee", "merchant", "name"},
			AmountKeywords: []string{"amount", "betrag", "umsatz", "value", "debit"},
		},
		DefaultCategory: "uncategorized",
		LineTolerance:   4.0,
	}.Compile()
	if err != nil {
		// The built-in tables are static; a bad pattern is a programming
		// error, not a runtime condition.
		panic(fmt.Sprintf("rules: invalid default rule set: %v", err))
	}
	return r
}
