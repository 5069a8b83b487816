package money

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Token extraction prefers currency-adjacent numbers over bare ones so
// reference numbers that happen to look like amounts are not picked up.
var (
	currencySuffix = regexp.MustCompile(`(?i)(\d[\d.,]*)\s*(?:(?:EUR|USD|GBP|CHF)\b|[€$£])`)
	currencyPrefix = regexp.MustCompile(`(?i)(?:(?:EUR|USD|GBP|CHF)\b|[€$£])\s*(\d[\d.,]*)`)
	monetaryShape = regexp.MustCompile(`(?:^|[^\d.,])(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})(?:[^\d]|$)`)
)

// Extract finds the most plausible monetary token on a line and parses
// it. Returns ErrNoAmount when nothing on the line parses.
func Extract(line string) (decimal.Decimal, error) {
	if m := currencySuffix.FindStringSubmatch(line); m != nil {
		if amount, err := Parse(m[1]); err == nil {
			return amount, nil
		}
	}
	if m := currencyPrefix.FindStringSubmatch(line); m != nil {
		if amount, err := Parse(m[1]); err == nil {
			return amount, nil
		}
	}
	if m := monetaryShape.FindStringSubmatch(line); m != nil {
		if amount, err := Parse(m[1]); err == nil {
			return amount, nil
		}
	}
	return decimal.Zero, ErrNoAmount
}
