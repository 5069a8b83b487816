// Package money normalizes free-form monetary tokens from statement text.
// Statements mix decimal-comma and decimal-point conventions, so the
// parser resolves separators positionally instead of assuming a locale.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoAmount is returned when a string or line carries no parseable
// monetary value.
var ErrNoAmount = errors.New("no amount")

func keepNumeric(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r
	case r == '.' || r == ',':
		return r
	}
	return -1
}

// Parse normalizes a single monetary token into an unsigned decimal.
// Every separator but the last is treated as a thousands separator; the
// last one is the decimal point whether it is '.' or ','. The sign is
// discarded because issuers encode debits with either sign.
func Parse(text string) (decimal.Decimal, error) {
	cleaned := strings.Map(keepNumeric, text)
	if !strings.ContainsAny(cleaned, "0123456789") {
		return decimal.Zero, ErrNoAmount
	}

	lastSep := strings.LastIndexAny(cleaned, ".,")
	if lastSep >= 0 {
		var b strings.Builder
		b.Grow(len(cleaned))
		for i, r := range cleaned {
			if r == '.' || r == ',' {
				if i == lastSep {
					b.WriteByte('.')
				}
				continue
			}
			b.WriteRune(r)
		}
		cleaned = b.String()
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrNoAmount
	}
	return amount.Abs(), nil
}
