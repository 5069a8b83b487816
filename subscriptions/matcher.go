package subscriptions

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/subtrackr/subscan/extractor"
)

// priceEpsilon disambiguates two subscriptions that share a normalized
// name but differ in amount.
var priceEpsilon = decimal.NewFromFloat(0.01)

// Matcher reconciles extracted candidates against a snapshot of tracked
// subscriptions. It backs both phases: skipping candidates that already
// exist, and binding candidates back to persisted identifiers after
// creation. Store order is preserved so first-seen wins ties.
type Matcher struct {
	subs []Subscription
	keys []string
}

// NewMatcher builds a matcher over a store snapshot.
func NewMatcher(subs []Subscription) *Matcher {
	keys := make([]string, len(subs))
	for i, s := range subs {
		keys[i] = extractor.NormalizeName(s.Name)
	}
	return &Matcher{subs: subs, keys: keys}
}

// Exists reports whether a candidate name matches a tracked
// subscription.
func (m *Matcher) Exists(name string) bool {
	_, ok := m.Match(name, decimal.Zero, false)
	return ok
}

// Match finds the subscription a candidate binds to. Names match when
// their normalized forms are equal or one contains the other: a
// statement line cleans to "NETFLIX COM" while the tracked record says
// "Netflix". When matchPrice is set (freshly created candidates), the
// price must also agree within a small epsilon.
func (m *Matcher) Match(name string, amount decimal.Decimal, matchPrice bool) (Subscription, bool) {
	key := extractor.NormalizeName(name)
	if key == "" {
		return Subscription{}, false
	}

	for i, s := range m.subs {
		if !nameMatches(key, m.keys[i]) {
			continue
		}
		if matchPrice && s.Price.Sub(amount).Abs().GreaterThan(priceEpsilon) {
			continue
		}
		return s, true
	}
	return Subscription{}, false
}

func nameMatches(candidateKey, subKey string) bool {
	if subKey == "" {
		return false
	}
	return candidateKey == subKey ||
		strings.Contains(candidateKey, subKey) ||
		strings.Contains(subKey, candidateKey)
}
