package extractor

import (
	"regexp"
	"strings"

	"github.com/subtrackr/subscan/extractor/common"
)

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName produces the matching key for a merchant name:
// lower-cased, runs of non-alphanumeric characters collapsed to a single
// space, trimmed.
func NormalizeName(name string) string {
	return strings.TrimSpace(nonAlnumRuns.ReplaceAllString(strings.ToLower(name), " "))
}

// Deduplicate collapses candidates sharing a normalized-name key within
// one import batch. The earliest instance in document order wins; later
// duplicates are dropped silently.
func Deduplicate(candidates []common.Candidate) []common.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0:0]
	for _, c := range candidates {
		key := NormalizeName(c.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
