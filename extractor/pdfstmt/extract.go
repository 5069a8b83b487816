// Package pdfstmt extracts recurring-charge candidates from positioned
// PDF statement text.
package pdfstmt

import (
	"github.com/shopspring/decimal"

	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/extractor/money"
	"github.com/subtrackr/subscan/extractor/rules"
)

// ExtractCandidates walks reconstructed lines in order and emits raw
// candidates. Unstructured statements often print merchant and amount on
// adjacent visual rows, so a line with an amount but no usable name
// falls back to the previous line, then the next.
func ExtractCandidates(lines []string, r rules.ExtractionRules) []common.Candidate {
	var candidates []common.Candidate

	for i, line := range lines {
		if r.Suppressed(line) {
			continue
		}

		// A forced merchant can match a raw line that would otherwise be
		// mis-cleaned; it still needs an amount nearby.
		if forced, ok := r.ForcedName(line); ok {
			if amount, found := amountNear(lines, i); found {
				candidates = append(candidates, newCandidate(forced, amount))
			}
			continue
		}

		amount, err := money.Extract(line)
		if err != nil || !amount.IsPositive() {
			continue
		}

		name := r.CleanName(line)
		if !r.UsableName(name) {
			name = neighborName(lines, i, r)
		}
		if name == "" {
			// An amount with no recoverable name is discarded, not guessed.
			continue
		}

		// Some aliases only become visible after cleaning.
		if forced, ok := r.ForcedName(name); ok {
			name = forced
		}

		candidates = append(candidates, newCandidate(name, amount))
	}

	return candidates
}

// amountNear searches the current line, the next two, then the previous
// one for a usable amount, in that priority order.
func amountNear(lines []string, i int) (decimal.Decimal, bool) {
	for _, j := range []int{i, i + 1, i + 2, i - 1} {
		if j < 0 || j >= len(lines) {
			continue
		}
		if amount, err := money.Extract(lines[j]); err == nil && amount.IsPositive() {
			return amount, true
		}
	}
	return decimal.Zero, false
}

func neighborName(lines []string, i int, r rules.ExtractionRules) string {
	if i > 0 {
		if name := r.CleanName(lines[i-1]); r.UsableName(name) {
			return name
		}
	}
	if i+1 < len(lines) {
		if name := r.CleanName(lines[i+1]); r.UsableName(name) {
			return name
		}
	}
	return ""
}

func newCandidate(name string, amount decimal.Decimal) common.Candidate {
	return common.Candidate{
		Name:     name,
		Amount:   amount,
		Interval: common.IntervalMonthly,
		Source:   common.SourcePDF,
	}
}
