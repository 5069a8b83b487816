// Package csvstmt extracts recurring-charge candidates from delimited
// statement exports. Column layout is sniffed from the header row; there
// is no shared schema across banks.
package csvstmt

import (
	"encoding/csv"
	"io"
	"log"
	"strings"

	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/extractor/money"
	"github.com/subtrackr/subscan/extractor/rules"
)

// ExtractCandidates parses raw CSV text into candidates. When the header
// yields no recognizable description or amount column the whole file
// produces zero candidates; there is no partial or guessed mapping.
func ExtractCandidates(raw string, r rules.ExtractionRules) []common.Candidate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	delimiter := sniffDelimiter(raw)

	reader := csv.NewReader(strings.NewReader(raw))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}

	nameCol := findColumn(header, r.NameKeywords)
	amountCol := findColumn(header, r.AmountKeywords)
	if nameCol < 0 || amountCol < 0 {
		log.Printf("Warning: no description/amount column in CSV header, skipping file")
		return nil
	}

	var candidates []common.Candidate
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: error reading CSV row: %v", err)
			continue
		}
		if len(record) <= nameCol || len(record) <= amountCol {
			continue
		}

		name := strings.TrimSpace(record[nameCol])
		amount, err := money.Parse(record[amountCol])
		if name == "" || err != nil || !amount.IsPositive() {
			continue
		}

		candidates = append(candidates, common.Candidate{
			Name:     name,
			Amount:   amount,
			Interval: common.IntervalMonthly,
			Source:   common.SourceCSV,
		})
	}

	return candidates
}

// sniffDelimiter counts comma versus semicolon occurrences in the header
// row. Ties favor comma. This is a heuristic, not a guarantee, for
// locales that export semicolon-delimited, comma-decimal files.
func sniffDelimiter(raw string) rune {
	headerLine := raw
	if idx := strings.IndexByte(raw, '\n'); idx >= 0 {
		headerLine = raw[:idx]
	}
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

// findColumn returns the first header column whose lower-cased text
// contains any of the given keywords, or -1.
func findColumn(header []string, keywords []string) int {
	for i, cell := range header {
		lowered := strings.ToLower(strings.TrimSpace(cell))
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				return i
			}
		}
	}
	return -1
}
