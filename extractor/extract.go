// Package extractor turns an uploaded bank or card statement into a
// deduplicated list of recurring-charge candidates. It dispatches on the
// file extension and delegates to the PDF or CSV extraction path.
package extractor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/extractor/csvstmt"
	"github.com/subtrackr/subscan/extractor/pdfstmt"
	"github.com/subtrackr/subscan/extractor/rules"
)

var (
	// ErrUnsupportedFile is returned before any parsing when the file
	// extension is neither .pdf nor .csv.
	ErrUnsupportedFile = errors.New("unsupported file type, expected .pdf or .csv")

	// ErrNoCandidates is returned when extraction and deduplication
	// leave nothing. Distinct from a parse failure so the caller can
	// tell "nothing found" apart from "unreadable".
	ErrNoCandidates = errors.New("no subscription candidates found")
)

// FromFile extracts deduplicated candidates from a statement on disk.
func FromFile(path string, r rules.ExtractionRules) ([]common.Candidate, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer file.Close()
	return FromReader(file, path, r)
}

// FromReader extracts deduplicated candidates from statement content.
// The filename decides the extraction path.
func FromReader(reader io.Reader, filename string, r rules.ExtractionRules) ([]common.Candidate, error) {
	var candidates []common.Candidate

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		fragments, err := pdfstmt.LoadFragments(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read PDF: %w", err)
		}
		lines := pdfstmt.Reconstruct(fragments, r.LineTolerance)
		log.Printf("Reconstructed %d lines from %s", len(lines), filepath.Base(filename))
		candidates = pdfstmt.ExtractCandidates(lines, r)
	case ".csv":
		raw, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		candidates = csvstmt.ExtractCandidates(string(raw), r)
	default:
		return nil, ErrUnsupportedFile
	}

	candidates = Deduplicate(candidates)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	log.Printf("Extracted %d candidate(s) from %s", len(candidates), filepath.Base(filename))
	return candidates, nil
}
