package pdfstmt

import (
	"math"
	"strings"

	"github.com/subtrackr/subscan/extractor/common"
)

// Reconstruct folds a stream of positioned fragments into logical lines.
// A fragment joins the open line while its vertical coordinate stays
// within tolerance of the previous fragment; a larger jump, or an
// explicit end-of-row signal, starts a new line. Single pass, no sort:
// fragment order from the loader is already page order.
func Reconstruct(fragments []common.Fragment, tolerance float64) []string {
	lines := make([]string, 0, len(fragments))

	var buf strings.Builder
	var lastY float64
	var prevEnd bool
	open := false

	flush := func() {
		if line := strings.TrimSpace(buf.String()); line != "" {
			lines = append(lines, line)
		}
		buf.Reset()
		open = false
	}

	for _, frag := range fragments {
		if open && (prevEnd || math.Abs(frag.Y-lastY) > tolerance) {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(frag.Text)
		open = true
		lastY = frag.Y
		prevEnd = frag.EndOfRow
	}
	flush()

	return lines
}
