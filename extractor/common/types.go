package common

import (
	"github.com/shopspring/decimal"
)

// Source identifies which extraction path produced a candidate.
type Source string

const (
	SourcePDF Source = "pdf"
	SourceCSV Source = "csv"
)

// IntervalMonthly is the only billing interval the heuristic extraction
// path ever asserts. Annual detection is left to downstream cleanup.
const IntervalMonthly = "month"

// Candidate is a recurring-charge detection extracted from a statement.
// It lives in memory only: it is either promoted into a subscription
// record or discarded during review.
type Candidate struct {
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Interval       string          `json:"interval"`
	Source         Source          `json:"source"`
	SubscriptionID string          `json:"subscription_id,omitempty"`
	Cancel         *CancelLink     `json:"cancel,omitempty"`
}

// CancelLink points the user at a cancellation page for a merchant.
type CancelLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Fragment is one positioned text run from a PDF page. Y is the vertical
// baseline coordinate; EndOfRow is an explicit line-break signal from the
// loader, when it has one.
type Fragment struct {
	Text     string
	Y        float64
	EndOfRow bool
}

// Summary is the final accounting of an import run.
type Summary struct {
	CreatedCount  int `json:"created_count"`
	SkippedCount  int `json:"skipped_count"`
	CanceledCount int `json:"canceled_count"`
}
