package pdfstmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/extractor/rules"
)

func TestExtractCandidates_SuppressesBalanceLines(t *testing.T) {
	lines := []string{
		"NETFLIX.COM   12,99 EUR",
		"SALDO   842,10 EUR",
	}

	candidates := ExtractCandidates(lines, rules.Default())

	require.Len(t, candidates, 1)
	assert.Equal(t, "NETFLIX COM", candidates[0].Name)
	assert.Equal(t, "12.99", candidates[0].Amount.String())
	assert.Equal(t, common.IntervalMonthly, candidates[0].Interval)
	assert.Equal(t, common.SourcePDF, candidates[0].Source)
}

func TestExtractCandidates_SuppressedLineWithAmountNeverEmits(t *testing.T) {
	lines := []string{
		"ENDING BALANCE 1.234,56 EUR",
		"IBAN DE44 5001 0517 5407 3249 31",
		"Kartennummer 4242 4242 4242 4242",
	}

	assert.Empty(t, ExtractCandidates(lines, rules.Default()))
}

func TestExtractCandidates_ForcedMerchant(t *testing.T) {
	lines := []string{
		"RSG GROUP BERLIN 24,90",
	}

	candidates := ExtractCandidates(lines, rules.Default())

	require.Len(t, candidates, 1)
	assert.Equal(t, "John Reed", candidates[0].Name)
	assert.Equal(t, "24.9", candidates[0].Amount.String())
}

func TestExtractCandidates_ForcedMerchantAmountOnNeighborLine(t *testing.T) {
	lines := []string{
		"RSG GROUP BERLIN",
		"24,90 EUR",
	}

	candidates := ExtractCandidates(lines, rules.Default())

	// The amount line re-derives the same merchant through the neighbor
	// fallback; batch deduplication collapses the pair downstream.
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.Equal(t, "John Reed", c.Name)
		assert.Equal(t, "24.9", c.Amount.String())
	}
}

func TestExtractCandidates_ForcedMerchantWithoutAmountIsDropped(t *testing.T) {
	lines := []string{
		"RSG GROUP BERLIN",
		"MEMBER SINCE TWENTY TWENTY",
	}

	assert.Empty(t, ExtractCandidates(lines, rules.Default()))
}

func TestExtractCandidates_NeighborLineNameFallback(t *testing.T) {
	// Merchant and amount printed on adjacent visual rows.
	lines := []string{
		"AUDIBLE GMBH",
		"123456 9,95 EUR",
	}

	candidates := ExtractCandidates(lines, rules.Default())

	require.Len(t, candidates, 1)
	assert.Equal(t, "AUDIBLE GMBH", candidates[0].Name)
	assert.Equal(t, "9.95", candidates[0].Amount.String())
}

func TestExtractCandidates_AmountWithoutRecoverableNameIsDropped(t *testing.T) {
	lines := []string{
		"1234 5678",
		"12,99 EUR",
		"9876 5432",
	}

	assert.Empty(t, ExtractCandidates(lines, rules.Default()))
}

func TestExtractCandidates_LineWithoutAmountIsSkipped(t *testing.T) {
	lines := []string{
		"THANK YOU FOR BANKING WITH US",
	}

	assert.Empty(t, ExtractCandidates(lines, rules.Default()))
}
