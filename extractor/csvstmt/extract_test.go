package csvstmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrackr/subscan/extractor/common"
	"github.com/subtrackr/subscan/extractor/rules"
)

func TestExtractCandidates_CommaDelimited(t *testing.T) {
	raw := "Date,Description,Amount\n" +
		"2026-01-04,Spotify Premium,-10.99\n"

	candidates := ExtractCandidates(raw, rules.Default())

	require.Len(t, candidates, 1)
	assert.Equal(t, "Spotify Premium", candidates[0].Name)
	assert.Equal(t, "10.99", candidates[0].Amount.String())
	assert.Equal(t, common.IntervalMonthly, candidates[0].Interval)
	assert.Equal(t, common.SourceCSV, candidates[0].Source)
}

func TestExtractCandidates_SemicolonDelimitedCommaDecimals(t *testing.T) {
	raw := "Buchungstag;Verwendungszweck;Betrag\n" +
		"04.01.2026;NETFLIX.COM;-12,99\n" +
		"05.01.2026;AUDIBLE GMBH;-9,95\n"

	candidates := ExtractCandidates(raw, rules.Default())

	require.Len(t, candidates, 2)
	assert.Equal(t, "NETFLIX.COM", candidates[0].Name)
	assert.Equal(t, "12.99", candidates[0].Amount.String())
	assert.Equal(t, "AUDIBLE GMBH", candidates[1].Name)
	assert.Equal(t, "9.95", candidates[1].Amount.String())
}

func TestExtractCandidates_TieFavorsComma(t *testing.T) {
	// Zero commas, zero semicolons: single column header, no mapping.
	assert.Empty(t, ExtractCandidates("Description\nSpotify\n", rules.Default()))
}

func TestExtractCandidates_UnmappableHeaderYieldsNothing(t *testing.T) {
	raw := "Foo,Bar,Baz\n" +
		"2026-01-04,Spotify Premium,-10.99\n"

	assert.Empty(t, ExtractCandidates(raw, rules.Default()))
}

func TestExtractCandidates_MissingAmountColumnYieldsNothing(t *testing.T) {
	raw := "Date,Description\n" +
		"2026-01-04,Spotify Premium\n"

	assert.Empty(t, ExtractCandidates(raw, rules.Default()))
}

func TestExtractCandidates_SkipsRowsWithoutNameOrAmount(t *testing.T) {
	raw := "Date,Description,Amount\n" +
		"2026-01-04,,9.99\n" +
		"2026-01-05,Spotify Premium,\n" +
		"2026-01-06,Spotify Premium,0.00\n" +
		"2026-01-07,Netflix,12.99\n"

	candidates := ExtractCandidates(raw, rules.Default())

	require.Len(t, candidates, 1)
	assert.Equal(t, "Netflix", candidates[0].Name)
}

func TestExtractCandidates_ShortRowsAreSkipped(t *testing.T) {
	raw := "Date,Description,Amount\n" +
		"2026-01-04\n" +
		"2026-01-05,Netflix,12.99\n"

	candidates := ExtractCandidates(raw, rules.Default())

	require.Len(t, candidates, 1)
	assert.Equal(t, "Netflix", candidates[0].Name)
}

func TestExtractCandidates_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractCandidates("", rules.Default()))
	assert.Empty(t, ExtractCandidates("   \n", rules.Default()))
}
