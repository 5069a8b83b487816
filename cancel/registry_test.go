package cancel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownMerchant(t *testing.T) {
	reg := Default()

	link := reg.Resolve("NETFLIX COM")
	assert.Equal(t, "Netflix", link.Label)
	assert.Equal(t, "https://www.netflix.com/cancelplan", link.URL)
}

func TestResolve_ForcedMerchantAlias(t *testing.T) {
	reg := Default()

	assert.Equal(t, "John Reed", reg.Resolve("John Reed").Label)
	assert.Equal(t, "John Reed", reg.Resolve("RSG GROUP BERLIN").Label)
}

func TestResolve_UnknownMerchantFallsBackToSearch(t *testing.T) {
	reg := Default()

	link := reg.Resolve("AUDIBLE GMBH")
	assert.Equal(t, "Search", link.Label)
	assert.Contains(t, link.URL, "https://www.google.com/search?q=")
	assert.Contains(t, link.URL, "AUDIBLE+GMBH")
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Config{
		Links: []EntryConfig{{Pattern: `([`, Label: "broken"}},
	}.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestCompile_EmptySearchURLGetsDefault(t *testing.T) {
	reg, err := Config{}.Compile()
	require.NoError(t, err)

	link := reg.Resolve("Unknown")
	assert.Contains(t, link.URL, "google.com/search")
}
