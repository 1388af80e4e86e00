package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_CountryAliases(t *testing.T) {
	assert.Equal(t, "Netherlands", Location("nederland", KindCountry))
	assert.Equal(t, "Netherlands", Location("The Netherlands", KindCountry))
	assert.Equal(t, "Netherlands", Location("NL", KindCountry))
	assert.Equal(t, "United States", Location("USA", KindCountry))
	assert.Equal(t, "United States", Location("united states of america", KindCountry))
}

func TestLocation_StateAliases(t *testing.T) {
	assert.Equal(t, "Noord-Holland", Location("noord holland", KindState))
	assert.Equal(t, "Noord-Holland", Location("NH", KindState))
	assert.Equal(t, "California", Location("CA", KindState))
}

func TestLocation_CityAliases(t *testing.T) {
	assert.Equal(t, "The Hague", Location("Den Haag", KindCity))
	assert.Equal(t, "'s-Hertogenbosch", Location("den bosch", KindCity))
	assert.Equal(t, "New York", Location("NYC", KindCity))
}

func TestLocation_TableMissTitleCases(t *testing.T) {
	assert.Equal(t, "Zwolle", Location("zwolle!!", KindCity))
	assert.Equal(t, "Nieuw Vennep", Location("nieuw-vennep", KindCity))
}

func TestLocation_CityConnectivesStayLower(t *testing.T) {
	assert.Equal(t, "Bergen op Zoom", Location("bergen op zoom", KindCity))
	assert.Equal(t, "Wijk bij Duurstede", Location("wijk bij duurstede", KindCity))
}

func TestLocation_StripsNonLatin(t *testing.T) {
	assert.Equal(t, "Amsterdam", Location("  Amsterdam, 1012 ", KindCity))
}

func TestLocation_Empty(t *testing.T) {
	assert.Equal(t, "", Location("", KindCountry))
	assert.Equal(t, "", Location(" 123 !! ", KindCity))
}

func TestGazetteer_Injectable(t *testing.T) {
	g, err := LoadGazetteer([]byte("country:\n  oz: Australia\n"))
	require.NoError(t, err)
	assert.Equal(t, "Australia", g.Normalize("OZ", KindCountry))
	// Miss falls back to title case, not the default tables.
	assert.Equal(t, "Nederland", g.Normalize("nederland", KindCountry))
}

func TestLoadGazetteer_BadYAML(t *testing.T) {
	_, err := LoadGazetteer([]byte("country: [not a map"))
	assert.Error(t, err)
}
