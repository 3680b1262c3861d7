package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchKey_Deterministic(t *testing.T) {
	k1 := SearchKey("Goa", 3, []string{"beaches", "food"}, "Lisbon")
	k2 := SearchKey("Goa", 3, []string{"beaches", "food"}, "Lisbon")
	assert.Equal(t, k1, k2)
}

func TestSearchKey_NormalizesCaseAndWhitespace(t *testing.T) {
	k1 := SearchKey("  Goa ", 3, []string{" Beaches"}, "LISBON")
	k2 := SearchKey("goa", 3, []string{"beaches"}, "lisbon")
	assert.Equal(t, k1, k2)
}

func TestSearchKey_DistinguishesParameters(t *testing.T) {
	base := SearchKey("goa", 3, nil, "")
	assert.NotEqual(t, base, SearchKey("goa", 2, nil, ""))
	assert.NotEqual(t, base, SearchKey("goa", 3, []string{"food"}, ""))
	assert.NotEqual(t, base, SearchKey("goa", 3, nil, "lisbon"))
	assert.NotEqual(t, base, SearchKey("kerala", 3, nil, ""))
}

func TestSearchKey_CarriesKindAndVersion(t *testing.T) {
	assert.Equal(t, "itinerary:v2:goa:3::", SearchKey("Goa", 3, nil, ""))
}

func TestProfileAndHeroKeys(t *testing.T) {
	assert.Equal(t, "profile:v1:goa", ProfileKey("Goa"))
	assert.Equal(t, "hero:v1:goa", HeroKey(" Goa "))
	assert.NotEqual(t, ProfileKey("goa"), HeroKey("goa"))
}
