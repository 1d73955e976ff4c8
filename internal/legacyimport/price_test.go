package legacyimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceToCentsMajorUnit(t *testing.T) {
	cents, err := PriceToCents("49.90", PriceUnitMajor)
	require.NoError(t, err)
	assert.Equal(t, 4990, cents)

	cents, err = PriceToCents("1500", PriceUnitMajor)
	require.NoError(t, err)
	assert.Equal(t, 150000, cents)
}

func TestPriceToCentsMinorUnit(t *testing.T) {
	cents, err := PriceToCents("4990", PriceUnitMinor)
	require.NoError(t, err)
	assert.Equal(t, 4990, cents)
}

func TestPriceToCentsEmpty(t *testing.T) {
	cents, err := PriceToCents("", PriceUnitMajor)
	require.NoError(t, err)
	assert.Equal(t, 0, cents)
}

func TestPriceToCentsRejectsBadInput(t *testing.T) {
	_, err := PriceToCents("free", PriceUnitMajor)
	assert.Error(t, err)

	_, err = PriceToCents("-10", PriceUnitMajor)
	assert.Error(t, err)

	// Minor-unit prices must be whole cents already.
	_, err = PriceToCents("49.90", PriceUnitMinor)
	assert.Error(t, err)

	// Sub-cent precision cannot be represented.
	_, err = PriceToCents("49.999", PriceUnitMajor)
	assert.Error(t, err)
}

func TestMappingFor(t *testing.T) {
	mapping, err := MappingFor("v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", mapping.Version)
	assert.Equal(t, PriceUnitMajor, mapping.PriceUnit)

	_, err = MappingFor("v99")
	assert.Error(t, err)
}

func TestSlugForCategory(t *testing.T) {
	mapping, err := MappingFor("v1")
	require.NoError(t, err)

	assert.Equal(t, "hoodies", mapping.SlugForCategory("  Худи "))
	assert.Equal(t, "", mapping.SlugForCategory("unknown"))
}
