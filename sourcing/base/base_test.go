package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrandAllowed(t *testing.T) {
	assert.True(t, BrandAllowed("Topman", nil))
	assert.True(t, BrandAllowed("Topman", []string{}))
	assert.True(t, BrandAllowed("ASOS DESIGN", []string{"asos design"}))
	assert.True(t, BrandAllowed("Nike Sportswear", []string{"nike"}))
	assert.False(t, BrandAllowed("Topman", []string{"gucci"}))
	assert.True(t, BrandAllowed("Topman", []string{"", "topman"}))
}

func TestPriceCeiling(t *testing.T) {
	assert.Equal(t, 150, PriceCeiling("150"))
	assert.Equal(t, 99, PriceCeiling("99.50"))
	assert.Equal(t, 49, PriceCeiling("49.99"))
	assert.Equal(t, 0, PriceCeiling(""))
	assert.Equal(t, 0, PriceCeiling("any"))
	assert.Equal(t, 0, PriceCeiling("-10"))
}

func TestLocaleStore(t *testing.T) {
	store, lang, currency := LocaleStore("en-GB")
	assert.Equal(t, "GB", store)
	assert.Equal(t, "en-GB", lang)
	assert.Equal(t, "GBP", currency)

	store, _, currency = LocaleStore("pt-BR")
	assert.Equal(t, "US", store)
	assert.Equal(t, "USD", currency)
}

func TestExternalID(t *testing.T) {
	assert.Equal(t, "asos-12345", ExternalID("asos", 12345))
	assert.Equal(t, "zalando-TO12-K11", ExternalID("zalando", "TO12-K11"))
}
