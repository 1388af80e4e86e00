package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone_DoubleZeroPrefix(t *testing.T) {
	assert.Equal(t, "+31612345678", Phone("0031612345678"))
	assert.Equal(t, "+4915112345678", Phone("004915112345678"))
}

func TestPhone_PlusPassesThrough(t *testing.T) {
	assert.Equal(t, "+31612345678", Phone("+31 6 1234 5678"))
}

func TestPhone_StripsSeparators(t *testing.T) {
	assert.Equal(t, "+31612345678", Phone("+31 (6) 12-34.56 78"))
}

func TestPhone_BareCountryCode(t *testing.T) {
	assert.Equal(t, "+31612345678", Phone("31612345678"))
}

func TestPhone_TrunkZeroReplaced(t *testing.T) {
	assert.Equal(t, "+31612345678", Phone("0612345678"))
	assert.Equal(t, "+31201234567", Phone("020-123 45 67"))
}

func TestPhone_TooShort(t *testing.T) {
	assert.Equal(t, "", Phone("12345"))
	assert.Equal(t, "", Phone("+316"))
	assert.Equal(t, "", Phone(""))
}

func TestPhoneWithCountry_OtherPlan(t *testing.T) {
	assert.Equal(t, "+49301234567", PhoneWithCountry("0301234567", "49"))
}
