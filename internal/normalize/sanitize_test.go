package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString_Trims(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
}

func TestSanitizeString_NullishValues(t *testing.T) {
	assert.Equal(t, "", SanitizeString(nil))
	assert.Equal(t, "", SanitizeString(""))
	assert.Equal(t, "", SanitizeString("   "))
	assert.Equal(t, "", SanitizeString("null"))
	assert.Equal(t, "", SanitizeString("NULL"))
	assert.Equal(t, "", SanitizeString("undefined"))
}

func TestSanitizeString_Numbers(t *testing.T) {
	assert.Equal(t, "42", SanitizeString(float64(42)))
	assert.Equal(t, "2.5", SanitizeString(2.5))
	assert.Equal(t, "7", SanitizeString(7))
}

func TestSanitizeString_UnsupportedShape(t *testing.T) {
	assert.Equal(t, "", SanitizeString(map[string]any{"a": 1}))
	assert.Equal(t, "", SanitizeString([]any{"a"}))
}
