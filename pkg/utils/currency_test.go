package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToEUR(t *testing.T) {
	amount, ok := ConvertToEUR(100, "EUR")
	assert.True(t, ok)
	assert.Equal(t, 100.0, amount)

	amount, ok = ConvertToEUR(100, "usd")
	assert.True(t, ok)
	assert.InDelta(t, 92.0, amount, 0.001)

	// Unknown currencies pass through unchanged.
	amount, ok = ConvertToEUR(100, "XYZ")
	assert.False(t, ok)
	assert.Equal(t, 100.0, amount)
}
