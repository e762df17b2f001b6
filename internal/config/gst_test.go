package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
)

func TestGSTConfigHolderDefaults(t *testing.T) {
	holder, err := NewGSTConfigHolder(zap.NewNop())
	require.NoError(t, err)

	rates := holder.Rates()
	assert.Equal(t, 9.0, rates.SGSTPercent)
	assert.Equal(t, 9.0, rates.CGSTPercent)
	assert.Equal(t, 18.0, rates.IGSTPercent)
}

func TestValidateGSTRates(t *testing.T) {
	assert.NoError(t, validateGSTRates(fee.DefaultRates()))
	assert.NoError(t, validateGSTRates(fee.Rates{SGSTPercent: 6, CGSTPercent: 6, IGSTPercent: 12}))

	assert.Error(t, validateGSTRates(fee.Rates{SGSTPercent: -1, CGSTPercent: 10, IGSTPercent: 9}))
	// The split must add up to the inter-state rate.
	assert.Error(t, validateGSTRates(fee.Rates{SGSTPercent: 9, CGSTPercent: 9, IGSTPercent: 20}))
}
