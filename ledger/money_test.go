package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want Money
	}{
		{in: 0, want: 0},
		{in: 33.34, want: 3334},
		{in: 100, want: 10000},
		{in: 0.1, want: 10},
		{in: 19.999, want: 2000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MoneyFromFloat(tt.in), "MoneyFromFloat(%v)", tt.in)
	}
}

func TestMoneyFromDecimal(t *testing.T) {
	m, err := MoneyFromDecimal(decimal.RequireFromString("40"))
	require.NoError(t, err)
	assert.Equal(t, Money(4000), m)

	m, err = MoneyFromDecimal(decimal.RequireFromString("33.34"))
	require.NoError(t, err)
	assert.Equal(t, Money(3334), m)

	_, err = MoneyFromDecimal(decimal.RequireFromString("0.005"))
	require.ErrorIs(t, err, ErrInvalidSplit)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "33.34", Money(3334).String())
	assert.Equal(t, "0.00", Money(0).String())
	assert.Equal(t, "-2.50", Money(-250).String())
	assert.Equal(t, "10000000.00", MaxAmount.String())
}
