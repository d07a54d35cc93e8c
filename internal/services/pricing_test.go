package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	lines := []PricedLine{
		{ProductID: 1, UnitPrice: decimal.RequireFromString("100.00"), Quantity: 2},
		{ProductID: 2, UnitPrice: decimal.RequireFromString("0.10"), Quantity: 3},
	}

	totals, err := ComputeTotals(lines, decimal.RequireFromString("10"), decimal.RequireFromString("20"))
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("200.30")), totals.Subtotal.String())
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("210.30")), totals.Total.String())
}

func TestComputeTotals_Rejects(t *testing.T) {
	one := []PricedLine{{ProductID: 1, UnitPrice: decimal.NewFromInt(5), Quantity: 1}}

	tests := map[string]struct {
		lines    []PricedLine
		discount decimal.Decimal
		shipping decimal.Decimal
	}{
		"no lines":          {nil, decimal.Zero, decimal.Zero},
		"zero quantity":     {[]PricedLine{{ProductID: 1, UnitPrice: decimal.NewFromInt(5)}}, decimal.Zero, decimal.Zero},
		"negative discount": {one, decimal.NewFromInt(-1), decimal.Zero},
		"negative shipping": {one, decimal.Zero, decimal.NewFromInt(-1)},
		"over discount":     {one, decimal.RequireFromString("5.01"), decimal.NewFromInt(100)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeTotals(tt.lines, tt.discount, tt.shipping)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestComputeTotals_DiscountEqualToSubtotal(t *testing.T) {
	one := []PricedLine{{ProductID: 1, UnitPrice: decimal.NewFromInt(5), Quantity: 1}}
	totals, err := ComputeTotals(one, decimal.NewFromInt(5), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(3)))
}
