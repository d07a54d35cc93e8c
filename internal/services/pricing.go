package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricedLine is one order line priced from the live product row.
type PricedLine struct {
	ProductID uint
	UnitPrice decimal.Decimal
	Quantity  int
}

type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals prices lines as subtotal - discount + shipping. The discount may not exceed
// the subtotal, so the total is never below the shipping cost.
func ComputeTotals(lines []PricedLine, discount, shipping decimal.Decimal) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if discount.IsNegative() {
		return Totals{}, fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	if shipping.IsNegative() {
		return Totals{}, fmt.Errorf("%w: shipping cost must not be negative", ErrInvalidInput)
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity < 1 {
			return Totals{}, fmt.Errorf("%w: quantity for product %d must be at least 1", ErrInvalidInput, l.ProductID)
		}
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if discount.GreaterThan(subtotal) {
		return Totals{}, fmt.Errorf("%w: discount %s exceeds subtotal %s", ErrInvalidInput, discount.StringFixed(2), subtotal.StringFixed(2))
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(shipping),
	}, nil
}
