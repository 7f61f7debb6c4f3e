package order

import (
	"errors"

	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

// Totals are the monetary fields fixed at placement.
type Totals struct {
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

// Pricing computes Totals from line items: a flat shipping fee waived at or
// above FreeShippingThreshold (zero disables the waiver) and a tax rate applied
// to the subtotal.
type Pricing struct {
	TaxRate               decimal.Decimal
	ShippingFlat          decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

// Validate checks that the tax rate is within [0, 1] and that the shipping fee
// and threshold are not negative.
func (p Pricing) Validate() error {
	var err error
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("taxRate", p.TaxRate.String(), 0, 1))
	}
	if p.ShippingFlat.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidError("shippingFlat"))
	}
	if p.FreeShippingThreshold.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidError("freeShippingThreshold"))
	}
	return err
}

// Quote computes totals for items. Every amount is rounded to cents, and tax
// is charged on the subtotal only.
//
// Example:
//
//	p := order.Pricing{TaxRate: decimal.RequireFromString("0.05"), ShippingFlat: decimal.RequireFromString("4.99")}
//	totals := p.Quote(items) // 2 x 20.00 -> subtotal 40.00, shipping 4.99, tax 2.00, total 46.99
func (p Pricing) Quote(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	subtotal = subtotal.Round(moneyPlaces)

	shipping := p.ShippingFlat
	if p.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	shipping = shipping.Round(moneyPlaces)

	tax := subtotal.Mul(p.TaxRate).Round(moneyPlaces)

	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
	}
}
