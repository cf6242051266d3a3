package order

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/order-entry/internal/money"
)

// TaxRate is applied to the discounted subtotal.
var TaxRate = decimal.RequireFromString("0.14975")

// discountTiers are ordered from the highest threshold down. Thresholds are
// inclusive lower bounds on the rounded subtotal.
var discountTiers = []struct {
	threshold money.Money
	rate      decimal.Decimal
}{
	{threshold: money.MustParse("2000.00"), rate: decimal.RequireFromString("0.15")},
	{threshold: money.MustParse("1000.00"), rate: decimal.RequireFromString("0.10")},
	{threshold: money.MustParse("500.00"), rate: decimal.RequireFromString("0.05")},
}

// Pricing holds the derived monetary fields of an order.
type Pricing struct {
	Subtotal money.Money
	Discount money.Money
	Tax      money.Money
	Total    money.Money
}

// ComputePricing prices a set of lines. Line totals are summed unrounded and
// the sum is rounded once; discount, tax and total are each rounded to cents.
// Quantities and prices are taken as given, so negative values propagate.
func ComputePricing(lines []Line) Pricing {
	sum := money.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}

	subtotal := sum.Round2()
	discount := subtotal.MulRate(DiscountRate(subtotal)).Round2()
	taxable := subtotal.Sub(discount)
	tax := taxable.MulRate(TaxRate).Round2()
	total := taxable.Add(tax).Round2()

	return Pricing{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    total,
	}
}

// DiscountRate returns the tier rate for a rounded subtotal.
func DiscountRate(subtotal money.Money) decimal.Decimal {
	for _, tier := range discountTiers {
		if subtotal.Cmp(tier.threshold) >= 0 {
			return tier.rate
		}
	}
	return decimal.Zero
}
