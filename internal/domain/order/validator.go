package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxDiscountRate is the largest discount, as a fraction of the subtotal,
// that a valid order may carry.
var MaxDiscountRate = decimal.RequireFromString("0.15")

// Validate returns every problem found in o; an empty result means o may be
// saved. All checks run, none short-circuit.
//
// The discount cap is checked against the Subtotal and Discount stored on o,
// not against amounts recomputed from its lines, so stale pricing is caught.
func Validate(o Order) []string {
	var errs []string

	if o.CustomerID == nil {
		errs = append(errs, "Customer is required")
	}

	if len(o.Lines) == 0 {
		errs = append(errs, "Order must have at least one line item")
	} else {
		for i, l := range o.Lines {
			errs = append(errs, validateLine(l, i+1)...)
		}
	}

	if o.Subtotal.IsPositive() {
		rate := o.Discount.Ratio(o.Subtotal, 4)
		if rate.GreaterThan(MaxDiscountRate) {
			errs = append(errs, "Discount cannot exceed 15%")
		}
	}

	return errs
}

func validateLine(l Line, n int) []string {
	var errs []string
	if l.Quantity <= 0 {
		errs = append(errs, fmt.Sprintf("Line %d: Quantity must be positive", n))
	}
	if l.UnitPrice == nil || l.UnitPrice.IsNegative() {
		errs = append(errs, fmt.Sprintf("Line %d: Unit price must be zero or greater", n))
	}
	if l.ProductID == nil {
		errs = append(errs, fmt.Sprintf("Line %d: Product is required", n))
	}
	return errs
}

// IsValid reports whether Validate finds no problems.
func IsValid(o Order) bool {
	return len(Validate(o)) == 0
}
