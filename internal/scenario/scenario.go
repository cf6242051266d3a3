// Package scenario evaluates batches of ephemeral orders through the same
// pricing and validation entry points the order service uses, and renders the
// results as canonical JSON for parity checks.
package scenario

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xenking/order-entry/internal/domain/order"
	"github.com/xenking/order-entry/internal/money"
)

// CustomerName is the name given to every scenario order.
const CustomerName = "Test Customer"

// Input describes one scenario: a customer reference and a list of lines
// with explicit unit prices. A nil ScenarioName is echoed as null.
type Input struct {
	ScenarioName *string     `json:"scenarioName"`
	CustomerID   *int64      `json:"customerId"`
	Lines        []InputLine `json:"lines"`
}

// InputLine is a scenario line. Nil pointers stand for absent values and are
// reported by validation rather than rejected while decoding.
type InputLine struct {
	ProductID *int64           `json:"productId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// Result holds the four derived amounts formatted with two decimals.
type Result struct {
	Discount string
	Subtotal string
	Tax      string
	Total    string
}

// Output is the evaluation of one scenario. ValidationErrors is empty for a
// valid order.
type Output struct {
	ScenarioName     *string
	Result           Result
	ValidationErrors []string
}

// BuildOrder turns an input into an unsaved order.
func BuildOrder(in Input) order.Order {
	o := order.Order{CustomerName: CustomerName}
	if in.CustomerID != nil {
		o.CustomerID = order.Ref(*in.CustomerID)
	}

	o.Lines = make([]order.Line, 0, len(in.Lines))
	for _, l := range in.Lines {
		line := order.Line{Quantity: l.Quantity}
		if l.ProductID != nil {
			line.ProductID = order.Ref(*l.ProductID)
			line.ProductName = fmt.Sprintf("Product %d", *l.ProductID)
		}
		if l.UnitPrice != nil {
			p := money.New(*l.UnitPrice)
			line.UnitPrice = &p
		}
		o.Lines = append(o.Lines, line)
	}
	return o
}

// Evaluate prices and validates one scenario. Nothing is persisted.
func Evaluate(in Input) Output {
	o := order.RecalculatePricing(BuildOrder(in))

	return Output{
		ScenarioName: in.ScenarioName,
		Result: Result{
			Discount: o.Discount.String(),
			Subtotal: o.Subtotal.String(),
			Tax:      o.Tax.String(),
			Total:    o.Total.String(),
		},
		ValidationErrors: order.Validate(o),
	}
}

// Run evaluates every scenario, preserving input order.
func Run(inputs []Input) []Output {
	outputs := make([]Output, len(inputs))
	for i, in := range inputs {
		outputs[i] = Evaluate(in)
	}
	return outputs
}
