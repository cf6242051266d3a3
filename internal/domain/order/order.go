package order

import (
	"context"
	"slices"
	"time"

	"github.com/xenking/order-entry/internal/money"
)

// Order is a customer order with its line items and derived pricing.
//
// CustomerID and Line.ProductID are references; nil means the reference is
// missing, while any value, zero included, counts as present.
//
// Subtotal, Discount, Tax and Total are always produced by ComputePricing;
// only the Service writes them back onto an order.
type Order struct {
	ID           int64       `json:"id"`
	CustomerID   *int64      `json:"customerId"`
	CustomerName string      `json:"customerName"`
	Lines        []Line      `json:"lines"`
	OrderDate    *time.Time  `json:"orderDate"`
	Subtotal     money.Money `json:"subtotal"`
	Discount     money.Money `json:"discount"`
	Tax          money.Money `json:"tax"`
	Total        money.Money `json:"total"`
}

// Line is a single line item. ProductName and UnitPrice are snapshots taken
// when the line was added and are not kept in sync with the product.
type Line struct {
	ID          int64        `json:"id"`
	ProductID   *int64       `json:"productId"`
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	UnitPrice   *money.Money `json:"unitPrice"`
}

// Total returns quantity times unit price, unrounded. A missing unit price
// counts as zero.
func (l Line) Total() money.Money {
	if l.UnitPrice == nil {
		return money.Zero
	}
	return l.UnitPrice.MulQuantity(l.Quantity)
}

// RecordID returns the identifier; zero means the order was never saved.
func (o Order) RecordID() int64 { return o.ID }

// WithRecordID returns a copy of o carrying the given identifier.
func (o Order) WithRecordID(id int64) Order {
	o = o.Clone()
	o.ID = id
	return o
}

// Clone returns a copy of o that shares no mutable state with it.
func (o Order) Clone() Order {
	o.CustomerID = cloneRef(o.CustomerID)
	o.Lines = slices.Clone(o.Lines)
	for i, l := range o.Lines {
		o.Lines[i].ProductID = cloneRef(l.ProductID)
		if l.UnitPrice != nil {
			p := *l.UnitPrice
			o.Lines[i].UnitPrice = &p
		}
	}
	if o.OrderDate != nil {
		d := *o.OrderDate
		o.OrderDate = &d
	}
	return o
}

// Ref returns a reference to id, for filling CustomerID and ProductID.
func Ref(id int64) *int64 { return &id }

func cloneRef(id *int64) *int64 {
	if id == nil {
		return nil
	}
	return Ref(*id)
}

// WithPricing returns a copy of o carrying the given derived amounts.
func (o Order) WithPricing(p Pricing) Order {
	o = o.Clone()
	o.Subtotal = p.Subtotal
	o.Discount = p.Discount
	o.Tax = p.Tax
	o.Total = p.Total
	return o
}

// AssignLineIDs gives every line without an identifier the next integer after
// the largest line identifier already present in o, in line order. Lines of a
// fresh order are numbered from 1.
func AssignLineIDs(o Order) Order {
	o = o.Clone()
	var next int64
	for _, l := range o.Lines {
		next = max(next, l.ID)
	}
	for i := range o.Lines {
		if o.Lines[i].ID == 0 {
			next++
			o.Lines[i].ID = next
		}
	}
	return o
}

// Repository defines persistence operations for orders.
type Repository interface {
	Load(ctx context.Context) error
	FindAll() []Order
	FindByID(id int64) (Order, error)
	Upsert(ctx context.Context, o Order) (Order, error)
	Delete(ctx context.Context, id int64) error
}
