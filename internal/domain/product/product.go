package product

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/order-entry/internal/money"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for ordering.
type Product struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	UnitPrice money.Money `json:"unitPrice"`
}

// RecordID returns the identifier; zero means the product was never saved.
func (p Product) RecordID() int64 { return p.ID }

// WithRecordID returns a copy of p carrying the given identifier.
func (p Product) WithRecordID(id int64) Product {
	p.ID = id
	return p
}

// Clone returns an independent copy of p.
func (p Product) Clone() Product { return p }

// Validate returns the problems that prevent p from being saved.
func (p Product) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "Name is required")
	}
	if p.UnitPrice.IsNegative() {
		errs = append(errs, "Unit price must be zero or greater")
	}
	return errs
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	Load(ctx context.Context) error
	FindAll() []Product
	FindByID(id int64) (Product, error)
	Upsert(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id int64) error
}
