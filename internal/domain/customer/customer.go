package customer

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested customer does not exist.
var ErrNotFound = errors.New("customer not found")

// Customer is a person or business that places orders.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// RecordID returns the identifier; zero means the customer was never saved.
func (c Customer) RecordID() int64 { return c.ID }

// WithRecordID returns a copy of c carrying the given identifier.
func (c Customer) WithRecordID(id int64) Customer {
	c.ID = id
	return c
}

// Clone returns an independent copy of c.
func (c Customer) Clone() Customer { return c }

// Validate returns the problems that prevent c from being saved.
func (c Customer) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "Name is required")
	}
	return errs
}

// NameContains reports whether the customer name contains query, ignoring case.
func (c Customer) NameContains(query string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(query))
}

// Repository defines persistence operations for customers.
type Repository interface {
	Load(ctx context.Context) error
	FindAll() []Customer
	FindByID(id int64) (Customer, error)
	Upsert(ctx context.Context, c Customer) (Customer, error)
	Delete(ctx context.Context, id int64) error
}
