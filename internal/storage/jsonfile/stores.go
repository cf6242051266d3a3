package jsonfile

import (
	"path/filepath"

	"github.com/xenking/order-entry/internal/domain/customer"
	"github.com/xenking/order-entry/internal/domain/order"
	"github.com/xenking/order-entry/internal/domain/product"
)

// File names of the collections inside the data directory.
const (
	CustomersFile = "customers.json"
	ProductsFile  = "products.json"
	OrdersFile    = "orders.json"
)

var (
	_ customer.Repository = (*Store[customer.Customer])(nil)
	_ product.Repository  = (*Store[product.Product])(nil)
	_ order.Repository    = (*Store[order.Order])(nil)
)

// NewCustomerStore returns the customer store kept in dir.
func NewCustomerStore(dir string) *Store[customer.Customer] {
	return New("customers", filepath.Join(dir, CustomersFile),
		WithNotFound[customer.Customer](customer.ErrNotFound),
	)
}

// NewProductStore returns the product store kept in dir.
func NewProductStore(dir string) *Store[product.Product] {
	return New("products", filepath.Join(dir, ProductsFile),
		WithNotFound[product.Product](product.ErrNotFound),
	)
}

// NewOrderStore returns the order store kept in dir. Lines without an id
// are numbered when the order is stored.
func NewOrderStore(dir string) *Store[order.Order] {
	return New("orders", filepath.Join(dir, OrdersFile),
		WithNotFound[order.Order](order.ErrNotFound),
		WithPrepare(order.AssignLineIDs),
	)
}
