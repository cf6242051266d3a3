package order

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/order-entry/internal/domain/customer"
	"github.com/xenking/order-entry/internal/domain/product"
)

// Service is the order entry façade. It owns the three repositories and is
// the only component that writes derived pricing onto an order; callers get
// copies back and never share state with the repositories.
//
// Service is not safe for concurrent use.
type Service struct {
	customers customer.Repository
	products  product.Repository
	orders    Repository
	now       func() time.Time
}

// NewService creates an order Service over the given repositories.
func NewService(
	customers customer.Repository,
	products product.Repository,
	orders Repository,
) *Service {
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		now:       time.Now,
	}
}

// Customers returns all customers.
func (s *Service) Customers() []customer.Customer {
	return s.customers.FindAll()
}

// CustomerByID returns the customer with the given id.
func (s *Service) CustomerByID(id int64) (customer.Customer, error) {
	return s.customers.FindByID(id)
}

// SearchCustomers returns the customers whose name contains query, ignoring
// case. A blank query matches everyone.
func (s *Service) SearchCustomers(query string) []customer.Customer {
	all := s.customers.FindAll()
	query = strings.TrimSpace(query)
	if query == "" {
		return all
	}

	var found []customer.Customer
	for _, c := range all {
		if c.NameContains(query) {
			found = append(found, c)
		}
	}
	return found
}

// SaveCustomer validates and upserts a customer.
func (s *Service) SaveCustomer(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	if errs := c.Validate(); len(errs) > 0 {
		return customer.Customer{}, &ValidationError{Errors: errs}
	}
	saved, err := s.customers.Upsert(ctx, c)
	if err != nil {
		return customer.Customer{}, errors.Wrap(err, "save customer")
	}
	return saved, nil
}

// DeleteCustomer removes a customer. Orders referencing it are left as they
// are; they keep their customer name snapshot.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "delete customer %d", id)
	}
	return nil
}

// Products returns the full catalog.
func (s *Service) Products() []product.Product {
	return s.products.FindAll()
}

// ProductByID returns the product with the given id.
func (s *Service) ProductByID(id int64) (product.Product, error) {
	return s.products.FindByID(id)
}

// SaveProduct validates and upserts a product.
func (s *Service) SaveProduct(ctx context.Context, p product.Product) (product.Product, error) {
	if errs := p.Validate(); len(errs) > 0 {
		return product.Product{}, &ValidationError{Errors: errs}
	}
	saved, err := s.products.Upsert(ctx, p)
	if err != nil {
		return product.Product{}, errors.Wrap(err, "save product")
	}
	return saved, nil
}

// DeleteProduct removes a product. Order lines keep their snapshots.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "delete product %d", id)
	}
	return nil
}

// Orders returns all orders.
func (s *Service) Orders() []Order {
	return s.orders.FindAll()
}

// OrderByID returns the order with the given id.
func (s *Service) OrderByID(id int64) (Order, error) {
	return s.orders.FindByID(id)
}

// CreateOrder returns a new, unsaved order for the given customer.
func (s *Service) CreateOrder(customerID int64) (Order, error) {
	c, err := s.customers.FindByID(customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return Order{}, &CustomerNotFoundError{CustomerID: customerID}
		}
		return Order{}, errors.Wrap(err, "get customer")
	}

	return Order{
		CustomerID:   Ref(c.ID),
		CustomerName: c.Name,
	}, nil
}

// AddLine appends a line for the given product, snapshotting its name and
// unit price, and returns the repriced order.
func (s *Service) AddLine(o Order, productID int64, quantity int) (Order, error) {
	p, err := s.products.FindByID(productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return Order{}, &ProductNotFoundError{ProductID: productID}
		}
		return Order{}, errors.Wrap(err, "get product")
	}

	price := p.UnitPrice
	o = o.Clone()
	o.Lines = append(o.Lines, Line{
		ProductID:   Ref(p.ID),
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   &price,
	})

	return RecalculatePricing(o), nil
}

// RemoveLine drops the line at the 0-based index and returns the repriced
// order.
func (s *Service) RemoveLine(o Order, index int) (Order, error) {
	if index < 0 || index >= len(o.Lines) {
		return Order{}, errors.Wrapf(ErrLineNotFound, "index %d", index)
	}

	o = o.Clone()
	o.Lines = append(o.Lines[:index], o.Lines[index+1:]...)

	return RecalculatePricing(o), nil
}

// RecalculatePricing returns o with its derived fields recomputed from its
// current lines.
func RecalculatePricing(o Order) Order {
	return o.WithPricing(ComputePricing(o.Lines))
}

// SaveOrder reprices and validates the order, then persists it. The order
// date is stamped on the first successful save only. On validation failure
// nothing is written and a *ValidationError is returned.
func (s *Service) SaveOrder(ctx context.Context, o Order) (Order, error) {
	lg := zctx.From(ctx)

	o = RecalculatePricing(o)
	if errs := Validate(o); len(errs) > 0 {
		lg.Info("Order rejected",
			zap.Int64("order_id", o.ID),
			zap.Strings("errors", errs),
		)
		return Order{}, &ValidationError{Errors: errs}
	}

	if o.OrderDate == nil {
		now := s.now()
		o.OrderDate = &now
	}

	saved, err := s.orders.Upsert(ctx, o)
	if err != nil {
		return Order{}, errors.Wrap(err, "save order")
	}

	lg.Info("Order saved",
		zap.Int64("order_id", saved.ID),
		zap.Int64p("customer_id", saved.CustomerID),
		zap.Stringer("total", saved.Total),
	)
	return saved, nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "delete order %d", id)
	}
	return nil
}

// ReloadData reloads every repository from storage, discarding anything not
// yet saved.
func (s *Service) ReloadData(ctx context.Context) error {
	if err := s.customers.Load(ctx); err != nil {
		return errors.Wrap(err, "load customers")
	}
	if err := s.products.Load(ctx); err != nil {
		return errors.Wrap(err, "load products")
	}
	if err := s.orders.Load(ctx); err != nil {
		return errors.Wrap(err, "load orders")
	}
	return nil
}
