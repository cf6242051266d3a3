package app

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/order-entry/internal/domain/customer"
	"github.com/xenking/order-entry/internal/domain/order"
	"github.com/xenking/order-entry/internal/domain/product"
)

// Catalog is the seed file layout. Ids are assigned by the stores.
type Catalog struct {
	Customers []customer.Customer `json:"customers"`
	Products  []product.Product   `json:"products"`
}

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Customers int
	Products  int
}

// ParseCatalog decodes a seed catalog, rejecting unknown fields.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	d := json.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(&c); err != nil {
		return Catalog{}, errors.Wrap(err, "parse catalog")
	}
	return c, nil
}

// Seed saves the catalog's customers and products through svc. Records whose
// name already exists (ignoring case) are skipped, so seeding twice is a
// no-op.
func Seed(ctx context.Context, svc *order.Service, c Catalog) (SeedResult, error) {
	lg := zctx.From(ctx)
	var res SeedResult

	existing := make(map[string]struct{})
	for _, cu := range svc.Customers() {
		existing[strings.ToLower(cu.Name)] = struct{}{}
	}
	for _, cu := range c.Customers {
		if _, ok := existing[strings.ToLower(cu.Name)]; ok {
			lg.Debug("Customer exists", zap.String("name", cu.Name))
			continue
		}
		cu.ID = 0
		saved, err := svc.SaveCustomer(ctx, cu)
		if err != nil {
			return res, errors.Wrapf(err, "seed customer %q", cu.Name)
		}
		existing[strings.ToLower(cu.Name)] = struct{}{}
		res.Customers++
		lg.Info("Seeded customer", zap.Int64("id", saved.ID), zap.String("name", saved.Name))
	}

	existing = make(map[string]struct{})
	for _, p := range svc.Products() {
		existing[strings.ToLower(p.Name)] = struct{}{}
	}
	for _, p := range c.Products {
		if _, ok := existing[strings.ToLower(p.Name)]; ok {
			lg.Debug("Product exists", zap.String("name", p.Name))
			continue
		}
		p.ID = 0
		saved, err := svc.SaveProduct(ctx, p)
		if err != nil {
			return res, errors.Wrapf(err, "seed product %q", p.Name)
		}
		existing[strings.ToLower(p.Name)] = struct{}{}
		res.Products++
		lg.Info("Seeded product",
			zap.Int64("id", saved.ID),
			zap.String("name", saved.Name),
			zap.Stringer("unit_price", saved.UnitPrice),
		)
	}

	return res, nil
}
