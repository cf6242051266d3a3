// Command seed-data loads a catalog of customers and products into the data
// directory. Without arguments the embedded default catalog is used.
package main

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/order-entry/db"
	"github.com/xenking/order-entry/internal/app"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, cfg *app.Config, args []string) error {
		ctx = zctx.With(ctx, zap.String("run_id", uuid.NewString()))
		lg = zctx.From(ctx)

		data := db.Catalog
		switch len(args) {
		case 0:
		case 1:
			lg.Info("Reading catalog", zap.String("path", args[0]))
			b, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "read catalog")
			}
			data = b
		default:
			return errors.New("usage: seed-data [flags] [catalog.json]")
		}

		catalog, err := app.ParseCatalog(data)
		if err != nil {
			return err
		}

		svc, err := app.Open(ctx, cfg)
		if err != nil {
			return err
		}

		res, err := app.Seed(ctx, svc, catalog)
		if err != nil {
			return err
		}
		lg.Info("Seed completed",
			zap.String("dir", cfg.DataDir),
			zap.Int("customers", res.Customers),
			zap.Int("products", res.Products),
		)
		return nil
	})
}
