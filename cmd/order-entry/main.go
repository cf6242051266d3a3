// Command order-entry manages customers, products and orders kept as JSON
// files in the configured data directory.
package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/xenking/order-entry/internal/app"
	"github.com/xenking/order-entry/internal/cli"
)

func main() {
	app.Run(func(ctx context.Context, _ *zap.Logger, cfg *app.Config, args []string) error {
		svc, err := app.Open(ctx, cfg)
		if err != nil {
			return err
		}
		r := &cli.Runner{Service: svc, Out: os.Stdout}
		return r.Execute(ctx, args)
	})
}
