// Command scenario-runner prices and validates scenario files and prints the
// results as canonical JSON on stdout.
package main

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/order-entry/internal/app"
	"github.com/xenking/order-entry/internal/scenario"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, _ *app.Config, args []string) error {
		if len(args) == 0 {
			return errors.New("usage: scenario-runner [flags] <scenarios.json>...")
		}

		ctx = zctx.With(ctx, zap.String("run_id", uuid.NewString()))
		lg = zctx.From(ctx)

		inputs, err := scenario.LoadFiles(ctx, args...)
		if err != nil {
			return errors.Wrap(err, "load scenarios")
		}
		lg.Info("Scenarios loaded",
			zap.Int("files", len(args)),
			zap.Int("count", len(inputs)),
		)

		outputs := scenario.Run(inputs)

		invalid := 0
		for _, out := range outputs {
			if len(out.ValidationErrors) > 0 {
				invalid++
			}
		}

		if err := scenario.Encode(os.Stdout, outputs); err != nil {
			return err
		}
		lg.Info("Scenarios evaluated",
			zap.Int("count", len(outputs)),
			zap.Int("invalid", invalid),
		)
		return nil
	})
}
