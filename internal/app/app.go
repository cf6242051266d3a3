// Package app wires configuration, logging and the record stores into an
// order service, and runs command-line entry points.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/order-entry/internal/domain/order"
	"github.com/xenking/order-entry/internal/storage/jsonfile"
)

// Open creates the three stores under cfg.DataDir, loads them and returns an
// order service that owns them.
func Open(ctx context.Context, cfg *Config) (*order.Service, error) {
	zctx.From(ctx).Debug("Opening data directory", zap.String("dir", cfg.DataDir))

	svc := order.NewService(
		jsonfile.NewCustomerStore(cfg.DataDir),
		jsonfile.NewProductStore(cfg.DataDir),
		jsonfile.NewOrderStore(cfg.DataDir),
	)
	if err := svc.ReloadData(ctx); err != nil {
		return nil, errors.Wrap(err, "load data")
	}
	return svc, nil
}

// RunFunc is the body of a command. args are the positional arguments left
// after configuration flags.
type RunFunc func(ctx context.Context, lg *zap.Logger, cfg *Config, args []string) error

// Run loads configuration, builds the logger, installs an interrupt handler
// and calls f. It exits the process with status 1 when anything fails.
func Run(f RunFunc) {
	cfg, args, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	lg, err := NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = zctx.Base(ctx, lg)

	if err := f(ctx, lg, cfg, args); err != nil {
		lg.Error("Failed", zap.Error(err))
		_ = lg.Sync()
		cancel()
		os.Exit(1)
	}
}
