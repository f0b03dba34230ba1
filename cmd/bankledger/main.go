package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/boddenberg/bankledger-go/internal/cli"
	"github.com/boddenberg/bankledger-go/internal/config"
	"github.com/boddenberg/bankledger-go/internal/infra/observability"
	"github.com/boddenberg/bankledger-go/internal/infra/store"
	"github.com/boddenberg/bankledger-go/internal/ledger"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("bank_name", cfg.BankName),
		zap.String("data_file", cfg.DataFile),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("tracing_enabled", cfg.TracingEnabled),
	)

	// --- Tracing ---
	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "bankledger")
		if err != nil {
			logger.Fatal("failed to init tracer", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Store + ledger ---
	jsonStore := store.NewJSONStore(cfg.DataFile, logger, metrics)

	var led *ledger.Ledger
	if snap, err := jsonStore.Load(context.Background()); err != nil {
		// Missing or unreadable store is a normal first run, not a user
		// visible failure.
		logger.Warn("no usable ledger snapshot, starting fresh",
			zap.String("path", cfg.DataFile),
			zap.Error(err),
		)
		led = ledger.New(cfg.BankName, logger, metrics)
	} else {
		led = ledger.FromSnapshot(snap, logger, metrics)
	}

	// --- CLI ---
	app := cli.New(led, jsonStore, metrics, logger, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var menuDone atomic.Bool
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer stop()
		err := app.Run(gctx)
		menuDone.Store(true)
		return err
	})

	// The menu loop blocks on stdin, so an interrupt is handled here: persist
	// the ledger and leave instead of waiting for the next prompt.
	g.Go(func() error {
		<-gctx.Done()
		if menuDone.Load() {
			return nil
		}
		if err := jsonStore.Save(context.Background(), led.Snapshot()); err != nil {
			logger.Error("failed to save ledger on interrupt", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("interrupt received, ledger saved")
		os.Exit(0)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("session ended with error", zap.Error(err))
	}

	logger.Info("session ended")
}
