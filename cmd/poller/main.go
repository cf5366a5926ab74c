// Command poller refreshes stale wallet balances on a schedule, without serving HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"orangecat-wallets/config"
	"orangecat-wallets/internal/app"
	"orangecat-wallets/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("OCW_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty, "orangecat-wallets-poller")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	go application.Rates().Run(ctx, cfg.Rates.RefreshInterval)

	log.Info().
		Dur("interval", cfg.Poller.Interval).
		Dur("stale_after", cfg.Poller.StaleAfter).
		Int("batch_size", cfg.Poller.BatchSize).
		Int("concurrency", cfg.Poller.Concurrency).
		Msg("Balance poller started")

	if err := application.Poller().Run(ctx); err != nil {
		log.Error().Err(err).Msg("Balance poller stopped")
	}
	log.Info().Msg("Poller exited")
}
