package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orangecat-wallets/config"
	"orangecat-wallets/internal/app"
	"orangecat-wallets/internal/service"
	"orangecat-wallets/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("OCW_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty, "orangecat-wallets-api")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret is required (OCW_JWT_SECRET)")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Str("network", cfg.Bitcoin.Network).
		Msg("Starting OrangeCat wallets API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	// Exchange rates are refreshed in the background for the life of the process.
	go application.Rates().Run(ctx, cfg.Rates.RefreshInterval)

	if cfg.Poller.Enabled {
		go func() {
			if err := application.Poller().Run(ctx); err != nil {
				log.Error().Err(err).Msg("Balance poller stopped")
			}
		}()
		log.Info().Dur("interval", cfg.Poller.Interval).Msg("Balance poller started")
	}

	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           application.Router(tokenSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
